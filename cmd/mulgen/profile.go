package main

import (
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Print the effective format profile",
		Long: `Print the format constants used for generation as YAML.

The output can be edited and passed back with --profile. With --sizes the
resulting file sizes are listed instead.`,
		Args: cobra.NoArgs,
		RunE: runProfile,
	}

	addProfileFlags(cmd.Flags())
	cmd.Flags().Bool("sizes", false, "List record counts and file sizes")

	return cmd
}

func runProfile(cmd *cobra.Command, args []string) error {
	sizes, _ := cmd.Flags().GetBool("sizes")

	profile, err := profileFromFlags(cmd.Flags())
	if err != nil {
		return err
	}
	if err := profile.Validate(); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if !sizes {
		data, err := profile.Marshal()
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	p := message.NewPrinter(language.English)
	p.Fprintf(out, "Registries:\n")
	for _, reg := range profile.Registries() {
		p.Fprintf(out, "  %-14s %9d records %13d bytes (%s)\n",
			reg.File, reg.Records(), reg.Size(), humanize.IBytes(uint64(reg.Size())))
		for _, s := range reg.Sections {
			p.Fprintf(out, "    %-14s %7d x %d\n", s.Name, s.Count, s.Size)
		}
	}

	p.Fprintf(out, "Index/data pairs:\n")
	for _, pair := range profile.IndexPairs() {
		p.Fprintf(out, "  %-14s %9d records %13d bytes (%s), absent length %d, %s empty\n",
			pair.IndexFile, pair.Entries, pair.IndexSize(), humanize.IBytes(uint64(pair.IndexSize())),
			pair.AbsentLength, pair.DataFile)
	}

	p.Fprintf(out, "Facet files:\n")
	p.Fprintf(out, "  %-14s 196 bytes per 8x8 block\n", "map{N}.mul")
	p.Fprintf(out, "  %-14s 12 bytes per block, absent length %d\n", "staidx{N}.mul", profile.StaticsAbsentLength)
	p.Fprintf(out, "  %-14s empty\n", "statics{N}.mul")

	return nil
}
