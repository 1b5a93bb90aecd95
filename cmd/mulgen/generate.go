package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/dyuri/mulgen/pkg/mulgen"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func newGenerateCmd(log *logrus.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a placeholder .mul file set",
		Long: `Generate the complete placeholder file set into an output directory.

Map width and height are given in tiles and must be multiples of 8.
Existing files are never touched unless --force is given.`,
		Example: `  mulgen generate --out ClientMin --force --facet 0 --map-width 512 --map-height 512
  mulgen generate --out ClientMin --map-width 256 --map-height 256 --default-land 2 --default-z 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, log)
		},
	}

	addLayoutFlags(cmd)
	cmd.Flags().Bool("force", false, "Overwrite existing files")

	return cmd
}

func runGenerate(cmd *cobra.Command, log *logrus.Logger) error {
	cfg, err := layoutConfig(cmd)
	if err != nil {
		return err
	}
	cfg.Overwrite, _ = cmd.Flags().GetBool("force")
	cfg.Logger = log

	report, err := mulgen.Generate(cfg)
	if err != nil {
		if errors.Is(err, mulgen.ErrDestinationConflict) {
			return fmt.Errorf("%w (use --force to overwrite)", err)
		}
		return err
	}

	return printReport(cmd.OutOrStdout(), report, cfg)
}

func printReport(w io.Writer, report *mulgen.Report, cfg mulgen.Config) error {
	p := message.NewPrinter(language.English)

	dir, err := filepath.Abs(report.Dir)
	if err != nil {
		dir = report.Dir
	}

	p.Fprintf(w, "Wrote placeholder .mul set to: %s\n", dir)
	p.Fprintf(w, "Sizes:\n")
	for _, f := range report.Files {
		p.Fprintf(w, "  %-14s = %13d bytes (%s)\n", f.Name, f.Bytes, humanize.IBytes(uint64(f.Bytes)))
	}
	p.Fprintf(w, "  %-14s = %13d bytes (%s)\n", "total", report.TotalBytes(), humanize.IBytes(uint64(report.TotalBytes())))

	g := report.Geometry
	p.Fprintf(w, "Map info:\n")
	p.Fprintf(w, "  facet           = %d\n", g.Facet)
	p.Fprintf(w, "  size            = %d x %d tiles\n", g.Width, g.Height)
	p.Fprintf(w, "  blocks          = %d x %d (8x8), total %d blocks, %s\n", g.Columns, g.Rows, g.BlockCount(), report.Order)
	p.Fprintf(w, "  default land id = %d\n", cfg.LandID)
	p.Fprintf(w, "  default z       = %d\n", cfg.Elevation)

	return nil
}
