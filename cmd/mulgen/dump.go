package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dyuri/mulgen/internal/binary"
	"github.com/dyuri/mulgen/internal/model"
	"github.com/dyuri/mulgen/internal/text"
	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <map.mul>",
		Short: "Dump map blocks as text",
		Long: `Render blocks of a generated map file as text, one 8x8 grid of
tile:alt cells per block.

Only block (0,0) is written unless --all-blocks is given.`,
		Args: cobra.ExactArgs(1),
		RunE: runDump,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	cmd.Flags().Int("map-width", 256, "Map width in tiles (multiple of 8)")
	cmd.Flags().Int("map-height", 256, "Map height in tiles (multiple of 8)")
	cmd.Flags().Bool("all-blocks", false, "Dump every block in the map")
	cmd.Flags().Bool("column-major", false, "Map blocks are laid out column by column")

	return cmd
}

func runDump(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")
	width, _ := cmd.Flags().GetInt("map-width")
	height, _ := cmd.Flags().GetInt("map-height")
	allBlocks, _ := cmd.Flags().GetBool("all-blocks")

	geom, err := model.NewGeometry(0, width, height)
	if err != nil {
		return err
	}

	// Open input file
	f, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("open input file: %w", err)
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat input file: %w", err)
	}

	// Determine output writer
	var output io.Writer = cmd.OutOrStdout()
	if outputPath != "" {
		out, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer out.Close()
		output = out
	}

	w := text.NewWriter(output)
	err = w.Dump(binary.NewReader(f, stat.Size()), geom, text.DumpOptions{
		Name:      filepath.Base(inputPath),
		Order:     orderFromFlags(cmd.Flags()),
		AllBlocks: allBlocks,
	})
	if err != nil {
		return fmt.Errorf("dump %s: %w", inputPath, err)
	}

	if outputPath != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s\n", outputPath)
	}
	return nil
}
