package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/dyuri/mulgen/pkg/mulgen"
	"github.com/spf13/cobra"
)

func newVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify a generated .mul file set",
		Long: `Check a generated directory against the layout given by the flags.

Every file must exist with its exact size, registries must be zero-filled,
every index record must be the absent sentinel and every map tile must carry
the default land id and altitude. Use the same flags as for generate.`,
		Args: cobra.NoArgs,
		RunE: runVerify,
	}

	addLayoutFlags(cmd)
	cmd.Flags().Bool("strict", false, "Fail on warnings")

	return cmd
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := layoutConfig(cmd)
	if err != nil {
		return err
	}
	strict, _ := cmd.Flags().GetBool("strict")

	res, err := mulgen.Verify(cfg)
	if err != nil {
		return err
	}

	printVerifyResult(cmd.OutOrStdout(), res, strict)

	if !res.OK(strict) {
		return fmt.Errorf("verification failed")
	}
	return nil
}

func printVerifyResult(w io.Writer, res *mulgen.VerifyResult, strict bool) {
	fmt.Fprintf(w, "Verifying: %s (%d files)\n", res.Dir, len(res.Checked))
	fmt.Fprintln(w, strings.Repeat("=", 50))

	if len(res.Errors) == 0 && len(res.Warnings) == 0 {
		fmt.Fprintln(w, "✓ Valid file set - no issues found")
		return
	}

	if len(res.Errors) > 0 {
		fmt.Fprintf(w, "\nErrors (%d):\n", len(res.Errors))
		for _, f := range res.Errors {
			fmt.Fprintf(w, "  ✗ %s\n", f)
		}
	}

	if len(res.Warnings) > 0 {
		fmt.Fprintf(w, "\nWarnings (%d):\n", len(res.Warnings))
		for _, f := range res.Warnings {
			fmt.Fprintf(w, "  ⚠ %s\n", f)
		}
	}

	fmt.Fprintln(w)
	if len(res.Errors) > 0 {
		fmt.Fprintf(w, "Verification failed: %d error(s)", len(res.Errors))
		if len(res.Warnings) > 0 {
			fmt.Fprintf(w, ", %d warning(s)", len(res.Warnings))
		}
		fmt.Fprintln(w)
	} else {
		fmt.Fprintf(w, "Verification passed with %d warning(s)\n", len(res.Warnings))
		if strict {
			fmt.Fprintln(w, "(use without --strict to ignore warnings)")
		}
	}
}
