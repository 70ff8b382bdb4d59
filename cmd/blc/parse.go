package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/bl/internal/syntax"
)

func newParseCmd(a *app) *cobra.Command {
	var (
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "parse FILE",
		Short: "Parse a BL program and print its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (want text, json or yaml)", format)
			}

			prog, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			if output == "" {
				return emitTree(cmd.OutOrStdout(), prog, format)
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := writeTree(f, prog, format); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}
			a.log.WithField("output", output).Debug("syntax tree written")
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or yaml")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	return cmd
}

// writeTree emits the tree to wc and closes it. A failed Close is
// reported when the emit itself succeeded.
func writeTree(wc io.WriteCloser, prog *syntax.Program, format string) error {
	err := emitTree(wc, prog, format)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

func emitTree(w io.Writer, prog *syntax.Program, format string) error {
	switch format {
	case "json":
		return syntax.FprintJSON(w, prog)
	case "yaml":
		return syntax.FprintYAML(w, prog)
	}
	syntax.Fprint(w, prog)
	return nil
}
