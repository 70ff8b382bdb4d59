package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/you-not-fish/bl/internal/check"
)

func newCheckCmd(a *app) *cobra.Command {
	var ignoreUnused bool

	cmd := &cobra.Command{
		Use:   "check FILE",
		Short: "Parse a BL program and check its instruction calls",
		Long: `check parses a BL program and reports calls of undefined instructions
and instructions that call themselves, directly or through others, as
errors. Instructions that the main body never reaches are warnings.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			stderr := cmd.ErrOrStderr()
			name := displayName(args[0])
			conf := &check.Config{
				IgnoreUnused: ignoreUnused,
				Error: func(err *check.Error) {
					if err.Soft {
						warningColor.Fprintf(stderr, "%s: warning: ", name)
					} else {
						errorColor.Fprintf(stderr, "%s: error: ", name)
					}
					fmt.Fprintln(stderr, err)
				},
			}

			info, err := check.Check(prog, conf)
			errs, warns := len(info.Errors()), len(info.Warnings())
			if err != nil {
				fmt.Fprintf(stderr, "%d error(s), %d warning(s)\n", errs, warns)
				return &exitError{code: 1}
			}

			okColor.Fprintf(cmd.OutOrStdout(), "%s: ok", name)
			fmt.Fprintf(cmd.OutOrStdout(), " (program %s, %d instruction(s), %d warning(s))\n",
				prog.Name(), prog.Context().Len(), warns)
			return nil
		},
	}

	cmd.Flags().BoolVar(&ignoreUnused, "no-unused", false, "do not warn about unreachable instructions")
	return cmd
}
