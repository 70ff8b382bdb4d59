package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/bl/internal/syntax"
)

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens FILE",
		Short: "List the token stream of a BL file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTokens(cmd, args[0])
		},
	}
}

// runTokens prints every token with its position and lexical class.
// Tokens that can never be valid BL are flagged, and make the command fail.
func (a *app) runTokens(cmd *cobra.Command, filename string) error {
	src, err := readSource(cmd, filename)
	if err != nil {
		return err
	}

	var lexErrs []string
	errh := func(line, col uint32, msg string) {
		lexErrs = append(lexErrs, fmt.Sprintf("%s:%d:%d: %s", displayName(filename), line, col, msg))
	}
	ts := syntax.Tokenize(displayName(filename), bytes.NewReader(src), errh)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"Position", "Class", "Token"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)

	invalid := 0
	for ts.Len() > 0 {
		pos := ts.FrontPos()
		tok := ts.Dequeue()
		class := syntax.Describe(tok)
		if class == "invalid" {
			invalid++
		}
		table.Append([]string{pos.String(), class, formatToken(tok)})
	}
	table.Render()

	stderr := cmd.ErrOrStderr()
	for _, e := range lexErrs {
		errorColor.Fprintln(stderr, e)
	}
	if invalid > 0 {
		errorColor.Fprintf(stderr, "%d invalid token(s)\n", invalid)
	}
	if invalid > 0 || len(lexErrs) > 0 {
		return &exitError{code: 1}
	}
	return nil
}

// formatToken quotes a token for display. The end-of-input sentinel is
// shown as is.
func formatToken(tok string) string {
	if tok == syntax.EndOfInput {
		return tok
	}
	return `"` + strings.ReplaceAll(tok, `"`, `\"`) + `"`
}
