package main

import (
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/you-not-fish/bl/internal/syntax"
)

func newCountCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "count FILE",
		Short: "Count the primitive calls in each instruction and the main body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prog, err := a.parseFile(cmd, args[0])
			if err != nil {
				return err
			}

			table := tablewriter.NewWriter(cmd.OutOrStdout())
			table.SetHeader([]string{"Instruction", "Primitive calls"})
			table.SetBorder(false)
			table.SetAlignment(tablewriter.ALIGN_LEFT)

			total := 0
			ctx := prog.Context()
			for _, name := range ctx.Names() {
				n := syntax.CountPrimitiveCalls(ctx.Lookup(name))
				total += n
				table.Append([]string{name, strconv.Itoa(n)})
			}
			n := syntax.CountPrimitiveCalls(prog.Body())
			total += n
			table.Append([]string{"(main body)", strconv.Itoa(n)})
			table.SetFooter([]string{"Total", strconv.Itoa(total)})
			table.Render()
			return nil
		},
	}
}
