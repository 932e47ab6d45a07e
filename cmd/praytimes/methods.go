package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/praytimes"
)

func (a *app) newMethodsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "methods",
		Short: "List the calculation methods",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tFAJR\tISHA\tMAGHRIB\tMIDNIGHT\tDESCRIPTION")
			for _, m := range praytimes.Methods() {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					m.Name, m.Fajr, m.Isha, m.Maghrib, m.Midnight, m.Description)
			}
			return tw.Flush()
		},
	}
}
