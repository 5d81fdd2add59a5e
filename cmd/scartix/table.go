package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scartix/internal/calc/scaffold"
)

var tableFormat string

var tableCmd = &cobra.Command{
	Use:   "table",
	Short: "Print the interpolated parameter table (mean and std per porosity)",
	Args:  cobra.NoArgs,
	RunE:  runTable,
}

func init() {
	tableCmd.Flags().StringVar(&tableFormat, "format", "human", "Output format (json, human)")
	rootCmd.AddCommand(tableCmd)
}

func runTable(cmd *cobra.Command, args []string) error {
	rows := scaffold.DefaultTable.Rows()
	if tableFormat == "json" {
		return json.NewEncoder(cmd.OutOrStdout()).Encode(rows)
	}
	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprint(tw, "POROSITY")
	for _, p := range scaffold.Properties {
		fmt.Fprintf(tw, "\t%s", p)
	}
	fmt.Fprintln(tw)
	for _, row := range rows {
		fmt.Fprintf(tw, "%d", row.Porosity)
		for _, p := range scaffold.Properties {
			fmt.Fprintf(tw, "\t%.4f±%.4f", row.Params[p].Mean, row.Params[p].Std)
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}
