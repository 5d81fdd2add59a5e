package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"scartix/internal/calc/prediction"
	"scartix/internal/calc/scaffold"
)

var (
	predictFormat    string
	predictTissues   []string
	predictThreshold float64
)

var predictCmd = &cobra.Command{
	Use:   "predict <porosity>",
	Short: "Predict scaffold properties and tissue compatibility for one porosity",
	Long: `Predict scaffold properties and tissue compatibility for one porosity.

Examples:
  scartix predict 60
  scartix predict 45 --tissue skin --tissue meniscus
  scartix predict 75 --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: runPredict,
}

func init() {
	predictCmd.Flags().StringVar(&predictFormat, "format", "human", "Output format (json, human)")
	predictCmd.Flags().StringSliceVar(&predictTissues, "tissue", nil, "Tissue to assess (repeatable, default: all)")
	predictCmd.Flags().Float64Var(&predictThreshold, "suitable-threshold", 0, "Override the Suitable status threshold")
	rootCmd.AddCommand(predictCmd)
}

func runPredict(cmd *cobra.Command, args []string) error {
	porosity, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("porosity must be an integer: %w", scaffold.ErrInvalidPorosity)
	}
	res, err := prediction.Predict(nil, prediction.Input{
		Porosity:          porosity,
		Tissues:           predictTissues,
		SuitableThreshold: predictThreshold,
	})
	if err != nil {
		return err
	}
	if predictFormat == "json" {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(res)
	}
	printPrediction(cmd.OutOrStdout(), res)
	return nil
}

func printPrediction(out io.Writer, res prediction.Prediction) {
	fmt.Fprintf(out, "Porosity: %d%%\n\n", res.Porosity)
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "PROPERTY\tVALUE\tASSESSMENT")
	for _, p := range scaffold.Properties {
		v, _ := res.Bundle.Value(p)
		fmt.Fprintf(tw, "%s\t%.3f\t%s\n", p, v, res.Interpretation[p])
	}
	tw.Flush()

	fmt.Fprintln(out)
	tw = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TISSUE\tSCORE\tSTATUS\tCRITICAL")
	for _, a := range res.Compatibility {
		critical := make([]string, 0, len(a.CriticalFactors))
		for _, p := range a.CriticalFactors {
			critical = append(critical, string(p))
		}
		fmt.Fprintf(tw, "%s\t%.3f\t%s\t%s\n", a.Tissue, a.Score, a.Status, strings.Join(critical, ","))
	}
	tw.Flush()
}
