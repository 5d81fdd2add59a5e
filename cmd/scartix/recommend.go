package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"scartix/internal/calc/recommend"
)

var (
	recommendFormat    string
	recommendTop       int
	recommendThreshold float64
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <tissue>",
	Short: "Find the porosity that best matches a tissue",
	Long: `Find the porosity that best matches a tissue.

Every porosity from 30 to 90 is scored and the best candidates are listed
together with the range rated Suitable or better.

Examples:
  scartix recommend articular_cartilage
  scartix recommend skin --top 10 --format=json`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().StringVar(&recommendFormat, "format", "human", "Output format (json, human)")
	recommendCmd.Flags().IntVar(&recommendTop, "top", recommend.DefaultTop, "Number of candidates to list")
	recommendCmd.Flags().Float64Var(&recommendThreshold, "suitable-threshold", 0, "Override the Suitable status threshold")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	res, err := recommend.Porosity(nil, recommend.Input{
		Tissue:            args[0],
		SuitableThreshold: recommendThreshold,
		Top:               recommendTop,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if recommendFormat == "json" {
		return json.NewEncoder(out).Encode(res)
	}
	fmt.Fprintf(out, "%s: best porosity %d%% (score %.3f, %s)\n", res.Tissue, res.Best.Porosity, res.Best.Score, res.Best.Status)
	if res.SuitableFrom != 0 {
		fmt.Fprintf(out, "suitable range: %d%%-%d%%\n", res.SuitableFrom, res.SuitableTo)
	} else {
		fmt.Fprintln(out, res.Notes)
	}
	for i, c := range res.Candidates {
		fmt.Fprintf(out, "%2d. %d%%  %.3f  %s\n", i+1, c.Porosity, c.Score, c.Status)
	}
	return nil
}
