package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"scartix/internal/calc/prediction"
	"scartix/internal/calc/sweep"
)

var (
	sweepFrom    int
	sweepTo      int
	sweepStep    int
	sweepInput   string
	sweepOutput  string
	sweepTissues []string
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Predict a range of porosities and export the results as XLSX",
	Long: `Predict a range of porosities and export the results as XLSX.

Porosities come from --from/--to/--step or from the first column of an
existing workbook (--input). The output has the sheets Properties and
Compatibility.

Examples:
  scartix sweep --from 30 --to 90 --step 5 -o sweep.xlsx
  scartix sweep --input samples.xlsx -o results.xlsx --tissue bone_tissue`,
	Args: cobra.NoArgs,
	RunE: runSweep,
}

func init() {
	sweepCmd.Flags().IntVar(&sweepFrom, "from", 30, "First porosity")
	sweepCmd.Flags().IntVar(&sweepTo, "to", 90, "Last porosity")
	sweepCmd.Flags().IntVar(&sweepStep, "step", 10, "Porosity step")
	sweepCmd.Flags().StringVar(&sweepInput, "input", "", "Read porosities from this workbook instead of the range")
	sweepCmd.Flags().StringVarP(&sweepOutput, "output", "o", "sweep.xlsx", "Output workbook")
	sweepCmd.Flags().StringSliceVar(&sweepTissues, "tissue", nil, "Tissue to assess (repeatable, default: all)")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	porosities, err := sweepPorosities()
	if err != nil {
		return err
	}
	results, err := sweep.Run(nil, porosities, sweepTissues)
	if err != nil {
		return err
	}
	if err := writeWorkbook(sweepOutput, results); err != nil {
		return err
	}
	log.Info().Int("items", len(results)).Str("output", sweepOutput).Msg("sweep written")
	fmt.Fprintf(cmd.OutOrStdout(), "%d porosities written to %s\n", len(results), sweepOutput)
	return nil
}

func sweepPorosities() ([]int, error) {
	if sweepInput == "" {
		return sweep.Expand(sweepFrom, sweepTo, sweepStep)
	}
	f, err := os.Open(sweepInput)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return sweep.ReadPorosities(f)
}

func writeWorkbook(path string, results []prediction.Prediction) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := sweep.WriteXLSX(f, results); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
