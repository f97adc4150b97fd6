package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pdm-mcp/internal/engine"
	"pdm-mcp/internal/scenario"
	"pdm-mcp/internal/visuals"
)

var (
	scenarioPath string
	trialsFlag   int
	seedFlag     int64
	jsonOutput   bool
	chartsOutput bool
)

var compareCmd = &cobra.Command{
	Use:   "compare",
	Short: "Run a one-shot comparison from a scenario file (or the built-in example)",
	Long: `Runs the full simulation pipeline once and prints the results to stdout.
Without --scenario the built-in DBB/DB/CMAR example is used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		var sc *scenario.Scenario
		if scenarioPath != "" {
			loaded, err := scenario.Load(scenarioPath)
			if err != nil {
				return err
			}
			sc = loaded
		} else {
			sc = scenario.Example()
			log.Info().Msg("No scenario file given, using built-in delivery-method example")
		}

		trials := sc.Trials
		if trialsFlag > 0 {
			trials = trialsFlag
		}
		if trials == 0 {
			trials = cfg.DefaultTrials
		}

		eng := engine.NewEngine(sc.Policy())
		switch {
		case seedFlag != 0:
			eng.SetSeed(seedFlag)
		case sc.Seed != 0:
			eng.SetSeed(sc.Seed)
		}

		result, err := eng.Run(sc.Candidates, sc.Weights, trials)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		for _, w := range result.Warnings {
			fmt.Printf("Warning: %s\n", w)
		}
		for _, line := range result.Recommendation.Summary() {
			fmt.Println(line)
		}
		if chartsOutput || cfg.EnableMermaidCharts {
			for _, cr := range result.Results {
				fmt.Println()
				fmt.Println(visuals.GenerateScorePDFChart(cr))
				fmt.Println()
				fmt.Println(visuals.GenerateScoreCDFChart(cr, 40))
			}
		}
		return nil
	},
}

func init() {
	compareCmd.Flags().StringVarP(&scenarioPath, "scenario", "s", "", "path to a scenario JSON file")
	compareCmd.Flags().IntVarP(&trialsFlag, "trials", "n", 0, "trials per candidate (overrides scenario)")
	compareCmd.Flags().Int64Var(&seedFlag, "seed", 0, "seed for a reproducible run")
	compareCmd.Flags().BoolVar(&jsonOutput, "json", false, "print the full result as JSON")
	compareCmd.Flags().BoolVar(&chartsOutput, "charts", false, "print Mermaid PDF/CDF charts")
	rootCmd.AddCommand(compareCmd)
}
