package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/alexshd/meanlaw"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	slog.SetDefault(slog.New(
		tint.NewHandler(os.Stderr, &tint.Options{
			Level:      slog.LevelInfo,
			TimeFormat: "15:04:05",
		}),
	))

	rootCmd := &cobra.Command{
		Use:   "meanlaw",
		Short: "Regression-to-the-mean demonstrator",
		Long: `meanlaw simulates a risk-stratification program: it selects the
highest-need individuals in one period, remeasures them in the next, and
shows how much of the apparent improvement is regression to the mean
rather than the intervention. A randomized control/treatment split then
separates the real effect from the artifact.`,
	}

	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON")

	rootCmd.AddCommand(
		newRunCmd(),
		newDescribeCmd(),
		newVersionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(map[string]string{"version": version})
			}
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "meanlaw version %s\n", version)
			return err
		},
	}
}

// loadScenario builds the scenario from defaults, an optional YAML
// file, and flag overrides, in that order.
func loadScenario(cmd *cobra.Command) (meanlaw.Scenario, error) {
	scenario := meanlaw.DefaultScenario()

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		var err error
		scenario, err = meanlaw.LoadScenario(path)
		if err != nil {
			return scenario, err
		}
		slog.Info("Loaded scenario file", "path", path)
	}

	if cmd.Flags().Changed("n") {
		scenario.PopulationSize, _ = cmd.Flags().GetInt("n")
	}
	if cmd.Flags().Changed("top") {
		scenario.TopProportion, _ = cmd.Flags().GetFloat64("top")
	}
	if cmd.Flags().Changed("effect-mean") {
		scenario.Effect.Mean, _ = cmd.Flags().GetFloat64("effect-mean")
	}
	if cmd.Flags().Changed("effect-sd") {
		scenario.Effect.StdDev, _ = cmd.Flags().GetFloat64("effect-sd")
	}
	if cmd.Flags().Changed("alpha") {
		scenario.Alpha, _ = cmd.Flags().GetFloat64("alpha")
	}
	if cmd.Flags().Changed("seed") {
		base, _ := cmd.Flags().GetInt64("seed")
		scenario.Seeds = meanlaw.Seeds{
			Propensity: base,
			Luck:       []int64{base + 1, base + 2},
			Assignment: base + 3,
			Effect:     base + 4,
		}
	}

	return scenario, scenario.Validate()
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().String("config", "", "Scenario YAML file")
	cmd.Flags().Int("n", 1000, "Population size")
	cmd.Flags().Float64("top", 0.10, "Top fraction selected by period-1 need")
	cmd.Flags().Float64("effect-mean", 0.4, "Mean treatment effect")
	cmd.Flags().Float64("effect-sd", 0.2, "Treatment effect standard deviation")
	cmd.Flags().Float64("alpha", 0.05, "Significance threshold for the verdict")
	cmd.Flags().Int64("seed", 0, "Base seed; derives one seed per random stream")
}

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full demonstration and print the report",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(cmd)
			if err != nil {
				return err
			}

			slog.Info("Running scenario",
				"n", scenario.PopulationSize,
				"periods", scenario.Periods,
				"top", scenario.TopProportion,
				"effect", fmt.Sprintf("%.2f±%.2f", scenario.Effect.Mean, scenario.Effect.StdDev))

			result, err := scenario.Run()
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			printStyledReport(os.Stdout, result)
			return nil
		},
	}
	addScenarioFlags(cmd)
	return cmd
}

func newDescribeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "describe",
		Short: "Print the distribution of one field over the population",
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := loadScenario(cmd)
			if err != nil {
				return err
			}
			field, _ := cmd.Flags().GetString("field")

			pop, err := meanlaw.GeneratePopulation(
				scenario.PopulationSize, scenario.Seeds.Propensity, scenario.Propensity)
			if err != nil {
				return err
			}
			for period := 1; period <= scenario.Periods; period++ {
				if err := pop.SimulatePeriod(period, scenario.Seeds.Luck[period-1], scenario.Luck); err != nil {
					return err
				}
			}

			summary, err := meanlaw.DescribeField(pop.Individuals, meanlaw.Field(field))
			if err != nil {
				return err
			}

			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}

			printSummary(os.Stdout, field, summary)
			return nil
		},
	}
	addScenarioFlags(cmd)
	cmd.Flags().String("field", "need_1", "Field to describe: propensity, luck_k or need_k")
	return cmd
}
