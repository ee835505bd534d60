package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"ecostat/adapters/excel"
	"ecostat/app"
	"ecostat/internal"
	"ecostat/internal/config"
	"ecostat/internal/report"
	"ecostat/internal/resample"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "ecostat",
		Short: "Environmental statistics course walkthroughs",
	}

	rootCmd.AddCommand(
		newFishCmd(),
		newWaterCmd(),
		newBootstrapCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, *internal.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	return cfg, internal.NewDefaultLogger(), nil
}

func newFishCmd() *cobra.Command {
	var seed int64
	var exportDir string

	cmd := &cobra.Command{
		Use:   "fish",
		Short: "Run the fish-length survey walkthrough",
		Long: `Generate synthetic fish lengths for three habitats and run the full
walkthrough: summaries, parametric and bootstrap confidence intervals,
Welch and pooled t-tests, and a one-way ANOVA.

Example: ecostat fish --seed 42 --export ./exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			service := app.NewFishSurveyService(cfg.Analysis, logger)
			result, err := service.Run(context.Background(), seed)
			if err != nil {
				return err
			}

			fmt.Println(report.FishSurveyMarkdown(result))

			if exportDir != "" {
				writer, err := excel.NewReportWriter(exportDir)
				if err != nil {
					return err
				}
				xlsxPath, err := writer.WriteFishSurvey(result)
				if err != nil {
					return err
				}
				csvPath, err := writer.WriteTableCSV(result.Dataset)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "exported %s and %s\n", xlsxPath, csvPath)
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", -1, "RNG seed (negative uses the configured default)")
	cmd.Flags().StringVar(&exportDir, "export", "", "directory for XLSX/CSV export")
	return cmd
}

func newWaterCmd() *cobra.Command {
	var seed int64
	var exportDir string

	cmd := &cobra.Command{
		Use:   "water",
		Short: "Run the water-quality exploration walkthrough",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			service := app.NewWaterQualityService(cfg.Analysis, logger)
			result, err := service.Run(context.Background(), seed)
			if err != nil {
				return err
			}

			fmt.Println(report.WaterQualityMarkdown(result))

			if exportDir != "" {
				writer, err := excel.NewReportWriter(exportDir)
				if err != nil {
					return err
				}
				xlsxPath, err := writer.WriteWaterQuality(result)
				if err != nil {
					return err
				}
				fmt.Fprintf(os.Stderr, "exported %s\n", xlsxPath)
				for i := range result.Sites {
					csvPath, err := writer.WriteTableCSV(&result.Sites[i])
					if err != nil {
						return err
					}
					fmt.Fprintf(os.Stderr, "exported %s\n", csvPath)
				}
			}
			return nil
		},
	}

	cmd.Flags().Int64Var(&seed, "seed", -1, "RNG seed (negative uses the configured default)")
	cmd.Flags().StringVar(&exportDir, "export", "", "directory for XLSX/CSV export")
	return cmd
}

func newBootstrapCmd() *cobra.Command {
	var trials int
	var confidence float64
	var seed int64
	var statName string

	cmd := &cobra.Command{
		Use:   "bootstrap [values...]",
		Short: "Bootstrap a statistic over the given sample",
		Long: `Resample the given observations with replacement and print the
replicate-distribution summary.

Example: ecostat bootstrap 1 2 3 4 5 --trials 1000 --seed 42`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sample := make([]float64, len(args))
			for i, arg := range args {
				v, err := strconv.ParseFloat(arg, 64)
				if err != nil {
					return fmt.Errorf("invalid observation %q: %w", arg, err)
				}
				sample[i] = v
			}

			statistic := resample.Mean
			switch statName {
			case "mean":
			case "median":
				statistic = resample.Median
			default:
				return fmt.Errorf("unknown statistic %q (want mean or median)", statName)
			}

			estimator := resample.NewEstimator().
				SetTrials(trials).
				SetConfidence(confidence)

			result, err := estimator.Estimate(context.Background(), sample, statistic, seed)
			if err != nil {
				return err
			}

			// Replicates are too bulky for terminal output
			result.Replicates = nil
			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().IntVar(&trials, "trials", 1000, "number of resampling trials")
	cmd.Flags().Float64Var(&confidence, "confidence", 0.95, "confidence level in (0, 1)")
	cmd.Flags().Int64Var(&seed, "seed", -1, "RNG seed (negative is non-deterministic)")
	cmd.Flags().StringVar(&statName, "statistic", "mean", "statistic to bootstrap (mean or median)")
	return cmd
}
