package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/agrisight/agristat-cli/internal/model"
	"github.com/agrisight/agristat-cli/internal/pipeline"
)

var (
	analyzeInput         string
	analyzeOutput        string
	analyzeSummaryOutput string
	analyzeSummaryFormat string
	analyzeConcurrency   int
	analyzeSave          bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run the full pipeline on a county table",
	Long: `Reads a raw county table (CSV or XLSX), cleans it, classifies each
county's primary agricultural sector, derives indicators, and writes the
output table plus a run summary.

Examples:
  # Clean and classify, summary to stdout
  agristat analyze --input census.csv --output counties.csv

  # YAML summary to file, persist the run
  agristat analyze --input census.xlsx --summary summary.yaml --summary-format yaml --save`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		table, err := pipeline.ReadTable(analyzeInput)
		if err != nil {
			return eris.Wrap(err, "analyze: read input")
		}
		zap.L().Info("analyze: table loaded",
			zap.String("path", analyzeInput),
			zap.Int("rows", len(table.Rows)),
		)

		opts := pipeline.Options{
			HouseholdSizeFactor: cfg.Clean.HouseholdSizeFactor,
			Exclusions:          cfg.Filter.Exclusions,
			Concurrency:         analyzeConcurrency,
		}
		if opts.Concurrency == 0 {
			opts.Concurrency = cfg.Pipeline.Concurrency
		}

		res, err := pipeline.Run(ctx, *table, opts)
		if err != nil {
			return eris.Wrap(err, "analyze: run pipeline")
		}

		if err := pipeline.ExportCSV(res.Rows, analyzeOutput); err != nil {
			return eris.Wrap(err, "analyze: write output")
		}
		zap.L().Info("analyze: output written",
			zap.String("path", analyzeOutput),
			zap.Int("counties", len(res.Rows)),
		)

		if err := writeSummary(res.Summary); err != nil {
			return err
		}

		if analyzeSave {
			st, err := initStore(ctx)
			if err != nil {
				return eris.Wrap(err, "analyze: init store")
			}
			defer st.Close() //nolint:errcheck

			runID, err := st.SaveRun(ctx, res.Rows, res.Summary)
			if err != nil {
				return eris.Wrap(err, "analyze: save run")
			}
			zap.L().Info("analyze: run saved", zap.String("run_id", runID))
		}

		return nil
	},
}

func init() {
	analyzeCmd.Flags().StringVar(&analyzeInput, "input", "", "path to raw county table, CSV or XLSX (required)")
	analyzeCmd.Flags().StringVar(&analyzeOutput, "output", "counties.csv", "path for the cleaned output table")
	analyzeCmd.Flags().StringVar(&analyzeSummaryOutput, "summary", "", "write run summary to file (default: stdout)")
	analyzeCmd.Flags().StringVar(&analyzeSummaryFormat, "summary-format", "json", "summary format: json or yaml")
	analyzeCmd.Flags().IntVar(&analyzeConcurrency, "concurrency", 0, "per-county fan-out limit (0 = config default)")
	analyzeCmd.Flags().BoolVar(&analyzeSave, "save", false, "persist the run to the configured store")
	_ = analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

// writeSummary serializes the run summary to the requested format and
// destination.
func writeSummary(summary model.RunSummary) error {
	var (
		data []byte
		err  error
	)
	switch analyzeSummaryFormat {
	case "json":
		data, err = json.MarshalIndent(summary, "", "  ")
		data = append(data, '\n')
	case "yaml":
		data, err = yaml.Marshal(summary)
	default:
		return eris.Errorf("analyze: unknown summary format %q", analyzeSummaryFormat)
	}
	if err != nil {
		return eris.Wrap(err, "analyze: marshal summary")
	}

	if analyzeSummaryOutput == "" {
		_, err = os.Stdout.Write(data)
		return eris.Wrap(err, "analyze: write summary")
	}
	if err := os.WriteFile(analyzeSummaryOutput, data, 0o644); err != nil {
		return eris.Wrap(err, "analyze: write summary file")
	}
	zap.L().Info("analyze: summary written", zap.String("path", analyzeSummaryOutput))
	return nil
}
