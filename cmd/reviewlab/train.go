package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"review-lab/model"
	"review-lab/training"

	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func TrainCmd() *cobra.Command {
	var (
		data       string
		out        string
		configPath string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Fit a model from labeled reviews and export its parameter bundle",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logs.GetLoggerFromString(logLevel)

			cfg := training.DefaultConfig()
			if configPath != "" {
				var err error
				if cfg, err = training.LoadConfig(configPath); err != nil {
					return configError(err)
				}
			}
			docs, err := training.LoadCSV(data)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			log.Info("Dataset loaded", "path", data, "reviews", len(docs))

			bundle, report, err := training.Train(log, cfg, docs)
			if err != nil {
				return err
			}
			printReport(cmd.OutOrStdout(), report)

			if err := model.Save(out, bundle); err != nil {
				return fmt.Errorf("export bundle: %w", err)
			}
			log.Info("Parameter bundle exported", "path", out, "vocabulary", bundle.Size())
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "data/raw/reviews.csv", "CSV with \"Review text\" and \"Ratings\" columns")
	cmd.Flags().StringVar(&out, "out", envOr("PARAMS_PATH", "models/model_params.json"), "Where to write the parameter bundle")
	cmd.Flags().StringVar(&configPath, "config", "", "Optional YAML training config")
	cmd.Flags().StringVar(&logLevel, "log-level", "INFO", "Log level")
	return cmd
}

func printReport(w io.Writer, report training.Report) {
	fmt.Fprintf(w, "train=%d test=%d vocabulary=%d\n\n", report.TrainSize, report.TestSize, report.VocabularySize)

	table := newTable(w)
	table.SetHeader([]string{"Class", "Precision", "Recall", "F1", "Support"})
	for _, c := range report.Classes {
		table.Append([]string{
			string(c.Sentiment),
			formatFloat(c.Precision),
			formatFloat(c.Recall),
			formatFloat(c.F1),
			strconv.Itoa(c.Support),
		})
	}
	table.Append([]string{"weighted", "", "", formatFloat(report.WeightedF1), strconv.Itoa(report.TestSize)})
	table.Render()

	fmt.Fprintf(w, "\naccuracy %s\n", formatFloat(report.Accuracy))
	fmt.Fprintf(w, "confusion [actual x predicted]\n  %v\n  %v\n", report.Confusion[0], report.Confusion[1])
}

func newTable(w io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
