package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"review-lab/domain"
	"review-lab/model"
	"review-lab/painpoints"
	"review-lab/services"

	"github.com/gookit/color"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
)

func PredictCmd() *cobra.Command {
	var (
		params   string
		text     string
		asJSON   bool
		logLevel string
	)
	cmd := &cobra.Command{
		Use:   "predict [review]",
		Short: "Score a single review",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if text == "" && len(args) == 1 {
				text = args[0]
			}
			if strings.TrimSpace(text) == "" {
				return configError(fmt.Errorf("a review is required, pass it as argument or with --text"))
			}

			log := logs.GetLoggerFromString(logLevel)
			annotator, err := painpoints.NewDefaultAnnotator()
			if err != nil {
				return err
			}
			service := services.NewSentimentService(log, model.NewLoader(params, log), annotator, nil)
			prediction, err := service.Predict(cmd.Context(), text)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(prediction)
			}
			printPrediction(cmd.OutOrStdout(), prediction)
			return nil
		},
	}
	cmd.Flags().StringVar(&params, "params", envOr("PARAMS_PATH", "models/model_params.json"), "Path to the parameter bundle")
	cmd.Flags().StringVarP(&text, "text", "t", "", "Review text")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON response")
	cmd.Flags().StringVar(&logLevel, "log-level", "WARN", "Log level")
	return cmd
}

func printPrediction(w io.Writer, prediction domain.Prediction) {
	style := color.New(color.FgGreen, color.OpBold)
	if prediction.Sentiment == domain.Negative {
		style = color.New(color.FgRed, color.OpBold)
	}
	fmt.Fprintf(w, "%s %s\n", style.Render(string(prediction.Sentiment)),
		color.Gray.Sprintf("(confidence %.4f)", prediction.Confidence))
	for _, p := range prediction.PainPoints {
		fmt.Fprintf(w, "  %s %s\n", color.Yellow.Render("!"), p)
	}
}
