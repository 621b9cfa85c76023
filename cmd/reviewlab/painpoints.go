package main

import (
	"fmt"
	"strconv"

	"review-lab/painpoints"
	"review-lab/preprocessing"
	"review-lab/training"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func PainPointsCmd() *cobra.Command {
	var (
		data string
		top  int
		stem bool
	)
	cmd := &cobra.Command{
		Use:   "pain-points",
		Short: "Mine frequent complaint phrases from negative reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			docs, err := training.LoadCSV(data)
			if err != nil {
				return fmt.Errorf("load dataset: %w", err)
			}
			phrases, err := training.ExtractPainPoints(docs, preprocessing.Options{Stem: stem}, top)
			if err != nil {
				return err
			}

			catalog := painpoints.Catalog()
			table := newTable(cmd.OutOrStdout())
			table.SetHeader([]string{"Rank", "Phrase", "Score", "In catalog"})
			for i, p := range phrases {
				table.Append([]string{
					strconv.Itoa(i + 1),
					p.Phrase,
					formatFloat(p.Score),
					lo.Ternary(lo.Contains(catalog, p.Phrase), "yes", ""),
				})
			}
			table.Render()
			return nil
		},
	}
	cmd.Flags().StringVar(&data, "data", "data/raw/reviews.csv", "CSV with \"Review text\" and \"Ratings\" columns")
	cmd.Flags().IntVar(&top, "top", 20, "Number of phrases to show")
	cmd.Flags().BoolVar(&stem, "stem", false, "Stem words before extracting phrases")
	return cmd
}
