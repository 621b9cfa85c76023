package main

import (
	"fmt"
	"strings"

	"review-lab/repositories"

	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func InspectCmd() *cobra.Command {
	var (
		dbPath string
		limit  int
		cursor string
	)
	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "List archived reviews, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			if limit <= 0 {
				return configError(fmt.Errorf("--limit must be positive, got %d", limit))
			}
			log := logs.GetLoggerFromString("WARN")
			db, err := badger.Open(badger.DefaultOptions(dbPath).
				WithReadOnly(true).
				WithLoggingLevel(badger.WARNING))
			if err != nil {
				return fmt.Errorf("error while opening Badger: %w", err)
			}
			defer db.Close()

			// Listing only walks BadgerDB, the search index is not needed.
			repository := repositories.NewReviewRepository(db, nil, log, lo.ToPtr(limit), limit)
			reviews, next, err := repository.GetReviews(lo.EmptyableToPtr(cursor))
			if err != nil {
				return err
			}

			table := newTable(cmd.OutOrStdout())
			table.SetHeader([]string{"At", "ID", "Sentiment", "Confidence", "Lang", "Pain points", "Review"})
			for _, r := range reviews {
				table.Append([]string{
					r.At.Format("2006-01-02 15:04:05"),
					r.ID.String()[:8],
					string(r.Sentiment),
					formatFloat(r.Confidence),
					r.Language,
					strings.Join(r.PainPoints, ", "),
					truncate(r.Text, 60),
				})
			}
			table.Render()
			if len(reviews) == limit && next != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "\nnext page: --cursor %s\n", *next)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&dbPath, "db", envOr("BADGER_FILEPATH", "data/badger"), "Path to badger DB")
	cmd.Flags().IntVar(&limit, "limit", 20, "Reviews per page")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Continue after this key")
	return cmd
}

func truncate(s string, n int) string {
	r := []rune(strings.ReplaceAll(s, "\n", " "))
	if len(r) <= n {
		return string(r)
	}
	return string(r[:n-1]) + "…"
}
