package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"review-lab/api"
	"review-lab/internal"
	"review-lab/model"
	"review-lab/painpoints"
	"review-lab/repositories"
	"review-lab/services"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/mama165/sdk-go/logs"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const reviewPageSize = 50

func ServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve predictions over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func serve(ctx context.Context) error {
	// 1. Configuration & Logger
	config, err := internal.LoadConfig()
	if err != nil {
		return configError(err)
	}
	log := logs.GetLoggerFromString(config.LogLevel)

	// 2. Parameter bundle. A missing file is not fatal: /predict answers 500
	// until the file shows up.
	loader := model.NewLoader(config.ParamsPath, log)
	if _, err := loader.Load(); err != nil {
		log.Warn("Serving without a parameter bundle", "path", config.ParamsPath)
	}

	// 3. Optional review archive (BadgerDB + Bluge)
	var repository repositories.IReviewRepository
	if config.ArchiveEnabled {
		db, err := badger.Open(buildBadgerOpts(ctx, config, log))
		if err != nil {
			return fmt.Errorf("database opening failed: %w", err)
		}
		defer func() {
			log.Info("Closing BadgerDB...")
			_ = db.Close()
		}()

		blugeWriter, err := bluge.OpenWriter(bluge.DefaultConfig(config.BlugeFilepath))
		if err != nil {
			return fmt.Errorf("failed to open bluge writer: %w", err)
		}
		defer func() {
			log.Info("Closing Bluge...")
			_ = blugeWriter.Close()
		}()
		repository = repositories.NewReviewRepository(db, blugeWriter, log, config.LimitReviews, reviewPageSize)
	}

	// 4. Inference pipeline & HTTP surface
	annotator, err := painpoints.NewDefaultAnnotator()
	if err != nil {
		return err
	}
	service := services.NewSentimentService(log, loader, annotator, repository)
	httpServer := &http.Server{
		Addr:         config.Address(),
		Handler:      api.NewServer(log, service, repository, annotator.Phrases(), config.MaxReviewLength).Handler(),
		ReadTimeout:  config.ReadTimeout,
		WriteTimeout: config.WriteTimeout,
	}

	// 5. Context & Signals
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("Starting HTTP server",
			"address", httpServer.Addr,
			"archive", config.ArchiveEnabled,
			"at", time.Now().UTC())
		if err := httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Info("Shutting down gracefully...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("Program stopped cleanly")
	return nil
}

func buildBadgerOpts(ctx context.Context, config internal.Config, log *slog.Logger) badger.Options {
	options := badger.DefaultOptions(config.BadgerFilepath)
	if log.Enabled(ctx, slog.LevelDebug) {
		return options.WithLoggingLevel(badger.DEBUG)
	}
	return options.WithLoggingLevel(badger.WARNING)
}
