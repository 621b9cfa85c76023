package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"review-lab/domain"
	"review-lab/model"
	"review-lab/painpoints"
	"review-lab/repositories"
	"review-lab/scorer"

	"github.com/abadojack/whatlanggo"
	"github.com/google/uuid"
)

type ISentimentService interface {
	Predict(ctx context.Context, review any) (domain.Prediction, error)
	Ready() error
}

// BundleSource hands out the process-wide parameter bundle.
type BundleSource interface {
	Load() (*model.Bundle, error)
}

type SentimentService struct {
	log        *slog.Logger
	bundles    BundleSource
	annotator  *painpoints.Annotator
	repository repositories.IReviewRepository
	now        func() time.Time
}

// NewSentimentService wires the inference pipeline. repository may be nil,
// in which case predictions are not archived.
func NewSentimentService(log *slog.Logger, bundles BundleSource, annotator *painpoints.Annotator,
	repository repositories.IReviewRepository) *SentimentService {
	return &SentimentService{
		log:        log,
		bundles:    bundles,
		annotator:  annotator,
		repository: repository,
		now:        time.Now,
	}
}

// Ready reports whether a bundle can be served, loading it if needed.
func (s *SentimentService) Ready() error {
	_, err := s.bundles.Load()
	return err
}

// Predict runs normalize -> vectorize -> score -> annotate on review.
// Anything that is not a string is treated as an empty review.
func (s *SentimentService) Predict(ctx context.Context, review any) (domain.Prediction, error) {
	bundle, err := s.bundles.Load()
	if err != nil {
		return domain.Prediction{}, err
	}
	raw, _ := review.(string)

	cleaned := bundle.Options().Normalize(review)
	vector := bundle.Vectorize(cleaned)
	probability, err := scorer.Score(vector, bundle.Coefficients, bundle.Intercept)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("score review: %w", err)
	}

	sentiment, confidence := scorer.Decide(probability)
	prediction := domain.Prediction{
		Sentiment:  sentiment,
		Confidence: confidence,
		PainPoints: s.annotator.Annotate(raw, sentiment),
	}

	if s.repository != nil {
		s.archive(ctx, raw, cleaned, prediction, bundle.Version)
	}
	return prediction, nil
}

// archive keeps a copy of the prediction. Failures are logged and never
// change the response.
func (s *SentimentService) archive(ctx context.Context, raw, cleaned string, prediction domain.Prediction, version string) {
	if ctx.Err() != nil {
		return
	}
	record := domain.Review{
		ID:           uuid.New(),
		Text:         raw,
		Cleaned:      cleaned,
		Sentiment:    prediction.Sentiment,
		Confidence:   prediction.Confidence,
		PainPoints:   prediction.PainPoints,
		Language:     whatlanggo.Detect(raw).Lang.Iso6391(),
		ModelVersion: version,
		At:           s.now().UTC(),
	}
	if err := s.repository.Store(record); err != nil {
		s.log.Warn("Failed to archive review", "id", record.ID, "err", err)
		return
	}
	s.log.Debug("Review archived",
		"id", record.ID,
		"sentiment", record.Sentiment,
		"lang", record.Language,
		"pain_points", len(record.PainPoints))
}
