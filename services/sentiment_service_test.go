package services

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"

	"review-lab/domain"
	"review-lab/errors"
	"review-lab/mocks"
	"review-lab/model"
	"review-lab/painpoints"
	"review-lab/scorer"
	"review-lab/vectorizer"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type staticSource struct {
	bundle *model.Bundle
	err    error
}

func (s staticSource) Load() (*model.Bundle, error) {
	return s.bundle, s.err
}

func testBundle(intercept float64) *model.Bundle {
	return &model.Bundle{
		Vocabulary: map[string]int{
			"worst": 0, "product": 1, "fake": 2, "damage": 3, "great": 4, "love": 5,
		},
		IDF:          []float64{1, 1, 1, 1, 1, 1},
		Coefficients: []float64{-2, 0, -3, -2, 3, 2},
		Intercept:    intercept,
		Ngram:        vectorizer.Unigrams,
		Version:      "test",
	}
}

func newService(t *testing.T, source BundleSource) *SentimentService {
	annotator, err := painpoints.NewDefaultAnnotator()
	require.NoError(t, err)
	return NewSentimentService(logs.GetLoggerFromLevel(slog.LevelDebug), source, annotator, nil)
}

func TestSentimentService_NegativeScenario(t *testing.T) {
	req := require.New(t)
	service := newService(t, staticSource{bundle: testBundle(0.5)})

	// Given a review that cleans to "worst product fake damage"
	prediction, err := service.Predict(context.Background(), "Worst product! Fake, with damage.")
	req.NoError(err)

	// Then the logit is 0.5*(-2+0-3-2) + 0.5 = -3
	req.Equal(domain.Negative, prediction.Sentiment)
	req.InDelta(1-scorer.Sigmoid(-3), prediction.Confidence, 1e-12)
	req.Equal([]string{"worst product", "fake", "damage"}, prediction.PainPoints)
}

func TestSentimentService_EmptyInputUsesIntercept(t *testing.T) {
	req := require.New(t)
	service := newService(t, staticSource{bundle: testBundle(0.5)})

	for _, input := range []any{"", "zzz unknown words", 42, nil} {
		prediction, err := service.Predict(context.Background(), input)
		req.NoError(err)
		req.Equal(domain.Positive, prediction.Sentiment, "input=%v", input)
		req.InDelta(scorer.Sigmoid(0.5), prediction.Confidence, 1e-12, "input=%v", input)
		req.Equal([]string{}, prediction.PainPoints, "input=%v", input)
	}
}

func TestSentimentService_TieBreakIsNegative(t *testing.T) {
	req := require.New(t)
	service := newService(t, staticSource{bundle: testBundle(0)})

	prediction, err := service.Predict(context.Background(), "")
	req.NoError(err)
	req.Equal(domain.Negative, prediction.Sentiment)
	req.Equal(0.5, prediction.Confidence)
}

func TestSentimentService_Properties(t *testing.T) {
	req := require.New(t)
	service := newService(t, staticSource{bundle: testBundle(0.5)})
	inputs := []string{
		"I love it, great great product",
		"fake fake fake, not original and a waste of money",
		"<b>GREAT</b> http://example.com",
		"damage",
		"worst",
		"great but fake",
		"meh",
	}

	for _, input := range inputs {
		first, err := service.Predict(context.Background(), input)
		req.NoError(err)

		// Determinism
		for i := 0; i < 3; i++ {
			again, err := service.Predict(context.Background(), input)
			req.NoError(err)
			req.Equal(first, again, "input=%q", input)
		}

		// Confidence range
		req.Greater(first.Confidence, 0.5, "input=%q", input)
		req.LessOrEqual(first.Confidence, 1.0, "input=%q", input)

		// Pain-point gating
		if first.Sentiment == domain.Positive {
			req.Empty(first.PainPoints, "input=%q", input)
		}
	}
}

func TestSentimentService_MissingParameters(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	loader := model.NewLoader(filepath.Join(t.TempDir(), "model_params.json"), log)
	service := newService(t, loader)

	req.ErrorIs(service.Ready(), errors.ErrMissingParameters)
	for _, input := range []string{"great", "fake", ""} {
		prediction, err := service.Predict(context.Background(), input)
		req.ErrorIs(err, errors.ErrMissingParameters)
		req.Equal(domain.Prediction{}, prediction)
	}
}

func TestSentimentService_DimensionMismatch(t *testing.T) {
	req := require.New(t)
	broken := testBundle(0)
	broken.Coefficients = broken.Coefficients[:3]
	service := newService(t, staticSource{bundle: broken})

	_, err := service.Predict(context.Background(), "great")
	req.ErrorIs(err, errors.ErrDimensionMismatch)
}

func TestSentimentService_Archive(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIReviewRepository(ctrl)
	annotator, err := painpoints.NewDefaultAnnotator()
	req.NoError(err)
	service := NewSentimentService(logs.GetLoggerFromLevel(slog.LevelDebug),
		staticSource{bundle: testBundle(0.5)}, annotator, repository)

	// Then the archived record carries the prediction and the cleaned text
	repository.EXPECT().
		Store(gomock.Any()).
		DoAndReturn(func(review domain.Review) error {
			req.Equal("This is a fake product", review.Text)
			req.Equal("fake product", review.Cleaned)
			req.Equal(domain.Negative, review.Sentiment)
			req.Equal([]string{"fake"}, review.PainPoints)
			req.Equal("test", review.ModelVersion)
			req.False(review.At.IsZero())
			return nil
		})

	prediction, err := service.Predict(context.Background(), "This is a fake product")
	req.NoError(err)
	req.Equal(domain.Negative, prediction.Sentiment)
}

func TestSentimentService_ArchiveFailureIsNotFatal(t *testing.T) {
	req := require.New(t)
	ctrl := gomock.NewController(t)
	repository := mocks.NewMockIReviewRepository(ctrl)
	annotator, err := painpoints.NewDefaultAnnotator()
	req.NoError(err)
	service := NewSentimentService(logs.GetLoggerFromLevel(slog.LevelDebug),
		staticSource{bundle: testBundle(0.5)}, annotator, repository)

	repository.EXPECT().Store(gomock.Any()).Return(errors.ErrArchiveDisabled)

	prediction, err := service.Predict(context.Background(), "love it")
	req.NoError(err)
	req.Equal(domain.Positive, prediction.Sentiment)
}
