package training

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"review-lab/domain"
	"review-lab/errors"
	"review-lab/model"
	"review-lab/painpoints"
	"review-lab/scorer"
	"review-lab/services"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

var (
	negativeWords = []string{"worst", "fake", "damage", "broken", "refund"}
	positiveWords = []string{"great", "love", "excellent", "perfect", "happy"}
)

// syntheticReviews builds two copies of every word pair of each class.
func syntheticReviews() []domain.Document {
	var docs []domain.Document
	build := func(words []string, sentiment domain.Sentiment, rating float64) {
		for copyNb := 0; copyNb < 2; copyNb++ {
			for i := range words {
				for j := i + 1; j < len(words); j++ {
					text := strings.ToUpper(words[i][:1]) + words[i][1:] + " and " + words[j] + " product!"
					docs = append(docs, domain.Document{Text: text, Rating: rating, Sentiment: sentiment})
				}
			}
		}
	}
	build(negativeWords, domain.Negative, 1)
	build(positiveWords, domain.Positive, 5)
	return docs
}

func TestTrain(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	bundle, report, err := Train(log, DefaultConfig(), syntheticReviews())
	req.NoError(err)

	req.Equal(32, report.TrainSize)
	req.Equal(8, report.TestSize)
	req.Equal(1.0, report.Accuracy)
	req.Equal(1.0, report.WeightedF1)
	req.Equal(len(bundle.IDF), report.VocabularySize)

	req.NoError(bundle.Validate())
	req.Equal([]string{"0", "1"}, bundle.Classes)
	req.Equal(2, bundle.Ngram.Max)
	req.NotNil(bundle.Normalizer)
	req.Contains(bundle.Vocabulary, "worst")
	req.Contains(bundle.Vocabulary, "great love")
	req.NotContains(bundle.Vocabulary, "and")
	req.Less(bundle.Coefficients[bundle.Vocabulary["fake"]], 0.0)
	req.Greater(bundle.Coefficients[bundle.Vocabulary["love"]], 0.0)
}

func TestTrain_BundleRoundTripsThroughInference(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	docs := syntheticReviews()

	// Given a trained and exported bundle
	bundle, _, err := Train(log, DefaultConfig(), docs)
	req.NoError(err)
	path := filepath.Join(t.TempDir(), "model_params.json")
	req.NoError(model.Save(path, bundle))

	// When the inference service loads it from disk
	annotator, err := painpoints.NewDefaultAnnotator()
	req.NoError(err)
	service := services.NewSentimentService(log, model.NewLoader(path, log), annotator, nil)

	// Then every review gets the prediction the training-time model gives
	for _, doc := range docs {
		prediction, err := service.Predict(context.Background(), doc.Text)
		req.NoError(err)

		cleaned := bundle.Options().Normalize(doc.Text)
		p, err := scorer.Score(bundle.Vectorize(cleaned), bundle.Coefficients, bundle.Intercept)
		req.NoError(err)
		sentiment, confidence := scorer.Decide(p)

		req.Equal(doc.Sentiment, prediction.Sentiment, doc.Text)
		req.Equal(sentiment, prediction.Sentiment)
		req.InDelta(confidence, prediction.Confidence, 1e-12)
	}
}

func TestTrain_Stemmed(t *testing.T) {
	req := require.New(t)
	cfg := DefaultConfig()
	cfg.Stem = true

	bundle, _, err := Train(logs.GetLoggerFromLevel(slog.LevelDebug), cfg, syntheticReviews())
	req.NoError(err)

	req.True(bundle.Normalizer.Stem)
	req.Contains(bundle.Vocabulary, "damag")
	req.NoError(bundle.Validate())
}

func TestTrain_Errors(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	_, _, err := Train(log, DefaultConfig(), nil)
	req.ErrorIs(err, errors.ErrEmptyDataset)

	_, _, err = Train(log, DefaultConfig(), []domain.Document{
		{Text: "awful", Sentiment: domain.Negative},
		{Text: "terrible", Sentiment: domain.Negative},
	})
	req.ErrorIs(err, errors.ErrSingleClass)

	cfg := DefaultConfig()
	cfg.Epochs = 0
	_, _, err = Train(log, cfg, syntheticReviews())
	req.ErrorIs(err, errors.ErrInvalidInput)
}
