package training

import (
	"fmt"
	"log/slog"
	"time"

	"review-lab/domain"
	"review-lab/errors"
	"review-lab/model"

	"github.com/samber/lo"
)

// Train cleans docs, splits them, fits the TF-IDF vocabulary and the logistic
// model on the training split and evaluates on the held-out split.
// The returned bundle is validated and ready for model.Save.
func Train(log *slog.Logger, cfg Config, docs []domain.Document) (*model.Bundle, Report, error) {
	if err := cfg.Validate(); err != nil {
		return nil, Report{}, err
	}
	if len(docs) == 0 {
		return nil, Report{}, errors.ErrEmptyDataset
	}
	if len(lo.UniqBy(docs, func(d domain.Document) domain.Sentiment { return d.Sentiment })) < 2 {
		return nil, Report{}, errors.ErrSingleClass
	}

	start := time.Now()
	opts := cfg.Normalizer()
	train, test := StratifiedSplit(docs, cfg.TrainRatio, cfg.Seed)
	log.Info("Dataset split", "train", len(train), "test", len(test), "stem", opts.Stem)

	clean := func(d domain.Document, _ int) string { return opts.Normalize(d.Text) }
	label := func(d domain.Document, _ int) int { return d.Sentiment.Label() }

	tfidf := NewTfidfVectorizer(cfg.Ngram(), cfg.MaxFeatures)
	if err := tfidf.Fit(lo.Map(train, clean)); err != nil {
		return nil, Report{}, fmt.Errorf("fit vectorizer: %w", err)
	}
	rows := tfidf.TransformAll(lo.Map(train, clean))
	classifier := NewLogisticRegression(cfg.C, cfg.Epochs, cfg.LearningRate)
	if err := classifier.Fit(rows, lo.Map(train, label), len(tfidf.IDF)); err != nil {
		return nil, Report{}, fmt.Errorf("fit classifier: %w", err)
	}
	log.Debug("Classifier fitted",
		"vocabulary", len(tfidf.IDF),
		"loss", classifier.Loss(rows, lo.Map(train, label)),
		"duration", time.Since(start))

	// Tiny datasets may leave no held-out documents; evaluate on the training split then.
	evaluated := test
	if len(evaluated) == 0 {
		evaluated = train
	}
	predicted := lo.Map(tfidf.TransformAll(lo.Map(evaluated, clean)), func(r Row, _ int) int {
		return classifier.Predict(r)
	})
	report, err := Evaluate(lo.Map(evaluated, label), predicted)
	if err != nil {
		return nil, Report{}, err
	}
	report.TrainSize = len(train)
	report.TestSize = len(test)
	report.VocabularySize = len(tfidf.IDF)

	bundle := &model.Bundle{
		Vocabulary:   tfidf.Vocabulary,
		IDF:          tfidf.IDF,
		Coefficients: classifier.Coefficients,
		Intercept:    classifier.Intercept,
		Classes:      []string{"0", "1"},
		Ngram:        tfidf.Ngram,
		Normalizer:   &model.NormalizerInfo{Fingerprint: opts.Fingerprint(), Stem: opts.Stem},
		Version:      cfg.Version,
	}
	if err := bundle.Validate(); err != nil {
		return nil, Report{}, err
	}
	log.Info("Training done",
		"accuracy", report.Accuracy,
		"weighted_f1", report.WeightedF1,
		"vocabulary", report.VocabularySize,
		"duration", time.Since(start))
	return bundle, report, nil
}
