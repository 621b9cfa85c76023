package training

import (
	"fmt"

	"review-lab/domain"
	"review-lab/errors"
)

type ClassReport struct {
	Sentiment domain.Sentiment
	Precision float64
	Recall    float64
	F1        float64
	Support   int
}

// Report summarises a held-out evaluation. Confusion is indexed [actual][predicted]
// by class label (0 Negative, 1 Positive).
type Report struct {
	Accuracy       float64
	WeightedF1     float64
	Classes        []ClassReport
	Confusion      [2][2]int
	TrainSize      int
	TestSize       int
	VocabularySize int
}

// Evaluate compares predicted labels to actual ones.
// Precision or recall with an empty denominator is 0.
func Evaluate(actual, predicted []int) (Report, error) {
	if len(actual) != len(predicted) {
		return Report{}, fmt.Errorf("%w: %d actual for %d predicted labels",
			errors.ErrDimensionMismatch, len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return Report{}, errors.ErrEmptyDataset
	}

	var report Report
	correct := 0
	for i := range actual {
		if actual[i] < 0 || actual[i] > 1 || predicted[i] < 0 || predicted[i] > 1 {
			return Report{}, fmt.Errorf("%w: label out of range at %d", errors.ErrInvalidInput, i)
		}
		report.Confusion[actual[i]][predicted[i]]++
		if actual[i] == predicted[i] {
			correct++
		}
	}
	report.Accuracy = float64(correct) / float64(len(actual))

	for label := 0; label < 2; label++ {
		tp := report.Confusion[label][label]
		support := report.Confusion[label][0] + report.Confusion[label][1]
		predictedAs := report.Confusion[0][label] + report.Confusion[1][label]

		c := ClassReport{Sentiment: domain.FromLabel(label), Support: support}
		c.Precision = ratio(tp, predictedAs)
		c.Recall = ratio(tp, support)
		if c.Precision+c.Recall > 0 {
			c.F1 = 2 * c.Precision * c.Recall / (c.Precision + c.Recall)
		}
		report.WeightedF1 += c.F1 * float64(support) / float64(len(actual))
		report.Classes = append(report.Classes, c)
	}
	return report, nil
}

func ratio(num, den int) float64 {
	if den == 0 {
		return 0
	}
	return float64(num) / float64(den)
}
