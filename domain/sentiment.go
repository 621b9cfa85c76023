// Package domain contains core concepts of the review system.
// This file defines sentiment labels and the per-request prediction result.
package domain

type Sentiment string

const (
	Negative Sentiment = "Negative"
	Positive Sentiment = "Positive"
)

// Threshold is the probability above which a review is Positive.
// A probability exactly equal to it resolves to Negative.
const Threshold = 0.5

// Prediction is created fresh for every request and never shared.
type Prediction struct {
	Sentiment  Sentiment `json:"sentiment"`
	Confidence float64   `json:"confidence"`
	PainPoints []string  `json:"pain_points"`
}

// Label maps a sentiment to the integer class used by the fitted model:
// 0 for Negative, 1 for Positive.
func (s Sentiment) Label() int {
	if s == Positive {
		return 1
	}
	return 0
}

func FromLabel(label int) Sentiment {
	if label == 1 {
		return Positive
	}
	return Negative
}
