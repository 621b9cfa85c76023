// Package scorer applies the exported linear decision function to a document vector.
package scorer

import (
	"fmt"
	"math"

	"review-lab/domain"
	"review-lab/errors"

	"github.com/viterin/vek"
)

// Logit is dot(coefficients, vector) + intercept.
func Logit(vector, coefficients []float64, intercept float64) (float64, error) {
	if len(vector) != len(coefficients) {
		return 0, fmt.Errorf("%w: %d coefficients for a vector of %d",
			errors.ErrDimensionMismatch, len(coefficients), len(vector))
	}
	if len(vector) == 0 {
		return intercept, nil
	}
	return vek.Dot(coefficients, vector) + intercept, nil
}

// Sigmoid is the standard logistic function.
func Sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

// Score returns the probability of the Positive class.
func Score(vector, coefficients []float64, intercept float64) (float64, error) {
	logit, err := Logit(vector, coefficients, intercept)
	if err != nil {
		return 0, err
	}
	return Sigmoid(logit), nil
}

// Decide turns the Positive probability into a label and its confidence.
// The comparison is strict, so 0.5 is Negative with confidence 0.5.
func Decide(probabilityPositive float64) (domain.Sentiment, float64) {
	if probabilityPositive > domain.Threshold {
		return domain.Positive, probabilityPositive
	}
	return domain.Negative, 1 - probabilityPositive
}
