package training

import (
	"fmt"
	"math"

	"review-lab/errors"
	"review-lab/scorer"

	"github.com/viterin/vek"
)

// LogisticRegression is a binary L2-regularised logistic model fitted by
// full-batch gradient descent. It minimises
// mean(log loss) + ||w||^2 / (2*C*n), the per-sample form of the usual
// C-weighted objective. The intercept is not regularised.
type LogisticRegression struct {
	C            float64
	Epochs       int
	LearningRate float64

	Coefficients []float64
	Intercept    float64
}

func NewLogisticRegression(c float64, epochs int, learningRate float64) *LogisticRegression {
	return &LogisticRegression{C: c, Epochs: epochs, LearningRate: learningRate}
}

// Fit learns weights for rows of width dim. Labels are 0 (Negative) or 1 (Positive).
func (m *LogisticRegression) Fit(rows []Row, labels []int, dim int) error {
	if len(rows) == 0 {
		return errors.ErrEmptyDataset
	}
	if len(rows) != len(labels) {
		return fmt.Errorf("%w: %d rows for %d labels", errors.ErrDimensionMismatch, len(rows), len(labels))
	}
	if m.C <= 0 || m.Epochs <= 0 || m.LearningRate <= 0 || dim <= 0 {
		return fmt.Errorf("%w: C=%v epochs=%d learning_rate=%v dim=%d",
			errors.ErrInvalidInput, m.C, m.Epochs, m.LearningRate, dim)
	}
	var positives int
	for _, y := range labels {
		if y != 0 && y != 1 {
			return fmt.Errorf("%w: label %d", errors.ErrInvalidInput, y)
		}
		positives += y
	}
	if positives == 0 || positives == len(labels) {
		return errors.ErrSingleClass
	}

	n := float64(len(rows))
	w := vek.Zeros(dim)
	var b float64
	for epoch := 0; epoch < m.Epochs; epoch++ {
		grad := vek.Zeros(dim)
		var gradB float64
		for i, row := range rows {
			diff := scorer.Sigmoid(logit(w, b, row)) - float64(labels[i])
			for k, idx := range row.Indices {
				grad[idx] += diff * row.Values[k]
			}
			gradB += diff
		}
		vek.MulNumber_Inplace(grad, 1/n)
		vek.Add_Inplace(grad, vek.MulNumber(w, 1/(m.C*n)))
		vek.Sub_Inplace(w, vek.MulNumber(grad, m.LearningRate))
		b -= m.LearningRate * gradB / n
	}

	m.Coefficients = w
	m.Intercept = b
	return nil
}

// Probability is P(Positive | row).
func (m *LogisticRegression) Probability(row Row) float64 {
	return scorer.Sigmoid(logit(m.Coefficients, m.Intercept, row))
}

func (m *LogisticRegression) Predict(row Row) int {
	sentiment, _ := scorer.Decide(m.Probability(row))
	return sentiment.Label()
}

// Loss is the regularised objective Fit minimises, evaluated at the current weights.
func (m *LogisticRegression) Loss(rows []Row, labels []int) float64 {
	if len(rows) == 0 {
		return 0
	}
	var sum float64
	for i, row := range rows {
		p := m.Probability(row)
		p = math.Min(math.Max(p, 1e-15), 1-1e-15)
		if labels[i] == 1 {
			sum -= math.Log(p)
		} else {
			sum -= math.Log(1 - p)
		}
	}
	n := float64(len(rows))
	var penalty float64
	if len(m.Coefficients) > 0 {
		penalty = vek.Dot(m.Coefficients, m.Coefficients) / (2 * m.C * n)
	}
	return sum/n + penalty
}

func logit(w []float64, b float64, row Row) float64 {
	z := b
	for k, idx := range row.Indices {
		if idx < len(w) {
			z += w[idx] * row.Values[k]
		}
	}
	return z
}
