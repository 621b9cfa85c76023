// Package model holds the flattened, framework-free parameters of a fitted
// TF-IDF vectorizer and logistic-regression classifier.
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"review-lab/errors"
	"review-lab/preprocessing"
	"review-lab/vectorizer"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// NormalizerInfo records which cleaning contract the vocabulary was fitted with.
type NormalizerInfo struct {
	Fingerprint string `json:"fingerprint"`
	Stem        bool   `json:"stem"`
}

// Bundle is immutable once returned by Decode or a Loader.
type Bundle struct {
	Vocabulary   map[string]int
	IDF          []float64
	Coefficients []float64
	Intercept    float64
	Classes      []string
	Ngram        vectorizer.NgramRange
	Normalizer   *NormalizerInfo
	Version      string
}

// wireBundle is the on-disk schema. Coefficients and intercept accept both the
// flat and the single-row wrapped encodings.
type wireBundle struct {
	Vocabulary   map[string]int  `json:"vocabulary" validate:"required,min=1,dive,gte=0"`
	IDF          []float64       `json:"idf" validate:"required,min=1"`
	Coefficients json.RawMessage `json:"coefficients" validate:"required"`
	Intercept    json.RawMessage `json:"intercept" validate:"required"`
	Classes      []any           `json:"classes,omitempty"`
	NgramRange   []int           `json:"ngram_range,omitempty" validate:"omitempty,len=2,dive,gte=1"`
	Normalizer   *NormalizerInfo `json:"normalizer,omitempty"`
	Version      string          `json:"version,omitempty"`
}

// Size is the vocabulary size V.
func (b *Bundle) Size() int {
	return len(b.IDF)
}

// Options returns the normalizer options the bundle was fitted with.
func (b *Bundle) Options() preprocessing.Options {
	if b.Normalizer == nil {
		return preprocessing.Options{}
	}
	return preprocessing.Options{Stem: b.Normalizer.Stem}
}

// Vectorize cleans nothing: it expects text already passed through Options().Normalize.
func (b *Bundle) Vectorize(cleaned string) []float64 {
	return vectorizer.VectorizeNgrams(cleaned, b.Vocabulary, b.IDF, b.Ngram)
}

// Decode parses and validates a bundle document.
func Decode(data []byte) (*Bundle, error) {
	var w wireBundle
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidBundle, err)
	}
	if err := validate.Struct(w); err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrInvalidBundle, err)
	}

	coefficients, err := decodeCoefficients(w.Coefficients)
	if err != nil {
		return nil, err
	}
	intercept, err := decodeIntercept(w.Intercept)
	if err != nil {
		return nil, err
	}

	b := &Bundle{
		Vocabulary:   w.Vocabulary,
		IDF:          w.IDF,
		Coefficients: coefficients,
		Intercept:    intercept,
		Classes:      make([]string, 0, len(w.Classes)),
		Ngram:        vectorizer.Unigrams,
		Normalizer:   w.Normalizer,
		Version:      w.Version,
	}
	for _, c := range w.Classes {
		b.Classes = append(b.Classes, fmt.Sprint(c))
	}
	if len(w.NgramRange) == 2 {
		b.Ngram = vectorizer.NgramRange{Min: w.NgramRange[0], Max: w.NgramRange[1]}
	}

	if err := b.Validate(); err != nil {
		return nil, err
	}
	return b, nil
}

// Validate checks the dimension and normalizer invariants.
func (b *Bundle) Validate() error {
	v := len(b.IDF)
	if v == 0 {
		return fmt.Errorf("%w: empty idf", errors.ErrInvalidBundle)
	}
	if len(b.Vocabulary) != v {
		return fmt.Errorf("%w: %d vocabulary terms for %d idf weights",
			errors.ErrDimensionMismatch, len(b.Vocabulary), v)
	}
	if len(b.Coefficients) != v {
		return fmt.Errorf("%w: %d coefficients for %d idf weights",
			errors.ErrDimensionMismatch, len(b.Coefficients), v)
	}

	owner := make([]string, v)
	for term, idx := range b.Vocabulary {
		if idx < 0 || idx >= v {
			return fmt.Errorf("%w: term %q has index %d outside [0, %d)",
				errors.ErrDimensionMismatch, term, idx, v)
		}
		if owner[idx] != "" {
			return fmt.Errorf("%w: terms %q and %q share index %d",
				errors.ErrInvalidBundle, owner[idx], term, idx)
		}
		owner[idx] = term
	}

	for i := 0; i < v; i++ {
		if !finite(b.IDF[i]) || !finite(b.Coefficients[i]) {
			return fmt.Errorf("%w: non-finite weight at index %d", errors.ErrInvalidBundle, i)
		}
	}
	if !finite(b.Intercept) {
		return fmt.Errorf("%w: non-finite intercept", errors.ErrInvalidBundle)
	}
	if b.Ngram.Min < 1 || b.Ngram.Max < b.Ngram.Min {
		return fmt.Errorf("%w: ngram range [%d, %d]", errors.ErrInvalidBundle, b.Ngram.Min, b.Ngram.Max)
	}

	if b.Normalizer != nil {
		expected := b.Options().Fingerprint()
		if !strings.EqualFold(b.Normalizer.Fingerprint, expected) {
			return fmt.Errorf("%w: bundle %q, running %q",
				errors.ErrNormalizerMismatch, b.Normalizer.Fingerprint, expected)
		}
	}
	return nil
}

func decodeCoefficients(raw json.RawMessage) ([]float64, error) {
	var flat []float64
	if err := json.Unmarshal(raw, &flat); err == nil {
		return flat, nil
	}
	var wrapped [][]float64
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return nil, fmt.Errorf("%w: coefficients: %v", errors.ErrInvalidBundle, err)
	}
	if len(wrapped) != 1 {
		return nil, fmt.Errorf("%w: expected a single linear output, got %d rows",
			errors.ErrDimensionMismatch, len(wrapped))
	}
	return wrapped[0], nil
}

func decodeIntercept(raw json.RawMessage) (float64, error) {
	var scalar float64
	if err := json.Unmarshal(raw, &scalar); err == nil {
		return scalar, nil
	}
	var wrapped []float64
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return 0, fmt.Errorf("%w: intercept: %v", errors.ErrInvalidBundle, err)
	}
	if len(wrapped) != 1 {
		return 0, fmt.Errorf("%w: expected a single intercept, got %d",
			errors.ErrDimensionMismatch, len(wrapped))
	}
	return wrapped[0], nil
}

// Encode renders b in the wrapped layout the export step has always produced.
func Encode(b *Bundle) ([]byte, error) {
	coefficients, err := json.Marshal([][]float64{b.Coefficients})
	if err != nil {
		return nil, err
	}
	intercept, err := json.Marshal([]float64{b.Intercept})
	if err != nil {
		return nil, err
	}
	classes := make([]any, 0, len(b.Classes))
	for _, c := range b.Classes {
		classes = append(classes, c)
	}
	w := wireBundle{
		Vocabulary:   b.Vocabulary,
		IDF:          b.IDF,
		Coefficients: coefficients,
		Intercept:    intercept,
		Classes:      classes,
		Normalizer:   b.Normalizer,
		Version:      b.Version,
	}
	if b.Ngram != vectorizer.Unigrams {
		w.NgramRange = []int{b.Ngram.Min, b.Ngram.Max}
	}
	return json.Marshal(w)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
