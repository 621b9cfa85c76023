// Package vectorizer rebuilds the fitted TF-IDF document vector from a vocabulary table
// and exported idf weights.
package vectorizer

import (
	"regexp"
	"strings"

	"github.com/viterin/vek"
)

// token is the fitted tokenizer rule: maximal runs of two or more word characters.
// One-character runs never produce a token.
var token = regexp.MustCompile(`[\p{L}\p{N}_]{2,}`)

// NgramRange is the inclusive [Min, Max] word n-gram span of the vocabulary.
type NgramRange struct {
	Min int
	Max int
}

var Unigrams = NgramRange{Min: 1, Max: 1}

func (r NgramRange) valid() bool {
	return r.Min >= 1 && r.Max >= r.Min
}

// Tokenize lowercases text and extracts its tokens in order of appearance.
func Tokenize(text string) []string {
	return token.FindAllString(strings.ToLower(text), -1)
}

// Terms expands tokens into the space-joined n-grams of r, unigrams first.
func Terms(tokens []string, r NgramRange) []string {
	if !r.valid() {
		r = Unigrams
	}
	if r == Unigrams {
		return tokens
	}

	var terms []string
	if r.Min == 1 {
		terms = append(terms, tokens...)
	}
	for n := max(2, r.Min); n <= r.Max; n++ {
		for i := 0; i+n <= len(tokens); i++ {
			terms = append(terms, strings.Join(tokens[i:i+n], " "))
		}
	}
	return terms
}

// Vectorize maps cleaned text to a unit-length (or zero) vector of len(idf) entries
// using unigram terms.
func Vectorize(cleaned string, vocabulary map[string]int, idf []float64) []float64 {
	return VectorizeTerms(Terms(Tokenize(cleaned), Unigrams), vocabulary, idf)
}

// VectorizeNgrams is Vectorize over every n-gram in r.
func VectorizeNgrams(cleaned string, vocabulary map[string]int, idf []float64, r NgramRange) []float64 {
	return VectorizeTerms(Terms(Tokenize(cleaned), r), vocabulary, idf)
}

// VectorizeTerms weights raw term counts by idf and L2-normalizes the result.
// Terms missing from vocabulary are ignored.
func VectorizeTerms(terms []string, vocabulary map[string]int, idf []float64) []float64 {
	vector := make([]float64, len(idf))

	counts := make(map[int]int)
	for _, t := range terms {
		idx, ok := vocabulary[t]
		if !ok || idx < 0 || idx >= len(idf) {
			continue
		}
		counts[idx]++
	}
	if len(counts) == 0 {
		return vector
	}

	for idx, c := range counts {
		vector[idx] = float64(c) * idf[idx]
	}

	norm := vek.Norm(vector)
	if norm > 0 {
		vek.DivNumber_Inplace(vector, norm)
	}
	return vector
}

// Norm is the Euclidean length of v.
func Norm(v []float64) float64 {
	if len(v) == 0 {
		return 0
	}
	return vek.Norm(v)
}
