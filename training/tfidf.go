package training

import (
	"fmt"
	"math"
	"sort"

	"review-lab/errors"
	"review-lab/vectorizer"

	"github.com/samber/lo"
)

// Row is a sparse TF-IDF vector: Values[k] is the weight at Indices[k].
type Row struct {
	Indices []int
	Values  []float64
}

// TfidfVectorizer learns a vocabulary and smoothed idf weights from cleaned text.
// Transform produces the exact vectors the inference side computes from the
// exported bundle.
type TfidfVectorizer struct {
	Ngram       vectorizer.NgramRange
	MaxFeatures int

	Vocabulary map[string]int
	IDF        []float64
}

func NewTfidfVectorizer(ngram vectorizer.NgramRange, maxFeatures int) *TfidfVectorizer {
	return &TfidfVectorizer{Ngram: ngram, MaxFeatures: maxFeatures}
}

// Fit builds the vocabulary from corpus. When MaxFeatures is positive only the
// most frequent terms across the corpus are kept, ties going to the smaller term.
// Indices follow the sorted term order and idf is ln((1+n)/(1+df)) + 1.
func (v *TfidfVectorizer) Fit(corpus []string) error {
	if len(corpus) == 0 {
		return errors.ErrEmptyDataset
	}
	counts := make(map[string]int)
	docFreq := make(map[string]int)
	for _, doc := range corpus {
		terms := vectorizer.Terms(vectorizer.Tokenize(doc), v.Ngram)
		for _, t := range terms {
			counts[t]++
		}
		for _, t := range lo.Uniq(terms) {
			docFreq[t]++
		}
	}
	if len(counts) == 0 {
		return fmt.Errorf("%w: no term survives tokenization", errors.ErrEmptyDataset)
	}

	terms := lo.Keys(counts)
	if v.MaxFeatures > 0 && len(terms) > v.MaxFeatures {
		sort.Slice(terms, func(i, j int) bool {
			if counts[terms[i]] != counts[terms[j]] {
				return counts[terms[i]] > counts[terms[j]]
			}
			return terms[i] < terms[j]
		})
		terms = terms[:v.MaxFeatures]
	}
	sort.Strings(terms)

	n := float64(len(corpus))
	v.Vocabulary = make(map[string]int, len(terms))
	v.IDF = make([]float64, len(terms))
	for i, t := range terms {
		v.Vocabulary[t] = i
		v.IDF[i] = math.Log((1+n)/(1+float64(docFreq[t]))) + 1
	}
	return nil
}

// Transform returns the L2-normalised TF-IDF vector of a cleaned document.
func (v *TfidfVectorizer) Transform(cleaned string) Row {
	dense := vectorizer.VectorizeNgrams(cleaned, v.Vocabulary, v.IDF, v.Ngram)
	var row Row
	for i, w := range dense {
		if w != 0 {
			row.Indices = append(row.Indices, i)
			row.Values = append(row.Values, w)
		}
	}
	return row
}

func (v *TfidfVectorizer) TransformAll(cleaned []string) []Row {
	return lo.Map(cleaned, func(doc string, _ int) Row {
		return v.Transform(doc)
	})
}
