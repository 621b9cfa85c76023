package vectorizer

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var (
	vocabulary = map[string]int{"great": 0, "phone": 1, "bad": 2, "quality": 3, "bad quality": 4}
	idf        = []float64{1.5, 1.2, 2.0, 1.8, 2.5}
)

func TestTokenize(t *testing.T) {
	req := require.New(t)

	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"Single character tokens are dropped", "a great b phone c", []string{"great", "phone"}},
		{"Defensive lowercase", "GREAT Phone", []string{"great", "phone"}},
		{"Digits and underscore are word characters", "x1 2 snake_case", []string{"x1", "snake_case"}},
		{"Punctuation splits runs", "bad,quality!ok", []string{"bad", "quality", "ok"}},
		{"Empty", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req.Equal(tt.expected, Tokenize(tt.input))
		})
	}
}

func TestTerms(t *testing.T) {
	req := require.New(t)
	tokens := []string{"bad", "quality", "phone"}

	req.Equal(tokens, Terms(tokens, Unigrams))
	req.Equal([]string{"bad", "quality", "phone", "bad quality", "quality phone"},
		Terms(tokens, NgramRange{Min: 1, Max: 2}))
	req.Equal([]string{"bad quality", "quality phone", "bad quality phone"},
		Terms(tokens, NgramRange{Min: 2, Max: 3}))
	req.Equal(tokens, Terms(tokens, NgramRange{}))
}

func TestVectorize_Weights(t *testing.T) {
	req := require.New(t)

	// Given "great" twice and "phone" once
	vector := Vectorize("great great phone", vocabulary, idf)

	// Then the raw vector is [3.0, 1.2, 0, 0, 0] scaled to unit length
	norm := math.Sqrt(3.0*3.0 + 1.2*1.2)
	req.Len(vector, len(idf))
	req.InDelta(3.0/norm, vector[0], 1e-12)
	req.InDelta(1.2/norm, vector[1], 1e-12)
	req.Zero(vector[2])
	req.Zero(vector[3])
	req.Zero(vector[4])
	req.InDelta(1.0, Norm(vector), 1e-12)
}

func TestVectorize_OutOfVocabulary(t *testing.T) {
	req := require.New(t)

	for _, text := range []string{"", "a b c", "unknown words only", "x y"} {
		vector := Vectorize(text, vocabulary, idf)
		req.Len(vector, len(idf), "text=%q", text)
		req.Zero(Norm(vector), "text=%q", text)
	}
}

func TestVectorize_SingleCharacterHasNoEffect(t *testing.T) {
	req := require.New(t)
	vocab := map[string]int{"great": 0, "a": 1}

	with := Vectorize("great a", vocab, []float64{1, 1})
	without := Vectorize("great", vocab, []float64{1, 1})
	req.Equal(without, with)
}

func TestVectorize_NormInvariant(t *testing.T) {
	req := require.New(t)
	inputs := []string{"", "great", "bad quality phone", "phone phone phone", "zzz", "great bad quality phone great"}

	for _, text := range inputs {
		norm := Norm(Vectorize(text, vocabulary, idf))
		if norm == 0 {
			continue
		}
		req.InDelta(1.0, norm, 1e-9, "text=%q", text)
	}
}

func TestVectorizeNgrams(t *testing.T) {
	req := require.New(t)

	unigram := Vectorize("bad quality", vocabulary, idf)
	bigram := VectorizeNgrams("bad quality", vocabulary, idf, NgramRange{Min: 1, Max: 2})

	req.Zero(unigram[4])
	req.Greater(bigram[4], 0.0)
	norm := math.Sqrt(2.0*2.0 + 1.8*1.8 + 2.5*2.5)
	req.InDelta(2.5/norm, bigram[4], 1e-12)
}

func TestVectorize_IgnoresOutOfRangeIndex(t *testing.T) {
	req := require.New(t)
	vocab := map[string]int{"great": 7}

	vector := Vectorize("great", vocab, []float64{1, 1})
	req.Equal([]float64{0, 0}, vector)
}
