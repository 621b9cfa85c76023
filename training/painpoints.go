package training

import (
	"sort"

	"review-lab/domain"
	"review-lab/errors"
	"review-lab/preprocessing"
	"review-lab/vectorizer"

	"github.com/samber/lo"
)

// PhraseScore is a candidate pain-point phrase and its summed TF-IDF weight.
type PhraseScore struct {
	Phrase string
	Score  float64
}

var phraseNgrams = vectorizer.NgramRange{Min: 2, Max: 3}

// ExtractPainPoints ranks the 2- and 3-word phrases of negative reviews by
// their TF-IDF weight summed over those reviews and returns the topN best.
// It is used to curate the pain-point catalog, never at inference time.
func ExtractPainPoints(docs []domain.Document, opts preprocessing.Options, topN int) ([]PhraseScore, error) {
	negatives := lo.FilterMap(docs, func(d domain.Document, _ int) (string, bool) {
		if d.Sentiment != domain.Negative {
			return "", false
		}
		return opts.Normalize(d.Text), true
	})
	if len(negatives) == 0 {
		return nil, errors.ErrEmptyDataset
	}

	tfidf := NewTfidfVectorizer(phraseNgrams, 0)
	if err := tfidf.Fit(negatives); err != nil {
		return nil, err
	}
	sums := make([]float64, len(tfidf.IDF))
	for _, row := range tfidf.TransformAll(negatives) {
		for k, idx := range row.Indices {
			sums[idx] += row.Values[k]
		}
	}

	scores := make([]PhraseScore, 0, len(tfidf.Vocabulary))
	for phrase, idx := range tfidf.Vocabulary {
		scores = append(scores, PhraseScore{Phrase: phrase, Score: sums[idx]})
	}
	sort.Slice(scores, func(i, j int) bool {
		if scores[i].Score != scores[j].Score {
			return scores[i].Score > scores[j].Score
		}
		return scores[i].Phrase < scores[j].Phrase
	})
	if topN > 0 && len(scores) > topN {
		scores = scores[:topN]
	}
	return scores, nil
}
