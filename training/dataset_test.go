package training

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"review-lab/domain"
	"review-lab/errors"

	"github.com/stretchr/testify/require"
)

func TestSentimentFromRating(t *testing.T) {
	tests := []struct {
		rating    float64
		sentiment domain.Sentiment
		ok        bool
	}{
		{rating: 1, sentiment: domain.Negative, ok: true},
		{rating: 2, sentiment: domain.Negative, ok: true},
		{rating: 3, ok: false},
		{rating: 4, sentiment: domain.Positive, ok: true},
		{rating: 5, sentiment: domain.Positive, ok: true},
	}
	for _, tt := range tests {
		sentiment, ok := SentimentFromRating(tt.rating)
		require.Equal(t, tt.ok, ok, "rating %v", tt.rating)
		require.Equal(t, tt.sentiment, sentiment, "rating %v", tt.rating)
	}
}

func TestLoadCSV_Ratings(t *testing.T) {
	req := require.New(t)
	path := filepath.Join(t.TempDir(), "reviews.csv")
	content := strings.Join([]string{
		`Reviewer Name,Review text,Ratings`,
		`a,"Worst product, fake!",1`,
		`b,Just okay,3`,
		`c,Love it,5`,
		`d,,1`,
		`e,Great value,4.0`,
		`f,No rating,`,
		`g,Broken,abc`,
	}, "\n")
	req.NoError(os.WriteFile(path, []byte(content), 0o644))

	docs, err := LoadCSV(path)
	req.NoError(err)
	req.Equal([]domain.Document{
		{Text: "Worst product, fake!", Rating: 1, Sentiment: domain.Negative},
		{Text: "Love it", Rating: 5, Sentiment: domain.Positive},
		{Text: "Great value", Rating: 4, Sentiment: domain.Positive},
	}, docs)
}

func TestReadCSV_TextLabelFallback(t *testing.T) {
	req := require.New(t)
	docs, err := ReadCSV(strings.NewReader("text,label\nawful,negative\nsuperb,POSITIVE\nmeh,neutral\nfine,1\n"))
	req.NoError(err)
	req.Equal([]domain.Document{
		{Text: "awful", Sentiment: domain.Negative},
		{Text: "superb", Sentiment: domain.Positive},
		{Text: "fine", Sentiment: domain.Positive},
	}, docs)
}

func TestReadCSV_Errors(t *testing.T) {
	req := require.New(t)

	_, err := ReadCSV(strings.NewReader(""))
	req.ErrorIs(err, errors.ErrEmptyDataset)

	_, err = ReadCSV(strings.NewReader("foo,bar\n1,2\n"))
	req.ErrorIs(err, errors.ErrInvalidInput)

	_, err = ReadCSV(strings.NewReader("Review text,Ratings\nmeh,3\n"))
	req.ErrorIs(err, errors.ErrEmptyDataset)

	_, err = LoadCSV(filepath.Join(t.TempDir(), "missing.csv"))
	req.Error(err)
}

func TestStratifiedSplit(t *testing.T) {
	req := require.New(t)
	var docs []domain.Document
	for i := 0; i < 30; i++ {
		docs = append(docs, domain.Document{Text: string(rune('a' + i%26)), Sentiment: domain.Negative})
	}
	for i := 0; i < 10; i++ {
		docs = append(docs, domain.Document{Text: string(rune('A' + i)), Sentiment: domain.Positive})
	}

	train, test := StratifiedSplit(docs, 0.8, 42)

	req.Len(train, 32)
	req.Len(test, 8)
	req.Equal(24, countOf(train, domain.Negative))
	req.Equal(8, countOf(train, domain.Positive))
	req.Equal(6, countOf(test, domain.Negative))
	req.Equal(2, countOf(test, domain.Positive))

	// Same seed, same split
	train2, test2 := StratifiedSplit(docs, 0.8, 42)
	req.Equal(train, train2)
	req.Equal(test, test2)
}

func TestStratifiedSplit_KeepsOneOfEachClassForTraining(t *testing.T) {
	req := require.New(t)
	docs := []domain.Document{
		{Text: "bad", Sentiment: domain.Negative},
		{Text: "good", Sentiment: domain.Positive},
		{Text: "nice", Sentiment: domain.Positive},
	}

	train, test := StratifiedSplit(docs, 0.5, 1)

	req.Equal(1, countOf(train, domain.Negative))
	req.Equal(1, countOf(train, domain.Positive))
	req.Len(test, 1)
}

func countOf(docs []domain.Document, s domain.Sentiment) int {
	n := 0
	for _, d := range docs {
		if d.Sentiment == s {
			n++
		}
	}
	return n
}
