package training

import (
	"encoding/csv"
	stderrors "errors"
	"fmt"
	"io"
	"math"
	"math/rand"
	"os"
	"strconv"
	"strings"

	"review-lab/domain"
	"review-lab/errors"
)

const (
	reviewColumn = "review text"
	ratingColumn = "ratings"
	textColumn   = "text"
	labelColumn  = "label"
)

// SentimentFromRating maps a 1-5 star rating to a sentiment.
// Neutral ratings (strictly between 2 and 4) are not usable for training.
func SentimentFromRating(rating float64) (domain.Sentiment, bool) {
	switch {
	case rating <= 2:
		return domain.Negative, true
	case rating >= 4:
		return domain.Positive, true
	default:
		return "", false
	}
}

// LoadCSV reads labeled reviews from a CSV file with a header row.
// The "Review text" and "Ratings" columns are used when present,
// otherwise "text" and "label" (positive/negative or 1/0).
// Rows with an empty text, an unreadable label or a neutral rating are skipped.
func LoadCSV(path string) ([]domain.Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return ReadCSV(file)
}

func ReadCSV(r io.Reader) ([]domain.Document, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if stderrors.Is(err, io.EOF) {
		return nil, errors.ErrEmptyDataset
	}
	if err != nil {
		return nil, fmt.Errorf("read dataset header: %w", err)
	}
	textIdx, labelIdx, fromRatings, err := lookupColumns(header)
	if err != nil {
		return nil, err
	}

	var docs []domain.Document
	line := 1
	for {
		record, err := reader.Read()
		if stderrors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read dataset line %d: %w", line, err)
		}
		if len(record) <= textIdx || len(record) <= labelIdx {
			continue
		}
		text := strings.TrimSpace(record[textIdx])
		label := strings.TrimSpace(record[labelIdx])
		if text == "" || label == "" {
			continue
		}

		doc := domain.Document{Text: text}
		if fromRatings {
			rating, err := strconv.ParseFloat(label, 64)
			if err != nil || math.IsNaN(rating) {
				continue
			}
			sentiment, ok := SentimentFromRating(rating)
			if !ok {
				continue
			}
			doc.Rating = rating
			doc.Sentiment = sentiment
		} else {
			sentiment, ok := sentimentFromLabel(label)
			if !ok {
				continue
			}
			doc.Sentiment = sentiment
		}
		docs = append(docs, doc)
	}

	if len(docs) == 0 {
		return nil, errors.ErrEmptyDataset
	}
	return docs, nil
}

func lookupColumns(header []string) (text, label int, fromRatings bool, err error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, ok := index[name]; !ok {
			index[name] = i
		}
	}
	if t, ok := index[reviewColumn]; ok {
		if r, ok := index[ratingColumn]; ok {
			return t, r, true, nil
		}
	}
	if t, ok := index[textColumn]; ok {
		if l, ok := index[labelColumn]; ok {
			return t, l, false, nil
		}
	}
	return 0, 0, false, fmt.Errorf("%w: header %v has neither %q/%q nor %q/%q columns",
		errors.ErrInvalidInput, header, "Review text", "Ratings", textColumn, labelColumn)
}

func sentimentFromLabel(label string) (domain.Sentiment, bool) {
	switch strings.ToLower(label) {
	case "positive", "pos", "1":
		return domain.Positive, true
	case "negative", "neg", "0":
		return domain.Negative, true
	default:
		return "", false
	}
}

// StratifiedSplit shuffles each sentiment class separately and keeps
// trainRatio of every class for training, so both splits carry the same
// class balance. The result only depends on the input order and seed.
func StratifiedSplit(docs []domain.Document, trainRatio float64, seed int64) (train, test []domain.Document) {
	if trainRatio <= 0 || trainRatio >= 1 {
		trainRatio = 0.8
	}
	rng := rand.New(rand.NewSource(seed))

	for _, sentiment := range []domain.Sentiment{domain.Negative, domain.Positive} {
		var class []domain.Document
		for _, d := range docs {
			if d.Sentiment == sentiment {
				class = append(class, d)
			}
		}
		if len(class) == 0 {
			continue
		}
		rng.Shuffle(len(class), func(i, j int) {
			class[i], class[j] = class[j], class[i]
		})

		size := int(math.Round(trainRatio * float64(len(class))))
		if size < 1 {
			size = 1
		}
		if size >= len(class) && len(class) > 1 {
			size = len(class) - 1
		}
		train = append(train, class[:size]...)
		test = append(test, class[size:]...)
	}

	rng.Shuffle(len(train), func(i, j int) {
		train[i], train[j] = train[j], train[i]
	})
	return train, test
}
