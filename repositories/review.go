//go:generate go run go.uber.org/mock/mockgen -source=review.go -destination=../mocks/mock_review_repository.go -package=mocks
package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"review-lab/domain"
	"review-lab/errors"

	"github.com/blugelabs/bluge"
	"github.com/dgraph-io/badger/v4"
	"github.com/google/uuid"
	"github.com/samber/lo"
)

const (
	reviewPrefix = "review:"
	indexPrefix  = "idx:review:"

	fieldReview     = "review"
	fieldSentiment  = "sentiment"
	fieldPainPoint  = "pain_point"
	fieldConfidence = "confidence"
	fieldLanguage   = "language"
)

type IReviewRepository interface {
	Store(review domain.Review) error
	GetByID(id uuid.UUID) (domain.Review, error)
	GetReviews(cursor *string) ([]domain.Review, *string, error)
	SearchPaginated(ctx context.Context, search Search) ([]domain.Review, uint64, error)
	PainPointCounts(ctx context.Context, phrases []string) ([]domain.PainPointCount, error)
}

// Search narrows a full-text query over archived reviews.
// Empty fields do not filter.
type Search struct {
	Query         string
	Sentiment     domain.Sentiment
	PainPoint     string
	MinConfidence *float64
	From          int
}

type ReviewRepository struct {
	db           *badger.DB
	index        *bluge.Writer
	log          *slog.Logger
	limitReviews *int
	pageSize     int
}

func NewReviewRepository(db *badger.DB, index *bluge.Writer, log *slog.Logger, limitReviews *int, pageSize int) *ReviewRepository {
	if pageSize <= 0 {
		pageSize = 20
	}
	return &ReviewRepository{db: db, index: index, log: log, limitReviews: limitReviews, pageSize: pageSize}
}

type diskReview struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Cleaned      string   `json:"cleaned"`
	Sentiment    string   `json:"sentiment"`
	Confidence   float64  `json:"confidence"`
	PainPoints   []string `json:"pain_points"`
	Language     string   `json:"language"`
	ModelVersion string   `json:"model_version"`
	At           int64    `json:"at"`
}

// Store persists a review in BadgerDB and indexes it in Bluge.
// The key is "review:{timestamp_padded}:{uuid}" so a prefix scan is chronological;
// "idx:review:{uuid}" points back to it for lookups by id.
func (r *ReviewRepository) Store(review domain.Review) error {
	key := fmt.Sprintf("%s%019d:%s", reviewPrefix, review.At.UnixNano(), review.ID)
	bytes, err := json.Marshal(fromReview(review))
	if err != nil {
		return err
	}
	err = r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(key), bytes); err != nil {
			return err
		}
		return txn.Set([]byte(indexPrefix+review.ID.String()), []byte(key))
	})
	if err != nil {
		return err
	}

	doc := bluge.NewDocument(review.ID.String()).
		AddField(bluge.NewTextField(fieldReview, review.Text)).
		AddField(bluge.NewKeywordField(fieldSentiment, string(review.Sentiment))).
		AddField(bluge.NewKeywordField(fieldLanguage, review.Language)).
		AddField(bluge.NewNumericField(fieldConfidence, review.Confidence))
	for _, p := range review.PainPoints {
		doc.AddField(bluge.NewKeywordField(fieldPainPoint, p))
	}
	if err := r.index.Update(doc.ID(), doc); err != nil {
		return fmt.Errorf("index review %s: %w", review.ID, err)
	}
	return nil
}

func (r *ReviewRepository) GetByID(id uuid.UUID) (domain.Review, error) {
	var review domain.Review
	err := r.db.View(func(txn *badger.Txn) error {
		ref, err := txn.Get([]byte(indexPrefix + id.String()))
		if err == badger.ErrKeyNotFound {
			return fmt.Errorf("%w: %s", errors.ErrReviewNotFound, id)
		}
		if err != nil {
			return err
		}
		key, err := ref.ValueCopy(nil)
		if err != nil {
			return err
		}
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			review, err = decodeReview(value)
			return err
		})
	})
	return review, err
}

// GetReviews returns archived reviews newest first, at most limitReviews per call or
// the page size when no limit is set. The returned cursor is passed back to continue
// after the last review of the page.
func (r *ReviewRepository) GetReviews(cursor *string) ([]domain.Review, *string, error) {
	limit := r.pageSize
	if r.limitReviews != nil {
		limit = *r.limitReviews
	}

	var raw [][]byte
	var lastKey string
	err := r.db.View(func(txn *badger.Txn) error {
		prefix := []byte(reviewPrefix)
		options := badger.DefaultIteratorOptions
		options.Reverse = true
		it := txn.NewIterator(options)
		defer it.Close()

		var seekKey []byte
		switch cursor {
		case nil:
			// Past the newest possible key, then walk backwards.
			seekKey = append([]byte(reviewPrefix), []byte("9999999999999999999")...)
		default:
			seekKey = append([]byte(reviewPrefix), []byte(*cursor)...)
		}

		it.Seek(seekKey)
		if cursor != nil && it.ValidForPrefix(prefix) && string(it.Item().Key()) == string(seekKey) {
			it.Next()
		}

		for ; it.ValidForPrefix(prefix); it.Next() {
			if len(raw) == limit {
				r.log.Debug(fmt.Sprintf("Maximum of %d reviews reached", limit))
				break
			}
			item := it.Item()
			lastKey = string(item.Key()[len(prefix):])
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			raw = append(raw, value)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	reviews := make([]domain.Review, 0, len(raw))
	for _, b := range raw {
		review, err := decodeReview(b)
		if err != nil {
			return nil, nil, err
		}
		reviews = append(reviews, review)
	}
	return reviews, &lastKey, nil
}

// SearchPaginated runs a full-text query and returns one page of reviews
// plus the total number of hits.
func (r *ReviewRepository) SearchPaginated(ctx context.Context, search Search) ([]domain.Review, uint64, error) {
	query := bluge.NewBooleanQuery()
	if search.Query == "" {
		query.AddMust(bluge.NewMatchAllQuery())
	} else {
		query.AddMust(bluge.NewMatchQuery(search.Query).SetField(fieldReview))
	}
	if search.Sentiment != "" {
		query.AddMust(bluge.NewTermQuery(string(search.Sentiment)).SetField(fieldSentiment))
	}
	if search.PainPoint != "" {
		query.AddMust(bluge.NewTermQuery(search.PainPoint).SetField(fieldPainPoint))
	}
	if search.MinConfidence != nil {
		query.AddMust(bluge.NewNumericRangeInclusiveQuery(*search.MinConfidence, 1, true, true).
			SetField(fieldConfidence))
	}

	ids, total, err := r.search(ctx, query, r.pageSize, max(search.From, 0))
	if err != nil {
		return nil, 0, err
	}

	reviews := make([]domain.Review, 0, len(ids))
	for _, id := range ids {
		review, err := r.GetByID(id)
		if err != nil {
			r.log.Warn("Indexed review missing from store", "id", id, "err", err)
			continue
		}
		reviews = append(reviews, review)
	}
	return reviews, total, nil
}

// PainPointCounts counts archived reviews per phrase, keeping the order of phrases.
func (r *ReviewRepository) PainPointCounts(ctx context.Context, phrases []string) ([]domain.PainPointCount, error) {
	counts := make([]domain.PainPointCount, 0, len(phrases))
	for _, phrase := range lo.Uniq(phrases) {
		_, total, err := r.search(ctx, bluge.NewTermQuery(phrase).SetField(fieldPainPoint), 1, 0)
		if err != nil {
			return nil, err
		}
		counts = append(counts, domain.PainPointCount{Phrase: phrase, Count: total})
	}
	return counts, nil
}

func (r *ReviewRepository) search(ctx context.Context, query bluge.Query, size, from int) ([]uuid.UUID, uint64, error) {
	reader, err := r.index.Reader()
	if err != nil {
		return nil, 0, fmt.Errorf("open index reader: %w", err)
	}
	defer func() { _ = reader.Close() }()

	request := bluge.NewTopNSearch(size, query).
		SetFrom(from).
		WithStandardAggregations()
	it, err := reader.Search(ctx, request)
	if err != nil {
		return nil, 0, fmt.Errorf("search reviews: %w", err)
	}

	var ids []uuid.UUID
	match, err := it.Next()
	for err == nil && match != nil {
		visitErr := match.VisitStoredFields(func(field string, value []byte) bool {
			if field == "_id" {
				if id, parseErr := uuid.ParseBytes(value); parseErr == nil {
					ids = append(ids, id)
				}
			}
			return true
		})
		if visitErr != nil {
			return nil, 0, visitErr
		}
		match, err = it.Next()
	}
	if err != nil {
		return nil, 0, err
	}
	return ids, it.Aggregations().Count(), nil
}

func fromReview(review domain.Review) diskReview {
	return diskReview{
		ID:           review.ID.String(),
		Text:         review.Text,
		Cleaned:      review.Cleaned,
		Sentiment:    string(review.Sentiment),
		Confidence:   review.Confidence,
		PainPoints:   review.PainPoints,
		Language:     review.Language,
		ModelVersion: review.ModelVersion,
		At:           review.At.UnixNano(),
	}
}

func decodeReview(value []byte) (domain.Review, error) {
	var d diskReview
	if err := json.Unmarshal(value, &d); err != nil {
		return domain.Review{}, err
	}
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return domain.Review{}, err
	}
	return domain.Review{
		ID:           id,
		Text:         d.Text,
		Cleaned:      d.Cleaned,
		Sentiment:    domain.Sentiment(d.Sentiment),
		Confidence:   d.Confidence,
		PainPoints:   lo.Ternary(d.PainPoints == nil, []string{}, d.PainPoints),
		Language:     d.Language,
		ModelVersion: d.ModelVersion,
		At:           time.Unix(0, d.At).UTC(),
	}, nil
}
