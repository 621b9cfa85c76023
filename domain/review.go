package domain

import (
	"time"

	"github.com/google/uuid"
)

// Document is a labeled review used for training and evaluation.
type Document struct {
	Text      string
	Rating    float64
	Sentiment Sentiment
}

// Review is a scored review kept in the archive.
type Review struct {
	ID           uuid.UUID
	Text         string
	Cleaned      string
	Sentiment    Sentiment
	Confidence   float64
	PainPoints   []string
	Language     string
	ModelVersion string
	At           time.Time
}

// PainPointCount is the number of archived reviews that mention a catalog phrase.
type PainPointCount struct {
	Phrase string `json:"phrase"`
	Count  uint64 `json:"count"`
}
