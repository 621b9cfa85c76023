package errors

import "fmt"

var (
	ErrMissingParameters  = fmt.Errorf("model parameters not loaded")
	ErrDimensionMismatch  = fmt.Errorf("parameter dimensions do not match")
	ErrInvalidBundle      = fmt.Errorf("invalid parameter bundle")
	ErrNormalizerMismatch = fmt.Errorf("bundle was fitted with a different text normalizer")
	ErrInvalidInput       = fmt.Errorf("invalid input")
	ErrEmptyDataset       = fmt.Errorf("dataset is empty")
	ErrSingleClass        = fmt.Errorf("dataset must contain both sentiment classes")
	ErrArchiveDisabled    = fmt.Errorf("review archive is disabled")
	ErrReviewNotFound     = fmt.Errorf("review not found")
)
