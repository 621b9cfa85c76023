package model

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"review-lab/errors"

	"github.com/gabriel-vasile/mimetype"
)

// Loader reads the parameter file at most once successfully per process.
// Concurrent first calls are serialized so nobody observes a partial bundle;
// once loaded, Load is a lock-free read.
type Loader struct {
	path   string
	log    *slog.Logger
	mu     sync.Mutex
	bundle atomic.Pointer[Bundle]
}

// NewLoader returns a Loader for the bundle file at path. Nothing is read until Load.
func NewLoader(path string, log *slog.Logger) *Loader {
	return &Loader{path: path, log: log}
}

// Load returns the process-wide bundle, reading it on first success.
// Failures are not cached: a later call retries the file.
func (l *Loader) Load() (*Bundle, error) {
	if b := l.bundle.Load(); b != nil {
		return b, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if b := l.bundle.Load(); b != nil {
		return b, nil
	}

	b, err := ReadFile(l.path)
	if err != nil {
		l.log.Error("Model parameters unavailable", "path", l.path, "err", err)
		return nil, err
	}
	if b.Normalizer == nil {
		l.log.Warn("Bundle carries no normalizer fingerprint, cleaning contract is unchecked", "path", l.path)
	}
	l.bundle.Store(b)
	l.log.Info("Model parameters loaded",
		"path", l.path,
		"terms", b.Size(),
		"ngram_min", b.Ngram.Min,
		"ngram_max", b.Ngram.Max,
		"version", b.Version)
	return b, nil
}

// Loaded reports whether a bundle is available without attempting a load.
func (l *Loader) Loaded() bool {
	return l.bundle.Load() != nil
}

// Path is the bundle file this Loader reads.
func (l *Loader) Path() string {
	return l.path
}

// ReadFile decodes the bundle stored at path.
func ReadFile(path string) (*Bundle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", errors.ErrMissingParameters, path)
		}
		return nil, fmt.Errorf("%w: %v", errors.ErrMissingParameters, err)
	}

	mtype := mimetype.Detect(data)
	if !isText(mtype) {
		return nil, fmt.Errorf("%w: %s is %s, expected a JSON document",
			errors.ErrInvalidBundle, path, mtype.String())
	}
	return Decode(data)
}

// isText accepts JSON and anything else the detector files under text/plain,
// since a long document can be cut at the sniffing limit.
func isText(mtype *mimetype.MIME) bool {
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("application/json") || m.Is("text/plain") {
			return true
		}
	}
	return false
}

// Save writes b to path through a temporary file so readers never see a partial bundle.
func Save(path string, b *Bundle) error {
	if err := b.Validate(); err != nil {
		return err
	}
	data, err := Encode(b)
	if err != nil {
		return fmt.Errorf("encode bundle: %w", err)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create bundle directory: %w", err)
		}
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), ".bundle-*.json")
	if err != nil {
		return fmt.Errorf("write bundle: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write bundle: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write bundle: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write bundle: %w", err)
	}
	return nil
}
