package training

import (
	"os"
	"path/filepath"
	"testing"

	"review-lab/errors"
	"review-lab/vectorizer"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	path := filepath.Join(t.TempDir(), "train.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_OverridesDefaults(t *testing.T) {
	req := require.New(t)
	path := writeConfig(t, "max_features: 100\nngram_range: [1, 3]\nstem: true\nversion: v2\n")

	cfg, err := LoadConfig(path)
	req.NoError(err)

	req.Equal(100, cfg.MaxFeatures)
	req.Equal(vectorizer.NgramRange{Min: 1, Max: 3}, cfg.Ngram())
	req.True(cfg.Normalizer().Stem)
	req.Equal("v2", cfg.Version)
	req.Equal(0.8, cfg.TrainRatio)
	req.Equal(int64(42), cfg.Seed)
	req.Equal(1.0, cfg.C)
}

func TestLoadConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "ratio out of range", content: "train_ratio: 1.5\n"},
		{name: "reversed ngram range", content: "ngram_range: [2, 1]\n"},
		{name: "ngram range of three", content: "ngram_range: [1, 2, 3]\n"},
		{name: "negative C", content: "c: -1\n"},
		{name: "not yaml", content: "max_features: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, tt.content))
			require.ErrorIs(t, err, errors.ErrInvalidInput)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
