package training

import (
	"fmt"
	"os"

	"review-lab/errors"
	"review-lab/preprocessing"
	"review-lab/vectorizer"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

var validate = validator.New()

// Config drives a training run. Zero values in a YAML file keep the defaults.
type Config struct {
	NgramRange   []int   `yaml:"ngram_range" validate:"len=2,dive,gte=1"`
	MaxFeatures  int     `yaml:"max_features" validate:"gte=0"`
	TrainRatio   float64 `yaml:"train_ratio" validate:"gt=0,lt=1"`
	Seed         int64   `yaml:"seed"`
	C            float64 `yaml:"c" validate:"gt=0"`
	Epochs       int     `yaml:"epochs" validate:"gt=0"`
	LearningRate float64 `yaml:"learning_rate" validate:"gt=0"`
	Stem         bool    `yaml:"stem"`
	Version      string  `yaml:"version"`
}

func DefaultConfig() Config {
	return Config{
		NgramRange:   []int{1, 2},
		MaxFeatures:  5000,
		TrainRatio:   0.8,
		Seed:         42,
		C:            1.0,
		Epochs:       500,
		LearningRate: 1.0,
		Version:      "logreg-tfidf",
	}
}

// LoadConfig reads a YAML file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", errors.ErrInvalidInput, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", errors.ErrInvalidInput, err)
	}
	if c.NgramRange[1] < c.NgramRange[0] {
		return fmt.Errorf("%w: ngram_range %v", errors.ErrInvalidInput, c.NgramRange)
	}
	return nil
}

func (c Config) Ngram() vectorizer.NgramRange {
	return vectorizer.NgramRange{Min: c.NgramRange[0], Max: c.NgramRange[1]}
}

func (c Config) Normalizer() preprocessing.Options {
	return preprocessing.Options{Stem: c.Stem}
}
