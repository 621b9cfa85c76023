package internal

import (
	"fmt"
	"time"

	"github.com/Netflix/go-env"
)

type Config struct {
	ParamsPath      string        `env:"PARAMS_PATH,default=models/model_params.json"`
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8000"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	MaxReviewLength int           `env:"MAX_REVIEW_LENGTH,default=5000"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=10s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT,default=5s"`

	ArchiveEnabled bool   `env:"ARCHIVE_ENABLED,default=false"`
	BadgerFilepath string `env:"BADGER_FILEPATH"`
	BlugeFilepath  string `env:"BLUGE_FILEPATH"`
	LimitReviews   *int   `env:"LIMIT_REVIEWS"`
}

// LoadConfig reads the process environment into a Config.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, err
	}
	if err := config.Check(); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Check validates settings that depend on each other.
func (c Config) Check() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT must be in [1, 65535], got %d", c.Port)
	}
	if c.ArchiveEnabled && (c.BadgerFilepath == "" || c.BlugeFilepath == "") {
		return fmt.Errorf("BADGER_FILEPATH and BLUGE_FILEPATH are required when ARCHIVE_ENABLED is set")
	}
	if c.LimitReviews != nil && *c.LimitReviews <= 0 {
		return fmt.Errorf("LIMIT_REVIEWS must be positive, got %d", *c.LimitReviews)
	}
	return nil
}

func (c Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
