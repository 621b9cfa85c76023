package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	req := require.New(t)

	config, err := LoadConfig()
	req.NoError(err)

	req.Equal("models/model_params.json", config.ParamsPath)
	req.Equal(8000, config.Port)
	req.Equal("0.0.0.0:8000", config.Address())
	req.Equal(10*time.Second, config.ReadTimeout)
	req.False(config.ArchiveEnabled)
	req.Nil(config.LimitReviews)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	req := require.New(t)
	t.Setenv("PARAMS_PATH", "/srv/params.json")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "9090")
	t.Setenv("ARCHIVE_ENABLED", "true")
	t.Setenv("BADGER_FILEPATH", "/tmp/badger")
	t.Setenv("BLUGE_FILEPATH", "/tmp/bluge")
	t.Setenv("LIMIT_REVIEWS", "50")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	config, err := LoadConfig()
	req.NoError(err)

	req.Equal("/srv/params.json", config.ParamsPath)
	req.Equal("127.0.0.1:9090", config.Address())
	req.True(config.ArchiveEnabled)
	req.NotNil(config.LimitReviews)
	req.Equal(50, *config.LimitReviews)
	req.Equal(2*time.Second, config.ShutdownTimeout)
}

func TestConfig_Check(t *testing.T) {
	zero := 0
	tests := []struct {
		name   string
		config Config
	}{
		{name: "port out of range", config: Config{Port: 70000}},
		{name: "archive without paths", config: Config{Port: 8000, ArchiveEnabled: true, BadgerFilepath: "/tmp/b"}},
		{name: "zero review limit", config: Config{Port: 8000, LimitReviews: &zero}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.config.Check())
		})
	}
}
