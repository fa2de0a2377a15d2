package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestConfig_YAMLRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := Config{
		Game: Game{
			MinDisks:      3,
			MaxDisks:      9,
			DefaultDisks:  4,
			MoveAnimation: 250 * time.Millisecond,
		},
		Log: Log{Level: "info"},
	}

	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	assert.Contains(t, string(data), "min_disks: 3")
	assert.NotContains(t, string(data), "metrics:\n    addr")

	var decoded Config
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, cfg, decoded)
}

func TestDefaultConfig_IsValid(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.NoError(t, ValidateConfig(&cfg))
}
