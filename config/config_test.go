package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZeroConfigIsValid(t *testing.T) {
	cfg := NewZeroConfig()
	require.NoError(t, cfg.Sanitize())
	assert.Equal(t, 64, cfg.MaxSpacing())
	assert.Equal(t, 32, cfg.MaxSpectrumSpacing())
}

func TestSanitizeRejects(t *testing.T) {
	cases := map[string]func(*Config){
		"small":    func(c *Config) { c.SampleSize = Width },
		"not pow2": func(c *Config) { c.SampleSize = 3000 },
		"rate":     func(c *Config) { c.SampleRate = 0 },
		"channel":  func(c *Config) { c.Channel = 9 },
		"address":  func(c *Config) { c.PanelAddress = 0x80 },
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := NewZeroConfig()
			mutate(&cfg)
			assert.Error(t, cfg.Sanitize())
		})
	}
}

func TestSanitizeClamps(t *testing.T) {
	cfg := NewZeroConfig()
	cfg.PollInterval = 0
	cfg.HoldTimeout = -1
	cfg.Window = ""
	cfg.StartupBlinks = -4

	require.NoError(t, cfg.Sanitize())
	assert.Equal(t, time.Millisecond, cfg.PollInterval)
	assert.Equal(t, time.Second, cfg.HoldTimeout)
	assert.Equal(t, "rectangle", cfg.Window)
	assert.Zero(t, cfg.StartupBlinks)
}
