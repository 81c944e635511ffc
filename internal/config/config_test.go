package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clocksync.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadFile_Overrides(t *testing.T) {
	path := writeConfig(t, `{
		"baud_rate": 115200,
		"port_path": "/dev/ttyACM0",
		"use_utc": true,
		"dd_tags": ["radio:ic7300"]
	}`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, 115200, cfg.BaudRate)
	assert.Equal(t, "/dev/ttyACM0", cfg.PortPath)
	assert.True(t, cfg.UseUTC)
	assert.Equal(t, []string{"radio:ic7300"}, cfg.DDTags)
	assert.Equal(t, path, cfg.ConfigFile)

	// untouched keys keep their defaults
	assert.Equal(t, "*-*-* 01:59:00", cfg.OnCalendar)
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, err := LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)

	assert.Equal(t, 19200, cfg.BaudRate)
	assert.Equal(t, "/dev/ttyUSB1", cfg.PortPath)
	assert.False(t, cfg.UseUTC)
}

func TestLoadFile_RejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `{"baudrate": 9600}`)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_BadJSON(t *testing.T) {
	path := writeConfig(t, `{"baud_rate": `)
	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Defaults()
	cfg.validate() // should not panic
}

func TestValidate_Panics(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.PortPath = "" }},
		{"zero baud", func(c *Config) { c.BaudRate = 0 }},
		{"datadog without agent", func(c *Config) { c.EnableDatadog = true; c.DDAgentAddr = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			assert.Panics(t, func() { cfg.validate() })
		})
	}
}

func TestValidate_DryRunNeedsNoPort(t *testing.T) {
	cfg := Defaults()
	cfg.PortPath = ""
	cfg.DryRun = true
	assert.NotPanics(t, func() { cfg.validate() })
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLogLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLogLevel("warn"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLogLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLogLevel("verbose"))
}
