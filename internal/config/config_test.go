package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/you-not-fish/bl/internal/syntax"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bl.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDuration_UnmarshalText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{"seconds", "30s", 30 * time.Second, false},
		{"minutes", "5m", 5 * time.Minute, false},
		{"milliseconds", "100ms", 100 * time.Millisecond, false},
		{"invalid", "soon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Duration
			err := d.UnmarshalText([]byte(tt.input))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d.Duration)
		})
	}
}

func TestDuration_MarshalText(t *testing.T) {
	text, err := Duration{90 * time.Second}.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(text))
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, syntax.DefaultMaxDepth, cfg.Parser.MaxDepth)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, 256, cfg.Server.CacheSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[parser]
max_depth = 0

[server]
port = 9090
read_timeout = "2s"
allowed_origins = ["http://localhost:3000"]

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.Parser.MaxDepth, "explicit zero keeps nesting unlimited")
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 2*time.Second, cfg.Server.ReadTimeout.Duration)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout.Duration)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"syntax", "[parser\nmax_depth = 1", "failed to parse config"},
		{"bad_duration", "[server]\nread_timeout = \"later\"", "failed to parse config"},
		{"unknown_key", "[parser]\nmax_dept = 3", "unknown config keys"},
		{"negative_depth", "[parser]\nmax_depth = -1", "max_depth must not be negative"},
		{"bad_level", "[log]\nlevel = \"chatty\"", "log.level"},
		{"bad_format", "[log]\nformat = \"xml\"", "log.format must be text or json"},
		{"bad_port", "[server]\nport = 70000", "server.port out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, "[server]\nport = 7070\n")
	t.Setenv(EnvVar, path)

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Server.Port)

	t.Setenv(EnvVar, filepath.Join(t.TempDir(), "nope.toml"))
	_, err = LoadFromEnv()
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	lc := LogConfig{Level: "warn", Format: "json"}
	log, err := lc.NewLogger(&buf)
	require.NoError(t, err)

	assert.Equal(t, logrus.WarnLevel, log.GetLevel())
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)

	lc.Level = "loud"
	_, err = lc.NewLogger(&buf)
	assert.Error(t, err)
}
