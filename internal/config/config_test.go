package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "", cfg.Database.URL)
	assert.Equal(t, 5000, cfg.Simulation.MaxSteps)
	assert.Equal(t, 10*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadFileOverrides(t *testing.T) {
	path := writeConfig(t, `
server:
  address: ":9090"
  allow_all_origins: true
logging:
  level: debug
  format: json
database:
  url: postgres://localhost:5432/ptcg
simulation:
  max_steps: 1000
  seed: 42
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.True(t, cfg.Server.AllowAllOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "postgres://localhost:5432/ptcg", cfg.Database.URL)
	assert.Equal(t, 1000, cfg.Simulation.MaxSteps)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name     string
		contents string
	}{
		{"bad log level", "logging:\n  level: verbose\n"},
		{"zero max steps", "simulation:\n  max_steps: 0\n"},
		{"empty address", "server:\n  address: \"\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.contents))
			assert.Error(t, err)
		})
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: [not: a: map\n"))
	assert.Error(t, err)
}
