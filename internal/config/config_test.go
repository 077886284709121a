package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "memory", cfg.Storage.Backend)
	assert.Equal(t, 5*time.Second, cfg.PollInterval())
	assert.Equal(t, 2*time.Second, cfg.PaymentDelay())
	assert.True(t, cfg.Seed)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: 9999
storage:
  backend: file
  data_dir: /tmp/cafeteria
feed:
  poll_interval_seconds: 2
payment:
  delay_ms: 50
seed: false
`
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "/tmp/cafeteria", cfg.Storage.DataDir)
	assert.Equal(t, 2*time.Second, cfg.PollInterval())
	assert.Equal(t, 50*time.Millisecond, cfg.PaymentDelay())
	assert.False(t, cfg.Seed)

	// Fields absent from the file keep their defaults.
	assert.Equal(t, 9090, cfg.Metrics.Port)
	assert.Equal(t, "cafeteria-dev-key", cfg.Auth.SigningKey)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a mapping"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
