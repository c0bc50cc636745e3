package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	require.Equal(t, "https://rdap.verisign.com/com/v1", cfg.Registry.BaseURL)
	require.Equal(t, "domaincomb/1.0", cfg.Registry.UserAgent)
	require.Equal(t, 8*time.Second, cfg.Registry.Timeout)
	require.Equal(t, 3, cfg.Registry.MaxRetries)
	require.Equal(t, 750*time.Millisecond, cfg.Registry.Backoff)

	require.Equal(t, 200*time.Millisecond, cfg.Batch.Delay)
	require.Equal(t, 1, cfg.Batch.Workers)

	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, 8080, cfg.Server.Port)
	require.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)

	require.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("DOMAINCOMB_REGISTRY_MAX_RETRIES", "5")
	t.Setenv("DOMAINCOMB_BATCH_DELAY", "50ms")
	t.Setenv("DOMAINCOMB_LOGGING_LEVEL", "debug")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, 5, cfg.Registry.MaxRetries)
	require.Equal(t, 50*time.Millisecond, cfg.Batch.Delay)
	require.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "domaincomb.yaml")
	content := `
registry:
  base_url: https://rdap.example.test/v1
  endpoints:
    dev: https://rdap.dev.test/v1
  max_retries: 2
batch:
  workers: 4
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "https://rdap.example.test/v1", cfg.Registry.BaseURL)
	require.Equal(t, 2, cfg.Registry.MaxRetries)
	require.Equal(t, 4, cfg.Batch.Workers)
	// File values layer over defaults without clearing them.
	require.Equal(t, 8*time.Second, cfg.Registry.Timeout)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestEndpointFor(t *testing.T) {
	registry := RegistryConfig{
		BaseURL: "https://fallback.test/v1",
		Endpoints: map[string]string{
			"com": "https://com.test/v1",
		},
	}

	require.Equal(t, "https://com.test/v1", registry.EndpointFor("com"))
	require.Equal(t, "https://fallback.test/v1", registry.EndpointFor("io"))
}
