package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseFile_SourcesAndPrecedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	dir := t.TempDir()
	jsonPath := writeTempJSON(t, dir, "console.json", map[string]any{
		"api_base_url": "https://panel.example.com/api/v1",
		"timeout":      "30s",
		"log_format":   "json",
	})

	t.Run("loads json", func(t *testing.T) {
		os.Args = []string{"testbin", "-config", jsonPath}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "https://panel.example.com/api/v1", cfg.APIBaseURL)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, "console.db", cfg.StorePath, "missing keys keep defaults")
	})

	t.Run("loads yaml", func(t *testing.T) {
		yamlPath := filepath.Join(dir, "console.yaml")
		require.NoError(t, os.WriteFile(yamlPath, []byte("api_base_url: http://10.0.0.1:8080/api/v1\ntimeout: 5s\nstore_path: /var/lib/console.db\nmetrics_addr: 127.0.0.1:9108\n"), 0o600))
		os.Args = []string{"testbin", "-c", yamlPath}

		cfg := &Config{}
		cfg.LoadDefaults()
		parseFile(cfg)

		assert.Equal(t, "http://10.0.0.1:8080/api/v1", cfg.APIBaseURL)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, "/var/lib/console.db", cfg.StorePath)
		assert.Equal(t, "127.0.0.1:9108", cfg.MetricsAddr)
	})

	t.Run("no file → no changes", func(t *testing.T) {
		os.Args = []string{"testbin"}

		cfg := &Config{APIBaseURL: "http://defaults/api/v1", Timeout: 42 * time.Second}
		parseFile(cfg)

		assert.Equal(t, "http://defaults/api/v1", cfg.APIBaseURL)
		assert.Equal(t, 42*time.Second, cfg.Timeout)
	})

	t.Run("flags override file", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", jsonPath, "-t", "7"}

		cfg := LoadConfig()
		assert.Equal(t, "https://panel.example.com/api/v1", cfg.APIBaseURL)
		assert.Equal(t, 7*time.Second, cfg.Timeout)
	})

	t.Run("invalid JSON → panics", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		os.Args = []string{"testbin", "-config", bad}

		require.Panics(t, func() { parseFile(&Config{}) })
	})

	t.Run("missing file → panics", func(t *testing.T) {
		os.Args = []string{"testbin", "-c", filepath.Join(dir, "nope.json")}

		require.Panics(t, func() { parseFile(&Config{}) })
	})
}
