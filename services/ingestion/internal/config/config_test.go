package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "desarrollador", cfg.Keyword)
	assert.Equal(t, 5, cfg.MaxPages)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestDelay)
	assert.Equal(t, 3, cfg.MaxRetries)
	assert.Contains(t, cfg.Platforms, "Computrabajo")
	assert.NotContains(t, cfg.Platforms, "LinkedIn")
}

func TestLoadConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ingestion.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
keyword: python
max_pages: 2
platforms: [Elempleo]
request_delay: 3s
`), 0o644))

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PLATFORMS", "Computrabajo, Indeed ,")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "python", cfg.Keyword)
	assert.Equal(t, 2, cfg.MaxPages)
	assert.Equal(t, 3*time.Second, cfg.RequestDelay)
	assert.Equal(t, []string{"Computrabajo", "Indeed"}, cfg.Platforms)
}

func TestLoadConfigRejectsZeroPages(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("MAX_PAGES", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}
