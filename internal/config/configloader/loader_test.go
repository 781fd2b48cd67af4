package configloader

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlevkov/prodsync/internal/config"
)

func Test_Load_DefaultsOnly(t *testing.T) {
	// given an empty directory and no env overrides
	t.Chdir(t.TempDir())

	// when
	cfg, err := Load[*config.ClientConfig]("prodsync", map[string]any{
		"remote.baseUrl": "http://localhost:8080",
		"remote.timeout": "10s",
		"log.level":      "info",
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", cfg.Remote.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
}

func Test_Load_YamlOverridesDefaults(t *testing.T) {
	// given a prodsync.yaml in the working directory
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte("remote:\n  baseUrl: http://catalog:9090\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prodsync.yaml"), yaml, 0o644))

	// when
	cfg, err := Load[*config.ClientConfig]("prodsync", map[string]any{
		"remote.baseUrl": "http://localhost:8080",
		"remote.timeout": "10s",
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, "http://catalog:9090", cfg.Remote.BaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func Test_Load_EnvOverridesYaml(t *testing.T) {
	// given both a yaml file and a system env var
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte("remote:\n  baseUrl: http://catalog:9090\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prodsync.yaml"), yaml, 0o644))
	t.Setenv("PRODSYNC_REMOTE_BASEURL", "http://override:7070")

	// when
	cfg, err := Load[*config.ClientConfig]("prodsync", map[string]any{
		"remote.timeout": "10s",
	})

	// then
	require.NoError(t, err)
	assert.Equal(t, "http://override:7070", cfg.Remote.BaseURL)
}

func Test_Load_ValidationFailure(t *testing.T) {
	// given no base URL from any layer
	t.Chdir(t.TempDir())

	// when
	_, err := Load[*config.ClientConfig]("prodsync", map[string]any{
		"remote.timeout": "10s",
	})

	// then
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config validation failed")
}

func Test_Load_SeedProducts(t *testing.T) {
	// given a catalogd.yaml with a seed section
	dir := t.TempDir()
	t.Chdir(dir)
	yaml := []byte(`server:
  port: 8080
  maxHeaderBytes: 1048576
  timeout:
    read: 5s
    write: 10s
    idle: 60s
    readHeader: 2s
log:
  level: info
shutdown:
  timeout: 10s
seed:
  - sku: A1
    name: Widget
    price: 10
    quantity: 2
    total: 20
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "catalogd.yaml"), yaml, 0o644))

	// when
	cfg, err := Load[*config.ServerConfig]("catalogd", nil)

	// then
	require.NoError(t, err)
	require.Len(t, cfg.Seed, 1)
	products := config.Products(cfg.Seed)
	assert.Equal(t, "A1", products[0].SKU)
	assert.Equal(t, "Widget", products[0].Name)
	assert.Equal(t, 10.0, products[0].Price)
	assert.Equal(t, 2, products[0].Quantity)
	assert.Equal(t, 20.0, products[0].Total)
}
