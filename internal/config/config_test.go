package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Config{
		LogLevel:        "info",
		CatalogDir:      "./furniture",
		Database:        "./furniture.db",
		DisplayEntities: true,
		DefaultKind:     "DISPLAY_ENTITY",
		Ground:          64,
	}, c)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	content := "logLevel: debug\ncatalogDir: /srv/furniture\ndisplayEntities: false\nground: 0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "furniturectl.yaml"), []byte(content), 0o644))

	c, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.LogLevel)
	assert.Equal(t, "/srv/furniture", c.CatalogDir)
	assert.False(t, c.DisplayEntities)
	assert.Equal(t, 0, c.Ground)
	assert.Equal(t, "./furniture.db", c.Database)
}

func TestLoadEnv(t *testing.T) {
	t.Setenv("FURNITURE_DATABASE", "/tmp/sandbox.db")
	t.Setenv("FURNITURE_GROUND", "100")

	c, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "/tmp/sandbox.db", c.Database)
	assert.Equal(t, 100, c.Ground)
}

func TestLoadInvalidFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "furniturectl.yaml"), []byte("ground: [1"), 0o644))

	_, err := Load(dir)
	assert.Error(t, err)
}
