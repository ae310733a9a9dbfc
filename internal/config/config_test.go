package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.IntegerIDDensity)
}

func TestLoadOverridesNamedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_rows: 500\ncategory_ratio: 0.2\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 500, cfg.MaxRows)
	assert.Equal(t, 0.2, cfg.CategoryRatio)
	assert.Equal(t, 0.9, cfg.IntegerIDDensity, "unset fields keep defaults")
}
