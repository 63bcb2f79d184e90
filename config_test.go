package vkdebug

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	require.NoError(t, err)
	def := DefaultConfig()
	assert.Equal(t, def.App.Name, cfg.App.Name)
	assert.Equal(t, def.App.Version, cfg.App.Version)
	assert.Empty(t, cfg.App.Extensions)
	assert.Equal(t, def.Log, cfg.Log)
	assert.True(t, cfg.Validation.Enabled)
	assert.True(t, cfg.Validation.Mandatory)
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation"}, cfg.Validation.Layers)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vkdebug.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  name: cube
  version: 0.2.1
  api_version: 1.3.0
  extensions: [VK_KHR_surface]
validation:
  enabled: true
  mandatory: false
  layers: [VK_LAYER_KHRONOS_validation, VK_LAYER_LUNARG_api_dump]
log:
  level: trace
`), 0644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "cube", cfg.App.Name)
	assert.False(t, cfg.Validation.Mandatory)
	assert.Equal(t, []string{"VK_LAYER_KHRONOS_validation", "VK_LAYER_LUNARG_api_dump"}, cfg.Validation.Layers)
	assert.Equal(t, "trace", cfg.Log.Level)

	app, err := cfg.NewApp()
	require.NoError(t, err)
	assert.Equal(t, Version{0, 2, 1}, app.Version)
	assert.Equal(t, Version{1, 3, 0}, app.APIVersion)
	assert.Equal(t, []string{"VK_KHR_surface"}, app.EnabledExtensions)
	assert.True(t, app.Validation.Enabled)
}

func TestLoadConfigEnv(t *testing.T) {
	t.Setenv("VKDEBUG_VALIDATION_ENABLED", "false")
	t.Setenv("VKDEBUG_APP_NAME", "from-env")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.False(t, cfg.Validation.Enabled)
	assert.Equal(t, "from-env", cfg.App.Name)

	app, err := cfg.NewApp()
	require.NoError(t, err)

	p := testPlatform()
	instance, err := app.CreateInstance(p, nil)
	require.NoError(t, err)
	assert.False(t, instance.Validating())
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vkdebug.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: loud\n"), 0644))
	_, err := LoadConfig(path)
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	cfg := DefaultConfig()
	cfg.App.Version = "one"
	_, err = cfg.NewApp()
	assert.Error(t, err)
}
