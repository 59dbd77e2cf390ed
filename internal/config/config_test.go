// filepath: internal/config/config_test.go
package config

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"otpsecret/internal/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, FormatText, cfg.Output.Format)
	assert.Equal(t, "OTP_SECRET", cfg.Deploy.Variable)
	assert.Equal(t, "salamatlab-backend", cfg.Deploy.App)
	assert.NoError(t, cfg.ParseAndValidate())
}

func TestLoadAndSaveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "otpsecret.toml")

	t.Run("Missing File", func(t *testing.T) {
		_, err := LoadConfig(path)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("Round Trip", func(t *testing.T) {
		cfg := Default()
		cfg.Deploy.App = "clinic-api"
		require.NoError(t, SaveConfig(path, cfg))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, cfg, loaded)
	})

	t.Run("Partial File", func(t *testing.T) {
		content := []byte(`
[output]
format = "json"
`)
		require.NoError(t, os.WriteFile(path, content, 0644))

		loaded, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, FormatJSON, loaded.Output.Format)
		assert.Empty(t, loaded.Deploy.Variable)

		loaded.ApplyDefaults()
		assert.Equal(t, "OTP_SECRET", loaded.Deploy.Variable)
	})

	t.Run("Unwritable Path Keeps Cause", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "missing", "dir.toml")

		err := SaveConfig(target, Default())
		assert.ErrorIs(t, err, shared.ErrorCreateFile)
		assert.ErrorIs(t, err, fs.ErrNotExist)
		assert.Contains(t, err.Error(), target)

		err = CreateConfig(target, Default())
		assert.ErrorIs(t, err, shared.ErrorCreateFile)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("Overwrite Leaves No Temp Files", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "otpsecret.toml")
		require.NoError(t, os.WriteFile(target, []byte("stale"), 0644))

		cfg := Default()
		cfg.Deploy.Platform = "render"
		require.NoError(t, SaveConfig(target, cfg))

		loaded, err := LoadConfig(target)
		require.NoError(t, err)
		assert.Equal(t, "render", loaded.Deploy.Platform)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "otpsecret.toml", entries[0].Name())

		info, err := os.Stat(target)
		require.NoError(t, err)
		assert.Equal(t, fs.FileMode(0644), info.Mode().Perm())
	})
}

func TestCreateConfig(t *testing.T) {
	t.Run("New File", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "otpsecret.toml")
		require.NoError(t, CreateConfig(target, Default()))

		loaded, err := LoadConfig(target)
		require.NoError(t, err)
		assert.Equal(t, Default(), loaded)
	})

	t.Run("Existing File Untouched", func(t *testing.T) {
		target := filepath.Join(t.TempDir(), "otpsecret.toml")
		original := []byte("[deploy]\napp = \"keep-me\"\n")
		require.NoError(t, os.WriteFile(target, original, 0644))

		err := CreateConfig(target, Default())
		assert.ErrorIs(t, err, shared.ErrConfigExists)

		content, err := os.ReadFile(target)
		require.NoError(t, err)
		assert.Equal(t, original, content)
	})
}

func TestConfig_ParseAndValidate(t *testing.T) {
	t.Run("Normalizes Format", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Format = " JSON "
		assert.NoError(t, cfg.ParseAndValidate())
		assert.Equal(t, FormatJSON, cfg.Output.Format)
	})

	t.Run("Unknown Format", func(t *testing.T) {
		cfg := Default()
		cfg.Output.Format = "yaml"
		err := cfg.ParseAndValidate()
		assert.ErrorIs(t, err, shared.ErrInvalidFormat)
	})

	t.Run("Normalizes Log Level", func(t *testing.T) {
		cfg := Default()
		cfg.Logging.Level = " DEBUG "
		assert.NoError(t, cfg.ParseAndValidate())
		assert.Equal(t, "debug", cfg.Logging.Level)
	})

	t.Run("Unknown Log Level", func(t *testing.T) {
		for _, level := range []string{"verbose", "warning", "fatal"} {
			cfg := Default()
			cfg.Logging.Level = level
			assert.ErrorIs(t, cfg.ParseAndValidate(), shared.ErrInvalidLogLevel, level)
		}
	})

	t.Run("Invalid Variable", func(t *testing.T) {
		for _, name := range []string{"1SECRET", "OTP-SECRET", "OTP SECRET"} {
			cfg := Default()
			cfg.Deploy.Variable = name
			assert.ErrorIs(t, cfg.ParseAndValidate(), shared.ErrInvalidVariable, name)
		}
	})
}
