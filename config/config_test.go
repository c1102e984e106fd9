package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domsel/domsel/selector"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "domsel.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "css", cfg.DefaultSelector)
	assert.True(t, cfg.IgnoreHiddenElements)
	assert.False(t, cfg.EnableAriaLabel)
	assert.Empty(t, cfg.TestIDAttribute)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty default selector",
			mutate:  func(c *Config) { c.DefaultSelector = "" },
			wantErr: "default_selector",
		},
		{
			name:   "test id attribute",
			mutate: func(c *Config) { c.TestIDAttribute = "data-testid" },
		},
		{
			name:    "malformed test id attribute",
			mutate:  func(c *Config) { c.TestIDAttribute = "1 bad attr" },
			wantErr: "test_id_attribute",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	t.Run("keys layer over defaults", func(t *testing.T) {
		path := writeConfig(t, "default_selector: xpath\n")

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.Equal(t, "xpath", cfg.DefaultSelector)
		assert.True(t, cfg.IgnoreHiddenElements, "keys absent from the file keep their defaults")
	})

	t.Run("explicit false overrides default", func(t *testing.T) {
		path := writeConfig(t, "ignore_hidden_elements: false\n")

		cfg, err := LoadFromFile(path)
		require.NoError(t, err)
		assert.False(t, cfg.IgnoreHiddenElements)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
	})

	t.Run("malformed yaml", func(t *testing.T) {
		path := writeConfig(t, "default_selector: [unterminated\n")
		_, err := LoadFromFile(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse")
	})
}

func TestSaveAndReload(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultSelector = "field"
	cfg.EnableAriaLabel = true
	cfg.TestIDAttribute = "data-testid"

	path := filepath.Join(t.TempDir(), "nested", "domsel.yaml")
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestDefaultVisibility(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, selector.VisibilityVisible, cfg.DefaultVisibility())

	cfg.IgnoreHiddenElements = false
	assert.Equal(t, selector.VisibilityAll, cfg.DefaultVisibility())
}

func TestBuiltin(t *testing.T) {
	cfg := DefaultConfig()
	cfg.EnableAriaLabel = true
	cfg.TestIDAttribute = "data-qa"

	b := cfg.Builtin()
	assert.True(t, b.EnableAriaLabel)
	assert.Equal(t, "data-qa", b.TestIDAttribute)
}
