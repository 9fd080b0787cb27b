package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Addr)
	assert.Equal(t, "static", cfg.AssetRoot)
	assert.Equal(t, "models/mood_model.json", cfg.ModelPath)
	assert.Equal(t, "models/label_encoder.json", cfg.EncoderPath)
	assert.Equal(t, "placeholder.jpg", cfg.Placeholder)
	assert.Equal(t, 6, cfg.SampleSize)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Nil(t, cfg.BaseURL())
}

func TestLoadPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("addr: 0.0.0.0:9000\nasset_root: /srv/assets\nsample_size: 4\nlog_level: debug\n"), 0644))

	t.Setenv("MOODREC_ASSET_ROOT", "/env/assets")
	t.Setenv("MOODREC_PUBLIC_BASE_URL", "https://moods.example.com")

	cfg, err := Load([]string{"--config", file, "--log-level", "warn"})
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Addr, "file overrides default")
	assert.Equal(t, "/env/assets", cfg.AssetRoot, "env overrides file")
	assert.Equal(t, "warn", cfg.LogLevel, "flag overrides file")
	assert.Equal(t, 4, cfg.SampleSize)
	require.NotNil(t, cfg.BaseURL())
	assert.Equal(t, "moods.example.com", cfg.BaseURL().Host)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"zero sample size", map[string]string{"MOODREC_SAMPLE_SIZE": "0"}, nil},
		{"relative base url", map[string]string{"MOODREC_PUBLIC_BASE_URL": "/moods"}, nil},
		{"empty asset root", nil, []string{"--asset-root", ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(tt.args)
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	_, err := Load([]string{"--config", filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}

func TestLoadUnknownFlag(t *testing.T) {
	_, err := Load([]string{"--nope"})
	assert.Error(t, err)
}
