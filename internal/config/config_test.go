package config

import (
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zachkp/diary/internal/render"
)

func env(m map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := m[key]
		return v, ok
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(env(nil))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 950*time.Millisecond, cfg.Transition())
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoadYAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "site.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: \"9000\"\nsite_url: https://zach.dev\npreload_workers: 4\n"), 0o644))

	cfg, err := Load(env(map[string]string{
		"SITE_CONFIG":     path,
		"PORT":            "9100",
		"TRANSITION_MS":   "500",
		"GIN_MODE":        "release",
		"PRELOAD_WORKERS": "",
	}))
	require.NoError(t, err)
	assert.Equal(t, "9100", cfg.Port)
	assert.Equal(t, "https://zach.dev", cfg.SiteURL)
	assert.Equal(t, 4, cfg.PreloadWorkers)
	assert.Equal(t, 500*time.Millisecond, cfg.Transition())
	assert.Equal(t, "release", cfg.Mode)
	assert.Equal(t, "data", cfg.DataDir)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"non numeric port", map[string]string{"PORT": "http"}},
		{"unknown mode", map[string]string{"GIN_MODE": "staging"}},
		{"bad int", map[string]string{"AVATAR_WIDTH": "wide"}},
		{"zero duration", map[string]string{"TRANSITION_MS": "0"}},
		{"too many workers", map[string]string{"PRELOAD_WORKERS": "41"}},
		{"avatar wider than a surface", map[string]string{"AVATAR_WIDTH": "1025"}},
		{"avatar taller than a surface", map[string]string{"AVATAR_HEIGHT": "2000"}},
		{"site url with spaces", map[string]string{"SITE_URL": "not a url"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(env(tt.env))
			require.ErrorIs(t, err, ErrInvalidConfig)
		})
	}
}

func TestLoadAvatarSizeBoundary(t *testing.T) {
	cfg, err := Load(env(map[string]string{
		"AVATAR_WIDTH":  strconv.Itoa(render.MaxSide),
		"AVATAR_HEIGHT": strconv.Itoa(render.MaxSide),
	}))
	require.NoError(t, err)
	assert.Equal(t, render.MaxSide, cfg.AvatarWidth)
	assert.Equal(t, render.MaxSide, cfg.AvatarHeight)
}

func TestLoadMissingYAML(t *testing.T) {
	_, err := Load(env(map[string]string{"SITE_CONFIG": filepath.Join(t.TempDir(), "nope.yaml")}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidConfig)
}
