package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wmlab/robustwm/internal/constants"
)

func TestLoadDefaults(t *testing.T) {
	config, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, constants.EnvDevelopment, config.App.Environment)
	assert.Equal(t, constants.DefaultBackendURL, config.Backend.BaseURL)
	assert.Equal(t, constants.DefaultUploadsPrefix, config.Backend.UploadsPrefix)
	assert.Equal(t, constants.DefaultStateFile, config.Session.StateFile)
	assert.Equal(t, constants.DefaultWebUIPort, config.WebUI.Port)
	assert.Equal(t, constants.DefaultLogLevel, config.Logging.Level)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
app:
  environment: production
backend:
  base_url: https://wm.example.com
  request_timeout: 30s
webui:
  port: 9090
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	config, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, "production", config.App.Environment)
	assert.Equal(t, "https://wm.example.com", config.Backend.BaseURL)
	assert.Equal(t, 30*time.Second, config.Backend.RequestTimeout)
	assert.Equal(t, 9090, config.WebUI.Port)
	// Unset values still get defaults.
	assert.Equal(t, constants.DefaultUploadsPrefix, config.Backend.UploadsPrefix)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://backend:9000")
	t.Setenv("BACKEND_REQUEST_TIMEOUT", "5s")
	t.Setenv("LOG_LEVEL", "debug")

	config, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

	require.NoError(t, err)
	assert.Equal(t, "http://backend:9000", config.Backend.BaseURL)
	assert.Equal(t, 5*time.Second, config.Backend.RequestTimeout)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("Non-HTTP backend URL", func(t *testing.T) {
		t.Setenv("BACKEND_URL", "ftp://backend")

		_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		assert.Error(t, err)
	})

	t.Run("Unknown log level", func(t *testing.T) {
		t.Setenv("LOG_LEVEL", "loud")

		_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		assert.Error(t, err)
	})

	t.Run("Malformed YAML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("backend: ["), 0o644))

		_, err := Load(path)

		assert.Error(t, err)
	})

	t.Run("Unknown environment falls back instead of failing", func(t *testing.T) {
		t.Setenv("APP_ENV", "staging")

		config, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))

		require.NoError(t, err)
		assert.Equal(t, constants.EnvDevelopment, config.App.Environment)
	})
}

func TestUploadURL(t *testing.T) {
	tests := []struct {
		name     string
		settings BackendSettings
		want     string
	}{
		{
			name:     "Plain",
			settings: BackendSettings{BaseURL: "http://localhost:8000", UploadsPrefix: "/uploads"},
			want:     "http://localhost:8000/uploads/cat.png",
		},
		{
			name:     "Trailing and missing slashes normalized",
			settings: BackendSettings{BaseURL: "http://localhost:8000/", UploadsPrefix: "uploads/"},
			want:     "http://localhost:8000/uploads/cat.png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.settings.UploadURL("cat.png"))
		})
	}
}

func TestEnvironmentPredicates(t *testing.T) {
	as := AppSettings{Environment: "Production"}
	assert.True(t, as.IsProduction())
	assert.False(t, as.IsDevelopment())

	as.Environment = "development"
	assert.True(t, as.IsDevelopment())
	assert.False(t, as.IsTesting())
}
