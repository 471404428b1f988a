package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/wmlab/robustwm/internal/constants"
)

// AppConfig represents the entire application configuration
type AppConfig struct {
	App     AppSettings     `yaml:"app"`
	Backend BackendSettings `yaml:"backend"`
	Session SessionSettings `yaml:"session"`
	Logging LoggingSettings `yaml:"logging"`
	WebUI   WebUISettings   `yaml:"webui"`
}

// AppSettings contains general application settings
type AppSettings struct {
	Environment string `yaml:"environment" env:"APP_ENV"`
	Name        string `yaml:"name" env:"APP_NAME"`
	Version     string `yaml:"version" env:"APP_VERSION"`
}

// BackendSettings contains settings for the watermark backend the client
// talks to. The backend is an external collaborator reachable at fixed
// relative paths under the base URL.
type BackendSettings struct {
	BaseURL        string        `yaml:"base_url" env:"BACKEND_URL"`
	UploadsPrefix  string        `yaml:"uploads_prefix" env:"BACKEND_UPLOADS_PREFIX"`
	RequestTimeout time.Duration `yaml:"request_timeout" env:"BACKEND_REQUEST_TIMEOUT"`
}

// SessionSettings contains settings for the persisted session state.
type SessionSettings struct {
	StateFile string `yaml:"state_file" env:"SESSION_STATE_FILE"`
}

// LoggingSettings contains logging configuration
type LoggingSettings struct {
	Level  string `yaml:"level" env:"LOG_LEVEL"`
	Format string `yaml:"format" env:"LOG_FORMAT"`
}

// WebUISettings contains settings for the local web UI server.
type WebUISettings struct {
	Host            string        `yaml:"host" env:"WEBUI_HOST"`
	Port            int           `yaml:"port" env:"WEBUI_PORT"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"WEBUI_READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WEBUI_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"WEBUI_SHUTDOWN_TIMEOUT"`
}

// UploadURL composes the static file-serving path for a produced filename.
func (bs *BackendSettings) UploadURL(filename string) string {
	base := strings.TrimSuffix(bs.BaseURL, "/")
	prefix := "/" + strings.Trim(bs.UploadsPrefix, "/")
	return base + prefix + "/" + filename
}

// ServerAddress returns the complete web UI server address
func (ws *WebUISettings) ServerAddress() string {
	return fmt.Sprintf("%s:%d", ws.Host, ws.Port)
}

// IsDevelopment checks if the application is running in development mode
func (as *AppSettings) IsDevelopment() bool {
	return strings.ToLower(as.Environment) == constants.EnvDevelopment
}

// IsProduction checks if the application is running in production mode
func (as *AppSettings) IsProduction() bool {
	return strings.ToLower(as.Environment) == constants.EnvProduction
}

// IsTesting checks if the application is running in testing mode
func (as *AppSettings) IsTesting() bool {
	return strings.ToLower(as.Environment) == constants.EnvTesting
}

var (
	// cfg holds the current application configuration
	cfg *AppConfig
)

// Load loads the configuration from a config file and environment variables
func Load(configPath string) (*AppConfig, error) {
	config := &AppConfig{}

	// Load configuration from file if it exists
	if _, err := os.Stat(configPath); err == nil {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing config file: %w", err)
		}
	}

	// Override with environment variables
	if err := LoadEnv(config); err != nil {
		return nil, fmt.Errorf("error loading environment variables: %w", err)
	}

	// Set defaults for missing values
	setDefaults(config)

	// Validate the configuration
	if err := validateConfig(config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	// Save the configuration globally
	cfg = config

	return config, nil
}

// Get returns the current application configuration
func Get() *AppConfig {
	if cfg == nil {
		log.Fatal().Msg("configuration not loaded")
	}
	return cfg
}

// setDefaults sets default values for any missing configuration
func setDefaults(config *AppConfig) {
	// App defaults
	if config.App.Environment == "" {
		config.App.Environment = constants.EnvDevelopment
	}
	if config.App.Name == "" {
		config.App.Name = "robustwm"
	}
	if config.App.Version == "" {
		config.App.Version = "1.0.0"
	}

	// Backend defaults
	if config.Backend.BaseURL == "" {
		config.Backend.BaseURL = constants.DefaultBackendURL
	}
	if config.Backend.UploadsPrefix == "" {
		config.Backend.UploadsPrefix = constants.DefaultUploadsPrefix
	}

	// Session defaults
	if config.Session.StateFile == "" {
		config.Session.StateFile = constants.DefaultStateFile
	}

	// Logging defaults
	if config.Logging.Level == "" {
		config.Logging.Level = constants.DefaultLogLevel
	}
	if config.Logging.Format == "" {
		config.Logging.Format = constants.DefaultLogFormat
	}

	// Web UI defaults
	if config.WebUI.Host == "" {
		config.WebUI.Host = constants.DefaultWebUIHost
	}
	if config.WebUI.Port == 0 {
		config.WebUI.Port = constants.DefaultWebUIPort
	}
	if config.WebUI.ReadTimeout == 0 {
		config.WebUI.ReadTimeout = constants.DefaultReadTimeout
	}
	if config.WebUI.WriteTimeout == 0 {
		config.WebUI.WriteTimeout = constants.DefaultWriteTimeout
	}
	if config.WebUI.ShutdownTimeout == 0 {
		config.WebUI.ShutdownTimeout = constants.DefaultShutdownTimeout
	}
}

// validateConfig validates that the configuration has all required values
func validateConfig(config *AppConfig) error {
	// Validate environment
	env := strings.ToLower(config.App.Environment)
	if env != constants.EnvDevelopment && env != constants.EnvTesting && env != constants.EnvProduction {
		// Instead of failing, use a default and warn
		log.Warn().Str("environment", config.App.Environment).Msg("Invalid environment, defaulting to development")
		config.App.Environment = constants.EnvDevelopment
	}

	// Backend base URL must be an absolute HTTP(S) URL
	base := strings.ToLower(config.Backend.BaseURL)
	if !strings.HasPrefix(base, "http://") && !strings.HasPrefix(base, "https://") {
		return fmt.Errorf("backend base URL must start with http:// or https://, got %q", config.Backend.BaseURL)
	}

	// Validate log level
	logLevel := strings.ToLower(config.Logging.Level)
	validLevels := []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}
	validLevel := false
	for _, level := range validLevels {
		if logLevel == level {
			validLevel = true
			break
		}
	}
	if !validLevel {
		return fmt.Errorf("invalid log level: %s", config.Logging.Level)
	}

	return nil
}
