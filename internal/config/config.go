package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Service selects the backend a todo is forwarded to.
type Service string

const (
	ServiceKeep  Service = "keep"
	ServiceTasks Service = "tasks"
)

// KeepAuthMode selects how the Keep backend authenticates.
type KeepAuthMode string

const (
	// KeepAuthAppPassword uses the account email plus a Google app
	// password and the encrypted master-token cache.
	KeepAuthAppPassword KeepAuthMode = "app_password"

	// KeepAuthServiceAccount uses a Workspace service-account key with
	// domain-wide delegation and the official Keep API.
	KeepAuthServiceAccount KeepAuthMode = "service_account"
)

// StorageType selects where the Keep master token is cached.
type StorageType string

const (
	StorageFile    StorageType = "file"
	StorageKeyring StorageType = "keyring"
)

// Default configuration values
const (
	DefaultService        = ServiceKeep
	DefaultKeyword        = "todo"
	DefaultMaxTitleLength = 200
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	DefaultKeepAuthMode   = KeepAuthAppPassword
	DefaultKeepStorage    = StorageFile
)

// KeepConfig holds the Google Keep backend settings.
type KeepConfig struct {
	Mode KeepAuthMode `koanf:"mode" validate:"required,oneof=app_password service_account"`

	// App-password mode
	Email       string      `koanf:"email" validate:"omitempty,email"`
	AppPassword string      `koanf:"app_password"`
	Storage     StorageType `koanf:"storage" validate:"required,oneof=file keyring"`
	TokenFile   string      `koanf:"token_file"`

	// Service-account mode
	ServiceAccountFile string `koanf:"service_account_file"`
}

// TasksConfig holds the Google Tasks backend settings.
type TasksConfig struct {
	CredentialsFile string `koanf:"credentials_file"`
	TokenFile       string `koanf:"token_file"`
	List            string `koanf:"list"`
}

// Config holds the application's configuration.
type Config struct {
	Service Service `koanf:"service" validate:"required,oneof=keep tasks"`

	// Keyword triggers the launcher hook in serve mode.
	Keyword string `koanf:"keyword" validate:"required"`

	// MaxTitleLength bounds the sanitized todo title in runes.
	MaxTitleLength int `koanf:"max_title_length" validate:"gt=0"`

	// Notify toggles desktop notifications.
	Notify bool `koanf:"notify"`

	LogLevel  string `koanf:"log_level" validate:"oneof=debug info warn error"`
	LogFormat string `koanf:"log_format" validate:"oneof=text json"`

	Keep  KeepConfig  `koanf:"keep"`
	Tasks TasksConfig `koanf:"tasks"`
}

// Defaults returns the configuration layer applied below file, env and
// flag values.
func Defaults() map[string]any {
	return map[string]any{
		"service":          string(DefaultService),
		"keyword":          DefaultKeyword,
		"max_title_length": DefaultMaxTitleLength,
		"notify":           true,
		"log_level":        DefaultLogLevel,
		"log_format":       DefaultLogFormat,
		"keep.mode":        string(DefaultKeepAuthMode),
		"keep.storage":     string(DefaultKeepStorage),
	}
}

// ApplyDefaults fills path fields that depend on the user's environment.
func (c *Config) ApplyDefaults() error {
	if c.Keep.TokenFile == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("keep.token_file required (auto-detect failed: %w)", err)
		}
		c.Keep.TokenFile = filepath.Join(cacheDir, "todopush", "keep.token")
	}
	if c.Tasks.TokenFile == "" {
		cacheDir, err := os.UserCacheDir()
		if err != nil {
			return fmt.Errorf("tasks.token_file required (auto-detect failed: %w)", err)
		}
		c.Tasks.TokenFile = filepath.Join(cacheDir, "todopush", "tasks.token")
	}
	if c.Tasks.CredentialsFile == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return fmt.Errorf("tasks.credentials_file required (auto-detect failed: %w)", err)
		}
		c.Tasks.CredentialsFile = filepath.Join(configDir, "todopush", "credentials.json")
	}
	return nil
}

// Validate checks the structural constraints. Credential presence is
// deliberately not checked here: the serve loop starts without
// credentials and surfaces configuration hints instead, so presence is
// enforced where the backend client is built.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// ValidateCredentials checks that the configured service has the
// values it needs to authenticate. The auth command uses it for early,
// specific errors.
func (c *Config) ValidateCredentials() error {
	if c.Service != ServiceKeep {
		return nil
	}
	switch c.Keep.Mode {
	case KeepAuthAppPassword:
		if c.Keep.Email == "" || c.Keep.AppPassword == "" {
			return errors.New("keep.email and keep.app_password required for app_password mode")
		}
	case KeepAuthServiceAccount:
		if c.Keep.ServiceAccountFile == "" {
			return errors.New("keep.service_account_file required for service_account mode")
		}
		if c.Keep.Email == "" {
			return errors.New("keep.email required for service_account mode (user to impersonate)")
		}
	}
	return nil
}

// Level converts the configured log level to a slog.Level.
func (c *Config) Level() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// DefaultPath returns the default config file location. The file is
// optional; a missing file just means defaults plus env plus flags.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, "todopush", "config.toml")
}
