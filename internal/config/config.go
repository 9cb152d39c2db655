package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"CallingHome/internal/console"

	"github.com/go-playground/validator/v10"
)

const historyFileName = "callinghome.db"

// Config holds application configuration
type Config struct {
	SenderName string `validate:"required"`
	OutputDir  string `validate:"required"` // Where saved messages are written
	Color      string `validate:"oneof=auto always never"`

	// Starting selections for a new session
	Audience string `validate:"oneof=lawyer lawmaker"`
	Channel  string `validate:"oneof=sms email"`

	LogDir   string `validate:"required"`
	LogLevel string `validate:"oneof=debug info warn error"`
	Debug    bool

	// Export traces and metrics to files in LogDir
	TelemetryEnabled bool
	MetricsInterval  time.Duration `validate:"min=1s"`

	// Generation history. An empty HistoryPath keeps the database in LogDir.
	HistoryEnabled bool
	HistoryPath    string
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		SenderName:       "Your Name",
		OutputDir:        ".",
		Color:            console.ColorAuto,
		Audience:         "lawyer",
		Channel:          "sms",
		LogDir:           "logs",
		LogLevel:         "info",
		TelemetryEnabled: true,
		MetricsInterval:  10 * time.Second,
		HistoryEnabled:   true,
	}
}

// FromEnv returns the defaults overridden by CALLING_HOME_* environment variables
func FromEnv() Config {
	def := Default()
	return Config{
		SenderName:       getEnv("CALLING_HOME_SENDER", def.SenderName),
		OutputDir:        getEnv("CALLING_HOME_OUTPUT_DIR", def.OutputDir),
		Color:            strings.ToLower(getEnv("CALLING_HOME_COLOR", def.Color)),
		Audience:         strings.ToLower(getEnv("CALLING_HOME_AUDIENCE", def.Audience)),
		Channel:          strings.ToLower(getEnv("CALLING_HOME_CHANNEL", def.Channel)),
		LogDir:           getEnv("CALLING_HOME_LOG_DIR", def.LogDir),
		LogLevel:         strings.ToLower(getEnv("CALLING_HOME_LOG_LEVEL", def.LogLevel)),
		Debug:            getEnvBool("CALLING_HOME_DEBUG", def.Debug),
		TelemetryEnabled: getEnvBool("CALLING_HOME_TELEMETRY", def.TelemetryEnabled),
		MetricsInterval:  getEnvDuration("CALLING_HOME_METRICS_INTERVAL", def.MetricsInterval),
		HistoryEnabled:   getEnvBool("CALLING_HOME_HISTORY", def.HistoryEnabled),
		HistoryPath:      getEnv("CALLING_HOME_HISTORY_PATH", def.HistoryPath),
	}
}

// Validate checks field values
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			fields := make([]string, 0, len(errs))
			for _, e := range errs {
				fields = append(fields, fmt.Sprintf("%s (%s)", e.Field(), e.Tag()))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(fields, ", "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// EffectiveLogLevel returns the level to log at, honoring Debug
func (c Config) EffectiveLogLevel() string {
	if c.Debug {
		return "debug"
	}
	return c.LogLevel
}

// HistoryFile returns the history database path
func (c Config) HistoryFile() string {
	if c.HistoryPath != "" {
		return c.HistoryPath
	}
	return filepath.Join(c.LogDir, historyFileName)
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
