package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by LoadSettings.
const EnvPrefix = "GITSTORAGE"

// Log format constants
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// LogSettings configuration for the CLI logger
type LogSettings struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// UserSettings default commit identity; repository config.toml fills gaps
type UserSettings struct {
	Name  string `mapstructure:"name"`
	Email string `mapstructure:"email"`
}

// SignSettings configuration for SSH commit signing
type SignSettings struct {
	Enabled bool   `mapstructure:"enabled"`
	Key     string `mapstructure:"key"`
}

// Settings CLI settings
type Settings struct {
	Repo string       `mapstructure:"repo"`
	Log  LogSettings  `mapstructure:"log"`
	User UserSettings `mapstructure:"user"`
	Sign SignSettings `mapstructure:"sign"`
}

// LoadSettings loads settings from environment variables and defaults.
func LoadSettings() (*Settings, error) {
	return LoadSettingsWithFlags(nil)
}

// LoadSettingsWithFlags loads settings with optional CLI flag overrides.
// Priority: CLI flags > environment variables > defaults.
// If flags is nil, only env vars and defaults are used.
func LoadSettingsWithFlags(flags *pflag.FlagSet) (*Settings, error) {
	v := viper.New()

	v.SetDefault("repo", ".")
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", LogFormatText)
	v.SetDefault("user.name", "")
	v.SetDefault("user.email", "")
	v.SetDefault("sign.enabled", false)
	v.SetDefault("sign.key", "")

	// GITSTORAGE_LOG_LEVEL, GITSTORAGE_USER_NAME, ...
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Flags that a command does not define are skipped.
	if flags != nil {
		bindFlag(v, flags, "repo", "repo")
		bindFlag(v, flags, "log.level", "log-level")
		bindFlag(v, flags, "log.format", "log-format")
		bindFlag(v, flags, "user.name", "author-name")
		bindFlag(v, flags, "user.email", "author-email")
		bindFlag(v, flags, "sign.enabled", "sign")
		bindFlag(v, flags, "sign.key", "key")
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, err
	}

	settings.Log.Level = strings.ToLower(strings.TrimSpace(settings.Log.Level))
	settings.Log.Format = strings.ToLower(strings.TrimSpace(settings.Log.Format))
	settings.User.Name = strings.TrimSpace(settings.User.Name)
	settings.User.Email = strings.TrimSpace(settings.User.Email)
	settings.Sign.Key = expandHomeDir(strings.TrimSpace(settings.Sign.Key))

	return &settings, nil
}

func bindFlag(v *viper.Viper, flags *pflag.FlagSet, key, name string) {
	if f := flags.Lookup(name); f != nil {
		_ = v.BindPFlag(key, f)
	}
}

// expandHomeDir expands ~ to the user's home directory
func expandHomeDir(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// ValidateSettings checks the log settings before a logger is built.
func ValidateSettings(s *Settings) error {
	if _, err := ParseLevel(s.Log.Level); err != nil {
		return err
	}
	switch s.Log.Format {
	case LogFormatText, LogFormatJSON:
	default:
		return errors.New("log-format must be 'text' or 'json', got: " + s.Log.Format)
	}
	if s.Repo == "" {
		return errors.New("repo cannot be empty")
	}
	return nil
}
