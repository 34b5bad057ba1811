package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to environment variable names, e.g. WHACK_DB.
const EnvPrefix = "WHACK"

// Settings holds process-level options shared by all commands.
// Values resolve from flags, then WHACK_* environment variables,
// then ~/.whack/settings.yaml, then built-in defaults.
type Settings struct {
	DBPath      string
	TickRate    int
	Seed        int64
	SSHAddr     string
	HTTPAddr    string
	HostKeyPath string
	IdleTimeout time.Duration
	LogLevel    string
}

// DefaultSettings returns the built-in defaults.
func DefaultSettings() Settings {
	return Settings{
		DBPath:      "~/.whack/scores.db",
		TickRate:    60,
		SSHAddr:     ":23234",
		IdleTimeout: 30 * time.Minute,
		LogLevel:    "info",
	}
}

// LoadSettings resolves Settings. flags may be nil; any flag in it whose name
// matches a settings key overrides lower layers when set on the command line.
// settingsFile may be empty to use ~/.whack/settings.yaml when it exists.
func LoadSettings(flags *pflag.FlagSet, settingsFile string) (Settings, error) {
	def := DefaultSettings()

	v := viper.New()
	v.SetDefault("db", def.DBPath)
	v.SetDefault("fps", def.TickRate)
	v.SetDefault("seed", def.Seed)
	v.SetDefault("ssh", def.SSHAddr)
	v.SetDefault("http", def.HTTPAddr)
	v.SetDefault("host-key", def.HostKeyPath)
	v.SetDefault("idle-timeout", int(def.IdleTimeout/time.Minute))
	v.SetDefault("log-level", def.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if settingsFile == "" {
		settingsFile = userSettingsPath()
	}
	if settingsFile != "" {
		if _, err := os.Stat(settingsFile); err == nil {
			v.SetConfigFile(settingsFile)
			if err := v.ReadInConfig(); err != nil {
				return def, fmt.Errorf("config: cannot read settings %s: %w", settingsFile, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return def, fmt.Errorf("config: cannot stat settings %s: %w", settingsFile, err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return def, fmt.Errorf("config: cannot bind flags: %w", err)
		}
	}

	s := Settings{
		DBPath:      v.GetString("db"),
		TickRate:    v.GetInt("fps"),
		Seed:        v.GetInt64("seed"),
		SSHAddr:     v.GetString("ssh"),
		HTTPAddr:    v.GetString("http"),
		HostKeyPath: v.GetString("host-key"),
		IdleTimeout: time.Duration(v.GetInt("idle-timeout")) * time.Minute,
		LogLevel:    v.GetString("log-level"),
	}

	if s.TickRate <= 0 {
		s.TickRate = def.TickRate
	}
	if s.IdleTimeout <= 0 {
		s.IdleTimeout = def.IdleTimeout
	}

	return s, nil
}

// userSettingsPath returns ~/.whack/settings.yaml, or empty if home is unavailable.
func userSettingsPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".whack", "settings.yaml")
}
