// Package config loads the app settings from settings.toml, with environment
// overrides. A missing file is not an error; defaults apply.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// DefaultPath is where settings are looked up relative to the working dir.
const DefaultPath = "settings.toml"

type Settings struct {
	ProfilesDir        string   `toml:"profiles_dir"`
	LogLevel           string   `toml:"log_level"`
	JSONLogs           bool     `toml:"json_logs"`
	ClientProcessNames []string `toml:"client_process_names"`
	VerifyPosition     bool     `toml:"verify_position"`
}

func Default() Settings {
	return Settings{
		ProfilesDir:        "configs",
		LogLevel:           "info",
		ClientProcessNames: []string{"runelite", "rs2client", "jagex"},
		VerifyPosition:     true,
	}
}

// Load reads the settings file and applies environment overrides on top.
func Load(path string) (Settings, error) {
	settings := Default()

	if _, err := toml.DecodeFile(path, &settings); err != nil {
		if !os.IsNotExist(err) {
			return settings, fmt.Errorf("decode settings %s: %w", path, err)
		}
	}

	settings = applyEnv(settings)

	if err := settings.Validate(); err != nil {
		return settings, err
	}
	return settings, nil
}

// applyEnv layers environment overrides: an explicit LOG_LEVEL wins over the
// CLICKER_DEBUG shortcut.
func applyEnv(s Settings) Settings {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		s.LogLevel = v
	} else if os.Getenv("CLICKER_DEBUG") == "true" {
		s.LogLevel = "debug"
	}

	if os.Getenv("CLICKER_JSON_LOGS") == "true" {
		s.JSONLogs = true
	}

	return s
}

func (s Settings) Validate() error {
	if s.ProfilesDir == "" {
		return errors.New("profiles_dir must not be empty")
	}

	switch s.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", s.LogLevel)
	}

	return nil
}
