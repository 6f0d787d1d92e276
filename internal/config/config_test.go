package config

import (
	"os"
	"path/filepath"
	"testing"
)

// clearEnv keeps the host environment from leaking into override tests.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CLICKER_DEBUG", "")
	t.Setenv("CLICKER_JSON_LOGS", "")
}

func TestDefaultSettings(t *testing.T) {
	settings := Default()

	if settings.ProfilesDir != "configs" {
		t.Fatalf("unexpected profiles dir: %q", settings.ProfilesDir)
	}
	if settings.LogLevel != "info" {
		t.Fatalf("unexpected log level: %q", settings.LogLevel)
	}
	if settings.JSONLogs {
		t.Fatalf("expected console logs by default")
	}
	if !settings.VerifyPosition {
		t.Fatalf("expected position verification on by default")
	}
	if len(settings.ClientProcessNames) == 0 {
		t.Fatalf("expected default client process names")
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if settings.ProfilesDir != "configs" || settings.LogLevel != "info" {
		t.Fatalf("expected defaults, got %+v", settings)
	}
}

func TestLoadFromFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	content := `profiles_dir = "saves"
log_level = "debug"
json_logs = true
client_process_names = ["runelite", "osclient"]
verify_position = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if settings.ProfilesDir != "saves" {
		t.Fatalf("unexpected profiles dir: %q", settings.ProfilesDir)
	}
	if settings.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %q", settings.LogLevel)
	}
	if !settings.JSONLogs {
		t.Fatalf("expected JSON logs enabled")
	}
	if settings.VerifyPosition {
		t.Fatalf("expected position verification disabled")
	}
	if len(settings.ClientProcessNames) != 2 || settings.ClientProcessNames[0] != "runelite" {
		t.Fatalf("unexpected client process names: %v", settings.ClientProcessNames)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	settings, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if settings.LogLevel != "warn" {
		t.Fatalf("unexpected log level: %q", settings.LogLevel)
	}
	if settings.ProfilesDir != "configs" {
		t.Fatalf("expected default profiles dir, got %q", settings.ProfilesDir)
	}
	if !settings.VerifyPosition {
		t.Fatalf("expected default verify_position to survive partial file")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.toml")
	if err := os.WriteFile(path, []byte("profiles_dir = [broken\n"), 0o644); err != nil {
		t.Fatalf("write settings: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for malformed settings file")
	}
}

func TestDebugEnvShortcut(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLICKER_DEBUG", "true")

	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.LogLevel != "debug" {
		t.Fatalf("expected CLICKER_DEBUG to force debug level, got %q", settings.LogLevel)
	}
}

func TestExplicitLogLevelWinsOverDebugShortcut(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLICKER_DEBUG", "true")
	t.Setenv("LOG_LEVEL", "error")

	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if settings.LogLevel != "error" {
		t.Fatalf("expected LOG_LEVEL to win, got %q", settings.LogLevel)
	}
}

func TestJSONLogsEnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("CLICKER_JSON_LOGS", "true")

	settings, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !settings.JSONLogs {
		t.Fatalf("expected JSON logs enabled via environment")
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "chatty")

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Fatalf("expected error for unknown log level")
	}
}

func TestValidate(t *testing.T) {
	settings := Default()
	if err := settings.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}

	for _, level := range []string{"debug", "info", "warn", "warning", "error"} {
		settings := Default()
		settings.LogLevel = level
		if err := settings.Validate(); err != nil {
			t.Fatalf("expected level %q to validate, got %v", level, err)
		}
	}

	settings = Default()
	settings.ProfilesDir = ""
	if err := settings.Validate(); err == nil {
		t.Fatalf("expected error for empty profiles dir")
	}
}
