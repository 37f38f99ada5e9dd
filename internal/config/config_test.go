package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfigFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

// clearEnv masks the process environment so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("LOG_LEVEL", "")
}

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	clearEnv(t)

	LoadConfig(filepath.Join(t.TempDir(), "missing.json"))

	if Config.Port != "8080" {
		t.Fatalf("port = %q, want 8080", Config.Port)
	}
	if Config.LogLevel != 0 {
		t.Fatalf("logLevel = %d, want 0", Config.LogLevel)
	}
	if Config.TickRate != 60 {
		t.Fatalf("tickRate = %d, want 60", Config.TickRate)
	}
}

func TestLoadConfigReadsFile(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{"port":"9999","logLevel":-4,"tickRate":30}`)

	LoadConfig(path)

	if Config.Port != "9999" || Config.LogLevel != -4 || Config.TickRate != 30 {
		t.Fatalf("config = %+v, want port 9999 logLevel -4 tickRate 30", Config)
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfigFile(t, `{"port":"9000"}`)

	LoadConfig(path)

	if Config.Port != "9000" {
		t.Fatalf("port = %q, want 9000", Config.Port)
	}
	if Config.TickRate != 60 {
		t.Fatalf("tickRate = %d, want 60", Config.TickRate)
	}
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `{"port":"9000","tickRate":30}`)
	t.Setenv("PORT", "7777")
	t.Setenv("LOG_LEVEL", "8")

	LoadConfig(path)

	if Config.Port != "7777" {
		t.Fatalf("port = %q, want env override 7777", Config.Port)
	}
	if Config.LogLevel != 8 {
		t.Fatalf("logLevel = %d, want env override 8", Config.LogLevel)
	}
	if Config.TickRate != 30 {
		t.Fatalf("tickRate = %d, want file value 30", Config.TickRate)
	}
}

func TestLoadConfigIgnoresBadLogLevel(t *testing.T) {
	clearEnv(t)
	t.Setenv("LOG_LEVEL", "loud")

	LoadConfig(filepath.Join(t.TempDir(), "missing.json"))

	if Config.LogLevel != 0 {
		t.Fatalf("logLevel = %d, want default 0", Config.LogLevel)
	}
}
