package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var Config Configuration

type Configuration struct {
	Port     string `json:"port"`
	LogLevel int    `json:"logLevel"`
	TickRate int    `json:"tickRate"`
}

// LoadConfig fills the package-level Config from a JSON file, then lets
// the environment (optionally seeded from a .env file) override it. A
// missing or unreadable file just means defaults.
func LoadConfig(path string) {
	c := Configuration{
		Port:     "8080",
		LogLevel: int(slog.LevelInfo),
		TickRate: 60,
	}

	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found")
	}

	if path == "" {
		path = "config.json"
	}
	cf, err := os.ReadFile(path)
	if err != nil {
		slog.Info("failed to open config file, using defaults", "path", path)
	} else if err := json.Unmarshal(cf, &c); err != nil {
		slog.Info("failed to parse config file, using defaults", "path", path, "error", err)
	}

	if port := os.Getenv("PORT"); port != "" {
		c.Port = port
	}
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if n, err := strconv.Atoi(lvl); err == nil {
			c.LogLevel = n
		} else {
			slog.Info("ignoring non-numeric LOG_LEVEL", "value", lvl)
		}
	}

	Config = c
}
