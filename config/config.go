// Package config holds process-wide settings, merged once at startup:
// built-in defaults, then an optional TOML file, then environment
// variables. CLI flags are applied last by main. The result is read-only
// for the rest of the process.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

const defaultFile = "config.toml"

type Audio struct {
	SampleRate int `toml:"sample_rate"`
	Channels   int `toml:"channels"`
}

type Transcriber struct {
	Engine    string `toml:"engine"`     // "vosk" or "server"
	ModelPath string `toml:"model_path"` // vosk model directory
	ServerURL string `toml:"server_url"` // whisper server endpoint
	Language  string `toml:"language"`
}

type Cleanup struct {
	Enabled bool   `toml:"enabled"`
	APIKey  string `toml:"api_key"`
	BaseURL string `toml:"base_url"`
	Model   string `toml:"model"`
}

type Config struct {
	Hotkey      string      `toml:"hotkey"`
	Audio       Audio       `toml:"audio"`
	Transcriber Transcriber `toml:"transcriber"`
	Cleanup     Cleanup     `toml:"cleanup"`
}

func Default() Config {
	return Config{
		Hotkey: "ctrl",
		Audio: Audio{
			SampleRate: 16000,
			Channels:   1,
		},
		Transcriber: Transcriber{
			Engine:   "vosk",
			Language: "en",
		},
		Cleanup: Cleanup{
			Enabled: true,
			Model:   "gpt-4o-mini",
		},
	}
}

// Load merges defaults, the TOML file at path (or ./config.toml when path is
// empty and it exists), and environment overrides.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		if _, err := os.Stat(defaultFile); err == nil {
			path = defaultFile
		}
	}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("config file %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("MURMUR_HOTKEY"); v != "" {
		cfg.Hotkey = v
	}
	if v := os.Getenv("MURMUR_ENGINE"); v != "" {
		cfg.Transcriber.Engine = v
	}
	if v := os.Getenv("MURMUR_MODEL"); v != "" {
		cfg.Transcriber.ModelPath = v
	}
	if v := os.Getenv("MURMUR_SERVER_URL"); v != "" {
		cfg.Transcriber.ServerURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.Cleanup.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.Cleanup.BaseURL = v
	}
	if v := os.Getenv("MURMUR_CLEANUP_MODEL"); v != "" {
		cfg.Cleanup.Model = v
	}
}
