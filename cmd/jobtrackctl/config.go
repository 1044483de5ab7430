package main

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CLIConfig is read from jobtrackctl.yaml next to the binary or the working
// directory. Every field has a usable default, so the file is optional.
type CLIConfig struct {
	Server  ServerConfig  `yaml:"server"`
	Display DisplayConfig `yaml:"display"`
}

type ServerConfig struct {
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type DisplayConfig struct {
	MaxRows int `yaml:"max_rows"`
}

func defaultConfig() *CLIConfig {
	return &CLIConfig{
		Server:  ServerConfig{URL: "http://localhost:8080", TimeoutSeconds: 30},
		Display: DisplayConfig{MaxRows: 50},
	}
}

func loadConfig() (*CLIConfig, error) {
	data, err := os.ReadFile(findConfigPath())
	if err != nil {
		return defaultConfig(), nil
	}

	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	if cfg.Server.URL == "" {
		cfg.Server.URL = "http://localhost:8080"
	}
	if cfg.Server.TimeoutSeconds <= 0 {
		cfg.Server.TimeoutSeconds = 30
	}
	if cfg.Display.MaxRows <= 0 {
		cfg.Display.MaxRows = 50
	}
	return cfg, nil
}

func findConfigPath() string {
	paths := []string{"jobtrackctl.yaml"}
	if exe, err := os.Executable(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(exe), "jobtrackctl.yaml"))
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return "jobtrackctl.yaml"
}

func (c *CLIConfig) timeout() time.Duration {
	return time.Duration(c.Server.TimeoutSeconds) * time.Second
}
