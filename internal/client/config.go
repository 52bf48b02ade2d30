package client

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultServerURL is used when no config file or flag says otherwise.
const DefaultServerURL = "http://localhost:8080"

// Config is the terminal client's configuration file
// (~/.config/marks/config.yaml by default).
type Config struct {
	ServerURL string `yaml:"server_url"`
}

// DefaultConfigPath resolves the config file location in the platform
// config directory.
func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "marks", "config.yaml"), nil
}

// LoadConfig reads the config file at path. A missing file is not an
// error; defaults apply.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{ServerURL: DefaultServerURL}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	return cfg, nil
}
