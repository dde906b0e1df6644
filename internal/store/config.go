package store

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"
)

const configFileName = "config.json"

// Config holds workspace-level settings. Missing or corrupt config files
// fall back to defaults; this is user-editable JSON, not critical state.
type Config struct {
	Version int `json:"version"`

	// AnchorTopic scopes the board to the subtree whose topic matches it
	// exactly. Empty means the whole tree feeds the board.
	AnchorTopic string `json:"anchorTopic,omitempty"`

	// Runner settings for the external agent script (see internal/runner).
	RunnerScript  string `json:"runnerScript,omitempty"`
	RunnerConfig  string `json:"runnerConfig,omitempty"`
	RunnerTimeout int    `json:"runnerTimeoutSeconds,omitempty"`
}

func (c *Config) Timeout() time.Duration {
	if c == nil || c.RunnerTimeout <= 0 {
		return 120 * time.Second
	}
	return time.Duration(c.RunnerTimeout) * time.Second
}

func (s Store) configPath() string {
	return filepath.Join(s.Dir, configFileName)
}

func (s Store) LoadConfig() (*Config, error) {
	b, err := os.ReadFile(s.configPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{Version: 1}, nil
		}
		return nil, err
	}
	var cfg Config
	if err := json.Unmarshal(b, &cfg); err != nil {
		return &Config{Version: 1}, nil
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	return &cfg, nil
}

func (s Store) SaveConfig(cfg *Config) error {
	if cfg == nil {
		return nil
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return err
	}
	if cfg.Version == 0 {
		cfg.Version = 1
	}
	b, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	path := s.configPath()
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
