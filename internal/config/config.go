package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields quill needs to reach the social API and to
// place its local state.
type Config struct {
	BaseURL      string
	APIKey       string
	APIKeyHeader string
	DataDir      string
	LogFile      string
	LogLevel     string
}

const (
	defaultConfigPath = "~/.config/quill/config.toml"
	defaultDataDir    = "~/.local/share/quill"
	defaultBaseURL    = "https://v2.api.noroff.dev"
)

// Load locates and parses the quill config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{BaseURL: defaultBaseURL, DataDir: defaultDataDir}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg.withDerivedPaths(), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		BaseURL      string `toml:"base_url"`
		APIKey       string `toml:"api_key"`
		APIKeyHeader string `toml:"api_key_header"`
		DataDir      string `toml:"data_dir"`
		LogFile      string `toml:"log_file"`
		LogLevel     string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.BaseURL = strings.TrimSpace(raw.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	cfg.APIKey = strings.TrimSpace(raw.APIKey)
	cfg.APIKeyHeader = strings.TrimSpace(raw.APIKeyHeader)
	cfg.LogLevel = strings.TrimSpace(raw.LogLevel)

	cfg.DataDir = strings.TrimSpace(raw.DataDir)
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	cfg.LogFile = strings.TrimSpace(raw.LogFile)

	return cfg.withDerivedPaths(), nil
}

// SessionDir returns the directory holding the session database.
func (c Config) SessionDir() string {
	return filepath.Join(c.DataDir, "session")
}

func (c Config) withDerivedPaths() Config {
	c.DataDir = mustExpand(c.DataDir)
	if c.LogFile == "" {
		c.LogFile = filepath.Join(c.DataDir, "quill.log")
	} else {
		c.LogFile = mustExpand(c.LogFile)
	}
	return c
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
