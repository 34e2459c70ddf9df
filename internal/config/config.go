package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// Config holds the settings jot reads from its config file.
type Config struct {
	ServiceBaseURL string
	RequestTimeout time.Duration
	StrictList     bool
	LogFile        string
	LogLevel       zapcore.Level
}

const (
	defaultConfigPath     = "~/.config/jot/config.toml"
	defaultServiceBaseURL = "http://localhost:3000"
	defaultRequestTimeout = 5 * time.Second
	defaultLogFile        = "~/.local/share/jot/jot.log"
	defaultLogLevel       = zapcore.InfoLevel

	// logFileOff as log_file disables logging.
	logFileOff = "-"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		ServiceBaseURL: defaultServiceBaseURL,
		RequestTimeout: defaultRequestTimeout,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load locates and parses the jot config, falling back to defaults when missing.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		ServiceBaseURL string `toml:"service_base_url"`
		RequestTimeout string `toml:"request_timeout"`
		StrictList     bool   `toml:"strict_list"`
		LogFile        string `toml:"log_file"`
		LogLevel       string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.ServiceBaseURL); v != "" {
		cfg.ServiceBaseURL = v
	}
	if v := strings.TrimSpace(raw.RequestTimeout); v != "" {
		timeout, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: request_timeout: %w", err)
		}
		if timeout <= 0 {
			return Config{}, fmt.Errorf("parse config: request_timeout must be positive, got %s", v)
		}
		cfg.RequestTimeout = timeout
	}
	cfg.StrictList = raw.StrictList
	switch v := strings.TrimSpace(raw.LogFile); v {
	case "":
	case logFileOff:
		cfg.LogFile = ""
	default:
		expanded, err := expandPath(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: log_file: %w", err)
		}
		cfg.LogFile = expanded
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		level, err := zapcore.ParseLevel(v)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
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
