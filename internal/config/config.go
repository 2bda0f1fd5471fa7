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
)

// Config captures the client settings read from config.toml.
type Config struct {
	ServerURL         string
	PollInterval      time.Duration
	ReconnectInterval time.Duration
	Debounce          time.Duration
	RequestTimeout    time.Duration
	HistorySize       int
	LogLevel          string
	LogFile           string
}

const (
	defaultConfigPath        = "~/.config/deskremote/config.toml"
	defaultLogFile           = "~/.local/state/deskremote/deskremote.log"
	defaultPollInterval      = 2 * time.Second
	defaultReconnectInterval = 10 * time.Second
	defaultDebounce          = 300 * time.Millisecond
	defaultRequestTimeout    = 5 * time.Second
	defaultHistorySize       = 60
	defaultLogLevel          = "info"
)

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		PollInterval:      defaultPollInterval,
		ReconnectInterval: defaultReconnectInterval,
		Debounce:          defaultDebounce,
		RequestTimeout:    defaultRequestTimeout,
		HistorySize:       defaultHistorySize,
		LogLevel:          defaultLogLevel,
		LogFile:           mustExpand(defaultLogFile),
	}
}

// Load locates and parses the client config, falling back to defaults when missing.
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
		ServerURL         string  `toml:"server_url"`
		PollInterval      string  `toml:"poll_interval"`
		ReconnectInterval string  `toml:"reconnect_interval"`
		Debounce          string  `toml:"debounce"`
		RequestTimeout    string  `toml:"request_timeout"`
		HistorySize       int     `toml:"history_size"`
		LogLevel          string  `toml:"log_level"`
		LogFile           *string `toml:"log_file"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	cfg.ServerURL = strings.TrimSpace(raw.ServerURL)

	durations := []struct {
		field string
		raw   string
		dest  *time.Duration
	}{
		{"poll_interval", raw.PollInterval, &cfg.PollInterval},
		{"reconnect_interval", raw.ReconnectInterval, &cfg.ReconnectInterval},
		{"debounce", raw.Debounce, &cfg.Debounce},
		{"request_timeout", raw.RequestTimeout, &cfg.RequestTimeout},
	}
	for _, d := range durations {
		if err := parseDuration(d.field, d.raw, d.dest); err != nil {
			return Config{}, err
		}
	}

	if raw.HistorySize > 0 {
		cfg.HistorySize = raw.HistorySize
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	// An explicit empty log_file disables file logging.
	if raw.LogFile != nil {
		cfg.LogFile = strings.TrimSpace(*raw.LogFile)
		if cfg.LogFile != "" {
			cfg.LogFile = mustExpand(cfg.LogFile)
		}
	}

	return cfg, nil
}

// parseDuration leaves dest untouched for empty or non-positive values.
func parseDuration(field, value string, dest *time.Duration) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse config: %s: %w", field, err)
	}
	if d > 0 {
		*dest = d
	}
	return nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
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
