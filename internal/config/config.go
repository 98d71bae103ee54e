package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings the catalog client needs.
type Config struct {
	APIBase           string
	DataDir           string
	PageSize          int
	SearchDebounce    time.Duration
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	FavoritesFanOut   int
	LogLevel          string
}

const (
	defaultConfigPath      = "~/.config/energy/config.toml"
	defaultDataDir         = "~/.local/share/energy"
	defaultAPIBase         = "https://your-energy.b.goit.study/api"
	defaultPageSize        = 10
	defaultSearchDebounce  = 350 * time.Millisecond
	defaultFavoritesFanOut = 6
	defaultLogLevel        = "info"
)

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		APIBase:         defaultAPIBase,
		DataDir:         mustExpand(defaultDataDir),
		PageSize:        defaultPageSize,
		SearchDebounce:  defaultSearchDebounce,
		FavoritesFanOut: defaultFavoritesFanOut,
		LogLevel:        defaultLogLevel,
	}
}

// Load locates and parses the config file, falling back to defaults when missing.
// Environment overrides are applied last.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg), nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIBase               string  `toml:"api_base"`
		DataDir               string  `toml:"data_dir"`
		PageSize              int     `toml:"page_size"`
		SearchDebounceMS      int     `toml:"search_debounce_ms"`
		RequestTimeoutSeconds int     `toml:"request_timeout_seconds"`
		RequestsPerSecond     float64 `toml:"requests_per_second"`
		FavoritesFanOut       int     `toml:"favorites_fan_out"`
		LogLevel              string  `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if base := strings.TrimSpace(raw.APIBase); base != "" {
		cfg.APIBase = base
	}
	if dir := strings.TrimSpace(raw.DataDir); dir != "" {
		cfg.DataDir = mustExpand(dir)
	}
	if raw.PageSize > 0 {
		cfg.PageSize = raw.PageSize
	}
	if raw.SearchDebounceMS > 0 {
		cfg.SearchDebounce = time.Duration(raw.SearchDebounceMS) * time.Millisecond
	}
	if raw.RequestTimeoutSeconds > 0 {
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}
	if raw.RequestsPerSecond > 0 {
		cfg.RequestsPerSecond = raw.RequestsPerSecond
	}
	if raw.FavoritesFanOut > 0 {
		cfg.FavoritesFanOut = raw.FavoritesFanOut
	}
	if level := strings.TrimSpace(raw.LogLevel); level != "" {
		cfg.LogLevel = level
	}

	return applyEnv(cfg), nil
}

// StoragePath returns the path of the local key/value database.
func (c Config) StoragePath() string {
	return filepath.Join(c.dataDir(), "storage.db")
}

// LogPath returns the path of the client log file.
func (c Config) LogPath() string {
	return filepath.Join(c.dataDir(), "energy.log")
}

func (c Config) dataDir() string {
	if strings.TrimSpace(c.DataDir) == "" {
		return mustExpand(defaultDataDir)
	}
	return c.DataDir
}

func applyEnv(cfg Config) Config {
	if v, ok := getEnv("ENERGY_API_BASE"); ok {
		cfg.APIBase = v
	}
	if v, ok := getEnv("ENERGY_DATA_DIR"); ok {
		cfg.DataDir = mustExpand(v)
	}
	if v, ok := getEnv("ENERGY_LOG_LEVEL"); ok {
		cfg.LogLevel = v
	}
	if v, ok := getEnv("ENERGY_PAGE_SIZE"); ok {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PageSize = n
		}
	}
	return cfg
}

func getEnv(name string) (string, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return "", false
	}
	return raw, true
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
