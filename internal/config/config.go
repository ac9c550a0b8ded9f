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
	"github.com/rs/zerolog"

	"github.com/clientdesk/clientdesk/internal/listdetail"
)

// Config captures everything clientdesk reads from its config file.
type Config struct {
	APIURL        string
	APIToken      string
	EntityType    string
	PerPage       int
	SelectionMode listdetail.SelectionMode
	PollInterval  time.Duration
	LogFile       string
	LogLevel      string
	Cache         CacheSettings
}

// CacheSettings mirrors the [cache] table.
type CacheSettings struct {
	Enabled   bool
	ListTTL   time.Duration
	DetailTTL time.Duration
	MaxSize   int
}

const (
	defaultConfigPath    = "~/.config/clientdesk/config.toml"
	defaultLogFile       = "~/.local/state/clientdesk/clientdesk.log"
	defaultAPIURL        = "127.0.0.1:8080"
	defaultEntityType    = "clients"
	defaultLogLevel      = "info"
	defaultPollSeconds   = 30
	defaultSelectionMode = listdetail.SelectionMultiple
)

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:        defaultAPIURL,
		EntityType:    defaultEntityType,
		PerPage:       listdetail.DefaultPerPage,
		SelectionMode: defaultSelectionMode,
		PollInterval:  defaultPollSeconds * time.Second,
		LogFile:       mustExpand(defaultLogFile),
		LogLevel:      defaultLogLevel,
		Cache: CacheSettings{
			Enabled:   true,
			ListTTL:   listdetail.DefaultListTTL,
			DetailTTL: listdetail.DefaultDetailTTL,
			MaxSize:   listdetail.DefaultMaxCacheSize,
		},
	}
}

type rawConfig struct {
	APIURL        string   `toml:"api_url"`
	APIToken      string   `toml:"api_token"`
	EntityType    string   `toml:"entity_type"`
	PerPage       int      `toml:"per_page"`
	SelectionMode string   `toml:"selection_mode"`
	PollSeconds   int      `toml:"poll_seconds"`
	LogFile       string   `toml:"log_file"`
	LogLevel      string   `toml:"log_level"`
	Cache         rawCache `toml:"cache"`
}

type rawCache struct {
	Enabled   *bool `toml:"enabled"`
	ListTTL   int   `toml:"list_ttl"`
	DetailTTL int   `toml:"detail_ttl"`
	MaxSize   int   `toml:"max_size"`
}

// Load locates and parses the config, falling back to defaults when missing.
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

	var raw rawConfig
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}
	cfg.APIToken = strings.TrimSpace(raw.APIToken)
	if v := strings.TrimSpace(raw.EntityType); v != "" {
		cfg.EntityType = v
	}
	if raw.PerPage > 0 {
		cfg.PerPage = raw.PerPage
	}
	if strings.TrimSpace(raw.SelectionMode) != "" {
		mode, err := listdetail.ParseSelectionMode(raw.SelectionMode)
		if err != nil {
			return Config{}, fmt.Errorf("parse config: selection_mode: %w", err)
		}
		cfg.SelectionMode = mode
	}
	if raw.PollSeconds > 0 {
		cfg.PollInterval = time.Duration(raw.PollSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		if _, err := zerolog.ParseLevel(strings.ToLower(v)); err != nil {
			return Config{}, fmt.Errorf("parse config: log_level: %w", err)
		}
		cfg.LogLevel = strings.ToLower(v)
	}

	if raw.Cache.Enabled != nil {
		cfg.Cache.Enabled = *raw.Cache.Enabled
	}
	if raw.Cache.ListTTL > 0 {
		cfg.Cache.ListTTL = time.Duration(raw.Cache.ListTTL) * time.Second
	}
	if raw.Cache.DetailTTL > 0 {
		cfg.Cache.DetailTTL = time.Duration(raw.Cache.DetailTTL) * time.Second
	}
	if raw.Cache.MaxSize > 0 {
		cfg.Cache.MaxSize = raw.Cache.MaxSize
	}

	return cfg, nil
}

// CacheConfig translates the [cache] table for the list-detail engine.
func (c Config) CacheConfig() listdetail.CacheConfig {
	return listdetail.CacheConfig{
		Enabled:   c.Cache.Enabled,
		ListTTL:   c.Cache.ListTTL,
		DetailTTL: c.Cache.DetailTTL,
		MaxSize:   c.Cache.MaxSize,
	}
}

// ListDefaults returns the params a freshly mounted list starts from.
func (c Config) ListDefaults() listdetail.ListViewParams {
	return listdetail.ListViewParams{Page: 1, PerPage: c.PerPage}.Normalize()
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
