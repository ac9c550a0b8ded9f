package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/clientdesk/clientdesk/internal/config"
)

const envPrefix = "CLIENTDESK"

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadConfig resolves settings in increasing precedence: built-in defaults,
// the config file, CLIENTDESK_* environment variables (optionally seeded from
// a dotenv file) and command-line flags.
func (c *CLI) loadConfig() (config.Config, error) {
	if envFile := strings.TrimSpace(c.v.GetString("env-file")); envFile != "" {
		// godotenv never overrides variables already set in the process.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return config.Config{}, fmt.Errorf("load env file: %w", err)
		}
	}

	cfg, err := config.Load(c.v.GetString("config"))
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}

	if v := strings.TrimSpace(c.v.GetString("api-url")); v != "" {
		cfg.APIURL = v
	}
	if v := strings.TrimSpace(c.v.GetString("api-token")); v != "" {
		cfg.APIToken = v
	}
	if v := strings.TrimSpace(c.v.GetString("log-level")); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if secs := c.v.GetInt("poll"); secs > 0 {
		cfg.PollInterval = time.Duration(secs) * time.Second
	}
	return cfg, nil
}
