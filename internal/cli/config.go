package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DefaultBaseURL is the catalog list endpoint used when no configuration
// overrides it.
const DefaultBaseURL = "https://environment.data.gov.uk/ds/catalogue/datasets"

// Config is the on-disk CLI configuration, read from
// $XDG_CONFIG_HOME/govcat/config.toml (falling back to
// ~/.config/govcat/config.toml). Flags override file values; every field is
// optional.
type Config struct {
	// BaseURL is the catalog's list endpoint.
	BaseURL string `toml:"base_url"`

	// Formats is the comma-separated format priority list ("csv,xlsx,xml").
	Formats string `toml:"formats"`

	// Encoding forces a charset label for text distributions.
	Encoding string `toml:"encoding"`

	// CacheBackend selects the response cache: "file" (default), "redis",
	// "mongo", or "none".
	CacheBackend string `toml:"cache_backend"`

	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	MongoURI      string `toml:"mongo_uri"`
}

// LoadConfig reads the config file if present and fills defaults. A missing
// file is normal; a malformed one is reported and otherwise ignored so a bad
// edit never locks the user out of the CLI.
func LoadConfig(logger *log.Logger) Config {
	var cfg Config

	path, err := configPath()
	if err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil && !os.IsNotExist(err) {
			logger.Warn("ignoring malformed config file", "path", path, "err", err)
			cfg = Config{}
		}
	}

	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	return cfg
}

// configPath returns the config file location using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
