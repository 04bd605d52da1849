package config

import (
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"qrng-server/internal/util"
)

// Config provides configuration for the QRNG server
type Config struct {
	loaded         bool
	PGDSN          string `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string `yaml:"migrationsPath" envconfig:"migrations_path"`
	JWT            struct {
		PublicKey  string `yaml:"publicKey" envconfig:"public_key"`
		PrivateKey string `yaml:"privateKey" envconfig:"private_key"`
	}
	Log struct {
		Level             string `yaml:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	}
	// MaxBits caps the length of a single bit request
	MaxBits int `yaml:"maxBits" envconfig:"max_bits"`
	// FeedIntervalMS is how often the websocket feed emits a batch
	FeedIntervalMS int `yaml:"feedIntervalMs" envconfig:"feed_interval_ms"`
}

var config Config

// DefaultConfig returns the configuration before any file or environment
// overrides are applied
func DefaultConfig() Config {
	var c Config
	c.PGDSN = "postgres://postgres@localhost:5432/postgres?sslmode=disable"
	c.MigrationsPath = "./sql"
	c.MaxBits = 512
	c.FeedIntervalMS = 1000
	return c
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration. A missing config file is not an error;
// the defaults plus environment variables still apply.
func Load() error {
	config = DefaultConfig()

	configFile := util.Getenv("QRNG_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err == nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&config); err != nil {
			return err
		}
	} else if !os.IsNotExist(err) {
		return err
	}

	if err := envconfig.Process("qrng", &config); err != nil {
		return err
	}

	config.loaded = true
	return nil
}
