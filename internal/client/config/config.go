package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/moviedeck/internal/configx"
	"github.com/dmitrijs2005/moviedeck/internal/flagx"
)

// PrefsFileName is the sqlite file created inside DataDir.
const PrefsFileName = "prefs.db"

// Config holds runtime settings for the MovieDeck CLI.
//
// Fields:
//   - ServerEndpointAddr: host:port of the backend gRPC endpoint.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - RequestTimeout: deadline applied to every unary call.
//   - DataDir: directory for the local preferences store.
type Config struct {
	ServerEndpointAddr  string        `env:"MOVIEDECK_SERVER_ADDR"`
	OnlineCheckInterval time.Duration `env:"MOVIEDECK_ONLINE_CHECK_INTERVAL"`
	RequestTimeout      time.Duration `env:"MOVIEDECK_REQUEST_TIMEOUT"`
	DataDir             string        `env:"MOVIEDECK_DATA_DIR"`
	LogFormat           string        `env:"MOVIEDECK_LOG_FORMAT"`
	LogLevel            string        `env:"MOVIEDECK_LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.OnlineCheckInterval = 3 * time.Second
	c.RequestTimeout = 10 * time.Second
	c.DataDir = defaultDataDir()
	c.LogFormat = "slog"
	c.LogLevel = "warn"
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".moviedeck")
	}
	return ".moviedeck"
}

// PrefsDSN returns the path of the preferences database inside DataDir.
func (c *Config) PrefsDSN() string {
	return filepath.Join(c.DataDir, PrefsFileName)
}

// LoadConfig builds a Config from defaults, .env and the environment, the
// file named by -c/-config, and finally the flags in args (os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := configx.LoadEnv(cfg, ".env"); err != nil {
		return nil, err
	}

	if path := flagx.ConfigFileFlag(args); path != "" {
		if err := loadFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.OnlineCheckInterval <= 0 {
		return fmt.Errorf("online check interval must be positive, got %s", c.OnlineCheckInterval)
	}
	if c.RequestTimeout < 0 {
		return fmt.Errorf("request timeout must not be negative, got %s", c.RequestTimeout)
	}
	return nil
}

// MustLoad is LoadConfig over os.Args that panics on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
