package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Backend names accepted by StoreBackend.
const (
	BackendJSON     = "json"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config holds process settings for the spire-run binaries. Every field is
// read from SPIRE_* environment variables.
type Config struct {
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"console"`
	LogPath     string `envconfig:"LOG_PATH"` // empty means stderr

	StoreBackend string `envconfig:"STORE" default:"json"`
	DataDir      string `envconfig:"DATA_DIR"` // empty means the XDG data dir

	PostgresDSN string `envconfig:"POSTGRES_DSN" default:"host=localhost user=spire password=spire dbname=spire sslmode=disable"`

	RedisAddr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	RedisTTL      time.Duration `envconfig:"REDIS_TTL" default:"720h"`

	SSHPort    int    `envconfig:"SSH_PORT" default:"2222"`
	SSHHostKey string `envconfig:"SSH_HOST_KEY" default:"server_host_key"`

	// Seed fixes the map seed for every new run when non-zero.
	Seed int64 `envconfig:"SEED"`
}

// Load reads the configuration from the environment, after merging a .env
// file from the working directory if one exists, and validates it.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("spire", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.DataDir == "" {
		dir, err := DefaultDataDir()
		if err != nil {
			return nil, fmt.Errorf("resolve data dir: %w", err)
		}
		cfg.DataDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects unknown backends and out-of-range values.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendJSON, BackendPostgres, BackendRedis:
	default:
		return fmt.Errorf("unknown store backend %q", c.StoreBackend)
	}
	if c.SSHPort <= 0 || c.SSHPort > 65535 {
		return fmt.Errorf("ssh port %d out of range", c.SSHPort)
	}
	if c.RedisTTL < 0 {
		return fmt.Errorf("negative redis ttl %s", c.RedisTTL)
	}
	return nil
}

// RunsFile is the JSON store path inside the data dir.
func (c *Config) RunsFile() string {
	return filepath.Join(c.DataDir, "runs.json")
}

// DefaultDataDir follows the XDG Base Directory spec:
// $XDG_DATA_HOME/spire-run, defaulting to ~/.local/share/spire-run.
func DefaultDataDir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "spire-run"), nil
}
