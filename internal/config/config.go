package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Cache backends
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config represents the application configuration
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Redis    RedisConfig    `yaml:"redis"`
	Postgres PostgresConfig `yaml:"postgres"`
	Cache    CacheConfig    `yaml:"cache"`
	Stats    StatsConfig    `yaml:"stats"`
	Warmup   WarmupConfig   `yaml:"warmup"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	IdleTimeout  time.Duration `yaml:"idle_timeout"`
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr         string        `yaml:"addr"`
	Password     string        `yaml:"password"`
	DB           int           `yaml:"db"`
	PoolSize     int           `yaml:"pool_size"`
	MinIdleConns int           `yaml:"min_idle_conns"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port"`
	User            string        `yaml:"user"`
	Password        string        `yaml:"password"`
	Database        string        `yaml:"database"`
	SSLMode         string        `yaml:"ssl_mode"`
	MaxConnections  int           `yaml:"max_connections"`
	MinConnections  int           `yaml:"min_connections"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
}

// ConnectionString returns the PostgreSQL connection string
func (c *PostgresConfig) ConnectionString() string {
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslMode,
	)
}

// CacheConfig controls memoization of derived statistics inputs
type CacheConfig struct {
	Backend   string        `yaml:"backend"`
	TTL       time.Duration `yaml:"ttl"`
	Disabled  bool          `yaml:"disabled"`
	KeyPrefix string        `yaml:"key_prefix"`
}

// StatsConfig holds defaults for statistics requests
type StatsConfig struct {
	DefaultRangeDays int `yaml:"default_range_days"`
}

// WarmupConfig controls the background recomputation of popular tables
type WarmupConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Interval time.Duration `yaml:"interval"`
	Tables   []string      `yaml:"tables"`
}

// Load reads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables
	data = []byte(os.ExpandEnv(string(data)))

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	// Server defaults
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 5 * time.Second
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 30 * time.Second
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 120 * time.Second
	}

	// Redis defaults
	if c.Redis.Addr == "" {
		c.Redis.Addr = "localhost:6379"
	}
	if c.Redis.PoolSize == 0 {
		c.Redis.PoolSize = 20
	}
	if c.Redis.MinIdleConns == 0 {
		c.Redis.MinIdleConns = 2
	}
	if c.Redis.DialTimeout == 0 {
		c.Redis.DialTimeout = 5 * time.Second
	}
	if c.Redis.ReadTimeout == 0 {
		c.Redis.ReadTimeout = 3 * time.Second
	}
	if c.Redis.WriteTimeout == 0 {
		c.Redis.WriteTimeout = 3 * time.Second
	}

	// PostgreSQL defaults
	if c.Postgres.Host == "" {
		c.Postgres.Host = "localhost"
	}
	if c.Postgres.Port == 0 {
		c.Postgres.Port = 5432
	}
	if c.Postgres.MaxConnections == 0 {
		c.Postgres.MaxConnections = 20
	}
	if c.Postgres.MinConnections == 0 {
		c.Postgres.MinConnections = 2
	}
	if c.Postgres.MaxConnLifetime == 0 {
		c.Postgres.MaxConnLifetime = 1 * time.Hour
	}
	if c.Postgres.MaxConnIdleTime == 0 {
		c.Postgres.MaxConnIdleTime = 30 * time.Minute
	}

	// Cache defaults
	if c.Cache.Backend == "" {
		c.Cache.Backend = CacheBackendMemory
	}
	if c.Cache.TTL == 0 {
		c.Cache.TTL = 1 * time.Hour
	}
	if c.Cache.KeyPrefix == "" {
		c.Cache.KeyPrefix = "dice-stats:"
	}

	// Stats defaults
	if c.Stats.DefaultRangeDays == 0 {
		c.Stats.DefaultRangeDays = 365
	}

	// Warmup defaults
	if c.Warmup.Interval == 0 {
		c.Warmup.Interval = 10 * time.Minute
	}
	if len(c.Warmup.Tables) == 0 {
		c.Warmup.Tables = []string{"summary", "penalties", "accumulated-points"}
	}
}

func (c *Config) validate() error {
	switch c.Cache.Backend {
	case CacheBackendMemory, CacheBackendRedis:
	default:
		return fmt.Errorf("unknown cache backend %q", c.Cache.Backend)
	}
	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache ttl must not be negative, got %s", c.Cache.TTL)
	}
	if c.Warmup.Interval < 0 {
		return fmt.Errorf("warmup interval must not be negative, got %s", c.Warmup.Interval)
	}
	return nil
}

// DefaultConfig returns a configuration with all defaults
func DefaultConfig() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}
