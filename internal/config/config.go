package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceFixture = "fixture"
	SourceYAML    = "yaml"
	SourceMySQL   = "mysql"
)

const envPrefix = "GILDEDROSE_"

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Source    SourceConfig    `yaml:"source"`
	Redis     RedisConfig     `yaml:"redis"`
	Simulator SimulatorConfig `yaml:"simulator"`
}

type ServerConfig struct {
	HTTPAddr        string        `yaml:"http_addr"`
	GRPCAddr        string        `yaml:"grpc_addr"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// SourceConfig selects where the starting items come from.
type SourceConfig struct {
	Kind     string `yaml:"kind"`
	File     string `yaml:"file"`
	MySQLDSN string `yaml:"mysql_dsn"`
	Shop     string `yaml:"shop"`
}

// RedisConfig enables report publishing when Addr is set.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type SimulatorConfig struct {
	MaxDays        int  `yaml:"max_days"`
	Conjured       bool `yaml:"conjured"`
	PublishWorkers int  `yaml:"publish_workers"`
	QueueSize      int  `yaml:"queue_size"`
}

// Load reads the optional YAML file at path, then .env, then GILDEDROSE_*
// environment variables. Later layers win.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	// .env is optional; real environment variables still apply without it
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPAddr == "" {
		c.Server.HTTPAddr = ":8080"
	}
	if c.Server.GRPCAddr == "" {
		c.Server.GRPCAddr = ":50051"
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 5 * time.Second
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "json"
	}
	if c.Source.Kind == "" {
		c.Source.Kind = SourceFixture
	}
	if c.Source.Shop == "" {
		c.Source.Shop = "default"
	}
	if c.Simulator.MaxDays == 0 {
		c.Simulator.MaxDays = 365
	}
	if c.Simulator.PublishWorkers == 0 {
		c.Simulator.PublishWorkers = 4
	}
	if c.Simulator.QueueSize == 0 {
		c.Simulator.QueueSize = 1024
	}
}

func (c *Config) applyEnv() error {
	setString(&c.Server.HTTPAddr, "HTTP_ADDR")
	setString(&c.Server.GRPCAddr, "GRPC_ADDR")
	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Format, "LOG_FORMAT")
	setString(&c.Source.Kind, "SOURCE")
	setString(&c.Source.File, "SOURCE_FILE")
	setString(&c.Source.MySQLDSN, "MYSQL_DSN")
	setString(&c.Source.Shop, "SHOP")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}
	if err := setInt(&c.Simulator.MaxDays, "MAX_DAYS"); err != nil {
		return err
	}
	if err := setInt(&c.Simulator.PublishWorkers, "PUBLISH_WORKERS"); err != nil {
		return err
	}
	if v, ok := os.LookupEnv(envPrefix + "CONJURED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sCONJURED: %v", ErrInvalidConfig, envPrefix, err)
		}
		c.Simulator.Conjured = b
	}
	if v, ok := os.LookupEnv(envPrefix + "SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sSHUTDOWN_TIMEOUT: %v", ErrInvalidConfig, envPrefix, err)
		}
		c.Server.ShutdownTimeout = d
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Source.Kind {
	case SourceFixture:
	case SourceYAML:
		if c.Source.File == "" {
			return fmt.Errorf("%w: yaml source needs a file", ErrInvalidConfig)
		}
	case SourceMySQL:
		if c.Source.MySQLDSN == "" {
			return fmt.Errorf("%w: mysql source needs a dsn", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown source %q", ErrInvalidConfig, c.Source.Kind)
	}

	if c.Simulator.MaxDays < 0 {
		return fmt.Errorf("%w: max_days must be positive", ErrInvalidConfig)
	}
	if c.Simulator.PublishWorkers < 0 || c.Simulator.QueueSize < 0 {
		return fmt.Errorf("%w: publish_workers and queue_size must be positive", ErrInvalidConfig)
	}
	return nil
}

// PublishingEnabled reports whether daily reports should be sent to Redis.
func (c *Config) PublishingEnabled() bool {
	return c.Redis.Addr != ""
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(envPrefix + key); ok {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(envPrefix + key)
	if !ok {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, key, err)
	}
	*dst = n
	return nil
}
