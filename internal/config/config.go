// Package config loads the application configuration.
// The configuration is TOML; several candidate paths are searched in order.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// MainConfig holds process-level settings.
type MainConfig struct {
	AppName string `toml:"appName"`
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Mode    string `toml:"mode"` // "dev" or "release"; controls gin mode and console logging
	// TLSRedirect enables the HTTP->HTTPS redirect middleware.
	TLSRedirect bool `toml:"tlsRedirect"`
}

// DatabaseConfig selects and configures the SQL backend.
type DatabaseConfig struct {
	Driver       string `toml:"driver"` // "mysql" or "postgres"
	Host         string `toml:"host"`
	Port         int    `toml:"port"`
	User         string `toml:"user"`
	Password     string `toml:"password"`
	DatabaseName string `toml:"databaseName"`
	SSLMode      string `toml:"sslMode"` // postgres only
	MaxOpenConns int    `toml:"maxOpenConns"`
	MaxIdleConns int    `toml:"maxIdleConns"`
}

// RedisConfig configures the cache. An empty Host disables caching.
type RedisConfig struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Password   string `toml:"password"`
	Db         int    `toml:"db"`
	CacheTTL   int    `toml:"cacheTTL"` // seconds
	WorkerNum  int    `toml:"workerNum"`
	TaskBuffer int    `toml:"taskBuffer"`
}

// LogConfig configures zap with lumberjack rotation.
type LogConfig struct {
	LogPath    string `toml:"logPath"`
	FileName   string `toml:"fileName"`
	MaxSize    int    `toml:"maxSize"`    // MB
	MaxBackups int    `toml:"maxBackups"` // files
	MaxAge     int    `toml:"maxAge"`     // days
	Level      string `toml:"level"`      // debug, info, warn, error
}

// KafkaConfig configures the domain event stream.
type KafkaConfig struct {
	EventMode string        `toml:"eventMode"` // "kafka" or "none"
	HostPort  string        `toml:"hostPort"`
	Topic     string        `toml:"topic"`
	Partition int           `toml:"partition"`
	Timeout   time.Duration `toml:"timeout"` // seconds
}

// JWTConfig configures token signing.
type JWTConfig struct {
	Secret             string `toml:"secret"`
	AccessTokenExpiry  int    `toml:"accessTokenExpiry"`  // minutes
	RefreshTokenExpiry int    `toml:"refreshTokenExpiry"` // hours
}

// SnowflakeConfig configures message id generation.
type SnowflakeConfig struct {
	MachineID int64 `toml:"machineId"` // 0-1023, unique per node
}

// Config aggregates every section.
type Config struct {
	MainConfig      `toml:"mainConfig"`
	DatabaseConfig  `toml:"databaseConfig"`
	RedisConfig     `toml:"redisConfig"`
	LogConfig       `toml:"logConfig"`
	KafkaConfig     `toml:"kafkaConfig"`
	JWTConfig       `toml:"jwtConfig"`
	SnowflakeConfig `toml:"snowflakeConfig"`
}

var config *Config

// candidatePaths are tried in order when no explicit path is given.
var candidatePaths = []string{
	"configs/config_local.toml",
	"configs/config.toml",
	"../../configs/config_local.toml",
	"../../configs/config.toml",
}

// Load decodes the first readable file among path (if non-empty) and the
// candidate paths, applies defaults, and installs the result as the global config.
func Load(path string) (*Config, error) {
	paths := candidatePaths
	if path != "" {
		paths = []string{path}
	}

	var lastErr error
	for _, p := range paths {
		conf := defaultConfig()
		if _, err := toml.DecodeFile(p, conf); err != nil {
			lastErr = err
			continue
		}
		conf.applyDefaults()
		config = conf
		return conf, nil
	}
	return nil, fmt.Errorf("could not load configuration from %v: %w", paths, lastErr)
}

// GetConfig returns the global config, loading it from the candidate paths on
// first use. Defaults are used when no file is found.
func GetConfig() *Config {
	if config == nil {
		if _, err := Load(""); err != nil {
			config = defaultConfig()
		}
	}
	return config
}

func defaultConfig() *Config {
	return &Config{
		MainConfig: MainConfig{
			AppName: "family-connections",
			Host:    "0.0.0.0",
			Port:    8000,
			Mode:    "dev",
		},
		DatabaseConfig: DatabaseConfig{
			Driver: "mysql",
			Host:   "127.0.0.1",
			Port:   3306,
		},
		LogConfig: LogConfig{
			LogPath: "./logs",
			Level:   "info",
		},
		KafkaConfig: KafkaConfig{
			EventMode: "none",
			Topic:     "family-events",
			Partition: 1,
			Timeout:   1,
		},
		JWTConfig: JWTConfig{
			AccessTokenExpiry:  30,
			RefreshTokenExpiry: 168,
		},
		SnowflakeConfig: SnowflakeConfig{MachineID: 1},
	}
}

func (c *Config) applyDefaults() {
	if c.RedisConfig.CacheTTL <= 0 {
		c.RedisConfig.CacheTTL = 300
	}
	if c.RedisConfig.WorkerNum <= 0 {
		c.RedisConfig.WorkerNum = 4
	}
	if c.RedisConfig.TaskBuffer <= 0 {
		c.RedisConfig.TaskBuffer = 1000
	}
	if c.DatabaseConfig.Driver == "postgres" && c.DatabaseConfig.SSLMode == "" {
		c.DatabaseConfig.SSLMode = "disable"
	}
}
