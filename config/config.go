// Package config loads client configuration from an optional YAML file
// with environment overrides. Everything has a sane default so the
// demo runs with no file at all.
package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" envconfig:"API_BASE_URL"`
	Timeout time.Duration `mapstructure:"timeout" envconfig:"API_TIMEOUT"`
}

type StorageConfig struct {
	// RedisURL switches the persisted store from in-memory to redis.
	RedisURL string        `mapstructure:"redis_url" envconfig:"REDIS_URL"`
	Prefix   string        `mapstructure:"prefix" envconfig:"STORAGE_PREFIX"`
	TTL      time.Duration `mapstructure:"ttl" envconfig:"STORAGE_TTL"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" envconfig:"LOG_LEVEL"`
	Pretty bool   `mapstructure:"pretty" envconfig:"LOG_PRETTY"`
}

type MockAPIConfig struct {
	Port        int           `mapstructure:"port" envconfig:"MOCKAPI_PORT"`
	JWTSecret   string        `mapstructure:"jwt_secret" envconfig:"MOCKAPI_JWT_SECRET"`
	TokenExpiry time.Duration `mapstructure:"token_expiry" envconfig:"MOCKAPI_TOKEN_EXPIRY"`
	RateLimit   struct {
		Enabled bool    `mapstructure:"enabled" envconfig:"MOCKAPI_RATELIMIT_ENABLED"`
		RPS     float64 `mapstructure:"rps" envconfig:"MOCKAPI_RATELIMIT_RPS"`
		Burst   int     `mapstructure:"burst" envconfig:"MOCKAPI_RATELIMIT_BURST"`
	} `mapstructure:"rate_limit"`
}

type Config struct {
	API     APIConfig     `mapstructure:"api"`
	Storage StorageConfig `mapstructure:"storage"`
	Log     LogConfig     `mapstructure:"log"`
	MockAPI MockAPIConfig `mapstructure:"mockapi"`
}

func defaults() *Config {
	cfg := &Config{}
	cfg.API.BaseURL = "http://localhost:8084"
	cfg.API.Timeout = 15 * time.Second
	cfg.Log.Level = "info"
	cfg.Log.Pretty = true
	cfg.MockAPI.Port = 8084
	cfg.MockAPI.TokenExpiry = 24 * time.Hour
	cfg.MockAPI.RateLimit.RPS = 50
	cfg.MockAPI.RateLimit.Burst = 100
	return cfg
}

// Load reads config.yml from the working directory or ./config, then
// applies DENTABOOK_* environment overrides. A missing file is fine.
func Load() (*Config, error) {
	cfg := defaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := viper.Unmarshal(cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	if err := envconfig.Process("dentabook", cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment overrides: %w", err)
	}
	return cfg, nil
}
