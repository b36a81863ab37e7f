package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Database struct {
		Primary struct {
			DSN string `mapstructure:"dsn"`
		} `mapstructure:"primary"`
	} `mapstructure:"database"`

	Redis struct {
		Address  string `mapstructure:"address"`
		Password string `mapstructure:"password"`
		DB       int    `mapstructure:"db"`
	} `mapstructure:"redis"`

	Worker struct {
		Concurrency int            `mapstructure:"concurrency"`
		Queues      map[string]int `mapstructure:"queues"`
	} `mapstructure:"worker"`

	Server struct {
		Addr string `mapstructure:"addr"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"server"`

	// Categorization tunes the suggestion engine and the auto-assign batch.
	Categorization struct {
		VisibilityThreshold float64 `mapstructure:"visibility_threshold"`
		AutoAssignThreshold float64 `mapstructure:"auto_assign_threshold"`
		ReviewSuggestions   int     `mapstructure:"review_suggestions"`
		HistorySize         int     `mapstructure:"history_size"`
		BatchLimit          int     `mapstructure:"batch_limit"` // 0 means no cap
	} `mapstructure:"categorization"`

	Log struct {
		Level  string `mapstructure:"level"`
		Format string `mapstructure:"format"` // "text" or "json"
	} `mapstructure:"log"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("redis.address", "localhost:6379")
	v.SetDefault("redis.db", 0)
	v.SetDefault("worker.concurrency", 5)
	v.SetDefault("worker.queues", map[string]int{"categorization": 5, "default": 1})
	v.SetDefault("server.addr", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("categorization.visibility_threshold", 0.3)
	v.SetDefault("categorization.auto_assign_threshold", 0.8)
	v.SetDefault("categorization.review_suggestions", 3)
	v.SetDefault("categorization.history_size", 10)
	v.SetDefault("categorization.batch_limit", 50)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// LoadConfig reads config.yaml from the working directory, then FOLIO_* environment variables.
func LoadConfig() (*Config, error) {
	return load(viper.GetViper(), ".")
}

func load(v *viper.Viper, configPath string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configPath)

	setDefaults(v)

	// --- Environment Variable Binding ---
	// database.primary.dsn -> FOLIO_DATABASE_PRIMARY_DSN
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Conventional unprefixed names used by most deployments.
	_ = v.BindEnv("database.primary.dsn", "FOLIO_DATABASE_PRIMARY_DSN", "DATABASE_URL")
	_ = v.BindEnv("redis.address", "FOLIO_REDIS_ADDRESS", "REDIS_ADDR")

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults and env vars still apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}
	return &config, nil
}
