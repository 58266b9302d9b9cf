// Package config loads service configuration from file and environment so
// main stays lean.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full service configuration.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Store    Store    `mapstructure:"store"`
	Redis    Redis    `mapstructure:"redis"`
	Postgres Postgres `mapstructure:"postgres"`
	Provider Provider `mapstructure:"provider"`
	JWT      JWT      `mapstructure:"jwt"`
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `mapstructure:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Store selects and tunes the journey keystore backend.
type Store struct {
	// Backend is one of "memory", "redis", "postgres".
	Backend string        `mapstructure:"backend"`
	TTL     time.Duration `mapstructure:"ttl"`
}

// Redis configures the redis keystore backend.
type Redis struct {
	URL          string        `mapstructure:"url"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Postgres configures the postgres keystore backend.
type Postgres struct {
	URL string `mapstructure:"url"`
}

// Provider configures the upstream address lookup API.
type Provider struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// JWT configures caller authentication for the journey API.
type JWT struct {
	SigningKey string `mapstructure:"signing_key"`
	Issuer     string `mapstructure:"issuer"`
	Audience   string `mapstructure:"audience"`
}

// Load reads config from an optional config.yaml in path, then lets
// ADDRESSFINDER_* environment variables override individual keys
// (e.g. ADDRESSFINDER_SERVER_ADDR).
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)

	v.SetEnvPrefix("addressfinder")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine; defaults plus env carry the service.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)

	v.SetDefault("store.backend", "memory")
	v.SetDefault("store.ttl", 30*time.Minute)

	// Empty-string defaults keep env-only keys visible to Unmarshal.
	v.SetDefault("redis.url", "")
	v.SetDefault("postgres.url", "")

	v.SetDefault("redis.pool_size", 10)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", 5*time.Second)
	v.SetDefault("redis.read_timeout", 3*time.Second)
	v.SetDefault("redis.write_timeout", 3*time.Second)

	v.SetDefault("provider.base_url", "http://localhost:9022")
	v.SetDefault("provider.timeout", 10*time.Second)

	v.SetDefault("jwt.signing_key", "dev-secret-key-change-in-production")
	v.SetDefault("jwt.issuer", "addressfinder")
	v.SetDefault("jwt.audience", "addressfinder-api")
}
