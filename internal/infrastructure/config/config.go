// Package config loads the application configuration from config files and
// the environment. Environment variables use the CHATWARDEN_ prefix with
// underscores (CHATWARDEN_DATABASE_URL); the deployment contract variables
// DATABASE_URL, SERVICE_INTERVAL and UPDATES_LOOKBACK_HOURS are also bound
// without the prefix.
package config

import (
	"fmt"
	"strings"
	"sync"

	"github.com/spf13/viper"

	sharedConfig "chatwarden/internal/shared/config"
)

type Config struct {
	Server   sharedConfig.ServerConfig   `mapstructure:"server"`
	Database sharedConfig.DatabaseConfig `mapstructure:"database"`
	Logger   sharedConfig.LoggerConfig   `mapstructure:"logger"`
	Auth     sharedConfig.AuthConfig     `mapstructure:"auth"`
	Service  sharedConfig.ServiceConfig  `mapstructure:"service"`
	Redis    sharedConfig.RedisConfig    `mapstructure:"redis"`
}

var (
	cfg *Config
	mu  sync.RWMutex
)

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../configs")
	v.AddConfigPath("../../configs")

	v.SetEnvPrefix("CHATWARDEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindContractEnv(v)
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	loaded := &Config{}
	if err := v.Unmarshal(loaded); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(loaded); err != nil {
		return nil, err
	}

	mu.Lock()
	cfg = loaded
	mu.Unlock()

	return loaded, nil
}

// bindContractEnv maps the unprefixed environment variables that the
// deployment contract promises. Prefixed variables take precedence.
func bindContractEnv(v *viper.Viper) {
	_ = v.BindEnv("database.url", "CHATWARDEN_DATABASE_URL", "DATABASE_URL")
	_ = v.BindEnv("service.interval_seconds", "CHATWARDEN_SERVICE_INTERVAL_SECONDS", "SERVICE_INTERVAL")
	_ = v.BindEnv("service.updates_lookback_hours", "CHATWARDEN_SERVICE_UPDATES_LOOKBACK_HOURS", "UPDATES_LOOKBACK_HOURS")
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.max_open_conns", 15)
	v.SetDefault("database.conn_max_lifetime_mins", 30)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.access_exp_minutes", 30)
	v.SetDefault("auth.jwt.refresh_exp_days", 7)
	v.SetDefault("auth.login.max_failures", 5)
	v.SetDefault("auth.login.lockout_minutes", 15)
	v.SetDefault("auth.cookie.path", "/")
	v.SetDefault("auth.cookie.secure", true)
	v.SetDefault("auth.cookie.same_site", "Lax")

	v.SetDefault("service.interval_seconds", 30)
	v.SetDefault("service.updates_lookback_hours", 24)
	v.SetDefault("service.telegram_api_host", "https://api.telegram.org")
	v.SetDefault("service.poll_timeout_seconds", 0)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.db", 0)
}

func validate(c *Config) error {
	if c.Database.URL == "" {
		return fmt.Errorf("database url is required (set DATABASE_URL)")
	}
	if _, err := c.Database.DSN(); err != nil {
		return err
	}
	if c.Service.IntervalSeconds <= 0 {
		return fmt.Errorf("service interval must be positive, got %d", c.Service.IntervalSeconds)
	}
	if c.Service.UpdatesLookbackHours <= 0 {
		return fmt.Errorf("updates lookback must be positive, got %d", c.Service.UpdatesLookbackHours)
	}
	return nil
}

func Get() *Config {
	mu.RLock()
	defer mu.RUnlock()
	if cfg == nil {
		panic("config not loaded, call config.Load() first")
	}
	return cfg
}

// Loaded reports whether Load has completed successfully.
func Loaded() bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg != nil
}
