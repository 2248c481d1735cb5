package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Supported database dialects, derived from the DATABASE_URL scheme.
const (
	DialectPostgres = "postgres"
	DialectMySQL    = "mysql"
	DialectSQLite   = "sqlite"
)

type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	Mode           string   `mapstructure:"mode"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

func (s *ServerConfig) GetAddr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	URL                 string `mapstructure:"url"`
	MaxIdleConns        int    `mapstructure:"max_idle_conns"`
	MaxOpenConns        int    `mapstructure:"max_open_conns"`
	ConnMaxLifetimeMins int    `mapstructure:"conn_max_lifetime_mins"`
}

// Dialect derives the gorm dialect from the URL scheme.
func (d *DatabaseConfig) Dialect() string {
	switch {
	case strings.HasPrefix(d.URL, "postgres://"), strings.HasPrefix(d.URL, "postgresql://"):
		return DialectPostgres
	case strings.HasPrefix(d.URL, "mysql://"):
		return DialectMySQL
	case strings.HasPrefix(d.URL, "sqlite://"), strings.HasPrefix(d.URL, "file:"):
		return DialectSQLite
	default:
		return DialectPostgres
	}
}

// DSN returns the driver-ready connection string. Postgres drivers accept the
// URL form directly; MySQL needs the user:pass@tcp(host)/db form; SQLite wants
// a bare path (or file: URI).
func (d *DatabaseConfig) DSN() (string, error) {
	switch d.Dialect() {
	case DialectPostgres:
		return d.URL, nil
	case DialectMySQL:
		u, err := url.Parse(d.URL)
		if err != nil {
			return "", fmt.Errorf("invalid database url: %w", err)
		}
		pass, _ := u.User.Password()
		dsn := fmt.Sprintf("%s:%s@tcp(%s)/%s", u.User.Username(), pass, u.Host, strings.TrimPrefix(u.Path, "/"))
		if u.RawQuery != "" {
			dsn += "?" + u.RawQuery
		} else {
			dsn += "?charset=utf8mb4&parseTime=True&loc=UTC"
		}
		return dsn, nil
	case DialectSQLite:
		if strings.HasPrefix(d.URL, "sqlite://") {
			return strings.TrimPrefix(d.URL, "sqlite://"), nil
		}
		return d.URL, nil
	}
	return "", fmt.Errorf("unsupported database url %q", d.URL)
}

func (d *DatabaseConfig) ConnMaxLifetime() time.Duration {
	return time.Duration(d.ConnMaxLifetimeMins) * time.Minute
}

type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type PasswordConfig struct {
	BcryptCost int `mapstructure:"bcrypt_cost"`
}

type JWTConfig struct {
	Secret           string `mapstructure:"secret"`
	AccessExpMinutes int    `mapstructure:"access_exp_minutes"`
	RefreshExpDays   int    `mapstructure:"refresh_exp_days"`
}

// LoginGuardConfig controls the account lockout applied after repeated
// failed logins.
type LoginGuardConfig struct {
	MaxFailures    int `mapstructure:"max_failures"`
	LockoutMinutes int `mapstructure:"lockout_minutes"`
}

func (l *LoginGuardConfig) LockoutDuration() time.Duration {
	return time.Duration(l.LockoutMinutes) * time.Minute
}

// CookieConfig controls how auth cookies are written.
type CookieConfig struct {
	Domain   string `mapstructure:"domain"`
	Path     string `mapstructure:"path"`
	Secure   bool   `mapstructure:"secure"`
	SameSite string `mapstructure:"same_site"`
}

type AuthConfig struct {
	Password PasswordConfig   `mapstructure:"password"`
	JWT      JWTConfig        `mapstructure:"jwt"`
	Login    LoginGuardConfig `mapstructure:"login"`
	Cookie   CookieConfig     `mapstructure:"cookie"`
}

// ServiceConfig drives the reconciliation worker. IntervalSeconds and
// UpdatesLookbackHours map to the SERVICE_INTERVAL and UPDATES_LOOKBACK_HOURS
// environment variables.
type ServiceConfig struct {
	IntervalSeconds      int    `mapstructure:"interval_seconds"`
	UpdatesLookbackHours int    `mapstructure:"updates_lookback_hours"`
	TelegramAPIHost      string `mapstructure:"telegram_api_host"`
	PollTimeoutSeconds   int    `mapstructure:"poll_timeout_seconds"`
}

func (s *ServiceConfig) Interval() time.Duration {
	return time.Duration(s.IntervalSeconds) * time.Second
}

func (s *ServiceConfig) UpdatesLookback() time.Duration {
	return time.Duration(s.UpdatesLookbackHours) * time.Hour
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
