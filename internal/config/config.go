package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"maintenance-gate/pkg/utils"
)

// Settings backends
const (
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
	BackendMemory   = "memory"
)

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	ConnectTimeout  string
	Debug           bool
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// DSN builds the postgres connection string
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s connect_timeout=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		c.Host, c.ConnectTimeout, c.User, c.Password, c.Name, c.Port, c.SSLMode, c.TimeZone)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type Config struct {
	ListenPort    string
	LogLevel      string
	SessionSecret string
	CSRFSecret    string
	CSRFLifetime  time.Duration
	AllowOrigins  []string
	// CookieSecure defaults to true. Browsers then drop the session cookie
	// on plain HTTP, so local setups without TLS need COOKIE_SECURE=false.
	CookieSecure    bool
	CookieSameSite  string
	SettingsBackend string
	UpstreamURL     string
	SiteURL         string
	RetryAfter      string
	AdminUsername   string
	AdminPassword   string
	NotifyEmail     string
	// CookieSecureDefaulted is true when COOKIE_SECURE was not set
	CookieSecureDefaulted bool
	DB                    DBConfig
	Redis                 RedisConfig
	SMTP                  SMTPConfig
}

// Load reads the configuration from the environment.
// SESSION_SECRET is required; everything else has a default.
func Load() (*Config, error) {
	sessionSecret := utils.MustGetEnv("SESSION_SECRET")

	var allowOrigins []string
	if err := json.Unmarshal([]byte(utils.GetEnv("ALLOW_ORIGINS", "[]")), &allowOrigins); err != nil {
		return nil, fmt.Errorf("failed to parse ALLOW_ORIGINS: %w", err)
	}

	cfg := &Config{
		ListenPort:            utils.GetEnv("LISTEN_PORT", "8080"),
		LogLevel:              utils.GetEnv("LOG_LEVEL", "info"),
		SessionSecret:         sessionSecret,
		CSRFSecret:            utils.GetEnv("CSRF_SECRET", sessionSecret),
		CSRFLifetime:          parseDuration(utils.GetEnv("CSRF_LIFETIME", "24h"), 24*time.Hour),
		AllowOrigins:          allowOrigins,
		CookieSecure:          utils.GetEnvBool("COOKIE_SECURE", true),
		CookieSecureDefaulted: os.Getenv("COOKIE_SECURE") == "",
		CookieSameSite:        utils.GetEnv("COOKIE_SAMESITE", "Lax"),
		SettingsBackend:       utils.GetEnv("SETTINGS_BACKEND", BackendPostgres),
		UpstreamURL:           utils.GetEnv("UPSTREAM_URL", ""),
		SiteURL:               utils.GetEnv("SITE_URL", ""),
		RetryAfter:            utils.GetEnv("RETRY_AFTER", ""),
		AdminUsername:         utils.GetEnv("ADMIN_USERNAME", "admin"),
		AdminPassword:         utils.GetEnv("ADMIN_PASSWORD", ""),
		NotifyEmail:           utils.GetEnv("NOTIFY_EMAIL", ""),
		DB: DBConfig{
			Host:            utils.GetEnv("DB_HOST", "localhost"),
			Port:            utils.GetEnv("DB_PORT", "5432"),
			User:            utils.GetEnv("DB_USER", "postgres"),
			Password:        utils.GetEnv("DB_PASSWORD", ""),
			Name:            utils.GetEnv("DB_NAME", "maintenance"),
			SSLMode:         utils.GetEnv("DB_SSLMODE", "disable"),
			TimeZone:        utils.GetEnv("DB_TIMEZONE", "UTC"),
			ConnectTimeout:  utils.GetEnv("DB_CONN_TIMEOUT", "10"),
			Debug:           utils.GetEnvBool("DB_DEBUG", false),
			MaxOpenConns:    utils.GetEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    utils.GetEnvInt("DB_MAX_IDLE_CONNS", 10),
			ConnMaxLifetime: parseDuration(utils.GetEnv("DB_CONN_MAX_LIFETIME", "5m"), 5*time.Minute),
			ConnMaxIdleTime: parseDuration(utils.GetEnv("DB_CONN_MAX_IDLE_TIME", "10m"), 10*time.Minute),
		},
		Redis: RedisConfig{
			Addr:     utils.GetEnv("REDIS_ADDR", "localhost:6379"),
			Password: utils.GetEnv("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
			Prefix:   utils.GetEnv("REDIS_PREFIX", "maintenance"),
		},
		SMTP: SMTPConfig{
			Host:     utils.GetEnv("SMTP_HOST", ""),
			Port:     utils.GetEnvInt("SMTP_PORT", 587),
			User:     utils.GetEnv("SMTP_USER", ""),
			Password: utils.GetEnv("SMTP_PASS", ""),
			From:     utils.GetEnv("SMTP_FROM", ""),
		},
	}

	switch cfg.SettingsBackend {
	case BackendPostgres, BackendRedis, BackendMemory:
	default:
		return nil, fmt.Errorf("unknown SETTINGS_BACKEND %q", cfg.SettingsBackend)
	}

	return cfg, nil
}

// NotificationsEnabled reports whether toggle emails should be sent
func (c *Config) NotificationsEnabled() bool {
	return c.NotifyEmail != "" && c.SMTP.Host != "" && c.SMTP.From != ""
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
