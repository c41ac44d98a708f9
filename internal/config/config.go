package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	AppPort string

	DBDriver      string
	DBAutoMigrate bool

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	SQLitePath string

	RedisAddr string
	RedisDB   int

	IdempEnabled bool
	IdempTTLSecs int

	LogLevel    string
	CORSOrigins string

	SignoffRateLimit float64
	SignoffRateBurst int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getint(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

func Load() *Config {
	c := &Config{
		AppPort:       getenv("APP_PORT", "8080"),
		DBDriver:      strings.ToLower(getenv("DB_DRIVER", "mysql")),
		DBAutoMigrate: true,

		MySQLHost: getenv("MYSQL_HOST", "mysql"),
		MySQLPort: getenv("MYSQL_PORT", "3306"),
		MySQLDB:   getenv("MYSQL_DB", "seatime"),
		MySQLUser: getenv("MYSQL_USER", "seatime"),
		MySQLPass: getenv("MYSQL_PASS", "seatime"),

		SQLitePath: getenv("SQLITE_PATH", "seatime.db"),

		RedisAddr:    getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:      getint("REDIS_DB", 0),
		IdempEnabled: true,
		IdempTTLSecs: getint("IDEMPOTENCY_TTL_SECONDS", 300),

		LogLevel:    getenv("LOG_LEVEL", "info"),
		CORSOrigins: getenv("CORS_ORIGINS", "*"),

		SignoffRateLimit: 5,
		SignoffRateBurst: getint("SIGNOFF_RATE_BURST", 10),
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.DBAutoMigrate = b
		}
	}
	if v := os.Getenv("IDEMPOTENCY_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.IdempEnabled = b
		}
	}
	if v := os.Getenv("SIGNOFF_RATE_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.SignoffRateLimit = f
		}
	}
	return c
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.IdempEnabled && c.RedisAddr == "" {
		return errors.New("missing REDIS_ADDR (or set IDEMPOTENCY_ENABLED=false)")
	}
	if c.IdempEnabled && c.IdempTTLSecs <= 0 {
		return fmt.Errorf("IDEMPOTENCY_TTL_SECONDS must be positive, got %d", c.IdempTTLSecs)
	}
	if c.SignoffRateLimit > 0 && c.SignoffRateBurst <= 0 {
		return errors.New("SIGNOFF_RATE_BURST must be positive when SIGNOFF_RATE_LIMIT is set")
	}
	return nil
}

func (c *Config) IdempotencyTTL() time.Duration { return time.Duration(c.IdempTTLSecs) * time.Second }

func (c *Config) Debug() bool { return strings.EqualFold(c.LogLevel, "debug") }

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.SQLitePath
	}
	// parseTime needed for DATETIME/DATE; loc=UTC keeps expiry comparisons in one zone
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}
