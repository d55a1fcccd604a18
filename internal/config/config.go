package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
)

const (
	SinkPostgres = "postgres"
	SinkExcel    = "excel"
	SinkNone     = "none"
)

type Config struct {
	// Samsara API
	APIBaseURL    string
	APIAuth       string
	AlertConfigID string

	// Destination database
	SQLServer   string
	SQLDatabase string
	SQLUser     string
	SQLPassword string
	SQLSSLMode  string

	// Sinks
	Sinks     []string
	ExportDir string

	// Run lock (optional; disabled when RedisAddr is empty)
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Logging
	LogLevel  string
	LogFormat string
}

func Load() *Config {
	return &Config{
		APIBaseURL:    getEnv("SAM_API_URL", "https://api.samsara.com"),
		APIAuth:       getEnv("SAM_AUTH", ""),
		AlertConfigID: getEnv("CONFIG_ID", ""),
		SQLServer:     getEnv("SQL_SERVER", ""),
		SQLDatabase:   getEnv("SQL_DB", ""),
		SQLUser:       getEnv("SQL_USER", ""),
		SQLPassword:   getEnv("SQL_PASS", ""),
		SQLSSLMode:    getEnv("SQL_SSLMODE", "disable"),
		Sinks:         splitList(getEnv("SINKS", SinkPostgres)),
		ExportDir:     getEnv("EXPORT_DIR", "."),
		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "json"),
	}
}

// Validate fails fast at startup so a misconfigured run never reaches the
// API or the database.
func (c *Config) Validate() error {
	if c.APIAuth == "" {
		return errors.New("SAM_AUTH is required")
	}
	if c.AlertConfigID == "" {
		return errors.New("CONFIG_ID is required")
	}
	if len(c.Sinks) == 0 {
		return errors.New("SINKS must name at least one sink (postgres, excel or none)")
	}
	for _, s := range c.Sinks {
		switch s {
		case SinkPostgres, SinkExcel, SinkNone:
		default:
			return fmt.Errorf("unknown sink %q", s)
		}
	}
	if c.SinkEnabled(SinkPostgres) {
		if c.SQLServer == "" || c.SQLDatabase == "" || c.SQLUser == "" || c.SQLPassword == "" {
			return errors.New("SQL_SERVER, SQL_DB, SQL_USER and SQL_PASS are required for the postgres sink")
		}
	}
	return nil
}

func (c *Config) SinkEnabled(name string) bool {
	for _, s := range c.Sinks {
		if s == name {
			return true
		}
	}
	return false
}

func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(c.SQLUser),
		url.QueryEscape(c.SQLPassword),
		c.SQLServer,
		c.SQLDatabase,
		c.SQLSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
