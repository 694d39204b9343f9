package config

import (
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port        string
	HTTPPort    string
	Framing     string
	AdvisorSeed int64
	ThinkDelay  time.Duration
	ReadTimeout time.Duration
	LogPath     string

	DatabaseURL          string
	DBDriver             string
	DBMaxOpenConns       int
	DBMaxIdleConns       int
	DBConnMaxLifetimeMin int

	RedisURL      string
	RedisPassword string
	SnapshotTTL   time.Duration

	CleanupInterval  time.Duration
	HistoryRetention time.Duration
	AllowedOrigins   []string
}

var AppConfig *Config

func LoadConfig() *Config {
	// Database Config
	// Append simple_protocol for PgBouncer compatibility (pgx driver)
	dbDriver := GetEnv("DB_DRIVER", "pgx")
	dbURL := GetEnv("DATABASE_URL", "")
	if dbURL != "" && dbDriver == "pgx" {
		if u, err := url.Parse(dbURL); err == nil && u.Scheme != "" {
			q := u.Query()
			if q.Get("default_query_exec_mode") == "" {
				q.Set("default_query_exec_mode", "simple_protocol")
				u.RawQuery = q.Encode()
				dbURL = u.String()
			}
		}
	}

	AppConfig = &Config{
		Port:        GetEnv("PORT", "5000"),
		HTTPPort:    os.Getenv("HTTP_PORT"),
		Framing:     GetEnv("WIRE_FRAMING", "raw"),
		AdvisorSeed: int64(GetEnvAsInt("ADVISOR_SEED", 876545678)),
		ThinkDelay:  GetEnvAsDuration("THINK_DELAY_MS", 1000, time.Millisecond),
		ReadTimeout: GetEnvAsDuration("READ_TIMEOUT_SECONDS", 300, time.Second),
		LogPath:     GetEnv("SESSION_LOG_PATH", "log.txt"),

		DatabaseURL:          dbURL,
		DBDriver:             dbDriver,
		DBMaxOpenConns:       GetEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:       GetEnvAsInt("DB_MAX_IDLE_CONNS", 25),
		DBConnMaxLifetimeMin: GetEnvAsInt("DB_CONN_MAX_LIFETIME_MINUTES", 5),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisPassword: GetEnv("REDIS_PASSWORD", ""),
		SnapshotTTL:   GetEnvAsDuration("SNAPSHOT_TTL_SECONDS", 3600, time.Second),

		CleanupInterval:  GetEnvAsDuration("CLEANUP_INTERVAL_MINUTES", 60, time.Minute),
		HistoryRetention: GetEnvAsDuration("HISTORY_RETENTION_DAYS", 30, 24*time.Hour),
		AllowedOrigins:   splitList(GetEnv("ALLOWED_ORIGINS", "")),
	}

	// an explicitly empty HTTP_PORT disables the side-car
	if _, ok := os.LookupEnv("HTTP_PORT"); !ok {
		AppConfig.HTTPPort = "8080"
	}

	return AppConfig
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func GetEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func GetEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid integer value for %s: %s, using default: %d", key, valueStr, defaultValue)
		return defaultValue
	}
	return value
}

// GetEnvAsDuration reads an integer count of unit.
func GetEnvAsDuration(key string, defaultValue int, unit time.Duration) time.Duration {
	return time.Duration(GetEnvAsInt(key, defaultValue)) * unit
}
