package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Port              string
	Origin            string
	Environment       string
	LogLevel          string
	LogFormat         string
	SessionSecret     string
	SessionTTLMinutes int
	Database          DatabaseConfig
	Redis             RedisConfig
	StaticDocument    StaticDocumentConfig
}

// DatabaseConfig holds database connection details
type DatabaseConfig struct {
	Driver   string
	Host     string
	Port     string
	Username string
	Password string
	Name     string
	SSLMode  string
	DSN      string
}

// RedisConfig holds the session store connection. An empty Addr selects
// the in-memory session store.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StaticDocumentConfig describes where the demo JSON document lives.
type StaticDocumentConfig struct {
	Path    string
	URL     string
	Timeout time.Duration
}

// SessionTTL returns the session lifetime.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMinutes) * time.Minute
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// defaultSessionSecret signs tokens in development only.
const defaultSessionSecret = "default_session_secret"

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "3001")
	v.SetDefault("ORIGIN", "http://localhost:8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
	v.SetDefault("SESSION_SECRET", defaultSessionSecret)
	v.SetDefault("SESSION_TTL_MINUTES", "720")
	v.SetDefault("DB_DRIVER", "mysql")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USERNAME", "root")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "klinik_sentosa")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", "0")
	v.SetDefault("STATIC_DOCUMENT_PATH", "public/db.json")
	v.SetDefault("STATIC_DOCUMENT_URL", "")
	v.SetDefault("STATIC_DOCUMENT_TIMEOUT_SECONDS", "10")

	driver := strings.ToLower(v.GetString("DB_DRIVER"))
	defaultDBPort := "3306"
	switch driver {
	case "mysql":
	case "postgres":
		defaultDBPort = "5432"
	default:
		return nil, fmt.Errorf("invalid DB_DRIVER %q: expected mysql or postgres", driver)
	}
	v.SetDefault("DB_PORT", defaultDBPort)

	dbConfig := DatabaseConfig{
		Driver:   driver,
		Host:     v.GetString("DB_HOST"),
		Port:     v.GetString("DB_PORT"),
		Username: v.GetString("DB_USERNAME"),
		Password: v.GetString("DB_PASSWORD"),
		Name:     v.GetString("DB_NAME"),
		SSLMode:  v.GetString("DB_SSLMODE"),
	}
	dbConfig.DSN = buildDSN(dbConfig)

	sessionTTL, err := intSetting(v, "SESSION_TTL_MINUTES")
	if err != nil {
		return nil, err
	}
	if sessionTTL <= 0 {
		return nil, fmt.Errorf("invalid SESSION_TTL_MINUTES: must be positive")
	}

	redisDB, err := intSetting(v, "REDIS_DB")
	if err != nil {
		return nil, err
	}

	docTimeout, err := intSetting(v, "STATIC_DOCUMENT_TIMEOUT_SECONDS")
	if err != nil {
		return nil, err
	}

	environment := v.GetString("APP_ENV")
	sessionSecret := v.GetString("SESSION_SECRET")
	if environment != "development" && (sessionSecret == "" || sessionSecret == defaultSessionSecret) {
		return nil, fmt.Errorf("SESSION_SECRET must be set when APP_ENV is %q", environment)
	}

	port := v.GetString("PORT")
	docURL := v.GetString("STATIC_DOCUMENT_URL")
	if docURL == "" {
		docURL = fmt.Sprintf("http://localhost:%s/db.json", port)
	}

	return &Config{
		Port:              port,
		Origin:            v.GetString("ORIGIN"),
		Environment:       environment,
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		SessionSecret:     sessionSecret,
		SessionTTLMinutes: sessionTTL,
		Database:          dbConfig,
		Redis: RedisConfig{
			Addr:     v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		StaticDocument: StaticDocumentConfig{
			Path:    v.GetString("STATIC_DOCUMENT_PATH"),
			URL:     docURL,
			Timeout: time.Duration(docTimeout) * time.Second,
		},
	}, nil
}

// buildDSN builds the Data Source Name for the selected driver.
func buildDSN(db DatabaseConfig) string {
	if db.Driver == "postgres" {
		return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			db.Host, db.Port, db.Username, db.Password, db.Name, db.SSLMode)
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		db.Username, db.Password, db.Host, db.Port, db.Name)
}

func intSetting(v *viper.Viper, key string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
