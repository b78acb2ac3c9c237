package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Config holds everything the process needs at startup. Secrets come from the
// environment only; there are no in-source fallbacks for SECRET_KEY or
// JWT_SECRET, so the process refuses to start without them.
type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	// SecretKey keys the customer-name obfuscation.
	SecretKey string
	JWTSecret string

	LogPath  string
	LogLevel string

	ReportWindowDays int
}

// Load reads .env (when present) into the environment, then materializes the
// typed config through viper.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, relying on the process environment")
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "pencatatan_transaksi")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("REPORT_WINDOW_DAYS", 7)

	cfg := &Config{
		Port:             v.GetString("PORT"),
		DBHost:           v.GetString("DB_HOST"),
		DBUser:           v.GetString("DB_USER"),
		DBPassword:       v.GetString("DB_PASSWORD"),
		DBName:           v.GetString("DB_NAME"),
		DBPort:           v.GetString("DB_PORT"),
		DBSSLMode:        v.GetString("DB_SSLMODE"),
		SecretKey:        v.GetString("SECRET_KEY"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		LogPath:          v.GetString("LOG_PATH"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		ReportWindowDays: v.GetInt("REPORT_WINDOW_DAYS"),
	}

	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET is not set")
	}
	if cfg.ReportWindowDays < 1 {
		return nil, errors.New("REPORT_WINDOW_DAYS must be >= 1")
	}

	return cfg, nil
}

// DSN builds a connection string accepted by both the GORM postgres driver and
// the lib/pq listener.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
