package logger

import (
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/config"
)

// Setup configures the global logrus logger. With LOG_PATH set, output goes to
// a rotated file; otherwise it stays on stderr for development.
func Setup(cfg *config.Config) {
	if cfg.LogPath != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogPath,
			MaxSize:    32, // megabytes
			MaxBackups: 2,
			MaxAge:     28, // days
			Compress:   true,
		})
	}

	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("unknown log level %q, falling back to info", cfg.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)

	log.SetFormatter(&log.TextFormatter{
		PadLevelText:    true,
		DisableColors:   true,
		TimestampFormat: time.DateTime,
	})
}
