package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/config"
)

// Connect opens the GORM connection. Migrations live in Migrate and run from
// cmd/migrate, never implicitly on API startup.
func Connect(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	log.Info("database connection successful")
	return db, nil
}
