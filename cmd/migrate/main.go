package main

import (
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/config"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/database"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logger.Setup(cfg)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}

	if err := database.Migrate(db, os.Getenv("ADMIN_USERNAME"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	log.Info("migration complete")
}
