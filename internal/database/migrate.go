package database

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/middleware"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/realtime"
)

// Migrate creates the schema, installs the change-notification trigger and
// seeds the fixed menu catalog plus the initial admin account.
func Migrate(db *gorm.DB, adminUsername, adminPassword string) error {
	if err := db.AutoMigrate(&models.MenuItem{}, &models.Transaction{}, &models.User{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("schema migrated")

	if err := installNotifyTrigger(db); err != nil {
		return fmt.Errorf("install trigger: %w", err)
	}
	log.Info("change-notification trigger installed")

	if err := seedMenu(db); err != nil {
		return fmt.Errorf("seed menu: %w", err)
	}

	if err := seedAdmin(db, adminUsername, adminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	return nil
}

// installNotifyTrigger makes Postgres fire a payload-less NOTIFY on every
// change to the transactions table, regardless of which client caused it.
// Statement-level is enough: subscribers re-read the whole log anyway.
func installNotifyTrigger(db *gorm.DB) error {
	statements := []string{
		fmt.Sprintf(`
			CREATE OR REPLACE FUNCTION notify_transactions_changed() RETURNS trigger AS $$
			BEGIN
				PERFORM pg_notify('%s', '');
				RETURN NULL;
			END;
			$$ LANGUAGE plpgsql;`, realtime.Channel),
		`DROP TRIGGER IF EXISTS transactions_notify ON transactions;`,
		`CREATE TRIGGER transactions_notify
			AFTER INSERT OR UPDATE OR DELETE ON transactions
			FOR EACH STATEMENT EXECUTE FUNCTION notify_transactions_changed();`,
	}

	for _, stmt := range statements {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}

// seedMenu loads the warung's fixed catalog. Existing rows are left alone so
// admin price edits survive re-running the migration.
func seedMenu(db *gorm.DB) error {
	catalog := []models.MenuItem{
		// Makanan
		{ID: "1", Name: "Nasi Putih", Price: 5000, Category: models.CategoryMakanan},
		{ID: "2", Name: "Nasi Ayam Goreng", Price: 18000, Category: models.CategoryMakanan},
		{ID: "3", Name: "Nasi Ayam Bakar", Price: 20000, Category: models.CategoryMakanan},
		{ID: "4", Name: "Nasi Rendang", Price: 22000, Category: models.CategoryMakanan},
		{ID: "5", Name: "Nasi Ikan Goreng", Price: 17000, Category: models.CategoryMakanan},
		{ID: "6", Name: "Nasi Telur Dadar", Price: 12000, Category: models.CategoryMakanan},
		{ID: "7", Name: "Nasi Sayur Asem", Price: 10000, Category: models.CategoryMakanan},
		{ID: "8", Name: "Nasi Gudeg", Price: 18000, Category: models.CategoryMakanan},

		// Minuman
		{ID: "9", Name: "Es Teh Manis", Price: 5000, Category: models.CategoryMinuman},
		{ID: "10", Name: "Es Jeruk", Price: 7000, Category: models.CategoryMinuman},
		{ID: "11", Name: "Teh Hangat", Price: 4000, Category: models.CategoryMinuman},
		{ID: "12", Name: "Kopi Hitam", Price: 5000, Category: models.CategoryMinuman},
		{ID: "13", Name: "Es Kelapa Muda", Price: 10000, Category: models.CategoryMinuman},

		// Tambahan
		{ID: "14", Name: "Kerupuk", Price: 2000, Category: models.CategoryTambahan},
		{ID: "15", Name: "Sambal Extra", Price: 3000, Category: models.CategoryTambahan},
		{ID: "16", Name: "Lalapan", Price: 5000, Category: models.CategoryTambahan},
		{ID: "17", Name: "Tempe Goreng", Price: 4000, Category: models.CategoryTambahan},
		{ID: "18", Name: "Tahu Goreng", Price: 4000, Category: models.CategoryTambahan},
	}

	for _, item := range catalog {
		var existing models.MenuItem
		err := db.Where("id = ?", item.ID).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}
		if err := db.Create(&item).Error; err != nil {
			return err
		}
	}

	log.Infof("menu catalog seeded (%d items)", len(catalog))
	return nil
}

func seedAdmin(db *gorm.DB, username, password string) error {
	if username == "" || password == "" {
		log.Warn("ADMIN_USERNAME/ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	var existing models.User
	if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
		return nil
	} else if err != gorm.ErrRecordNotFound {
		return err
	}

	hashed, err := middleware.HashPassword(password)
	if err != nil {
		return err
	}

	if err := db.Create(&models.User{
		Username: username,
		Password: hashed,
		Role:     models.RoleAdmin,
	}).Error; err != nil {
		return err
	}

	log.Infof("admin user %q seeded", username)
	return nil
}
