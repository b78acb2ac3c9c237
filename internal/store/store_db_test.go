package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/secure"
)

// openTestDB gives each test its own in-memory database. The transactions
// table is created by hand because the Postgres column defaults in the model
// tags do not translate to SQLite.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	if err := db.Exec(`CREATE TABLE transactions (
		id integer PRIMARY KEY AUTOINCREMENT,
		items text NOT NULL,
		total integer NOT NULL,
		payment_method text NOT NULL,
		customer_name text,
		created_at datetime
	)`).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}
	return db
}

func dbStore(t *testing.T) (*Store, *gorm.DB) {
	t.Helper()
	codec, err := secure.NewCodec("unit-test-secret")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	db := openTestDB(t)
	return New(db, codec), db
}

func TestCreateThenListRoundTrip(t *testing.T) {
	s, db := dbStore(t)
	ctx := context.Background()

	lines := []models.OrderLine{
		line("1", 5000, 2),
		line("9", 5000, 1),
	}

	created, err := s.Create(ctx, lines, models.PaymentTunai, "Budi")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.Total != 15000 {
		t.Errorf("Total = %d, want 15000", created.Total)
	}
	if created.CustomerName == nil || *created.CustomerName != "Budi" {
		t.Errorf("returned name = %v, want Budi", created.CustomerName)
	}

	// At rest the name must be ciphertext, never plaintext.
	var raw models.Transaction
	if err := db.First(&raw, created.ID).Error; err != nil {
		t.Fatalf("read raw row: %v", err)
	}
	if raw.CustomerName == nil || *raw.CustomerName == "Budi" {
		t.Error("customer name stored in plaintext")
	}

	listed, err := s.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("list length = %d, want 1", len(listed))
	}
	if listed[0].CustomerName == nil || *listed[0].CustomerName != "Budi" {
		t.Errorf("listed name = %v, want Budi", listed[0].CustomerName)
	}

	got, err := listed[0].DecodeItems()
	if err != nil {
		t.Fatalf("DecodeItems: %v", err)
	}
	if len(got) != 2 || got[0].MenuItem.ID != "1" || got[0].Quantity != 2 || got[1].MenuItem.ID != "9" || got[1].Quantity != 1 {
		t.Errorf("items = %+v", got)
	}
}

func TestListOrdersNewestFirst(t *testing.T) {
	s, db := dbStore(t)

	older := models.Transaction{Items: []byte("[]"), Total: 1000, PaymentMethod: models.PaymentTunai, CreatedAt: time.Now().Add(-time.Hour)}
	newer := models.Transaction{Items: []byte("[]"), Total: 2000, PaymentMethod: models.PaymentTransfer, CreatedAt: time.Now()}
	for _, tx := range []*models.Transaction{&older, &newer} {
		if err := db.Create(tx).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	listed, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 || listed[0].Total != 2000 || listed[1].Total != 1000 {
		t.Errorf("order wrong: %+v", listed)
	}
}

func TestDeleteUnknownID(t *testing.T) {
	s, _ := dbStore(t)
	ctx := context.Background()

	if err := s.Delete(ctx, 12345); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for absent id, got %v", err)
	}

	created, err := s.Create(ctx, []models.OrderLine{line("1", 5000, 1)}, models.PaymentTunai, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := s.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	// The second delete of the same id reports NotFound again, consistently.
	if err := s.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on repeat delete, got %v", err)
	}
}

func TestListDegradesUndecryptableName(t *testing.T) {
	s, db := dbStore(t)

	otherCodec, err := secure.NewCodec("some-other-key")
	if err != nil {
		t.Fatalf("NewCodec: %v", err)
	}
	wrongKey, err := otherCodec.Encrypt("Budi")
	if err != nil {
		t.Fatalf("Encrypt: %v", err)
	}
	garbage := "not-real-ciphertext"

	rows := []models.Transaction{
		{Items: []byte("[]"), Total: 7000, PaymentMethod: models.PaymentTunai, CustomerName: &wrongKey, CreatedAt: time.Now()},
		{Items: []byte("[]"), Total: 3000, PaymentMethod: models.PaymentTransfer, CustomerName: &garbage, CreatedAt: time.Now().Add(-time.Minute)},
	}
	for i := range rows {
		if err := db.Create(&rows[i]).Error; err != nil {
			t.Fatalf("insert: %v", err)
		}
	}

	listed, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("list length = %d, want 2: one bad name must not hide the log", len(listed))
	}
	for _, tx := range listed {
		if tx.CustomerName != nil {
			t.Errorf("record %d kept an unreadable name: %q", tx.ID, *tx.CustomerName)
		}
	}
	if listed[0].Total != 7000 || listed[1].Total != 3000 {
		t.Errorf("record data lost: %+v", listed)
	}
}

func TestListFlagsMalformedItems(t *testing.T) {
	s, db := dbStore(t)

	bad := models.Transaction{
		Items:         []byte(`[{"menuItem":{"id":"","price":-1},"quantity":0}]`),
		Total:         5000,
		PaymentMethod: models.PaymentTunai,
		CreatedAt:     time.Now(),
	}
	if err := db.Create(&bad).Error; err != nil {
		t.Fatalf("insert: %v", err)
	}

	listed, err := s.List(context.Background())
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("malformed items dropped the record: %+v", listed)
	}
	if string(listed[0].Items) != "[]" {
		t.Errorf("items = %s, want []", listed[0].Items)
	}
	if listed[0].Total != 5000 {
		t.Errorf("stored total lost: %d", listed[0].Total)
	}
}
