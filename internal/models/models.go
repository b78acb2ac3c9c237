package models

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// ==========================================
// MENU
// ==========================================

type Category string

const (
	CategoryMakanan  Category = "makanan"
	CategoryMinuman  Category = "minuman"
	CategoryTambahan Category = "tambahan"
)

// MenuItem is a catalog entry. Prices are rupiah, no minor unit.
// The order flow never mutates the catalog; changes come from the admin area only.
type MenuItem struct {
	ID        string    `gorm:"primaryKey;size:16" json:"id"`
	Name      string    `gorm:"not null;unique" json:"name"`
	Price     int       `gorm:"not null" json:"price"`
	Category  Category  `gorm:"type:varchar(20);not null" json:"category"`
	CreatedAt time.Time `gorm:"default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:now()" json:"updated_at"`
}

// OrderLine is one line of an order: a menu item snapshot and how many of it.
// It lives inside Transaction.Items as JSON, never as its own table, so a later
// price change on the catalog cannot rewrite a recorded sale.
type OrderLine struct {
	MenuItem MenuItem `json:"menuItem"`
	Quantity int      `json:"quantity"`
}

// ==========================================
// POS & TRANSACTIONS
// ==========================================

type PaymentMethod string

const (
	PaymentTunai    PaymentMethod = "tunai"
	PaymentTransfer PaymentMethod = "transfer"
)

func (p PaymentMethod) Valid() bool {
	return p == PaymentTunai || p == PaymentTransfer
}

// Transaction is immutable once written: Total is computed at submit time and
// stored as-is. CustomerName holds ciphertext at rest; the store decrypts it on
// every read so callers only ever see the plaintext (or nil).
type Transaction struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Items         datatypes.JSON `gorm:"not null" json:"items"`
	Total         int            `gorm:"not null" json:"total"`
	PaymentMethod PaymentMethod  `gorm:"type:varchar(20);not null" json:"payment_method"`
	CustomerName  *string        `json:"customer_name,omitempty"`
	CreatedAt     time.Time      `gorm:"default:now()" json:"created_at"`
}

var ErrMalformedItems = errors.New("malformed transaction items")

// DecodeItems parses the stored items column. Stored data is not trusted: a
// line with an empty menu item id, a non-positive quantity or a negative price
// marks the whole column malformed.
func (t *Transaction) DecodeItems() ([]OrderLine, error) {
	var lines []OrderLine
	if err := json.Unmarshal(t.Items, &lines); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedItems, err)
	}
	for _, line := range lines {
		if line.MenuItem.ID == "" || line.Quantity < 1 || line.MenuItem.Price < 0 {
			return nil, fmt.Errorf("%w: bad line for item %q", ErrMalformedItems, line.MenuItem.ID)
		}
	}
	return lines, nil
}

// ==========================================
// DERIVED REPORTS (computed per read, never persisted)
// ==========================================

type CustomerRollup struct {
	Name              string          `json:"name"`
	TotalTransactions int             `json:"total_transactions"`
	TotalSpent        int             `json:"total_spent"`
	LastTransactionAt time.Time       `json:"last_transaction_at"`
	PaymentMethods    []PaymentMethod `json:"payment_methods"`
}

type DailyRollup struct {
	Date             string `json:"date"` // YYYY-MM-DD, local time
	Revenue          int    `json:"revenue"`
	TransactionCount int    `json:"transaction_count"`
}

type Summary struct {
	TotalRevenue      int `json:"total_revenue"`
	TotalTransactions int `json:"total_transactions"`
	TotalCustomers    int `json:"total_customers"`
	TodayRevenue      int `json:"today_revenue"`
	TodayTransactions int `json:"today_transactions"`
}

// ==========================================
// AUTH & USERS
// ==========================================

type Role string

const (
	RoleAdmin Role = "admin"
	RoleKasir Role = "kasir"
)

type User struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"not null;unique" json:"username"`

	// Column is password_hash in the DB; json:"-" keeps the hash out of responses.
	Password string `gorm:"column:password_hash;not null" json:"-"`

	Role Role `gorm:"type:varchar(20);not null" json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string `json:"token"`
	Role  Role   `json:"role"`
}
