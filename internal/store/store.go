// Package store owns the persisted transaction log: create, list (newest
// first), delete, and the at-rest obfuscation of customer names. It is the only
// code that touches the transactions table directly.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/secure"
)

var (
	// ErrEmptyOrder is returned when a submit carries no lines. No persistence
	// call is made in that case.
	ErrEmptyOrder = errors.New("order has no items")

	// ErrInvalidOrder marks a line that fails validation (bad quantity or price).
	ErrInvalidOrder = errors.New("invalid order line")

	// ErrInvalidPayment marks a payment method outside tunai/transfer.
	ErrInvalidPayment = errors.New("invalid payment method")

	// ErrNotFound is returned by Delete for an id the store does not hold.
	// Deletes are not treated as idempotent: the caller is told explicitly.
	ErrNotFound = errors.New("transaction not found")
)

// PersistenceError wraps a database failure on a read, write or delete.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Store persists transactions through GORM and runs every customer name
// through one shared codec, in both directions.
type Store struct {
	db    *gorm.DB
	codec *secure.Codec
}

func New(db *gorm.DB, codec *secure.Codec) *Store {
	return &Store{db: db, codec: codec}
}

// Total sums price x quantity over the given lines.
func Total(lines []models.OrderLine) int {
	total := 0
	for _, line := range lines {
		total += line.MenuItem.Price * line.Quantity
	}
	return total
}

func validateLines(lines []models.OrderLine) error {
	for _, line := range lines {
		if line.MenuItem.ID == "" {
			return fmt.Errorf("%w: missing menu item id", ErrInvalidOrder)
		}
		if line.Quantity < 1 {
			return fmt.Errorf("%w: quantity %d for item %q", ErrInvalidOrder, line.Quantity, line.MenuItem.ID)
		}
		if line.MenuItem.Price < 0 {
			return fmt.Errorf("%w: negative price for item %q", ErrInvalidOrder, line.MenuItem.ID)
		}
	}
	return nil
}

// Create validates the order snapshot, computes its total, obfuscates the
// customer name when present and writes the record. The returned record
// carries the plaintext name for immediate display. On failure the caller's
// order is untouched; nothing here retries.
func (s *Store) Create(ctx context.Context, lines []models.OrderLine, method models.PaymentMethod, customerName string) (*models.Transaction, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := validateLines(lines); err != nil {
		return nil, err
	}
	if !method.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPayment, method)
	}

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return nil, &PersistenceError{Op: "encode items", Err: err}
	}

	tx := models.Transaction{
		Items:         datatypes.JSON(itemsJSON),
		Total:         Total(lines),
		PaymentMethod: method,
	}

	name := strings.TrimSpace(customerName)
	if name != "" {
		encrypted, err := s.codec.Encrypt(name)
		if err != nil {
			return nil, err
		}
		tx.CustomerName = &encrypted
	}

	if err := s.db.WithContext(ctx).Create(&tx).Error; err != nil {
		return nil, &PersistenceError{Op: "create", Err: err}
	}

	if name != "" {
		tx.CustomerName = &name
	}
	return &tx, nil
}

// List returns every transaction, newest first, with customer names decrypted.
// A record whose name fails to decrypt keeps its place in the result with the
// name dropped; a record whose items column is malformed is kept with the
// items zeroed. One bad row never hides the rest of the log.
func (s *Store) List(ctx context.Context) ([]models.Transaction, error) {
	var txs []models.Transaction
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, &PersistenceError{Op: "list", Err: err}
	}

	for i := range txs {
		if txs[i].CustomerName != nil {
			plain, err := s.codec.Decrypt(*txs[i].CustomerName)
			if err != nil {
				log.WithField("transaction_id", txs[i].ID).Warnf("cannot decrypt customer name: %v", err)
				txs[i].CustomerName = nil
			} else {
				txs[i].CustomerName = &plain
			}
		}

		if _, err := txs[i].DecodeItems(); err != nil {
			log.WithField("transaction_id", txs[i].ID).Warnf("stored items rejected: %v", err)
			txs[i].Items = datatypes.JSON([]byte("[]"))
		}
	}
	return txs, nil
}

// Delete removes a transaction by id. An unknown id is reported as ErrNotFound
// rather than swallowed.
func (s *Store) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Transaction{}, id)
	if result.Error != nil {
		return &PersistenceError{Op: "delete", Err: result.Error}
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
