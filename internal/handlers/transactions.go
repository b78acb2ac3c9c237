package handlers

import (
	"errors"

	log "github.com/sirupsen/logrus"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/order"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/store"
)

// TransactionHandler serves the cashier flow: compose an order against the
// catalog, record it, list the log, delete a record.
type TransactionHandler struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewTransactionHandler(db *gorm.DB, s *store.Store) *TransactionHandler {
	return &TransactionHandler{DB: db, Store: s}
}

type TransactionRequest struct {
	PaymentMethod models.PaymentMethod `json:"payment_method"`
	CustomerName  string               `json:"customer_name"`
	Items         []struct {
		MenuItemID string `json:"menu_item_id"`
		Quantity   int    `json:"quantity"`
	} `json:"items"`
}

// CreateTransaction records a sale. Menu items are resolved against the
// catalog at submit time and snapshotted into the record. On any failure the
// cashier's in-progress order is untouched and can be resubmitted.
func (h *TransactionHandler) CreateTransaction(c *fiber.Ctx) error {
	var req TransactionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	o := order.New()
	for _, item := range req.Items {
		var menuItem models.MenuItem
		if err := h.DB.First(&menuItem, "id = ?", item.MenuItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Menu item not found: " + item.MenuItemID})
			}
			log.Errorf("error resolving menu item %s: %v", item.MenuItemID, err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to resolve menu items"})
		}
		if item.Quantity < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Quantity must be at least 1"})
		}
		o.Add(menuItem, item.Quantity)
	}

	tx, err := h.Store.Create(c.UserContext(), o.Lines(), req.PaymentMethod, req.CustomerName)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrEmptyOrder):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Order has no items"})
		case errors.Is(err, store.ErrInvalidOrder), errors.Is(err, store.ErrInvalidPayment):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			log.Errorf("error creating transaction: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save transaction"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(tx)
}

// GetTransactions returns the full log, newest first.
func (h *TransactionHandler) GetTransactions(c *fiber.Ctx) error {
	txs, err := h.Store.List(c.UserContext())
	if err != nil {
		log.Errorf("error listing transactions: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch transactions"})
	}
	if txs == nil {
		txs = []models.Transaction{}
	}
	return c.JSON(txs)
}

// DeleteTransaction removes a record by id; unknown ids are a 404.
func (h *TransactionHandler) DeleteTransaction(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid transaction ID"})
	}

	if err := h.Store.Delete(c.UserContext(), uint(id)); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Transaction not found"})
		}
		log.Errorf("error deleting transaction %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete transaction"})
	}

	return c.JSON(fiber.Map{"message": "Transaction deleted successfully"})
}
