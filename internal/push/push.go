// Package push is the legacy ingest path kept from the first iteration of the
// system: a bare POST endpoint that writes the raw request body into the
// transactions table and rebroadcasts that same body to every open socket on
// its own hub. It bypasses the store (no name obfuscation, no line
// validation) and nothing in the admin area consumes its broadcasts; keep it
// off unless an old register still talks to it.
package push

import (
	log "github.com/sirupsen/logrus"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/realtime"
)

type legacyRequest struct {
	Items         datatypes.JSON `json:"items"`
	Total         int            `json:"total"`
	PaymentMethod string         `json:"payment_method"`
	CustomerName  *string        `json:"customer_name"`
}

// CreateTransaction inserts the legacy payload as-is and broadcasts the raw
// body to all connected legacy clients.
func CreateTransaction(db *gorm.DB, hub *realtime.Hub) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req legacyRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}

		tx := models.Transaction{
			Items:         req.Items,
			Total:         req.Total,
			PaymentMethod: models.PaymentMethod(req.PaymentMethod),
			CustomerName:  req.CustomerName,
		}
		if tx.Items == nil {
			tx.Items = datatypes.JSON([]byte("[]"))
		}

		if err := db.Create(&tx).Error; err != nil {
			log.Errorf("legacy insert failed: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		}

		// The legacy frontend expects the request body echoed to every socket.
		body := make([]byte, len(c.Body()))
		copy(body, c.Body())
		hub.Broadcast(body)

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "Transaction added successfully"})
	}
}
