package handlers

import (
	log "github.com/sirupsen/logrus"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/SilfaSalsaBilaPutri/CashFlow-Secure/internal/models"
)

// MenuItemRequest defines the structure for creating/updating a menu item
type MenuItemRequest struct {
	ID       string          `json:"id"`
	Name     string          `json:"name" validate:"required"`
	Price    int             `json:"price" validate:"gte=0"`
	Category models.Category `json:"category" validate:"required,oneof=makanan minuman tambahan"`
}

func validCategory(c models.Category) bool {
	return c == models.CategoryMakanan || c == models.CategoryMinuman || c == models.CategoryTambahan
}

// GetMenu handles fetching the full catalog, grouped client-side by category
func GetMenu(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []models.MenuItem
		if err := db.Order("category, name").Find(&items).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to fetch menu"})
		}
		return c.JSON(items)
	}
}

// CreateMenuItem handles creating a new catalog entry
func CreateMenuItem(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req MenuItemRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.ID == "" || req.Name == "" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Menu item id and name are required"})
		}
		if req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must not be negative"})
		}
		if !validCategory(req.Category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category must be makanan, minuman or tambahan"})
		}

		var existing models.MenuItem
		if err := db.Where("id = ? OR name = ?", req.ID, req.Name).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Menu item with this id or name already exists"})
		}

		item := models.MenuItem{
			ID:       req.ID,
			Name:     req.Name,
			Price:    req.Price,
			Category: req.Category,
		}

		if err := db.Create(&item).Error; err != nil {
			log.Errorf("error creating menu item: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create menu item"})
		}

		return c.Status(fiber.StatusCreated).JSON(item)
	}
}

// UpdateMenuItem handles updating an existing catalog entry. Recorded
// transactions keep their snapshot prices; only future orders see the change.
func UpdateMenuItem(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var req MenuItemRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
		}
		if req.Price < 0 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Price must not be negative"})
		}
		if !validCategory(req.Category) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Category must be makanan, minuman or tambahan"})
		}

		// Name collisions with a different item
		var existing models.MenuItem
		if err := db.Where("name = ? AND id != ?", req.Name, id).First(&existing).Error; err == nil {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Another menu item with this name already exists"})
		}

		result := db.Model(&models.MenuItem{}).Where("id = ?", id).Updates(map[string]interface{}{
			"name":     req.Name,
			"price":    req.Price,
			"category": req.Category,
		})
		if result.Error != nil {
			log.Errorf("error updating menu item: %v", result.Error)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update menu item"})
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		return c.JSON(fiber.Map{"message": "Menu item updated successfully"})
	}
}

// DeleteMenuItem handles deleting a catalog entry
func DeleteMenuItem(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		result := db.Delete(&models.MenuItem{}, "id = ?", id)
		if result.Error != nil {
			log.Errorf("error deleting menu item: %v", result.Error)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to delete menu item"})
		}
		if result.RowsAffected == 0 {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Menu item not found"})
		}

		return c.JSON(fiber.Map{"message": "Menu item deleted successfully"})
	}
}
