package inventory

import (
	"fmt"
	"strconv"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/auth"
	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

const defaultLowStockThreshold = 5

type CreateCategoryRequest struct {
	Name string `json:"name"`
}

type CreateProductRequest struct {
	Name        string  `json:"name"`
	Category    uint    `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Description string  `json:"description,omitempty"`
}

type UpdateProductRequest struct {
	Name        *string  `json:"name,omitempty"`
	Category    *uint    `json:"category,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Stock       *int     `json:"stock,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type CreateStockMovementRequest struct {
	Product      uint                     `json:"product"`
	MovementType models.StockMovementType `json:"movement_type"`
	Quantity     int                      `json:"quantity"`
}

func productIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz ürün ID")
	}
	return uint(id), nil
}

// GET /api/inventory/categories
func ListCategoriesHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var categories []models.Category
		if err := client.Get(c.UserContext(), "/inventory/categories/", &categories); err != nil {
			return err
		}
		return c.JSON(categories)
	}
}

// POST /api/inventory/categories
func CreateCategoryHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateCategoryRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kategori adı boş olamaz")
		}

		var created models.Category
		if err := client.Post(c.UserContext(), "/inventory/categories/", body, &created); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "category",
			EntityID:    created.ID,
			Action:      models.AuditActionCreate,
			Description: "Kategori oluşturuldu: " + created.Name,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// GET /api/inventory/products
func ListProductsHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var products []models.Product
		if err := client.Get(c.UserContext(), "/inventory/products/", &products); err != nil {
			return err
		}

		// Kategori filtresi gateway tarafında uygulanır
		if raw := c.Query("category"); raw != "" {
			categoryID, err := strconv.ParseUint(raw, 10, 32)
			if err != nil {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz kategori ID")
			}
			filtered := make([]models.Product, 0, len(products))
			for _, p := range products {
				if p.Category == uint(categoryID) {
					filtered = append(filtered, p)
				}
			}
			products = filtered
		}

		return c.JSON(products)
	}
}

// POST /api/inventory/products
func CreateProductHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Name == "" || body.Category == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün adı ve kategori zorunludur")
		}
		if body.Price < 0 || body.Stock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat ve stok negatif olamaz")
		}

		var created models.Product
		if err := client.Post(c.UserContext(), "/inventory/products/", body, &created); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "product",
			EntityID:    created.ID,
			Action:      models.AuditActionCreate,
			Description: "Ürün oluşturuldu: " + created.Name,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// PATCH /api/inventory/products/:id
func UpdateProductHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := productIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateProductRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Price != nil && *body.Price < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Fiyat negatif olamaz")
		}
		if body.Stock != nil && *body.Stock < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Stok negatif olamaz")
		}

		var updated models.Product
		if err := client.Patch(c.UserContext(), fmt.Sprintf("/inventory/products/%d/", id), body, &updated); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: "Ürün güncellendi: " + updated.Name,
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(updated)
	}
}

// DELETE /api/inventory/products/:id
func DeleteProductHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := productIDParam(c)
		if err != nil {
			return err
		}

		if err := client.Delete(c.UserContext(), fmt.Sprintf("/inventory/products/%d/", id)); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "product",
			EntityID:    id,
			Action:      models.AuditActionDelete,
			Description: fmt.Sprintf("Ürün silindi: %d", id),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(fiber.Map{"message": "Ürün silindi"})
	}
}

// POST /api/inventory/stock-movements
func CreateStockMovementHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateStockMovementRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Product == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Ürün seçilmeli")
		}
		if body.MovementType != models.StockMovementAdd && body.MovementType != models.StockMovementRemove {
			return fiber.NewError(fiber.StatusBadRequest, "movement_type add veya remove olmalı")
		}
		if body.Quantity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Miktar sıfırdan büyük olmalı")
		}

		var created models.StockMovement
		if err := client.Post(c.UserContext(), "/inventory/stock-movements/", body, &created); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "stock_movement",
			EntityID:    created.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Stok hareketi: ürün %d %s %d", body.Product, body.MovementType, body.Quantity),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// GET /api/inventory/low-stock
// Stok eşiğin altına düşen ürünleri listeler. Eşik query ile
// değiştirilebilir, varsayılan 5.
func LowStockHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		threshold := defaultLowStockThreshold
		if raw := c.Query("threshold"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed < 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Geçersiz eşik değeri")
			}
			threshold = parsed
		}

		var products []models.Product
		if err := client.Get(c.UserContext(), "/inventory/products/", &products); err != nil {
			return err
		}

		low := make([]models.Product, 0)
		for _, p := range products {
			if p.Stock <= threshold {
				low = append(low, p)
			}
		}

		return c.JSON(low)
	}
}
