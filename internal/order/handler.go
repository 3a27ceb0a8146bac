package order

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/auth"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

type AddItemRequest struct {
	TableNumber  int    `json:"table_number"`
	CustomerName string `json:"customer_name"`
	Product      uint   `json:"product"`
	Quantity     int    `json:"quantity"`
}

type UpdateQuantityRequest struct {
	TableNumber  int    `json:"table_number"`
	CustomerName string `json:"customer_name"`
	Quantity     int    `json:"quantity"`
}

type CompleteOrderRequest struct {
	TableNumber  int    `json:"table_number"`
	CustomerName string `json:"customer_name"`
}

type CartResponse struct {
	TableNumber  int        `json:"table_number"`
	CustomerName string     `json:"customer_name"`
	Items        []CartItem `json:"items"`
	TotalPrice   float64    `json:"total_price"` // türetilmiş değer, saklanmaz
}

func cartResponse(cart *Cart) CartResponse {
	return CartResponse{
		TableNumber:  cart.TableNumber,
		CustomerName: cart.CustomerName,
		Items:        cart.Items,
		TotalPrice:   cart.TotalPrice(),
	}
}

func mapBuilderErr(err error) error {
	switch {
	case errors.Is(err, ErrCartNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Bu masa/müşteri için açık sepet yok")
	case errors.Is(err, ErrEmptyCart):
		return fiber.NewError(fiber.StatusBadRequest, "Sepette ürün yok")
	case errors.Is(err, ErrBadIndex):
		return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satır numarası")
	case errors.Is(err, ErrBadQuantity):
		return fiber.NewError(fiber.StatusBadRequest, "Adet en az 1 olmalı")
	}
	return err
}

// POST /api/cart/items
func AddItemHandler(b *Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body AddItemRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		cart, err := b.AddItem(c.UserContext(), body.TableNumber, body.CustomerName, body.Product, body.Quantity)
		if err != nil {
			return mapBuilderErr(err)
		}

		return c.Status(fiber.StatusCreated).JSON(cartResponse(cart))
	}
}

// GET /api/cart?table_number=...&customer_name=...
func GetCartHandler(b *Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tableNumber, customerName, err := cartParams(c)
		if err != nil {
			return err
		}

		cart, err := b.Cart(tableNumber, customerName)
		if err != nil {
			return mapBuilderErr(err)
		}
		return c.JSON(cartResponse(cart))
	}
}

// PATCH /api/cart/items/:index
func UpdateQuantityHandler(b *Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satır numarası")
		}

		var body UpdateQuantityRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		cart, err := b.UpdateQuantity(body.TableNumber, body.CustomerName, index, body.Quantity)
		if err != nil {
			return mapBuilderErr(err)
		}
		return c.JSON(cartResponse(cart))
	}
}

// DELETE /api/cart/items/:index?table_number=...&customer_name=...
func RemoveItemHandler(b *Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz satır numarası")
		}

		tableNumber, customerName, err := cartParams(c)
		if err != nil {
			return err
		}

		cart, err := b.RemoveItem(tableNumber, customerName, index)
		if err != nil {
			return mapBuilderErr(err)
		}
		return c.JSON(cartResponse(cart))
	}
}

// POST /api/cart/complete - sepeti satışa çevirir, satışı
// faturalanabilir duruma getirir ve bill-split aşaması için satış
// kimliğini döner. Hata olursa sepet korunur.
func CompleteOrderHandler(b *Builder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CompleteOrderRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.TableNumber <= 0 || body.CustomerName == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Masa numarası ve müşteri adı zorunlu")
		}

		sale, err := b.CompleteOrder(c.UserContext(), body.TableNumber, body.CustomerName)
		if err != nil {
			return mapBuilderErr(err)
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "sale",
			EntityID:    sale.ID,
			Action:      models.AuditActionCreate,
			Description: fmt.Sprintf("Sipariş tamamlandı: masa %d - %s - %.2f", sale.TableNumber, sale.CustomerName, sale.TotalAmount),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.Status(fiber.StatusCreated).JSON(fiber.Map{
			"sale_id":      sale.ID,
			"table_number": sale.TableNumber,
			"status":       sale.Status,
			"total_amount": sale.TotalAmount,
			"message":      "Sipariş tamamlandı, hesap bölüşmeye hazır",
		})
	}
}

func cartParams(c *fiber.Ctx) (int, string, error) {
	tableNumber, err := strconv.Atoi(c.Query("table_number"))
	if err != nil || tableNumber <= 0 {
		return 0, "", fiber.NewError(fiber.StatusBadRequest, "table_number geçersiz")
	}
	customerName := c.Query("customer_name")
	if customerName == "" {
		return 0, "", fiber.NewError(fiber.StatusBadRequest, "customer_name zorunlu")
	}
	return tableNumber, customerName, nil
}
