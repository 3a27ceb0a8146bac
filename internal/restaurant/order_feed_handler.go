package restaurant

import (
	"github.com/Dominion-AI/suitsadmin/internal/backend"

	"github.com/gofiber/fiber/v2"
)

// OrderFeedItem: mutfak/bar ekranlarına düşen sipariş satırı
type OrderFeedItem struct {
	ID           uint   `json:"id"`
	Sale         uint   `json:"sale"`
	TableNumber  int    `json:"table_number"`
	ProductName  string `json:"product_name"`
	Quantity     int    `json:"quantity"`
	Status       string `json:"status"` // pending/completed/cancelled
	CustomerName string `json:"customer_name,omitempty"`
}

// GET /api/orders/kitchen
func KitchenOrdersHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []OrderFeedItem
		if err := client.Get(c.UserContext(), "/table/kitchen-orders/", &items); err != nil {
			return err
		}
		return c.JSON(items)
	}
}

// GET /api/orders/bar
func BarOrdersHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var items []OrderFeedItem
		if err := client.Get(c.UserContext(), "/table/bar-orders/", &items); err != nil {
			return err
		}
		return c.JSON(items)
	}
}
