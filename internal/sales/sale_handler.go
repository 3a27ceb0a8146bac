package sales

import (
	"fmt"
	"strconv"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/auth"
	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

type UpdateSaleStatusRequest struct {
	Status models.SaleStatus `json:"status"`
}

func saleIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz satış ID")
	}
	return uint(id), nil
}

// GET /api/sales
func ListSalesHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var sales []models.Sale
		if err := client.Get(c.UserContext(), "/sale/sales/", &sales); err != nil {
			return err
		}
		return c.JSON(sales)
	}
}

// GET /api/sales/:id
func GetSaleHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := saleIDParam(c)
		if err != nil {
			return err
		}

		var sale models.Sale
		if err := client.Get(c.UserContext(), fmt.Sprintf("/sale/sales/%d/", id), &sale); err != nil {
			return err
		}
		return c.JSON(sale)
	}
}

// PATCH /api/sales/:id - sadece durum değişir. settled bir satışın
// durumu geri alınamaz, son kararı backend verir.
func UpdateSaleStatusHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := saleIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateSaleStatusRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if !models.ValidSaleStatus(body.Status) {
			return fiber.NewError(fiber.StatusBadRequest, "status pending/completed/cancelled/settled olmalı")
		}

		var updated models.Sale
		if err := client.Patch(c.UserContext(), fmt.Sprintf("/sale/sales/%d/", id), body, &updated); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "sale",
			EntityID:    id,
			Action:      models.AuditActionUpdate,
			Description: fmt.Sprintf("Satış durumu güncellendi: %d -> %s", id, body.Status),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(updated)
	}
}

// GET /api/sales/:id/invoice - satış bazlı fatura
func SaleInvoiceHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := saleIDParam(c)
		if err != nil {
			return err
		}

		var invoice models.Invoice
		if err := client.Get(c.UserContext(), fmt.Sprintf("/sale/sales/%d/invoice/", id), &invoice); err != nil {
			return err
		}
		return c.JSON(invoice)
	}
}
