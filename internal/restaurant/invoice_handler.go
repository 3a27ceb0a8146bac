package restaurant

import (
	"fmt"
	"strconv"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/auth"
	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

// POST /api/tables/:id/invoice - masa için fatura üretimini
// backend'den ister. Fatura numarası, kontrol kodu ve vergi dökümü
// backend tarafından hesaplanır.
func GenerateInvoiceHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := tableIDParam(c)
		if err != nil {
			return err
		}

		var invoice models.Invoice
		if err := client.Get(c.UserContext(), fmt.Sprintf("/table/tables/%d/generate-invoice/", id), &invoice); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "table",
			EntityID:    id,
			Action:      models.AuditActionInvoice,
			Description: fmt.Sprintf("Fatura üretildi: masa %d - no %s", id, invoice.InvoiceNumber),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(invoice)
	}
}

// GET /api/invoices/:id
func GetInvoiceHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz fatura ID")
		}

		var invoice models.Invoice
		if err := client.Get(c.UserContext(), fmt.Sprintf("/table/invoices/%d/", id), &invoice); err != nil {
			return err
		}
		return c.JSON(invoice)
	}
}
