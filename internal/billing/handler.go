package billing

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/auth"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

func saleIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz satış ID")
	}
	return uint(id), nil
}

// GET /api/sales/:id/split/status - satış + ödeme geçmişi + bakiye + durum.
// Ödeme listesi çekilemezse satış yine döner, hata alanıyla birlikte.
func StatusHandler(w *Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		saleID, err := saleIDParam(c)
		if err != nil {
			return err
		}

		view, err := w.Status(c.UserContext(), saleID)
		if err != nil {
			return err
		}
		return c.JSON(view)
	}
}

// GET /api/sales/:id/split/payments
func ListPaymentsHandler(w *Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		saleID, err := saleIDParam(c)
		if err != nil {
			return err
		}

		splits, err := w.LoadPayments(c.UserContext(), saleID)
		if err != nil {
			return err
		}
		return c.JSON(splits)
	}
}

// POST /api/sales/:id/split/payments - kısmi ödeme girişi
func SubmitPaymentHandler(w *Workflow) fiber.Handler {
	return func(c *fiber.Ctx) error {
		saleID, err := saleIDParam(c)
		if err != nil {
			return err
		}

		var body PaymentRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		result, err := w.SubmitPayment(c.UserContext(), saleID, &body)
		if err != nil {
			var verr *ValidationError
			if errors.As(err, &verr) {
				return fiber.NewError(fiber.StatusBadRequest, verr.Msg)
			}
			if result == nil {
				return err
			}
			// Ödeme kaydedildi ama fatura alınamadı: sonucu dön,
			// fatura hatasını ayrı alan olarak bildir
			return c.Status(fiber.StatusCreated).JSON(fiber.Map{
				"payment":       result,
				"invoice_error": "Fatura üretilemedi, fatura ekranından tekrar deneyin",
			})
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "bill_split",
			EntityID:    saleID,
			Action:      models.AuditActionPayment,
			Description: fmt.Sprintf("Ödeme eklendi: satış %d - %s - %.2f (%s)", saleID, body.CustomerName, body.AmountPaid, body.PaymentMethod),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		if result.Invoice != nil {
			if logErr := audit.WriteLog(audit.LogOptions{
				UserName:    auth.Username(c),
				EntityType:  "sale",
				EntityID:    saleID,
				Action:      models.AuditActionInvoice,
				Description: fmt.Sprintf("Fatura üretildi: satış %d - no %s", saleID, result.Invoice.InvoiceNumber),
			}); logErr != nil {
				fmt.Printf("Audit log yazılamadı: %v\n", logErr)
			}
		}

		return c.Status(fiber.StatusCreated).JSON(result)
	}
}
