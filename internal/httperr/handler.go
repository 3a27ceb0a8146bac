package httperr

import (
	"errors"
	"log"

	"github.com/Dominion-AI/suitsadmin/internal/backend"

	"github.com/gofiber/fiber/v2"
)

// Handler: tüm route'ların ortak hata eşlemesi. Oturum düşmesi 401 +
// login yönlendirmesi olur, backend hataları kendi durum koduyla
// aktarılır, kalan her şey 500'dür.
func Handler(c *fiber.Ctx, err error) error {
	// Oturum düştüyse istemci login ekranına yönlendirilir
	if errors.Is(err, backend.ErrSessionExpired) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":    "Oturum süresi doldu, lütfen tekrar giriş yapın",
			"redirect": "/login?expired=true",
		})
	}

	var apiErr *backend.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.StatusCode).JSON(fiber.Map{
			"error": apiErr.Message,
		})
	}

	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
		})
	}
	log.Println("Unexpected error:", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "Beklenmeyen sunucu hatası",
	})
}
