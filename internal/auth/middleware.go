package auth

import (
	"errors"

	"github.com/Dominion-AI/suitsadmin/internal/session"

	"github.com/gofiber/fiber/v2"
)

const CtxUsernameKey = "session_username"

// SessionMiddleware: korunan route'lar aktif bir backend oturumu
// gerektirir. Token doğrulaması backend'de yapılır; gateway sadece
// oturumun var olduğunu garanti eder.
func SessionMiddleware(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Current()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return fiber.NewError(fiber.StatusUnauthorized, "Önce giriş yapılmalı")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum okunamadı")
		}

		c.Locals(CtxUsernameKey, sess.Username)
		return c.Next()
	}
}

// Username: middleware'in koyduğu kullanıcı adı (audit için)
func Username(c *fiber.Ctx) string {
	if v, ok := c.Locals(CtxUsernameKey).(string); ok {
		return v
	}
	return ""
}
