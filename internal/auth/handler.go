package auth

import (
	"errors"
	"strings"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"
	"github.com/Dominion-AI/suitsadmin/internal/session"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// POST /api/auth/login - backend'in /users/token/ ucuna iletir,
// başarılıysa token çiftini oturum olarak kaydeder.
func LoginHandler(client *backend.Client, store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.Username = strings.TrimSpace(body.Username)
		if body.Username == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı ve şifre zorunlu")
		}

		var tokens struct {
			Access  string `json:"access"`
			Refresh string `json:"refresh"`
		}
		if err := client.PostPublic(c.UserContext(), "/users/token/", body, &tokens); err != nil {
			var apiErr *backend.APIError
			if errors.As(err, &apiErr) {
				if apiErr.StatusCode == fiber.StatusUnauthorized {
					return fiber.NewError(fiber.StatusUnauthorized, "Kullanıcı adı veya şifre hatalı")
				}
				return err
			}
			return fiber.NewError(fiber.StatusBadGateway, "Backend'e ulaşılamadı")
		}
		if tokens.Access == "" || tokens.Refresh == "" {
			return fiber.NewError(fiber.StatusBadGateway, "Backend eksik token döndürdü")
		}

		sess, err := store.Create(tokens.Access, tokens.Refresh, body.Username)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum kaydedilemedi")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserName:    body.Username,
			EntityType:  "session",
			EntityID:    sess.ID,
			Action:      models.AuditActionLogin,
			Description: "Giriş yapıldı: " + body.Username,
		})

		return c.JSON(fiber.Map{
			"username": body.Username,
			"message":  "Giriş başarılı",
		})
	}
}

// POST /api/auth/register - kullanıcı kaydını backend'e iletir
func RegisterHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		if body.Username == "" || body.Email == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Kullanıcı adı, email ve şifre zorunlu")
		}

		var created models.User
		if err := client.PostPublic(c.UserContext(), "/users/register/", body, &created); err != nil {
			return err
		}

		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// POST /api/auth/logout - oturumu yok eder
func LogoutHandler(store *session.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sess, err := store.Current()
		if err != nil {
			if errors.Is(err, session.ErrNoSession) {
				return fiber.NewError(fiber.StatusUnauthorized, "Aktif oturum yok")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum okunamadı")
		}

		if err := store.Destroy(); err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Oturum kapatılamadı")
		}

		_ = audit.WriteLog(audit.LogOptions{
			UserName:    sess.Username,
			EntityType:  "session",
			EntityID:    sess.ID,
			Action:      models.AuditActionLogout,
			Description: "Çıkış yapıldı: " + sess.Username,
		})

		return c.JSON(fiber.Map{"message": "Çıkış yapıldı"})
	}
}
