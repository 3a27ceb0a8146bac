package users

import (
	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GET /api/users
func ListUsersHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var list []models.User
		if err := client.Get(c.UserContext(), "/users/users", &list); err != nil {
			return err
		}
		return c.JSON(list)
	}
}
