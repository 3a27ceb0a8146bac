package security

import (
	"fmt"
	"regexp"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

var (
	eventTypePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]+$`)
	datePattern      = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// GET /api/security/logs
// Backend güvenlik günlüklerini aktarır. Filtre değerleri backend'e
// gitmeden önce doğrulanır, bozuk girdi upstream'e taşınmaz.
func ListSecurityLogsHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		eventType := c.Query("event_type")
		date := c.Query("date")

		if eventType != "" && !eventTypePattern.MatchString(eventType) {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz event_type")
		}
		if date != "" && !datePattern.MatchString(date) {
			return fiber.NewError(fiber.StatusBadRequest, "Tarih formatı YYYY-MM-DD olmalı")
		}

		path := "/security/logs/"
		switch {
		case eventType != "" && date != "":
			path += fmt.Sprintf("?event_type=%s&date=%s", eventType, date)
		case eventType != "":
			path += "?event_type=" + eventType
		case date != "":
			path += "?date=" + date
		}

		var logs []models.SecurityLog
		if err := client.Get(c.UserContext(), path, &logs); err != nil {
			return err
		}
		return c.JSON(logs)
	}
}
