package restaurant

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
)

type CreateReservationRequest struct {
	Table           uint   `json:"table"`
	CustomerName    string `json:"customer_name"`
	ReservationTime string `json:"reservation_time"` // RFC3339
}

// GET /api/reservations
func ListReservationsHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var reservations []models.Reservation
		if err := client.Get(c.UserContext(), "/table/reservations/", &reservations); err != nil {
			return err
		}
		return c.JSON(reservations)
	}
}

// POST /api/reservations
func CreateReservationHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateReservationRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		body.CustomerName = strings.TrimSpace(body.CustomerName)
		if body.Table == 0 || body.CustomerName == "" || body.ReservationTime == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Masa, müşteri adı ve rezervasyon zamanı zorunlu")
		}

		when, err := time.Parse(time.RFC3339, body.ReservationTime)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Zaman formatı RFC3339 olmalı (ör: 2025-12-09T19:30:00Z)")
		}
		if when.Before(time.Now()) {
			return fiber.NewError(fiber.StatusBadRequest, "Rezervasyon zamanı geçmişte olamaz")
		}

		payload := map[string]any{
			"table":            body.Table,
			"customer_name":    body.CustomerName,
			"reservation_time": when.Format(time.RFC3339),
		}

		var created models.Reservation
		if err := client.Post(c.UserContext(), "/table/reservations/", payload, &created); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// PATCH /api/reservations/:id
func UpdateReservationHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rezervasyon ID")
		}

		var body map[string]any
		if err := c.BodyParser(&body); err != nil || len(body) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}

		var updated models.Reservation
		if err := client.Patch(c.UserContext(), fmt.Sprintf("/table/reservations/%d/", id), body, &updated); err != nil {
			return err
		}
		return c.JSON(updated)
	}
}

// DELETE /api/reservations/:id
func DeleteReservationHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := strconv.ParseUint(c.Params("id"), 10, 32)
		if err != nil || id == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz rezervasyon ID")
		}

		if err := client.Delete(c.UserContext(), fmt.Sprintf("/table/reservations/%d/", id)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"message": "Rezervasyon silindi"})
	}
}
