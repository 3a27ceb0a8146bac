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

type CreateTableRequest struct {
	TableNumber int `json:"table_number"`
	Capacity    int `json:"capacity"`
}

type UpdateTableRequest struct {
	Capacity *int                `json:"capacity"`
	Status   *models.TableStatus `json:"status"`
}

func tableIDParam(c *fiber.Ctx) (uint, error) {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil || id == 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Geçersiz masa ID")
	}
	return uint(id), nil
}

// GET /api/tables?status=occupied - durum filtresi gateway
// tarafında uygulanır: "occupied" istendiyse cevapta yalnızca occupied
// masalar olur.
func ListTablesHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := models.TableStatus(c.Query("status"))
		if status != "" && status != "all" && !models.ValidTableStatus(status) {
			return fiber.NewError(fiber.StatusBadRequest, "status free/occupied/reserved olmalı")
		}

		var tables []models.Table
		if err := client.Get(c.UserContext(), "/table/tables/", &tables); err != nil {
			return err
		}

		if status == "" || status == "all" {
			return c.JSON(tables)
		}

		filtered := make([]models.Table, 0, len(tables))
		for _, t := range tables {
			if t.Status == status {
				filtered = append(filtered, t)
			}
		}
		return c.JSON(filtered)
	}
}

// POST /api/tables - yeni masa hep "free" açılır
func CreateTableHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body CreateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.TableNumber <= 0 || body.Capacity <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "table_number ve capacity zorunlu ve > 0 olmalı")
		}

		payload := map[string]any{
			"table_number": body.TableNumber,
			"capacity":     body.Capacity,
			"status":       models.TableStatusFree,
		}

		var created models.Table
		if err := client.Post(c.UserContext(), "/table/tables/", payload, &created); err != nil {
			return err
		}
		return c.Status(fiber.StatusCreated).JSON(created)
	}
}

// PATCH /api/tables/:id
func UpdateTableHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := tableIDParam(c)
		if err != nil {
			return err
		}

		var body UpdateTableRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Geçersiz istek gövdesi")
		}
		if body.Capacity == nil && body.Status == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Güncellenecek alan yok")
		}

		payload := map[string]any{}
		if body.Capacity != nil {
			if *body.Capacity <= 0 {
				return fiber.NewError(fiber.StatusBadRequest, "capacity > 0 olmalı")
			}
			payload["capacity"] = *body.Capacity
		}
		if body.Status != nil {
			if !models.ValidTableStatus(*body.Status) {
				return fiber.NewError(fiber.StatusBadRequest, "status free/occupied/reserved olmalı")
			}
			payload["status"] = *body.Status
		}

		var updated models.Table
		if err := client.Patch(c.UserContext(), fmt.Sprintf("/table/tables/%d/", id), payload, &updated); err != nil {
			return err
		}
		return c.JSON(updated)
	}
}

// POST /api/tables/:id/reset - masayı boşa çeker
func ResetTableHandler(client *backend.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := tableIDParam(c)
		if err != nil {
			return err
		}

		var resp map[string]any
		if err := client.Post(c.UserContext(), fmt.Sprintf("/table/tables/%d/reset/", id), nil, &resp); err != nil {
			return err
		}

		if logErr := audit.WriteLog(audit.LogOptions{
			UserName:    auth.Username(c),
			EntityType:  "table",
			EntityID:    id,
			Action:      models.AuditActionReset,
			Description: fmt.Sprintf("Masa sıfırlandı: %d", id),
		}); logErr != nil {
			fmt.Printf("Audit log yazılamadı: %v\n", logErr)
		}

		return c.JSON(resp)
	}
}
