package audit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Dominion-AI/suitsadmin/internal/database"
	"github.com/Dominion-AI/suitsadmin/internal/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuditTest(t *testing.T) *fiber.App {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.AuditLog{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	database.DB = db

	app := fiber.New()
	app.Get("/audit-logs", ListAuditLogsHandler())
	return app
}

func TestWriteLogAndListWithFilters(t *testing.T) {
	app := setupAuditTest(t)

	entries := []LogOptions{
		{UserName: "ayse", EntityType: "sale", EntityID: 1, Action: models.AuditActionCreate, Description: "Sipariş tamamlandı"},
		{UserName: "ayse", EntityType: "bill_split", EntityID: 1, Action: models.AuditActionPayment, Description: "Ödeme alındı"},
		{UserName: "mehmet", EntityType: "sale", EntityID: 2, Action: models.AuditActionUpdate, Description: "Durum güncellendi"},
	}
	for _, e := range entries {
		if err := WriteLog(e); err != nil {
			t.Fatalf("write log: %v", err)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/audit-logs?entity_type=sale", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var logs []AuditLogResponse
	if err := json.NewDecoder(resp.Body).Decode(&logs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(logs) != 2 {
		t.Fatalf("expected 2 sale entries, got %d", len(logs))
	}

	req = httptest.NewRequest(http.MethodGet, "/audit-logs?action=payment&entity_id=1", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	if err := json.NewDecoder(resp.Body).Decode(&logs); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(logs) != 1 || logs[0].Action != models.AuditActionPayment {
		t.Fatalf("unexpected filtered logs: %+v", logs)
	}
}
