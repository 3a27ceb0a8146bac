package restaurant

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/models"
	"github.com/Dominion-AI/suitsadmin/internal/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestClient(t *testing.T, handler http.Handler) *backend.Client {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	store := session.NewStore(db)
	if _, err := store.Create("test-access", "test-refresh", "garson"); err != nil {
		t.Fatalf("create session: %v", err)
	}

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return backend.New(srv.URL, store)
}

func newTestApp(handler fiber.Handler, method, path string) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{"error": e.Message})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})
	app.Add(method, path, handler)
	return app
}

func TestListTablesOccupiedFilter(t *testing.T) {
	fake := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]models.Table{
			{ID: 1, TableNumber: 1, Status: models.TableStatusFree},
			{ID: 2, TableNumber: 2, Status: models.TableStatusOccupied},
			{ID: 3, TableNumber: 3, Status: models.TableStatusOccupied},
			{ID: 4, TableNumber: 4, Status: models.TableStatusReserved},
		})
	})
	app := newTestApp(ListTablesHandler(newTestClient(t, fake)), fiber.MethodGet, "/tables")

	req := httptest.NewRequest(http.MethodGet, "/tables?status=occupied", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var tables []models.Table
	if err := json.NewDecoder(resp.Body).Decode(&tables); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(tables) != 2 {
		t.Fatalf("expected 2 occupied tables, got %d", len(tables))
	}
	for _, tb := range tables {
		if tb.Status != models.TableStatusOccupied {
			t.Fatalf("non-occupied table leaked through filter: %+v", tb)
		}
	}
}

func TestListTablesRejectsUnknownStatus(t *testing.T) {
	var backendHits int32
	fake := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&backendHits, 1)
		json.NewEncoder(w).Encode([]models.Table{})
	})
	app := newTestApp(ListTablesHandler(newTestClient(t, fake)), fiber.MethodGet, "/tables")

	req := httptest.NewRequest(http.MethodGet, "/tables?status=broken", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app test: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if n := atomic.LoadInt32(&backendHits); n != 0 {
		t.Fatalf("invalid status must not reach the backend, saw %d requests", n)
	}
}
