package main

import (
	"log"
	"strings"

	"github.com/Dominion-AI/suitsadmin/internal/audit"
	"github.com/Dominion-AI/suitsadmin/internal/auth"
	"github.com/Dominion-AI/suitsadmin/internal/backend"
	"github.com/Dominion-AI/suitsadmin/internal/billing"
	"github.com/Dominion-AI/suitsadmin/internal/config"
	"github.com/Dominion-AI/suitsadmin/internal/database"
	"github.com/Dominion-AI/suitsadmin/internal/httperr"
	"github.com/Dominion-AI/suitsadmin/internal/inventory"
	"github.com/Dominion-AI/suitsadmin/internal/order"
	"github.com/Dominion-AI/suitsadmin/internal/restaurant"
	"github.com/Dominion-AI/suitsadmin/internal/sales"
	"github.com/Dominion-AI/suitsadmin/internal/security"
	"github.com/Dominion-AI/suitsadmin/internal/session"
	"github.com/Dominion-AI/suitsadmin/internal/users"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] .env dosyası bulunamadı, ortam değişkenleri kullanılacak")
	}

	cfg := config.Load()
	database.Init(cfg)

	store := session.NewStore(database.DB)
	client := backend.New(cfg.BackendBaseURL, store)
	builder := order.NewBuilder(client)
	workflow := billing.NewWorkflow(client)

	app := fiber.New(fiber.Config{
		ErrorHandler: httperr.Handler,
	})

	app.Use(logger.New())

	// CORS origins'i virgülle ayrılmış string'den array'e çevir
	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Public auth
	api.Post("/auth/login", auth.LoginHandler(client, store))
	api.Post("/auth/register", auth.RegisterHandler(client))

	// Protected
	protected := api.Group("")
	protected.Use(auth.SessionMiddleware(store))

	protected.Post("/auth/logout", auth.LogoutHandler(store))

	// Masalar ve rezervasyonlar
	protected.Get("/tables", restaurant.ListTablesHandler(client))
	protected.Post("/tables", restaurant.CreateTableHandler(client))
	protected.Patch("/tables/:id", restaurant.UpdateTableHandler(client))
	protected.Post("/tables/:id/reset", restaurant.ResetTableHandler(client))
	protected.Get("/reservations", restaurant.ListReservationsHandler(client))
	protected.Post("/reservations", restaurant.CreateReservationHandler(client))
	protected.Patch("/reservations/:id", restaurant.UpdateReservationHandler(client))
	protected.Delete("/reservations/:id", restaurant.DeleteReservationHandler(client))

	// Mutfak ve bar sipariş akışları
	protected.Get("/orders/kitchen", restaurant.KitchenOrdersHandler(client))
	protected.Get("/orders/bar", restaurant.BarOrdersHandler(client))

	// Sipariş sepeti
	protected.Post("/cart/items", order.AddItemHandler(builder))
	protected.Get("/cart", order.GetCartHandler(builder))
	protected.Patch("/cart/items/:index", order.UpdateQuantityHandler(builder))
	protected.Delete("/cart/items/:index", order.RemoveItemHandler(builder))
	protected.Post("/cart/complete", order.CompleteOrderHandler(builder))

	// Satışlar
	protected.Get("/sales", sales.ListSalesHandler(client))
	protected.Get("/sales/:id", sales.GetSaleHandler(client))
	protected.Patch("/sales/:id", sales.UpdateSaleStatusHandler(client))
	protected.Get("/sales/:id/invoice", sales.SaleInvoiceHandler(client))

	// Hesap bölme
	protected.Get("/sales/:id/split/status", billing.StatusHandler(workflow))
	protected.Get("/sales/:id/split/payments", billing.ListPaymentsHandler(workflow))
	protected.Post("/sales/:id/split/payments", billing.SubmitPaymentHandler(workflow))

	// Faturalar
	protected.Post("/tables/:id/invoice", restaurant.GenerateInvoiceHandler(client))
	protected.Get("/invoices/:id", restaurant.GetInvoiceHandler(client))

	// Raporlar ve kurlar
	protected.Get("/reports/sales", sales.SalesReportHandler(client))
	protected.Get("/reports/sales/export", sales.ExportSalesReportHandler(client))
	protected.Post("/exchange-rates/fetch", sales.FetchExchangeRatesHandler(client))

	// Envanter
	protected.Get("/inventory/categories", inventory.ListCategoriesHandler(client))
	protected.Post("/inventory/categories", inventory.CreateCategoryHandler(client))
	protected.Get("/inventory/products", inventory.ListProductsHandler(client))
	protected.Post("/inventory/products", inventory.CreateProductHandler(client))
	protected.Patch("/inventory/products/:id", inventory.UpdateProductHandler(client))
	protected.Delete("/inventory/products/:id", inventory.DeleteProductHandler(client))
	protected.Post("/inventory/stock-movements", inventory.CreateStockMovementHandler(client))
	protected.Get("/inventory/low-stock", inventory.LowStockHandler(client))

	// Güvenlik günlükleri ve kullanıcılar
	protected.Get("/security/logs", security.ListSecurityLogsHandler(client))
	protected.Get("/users", users.ListUsersHandler(client))

	// Audit logs
	protected.Get("/audit-logs", audit.ListAuditLogsHandler())

	log.Println("Server çalışıyor port:", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
