package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/bar-stock-api/internal/application/analytics"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	"github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/application/usecase"
	"github.com/jhoicas/bar-stock-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ServiceName string
	ProductUC   *usecase.ProductUseCase
	UserUC      *usecase.UserUseCase
	Engine      *inventory.Engine
	Restock     *inventory.RestockUseCase
	PlaceOrder  *sales.PlaceOrderUseCase
	Balance     *ledger.BalanceUseCase
	Cash        *ledger.CashUseCase
	Reversal    *reversal.UseCase
	Reports     *analytics.ReportUseCase
	JWTSecret   string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.ServiceName})
	})

	// Todo /api requiere Bearer Token; las rutas de admin añaden RequireRole.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	admin := RequireRole(entity.RoleAdmin)

	userHandler := NewUserHandler(deps.UserUC, deps.Reports)
	api.Get("/me", userHandler.Me)

	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Engine)
	inventoryHandler := NewInventoryHandler(deps.Engine, deps.Restock)
	products.Get("/", productHandler.List)
	products.Get("/inactive", admin, productHandler.ListInactive)
	products.Post("/", admin, productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", admin, productHandler.Update)
	products.Delete("/:id", admin, productHandler.Delete)
	products.Post("/:id/restore", admin, productHandler.Restore)
	products.Get("/:id/movements", admin, inventoryHandler.ListMovements)
	products.Get("/:id/reconcile", admin, inventoryHandler.Reconcile)

	inv := api.Group("/inventory", admin)
	inv.Post("/movements", inventoryHandler.RegisterMovement)
	inv.Get("/restock", inventoryHandler.Restock)

	orders := api.Group("/orders")
	orderHandler := NewOrderHandler(deps.PlaceOrder, deps.Reversal)
	orders.Post("/", orderHandler.Place)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Delete("/:id", admin, orderHandler.Delete)

	deposits := api.Group("/deposits")
	depositHandler := NewDepositHandler(deps.Balance, deps.Reversal)
	deposits.Get("/", depositHandler.List)
	deposits.Post("/", admin, depositHandler.Create)
	deposits.Delete("/:id", admin, depositHandler.Delete)

	users := api.Group("/users")
	users.Get("/", admin, userHandler.List)
	users.Post("/", admin, userHandler.Create)
	users.Get("/:id", userHandler.GetByID)
	users.Put("/:id", admin, userHandler.Update)
	users.Patch("/:id/membership", admin, userHandler.SetMembership)
	users.Get("/:id/stats", userHandler.Stats)

	cash := api.Group("/cash")
	cashHandler := NewCashHandler(deps.Cash)
	cash.Get("/", cashHandler.Get)
	cash.Put("/", admin, cashHandler.Set)
	cash.Get("/logs", admin, cashHandler.ListLogs)

	thefts := api.Group("/thefts", admin)
	theftHandler := NewTheftHandler(deps.Reports, deps.Reversal)
	thefts.Get("/", theftHandler.List)
	thefts.Delete("/:id", theftHandler.Delete)

	reports := api.Group("/reports")
	reportHandler := NewReportHandler(deps.Reports)
	reports.Get("/debtors", reportHandler.Debtors)
	reports.Get("/summary", admin, reportHandler.Summary)
	reports.Get("/summary.pdf", admin, reportHandler.SummaryPDF)
	reports.Get("/activity", admin, reportHandler.Activity)
}
