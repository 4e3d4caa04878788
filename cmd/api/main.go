// @title        Bar Stock API
// @version      1.0
// @description  POS y ledger de stock, saldos y efectivo de un bar.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/bar-stock-api/docs"
	"github.com/jhoicas/bar-stock-api/internal/application/analytics"
	"github.com/jhoicas/bar-stock-api/internal/application/inventory"
	"github.com/jhoicas/bar-stock-api/internal/application/ledger"
	"github.com/jhoicas/bar-stock-api/internal/application/reversal"
	"github.com/jhoicas/bar-stock-api/internal/application/sales"
	"github.com/jhoicas/bar-stock-api/internal/application/usecase"
	"github.com/jhoicas/bar-stock-api/internal/domain"
	"github.com/jhoicas/bar-stock-api/internal/domain/repository"
	"github.com/jhoicas/bar-stock-api/internal/infrastructure/cache"
	"github.com/jhoicas/bar-stock-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/bar-stock-api/internal/infrastructure/pdf"
	"github.com/jhoicas/bar-stock-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/bar-stock-api/internal/interfaces/http"
	"github.com/jhoicas/bar-stock-api/pkg/config"
	"github.com/jhoicas/bar-stock-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	_ = godotenv.Load() // .env opcional en local

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	var (
		txRunner repository.TxRunner
		repos    repository.Repos
	)
	switch cfg.App.StoreDriver {
	case config.StoreDriverMemory:
		store := memory.New()
		txRunner, repos = store, store.Repos()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		if cfg.DB.Migrate {
			applied, err := postgres.Migrate(cfg.DB.ConnectionString())
			if err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Bool("applied", applied).Msg("migraciones verificadas")
		}
		pool, err := postgres.NewPool(ctx, cfg.DB, log.Named("postgres"))
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner, repos = postgres.NewTxRunner(pool), postgres.NewRepos(pool)
	}

	var reportCache analytics.ReportCache = cache.NoopCache{}
	if cfg.Redis.Addr != "" {
		rc, err := cache.NewRedisReportCache(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			// Sin Redis los informes se calculan en cada petición.
			log.Warn().Err(err).Msg("redis no disponible, caché de informes desactivada")
		} else {
			defer rc.Close()
			reportCache = rc
		}
	}

	clock := domain.SystemClock{}
	ledgerLog := log.Named("ledger")
	engine := inventory.NewEngine(txRunner, repos, clock, log.Named("inventory"))
	balanceUC := ledger.NewBalanceUseCase(txRunner, repos, clock, ledgerLog)
	cashUC := ledger.NewCashUseCase(txRunner, repos, clock, ledgerLog)
	placeOrderUC := sales.NewPlaceOrderUseCase(txRunner, repos, engine, clock, log.Named("sales"))
	reversalUC := reversal.NewUseCase(txRunner, engine, clock, log.Named("reversal"))
	productUC := usecase.NewProductUseCase(txRunner, repos, engine, clock, log.Named("catalog"))
	userUC := usecase.NewUserUseCase(txRunner, repos, balanceUC, clock, log.Named("users"))
	restockUC := inventory.NewRestockUseCase(repos, cfg.Restock.Threshold, cfg.Restock.Target)
	reportUC := analytics.NewReportUseCase(
		repos, reportCache, infrapdf.NewSummaryReport(cfg.App.Name),
		cfg.Redis.ReportTTL(), clock, log.Named("reports"),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs (requiere swag init).
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Bar Stock API",
		}))
	}
	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).SendString(err.Error())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSONCharsetUTF8)
		return c.SendString(doc)
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ServiceName: cfg.App.Name,
		ProductUC:   productUC,
		UserUC:      userUC,
		Engine:      engine,
		Restock:     restockUC,
		PlaceOrder:  placeOrderUC,
		Balance:     balanceUC,
		Cash:        cashUC,
		Reversal:    reversalUC,
		Reports:     reportUC,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
