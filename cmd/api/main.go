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
	"github.com/tu-usuario/rental-ops/internal/application/adjustment"
	"github.com/tu-usuario/rental-ops/internal/application/auth"
	"github.com/tu-usuario/rental-ops/internal/application/damage"
	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/application/reports"
	"github.com/tu-usuario/rental-ops/internal/application/transfer"
	"github.com/tu-usuario/rental-ops/internal/application/usecase"
	infrapdf "github.com/tu-usuario/rental-ops/internal/infrastructure/pdf"
	"github.com/tu-usuario/rental-ops/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/rental-ops/internal/interfaces/http"
	"github.com/tu-usuario/rental-ops/pkg/config"
	"github.com/tu-usuario/rental-ops/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	techRepo := postgres.NewTechnicianRepository(pool)
	stockRepo := postgres.NewStockRepository(pool)
	kardexRepo := postgres.NewKardexRepository(pool)
	transferRepo := postgres.NewTransferRepository(pool)
	adjustmentRepo := postgres.NewAdjustmentRepository(pool)
	damageRepo := postgres.NewDamageRepository(pool)
	auditRepo := postgres.NewAuditRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	ledgerUC := inventory.NewLedgerUseCase(txRunner, partRepo, techRepo, stockRepo, kardexRepo)
	transferUC := transfer.NewUseCase(txRunner, partRepo, techRepo, stockRepo, transferRepo, auditRepo)
	adjustmentUC := adjustment.NewUseCase(txRunner, partRepo, techRepo, stockRepo, adjustmentRepo, auditRepo)
	damageUC := damage.NewUseCase(txRunner, partRepo, techRepo, damageRepo)
	partUC := usecase.NewPartUseCase(partRepo)
	technicianUC := usecase.NewTechnicianUseCase(techRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	// PDF: reporte kardex por repuesto
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	kardexReportUC := reports.NewKardexReportUseCase(partRepo, stockRepo, kardexRepo, pdfGenerator)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Rental Ops API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		PartUC:       partUC,
		TechnicianUC: technicianUC,
		Ledger:       ledgerUC,
		StockRepo:    stockRepo,
		TransferUC:   transferUC,
		AdjustmentUC: adjustmentUC,
		DamageUC:     damageUC,
		KardexReport: kardexReportUC,
		JWTSecret:    cfg.JWT.Secret,
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
