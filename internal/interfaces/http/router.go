package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/adjustment"
	"github.com/tu-usuario/rental-ops/internal/application/auth"
	"github.com/tu-usuario/rental-ops/internal/application/damage"
	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/application/reports"
	"github.com/tu-usuario/rental-ops/internal/application/transfer"
	"github.com/tu-usuario/rental-ops/internal/application/usecase"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	PartUC       *usecase.PartUseCase
	TechnicianUC *usecase.TechnicianUseCase
	Ledger       *inventory.LedgerUseCase
	StockRepo    repository.StockRepository
	TransferUC   *transfer.UseCase
	AdjustmentUC *adjustment.UseCase
	DamageUC     *damage.UseCase
	KardexReport *reports.KardexReportUseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Mutaciones de catálogo y de ledger: solo admin y bodeguero.
	staff := RequireRole(entity.RoleAdmin, entity.RoleBodeguero)

	// Parts (protegido; escritura solo staff)
	parts := protected.Group("/parts")
	partHandler := NewPartHandler(deps.PartUC)
	parts.Get("/", partHandler.List)
	parts.Get("/:id", partHandler.GetByID)
	parts.Post("/", staff, partHandler.Create)
	parts.Put("/:id", staff, partHandler.Update)
	parts.Patch("/:id/status", staff, partHandler.SetStatus)

	// Technicians (protegido; escritura solo staff)
	technicians := protected.Group("/technicians")
	technicianHandler := NewTechnicianHandler(deps.TechnicianUC)
	technicians.Get("/", technicianHandler.List)
	technicians.Get("/:id", technicianHandler.GetByID)
	technicians.Post("/", staff, technicianHandler.Create)
	technicians.Put("/:id", staff, technicianHandler.Update)
	technicians.Patch("/:id/status", staff, technicianHandler.SetStatus)

	// Inventory: movimientos, recepciones, saldos, kardex
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.Ledger, deps.StockRepo)
	invGroup.Post("/movements", staff, inventoryHandler.ApplyMovement)
	invGroup.Post("/receipts", staff, inventoryHandler.RegisterReceipt)
	invGroup.Get("/balances/:partID", inventoryHandler.GetBalances)
	invGroup.Get("/kardex/:partID", inventoryHandler.GetKardex)
	invGroup.Get("/warehouse", inventoryHandler.ListWarehouseStock)
	invGroup.Get("/technicians/:technicianID", inventoryHandler.ListTechnicianStock)

	// Transfers: cualquier usuario autenticado solicita; decide solo staff
	transfers := protected.Group("/transfers")
	transferHandler := NewTransferHandler(deps.TransferUC)
	transfers.Post("/", transferHandler.Create)
	transfers.Get("/", transferHandler.List)
	transfers.Get("/:id", transferHandler.GetByID)
	transfers.Get("/:id/events", transferHandler.Events)
	transfers.Post("/:id/authorize", staff, transferHandler.Authorize)
	transfers.Post("/:id/cancel", transferHandler.Cancel)

	// Adjustments: cualquier usuario autenticado solicita; decide solo staff
	adjustments := protected.Group("/adjustments")
	adjustmentHandler := NewAdjustmentHandler(deps.AdjustmentUC)
	adjustments.Post("/", adjustmentHandler.Create)
	adjustments.Get("/", adjustmentHandler.List)
	adjustments.Get("/:id", adjustmentHandler.GetByID)
	adjustments.Post("/:id/authorize", staff, adjustmentHandler.Authorize)
	adjustments.Post("/:id/cancel", adjustmentHandler.Cancel)

	// Damages (solo staff)
	damages := protected.Group("/damages", staff)
	damageHandler := NewDamageHandler(deps.DamageUC)
	damages.Post("/", damageHandler.Record)
	damages.Get("/", damageHandler.List)
	damages.Get("/:id", damageHandler.GetByID)
	damages.Post("/:id/void", damageHandler.Void)

	// Reports
	reportsGroup := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.KardexReport)
	reportsGroup.Get("/kardex/:partID/pdf", reportHandler.KardexPDF)
}
