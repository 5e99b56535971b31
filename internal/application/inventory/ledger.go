package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	domaininv "github.com/tu-usuario/rental-ops/internal/domain/inventory"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// Tags de kardex admitidos por ApplyMovement: movimientos incondicionales de
// los módulos colaboradores (ejecución de servicios, ensamble de equipos,
// reacondicionamiento). Las compras entran por RegisterReceipt y los
// traslados/ajustes/bajas por sus flujos con autorización.
var unconditionalTypes = map[string]bool{
	entity.KardexConsumoServicioBodega:      true,
	entity.KardexConsumoServicioTecnico:     true,
	entity.KardexRetornoServicio:            true,
	entity.KardexConsumoEnsamble:            true,
	entity.KardexRetornoEnsamble:            true,
	entity.KardexConsumoReacondicionamiento: true,
	entity.KardexRetornoReacondicionamiento: true,
}

// LedgerUseCase expone las operaciones del ledger de inventario: movimientos
// incondicionales, recepciones de compra con recálculo de costo promedio y
// consultas de saldo y kardex.
type LedgerUseCase struct {
	txRunner   TxRunner
	partRepo   repository.PartRepository
	techRepo   repository.TechnicianRepository
	stockRepo  repository.StockRepository
	kardexRepo repository.KardexRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner TxRunner,
	partRepo repository.PartRepository,
	techRepo repository.TechnicianRepository,
	stockRepo repository.StockRepository,
	kardexRepo repository.KardexRepository,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:   txRunner,
		partRepo:   partRepo,
		techRepo:   techRepo,
		stockRepo:  stockRepo,
		kardexRepo: kardexRepo,
	}
}

// MovementInput entrada para ApplyMovement. Para ubicaciones de técnico el
// bucket es obligatorio; para la bodega se ignora.
type MovementInput struct {
	PartID       string
	TechnicianID string        // vacío = bodega central
	Bucket       entity.Bucket // NUEVO o USADO (solo técnico)
	Quantity     int64         // firmado: positivo entrada, negativo salida
	Type         string        // tag de kardex (ver unconditionalTypes)
	Note         string
	UserID       string
}

// ApplyMovement es el único punto de entrada sancionado para movimientos
// incondicionales: bloquea la fila de stock, aplica el delta firmado (falla
// con ErrInsufficientStock si el saldo quedaría negativo) y escribe la entrada
// de kardex, todo en una transacción.
func (uc *LedgerUseCase) ApplyMovement(ctx context.Context, in MovementInput) error {
	if in.Quantity == 0 || !unconditionalTypes[in.Type] {
		return domain.ErrInvalidInput
	}
	part, err := uc.partRepo.GetByID(in.PartID)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	if !part.IsActive() {
		return domain.ErrInactive
	}
	if in.TechnicianID != "" {
		if in.Bucket != entity.BucketNew && in.Bucket != entity.BucketUsed {
			return domain.ErrInvalidInput
		}
		tech, err := uc.techRepo.GetByID(in.TechnicianID)
		if err != nil {
			return err
		}
		if tech == nil {
			return domain.ErrNotFound
		}
	}

	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		if in.TechnicianID == "" {
			return ApplyWarehouse(r, WarehouseMovement{
				TransactionID: txID,
				PartID:        in.PartID,
				Quantity:      in.Quantity,
				Type:          in.Type,
				UnitCost:      part.AverageCost,
				Note:          in.Note,
				UserID:        in.UserID,
				At:            now,
			})
		}
		m := TechnicianMovement{
			TransactionID: txID,
			TechnicianID:  in.TechnicianID,
			PartID:        in.PartID,
			Type:          in.Type,
			UnitCost:      part.AverageCost,
			Note:          in.Note,
			UserID:        in.UserID,
			At:            now,
		}
		if in.Bucket == entity.BucketUsed {
			m.QtyUsed = in.Quantity
		} else {
			m.QtyNew = in.Quantity
		}
		return ApplyTechnician(r, m)
	})
}

// ReceiptInput entrada para RegisterReceipt.
type ReceiptInput struct {
	PartID     string
	Quantity   int64
	UnitCost   decimal.Decimal
	ReceiptRef string
	Note       string
	UserID     string
}

// RegisterReceipt registra una recepción de compra: dentro de una transacción
// lee el saldo global previo del repuesto, recalcula el costo promedio
// ponderado, lo persiste en el catálogo y acredita la bodega con su entrada de
// kardex COMPRA. El saldo previo se lee antes de acreditar para no contar dos
// veces la cantidad entrante.
func (uc *LedgerUseCase) RegisterReceipt(ctx context.Context, in ReceiptInput) error {
	if in.Quantity <= 0 || in.UnitCost.LessThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	now := time.Now()
	txID := uuid.New().String()

	return uc.txRunner.Run(ctx, func(r TxRepos) error {
		part, err := r.Parts.GetByID(in.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		if !part.IsActive() {
			return domain.ErrInactive
		}
		priorQty, err := r.Stock.TotalByPart(in.PartID)
		if err != nil {
			return err
		}
		newCost := domaininv.AverageCost(priorQty, part.AverageCost, in.Quantity, in.UnitCost)
		if err := r.Parts.UpdateAverageCost(in.PartID, newCost); err != nil {
			return err
		}
		note := in.Note
		if in.ReceiptRef != "" && note == "" {
			note = "recepción " + in.ReceiptRef
		}
		return ApplyWarehouse(r, WarehouseMovement{
			TransactionID: txID,
			PartID:        in.PartID,
			Quantity:      in.Quantity,
			Type:          entity.KardexCompra,
			UnitCost:      in.UnitCost,
			Note:          note,
			UserID:        in.UserID,
			At:            now,
		})
	})
}

// GetBalance devuelve el saldo actual de un repuesto en una ubicación.
// Para técnicos, bucket vacío devuelve el combinado de ambos buckets.
func (uc *LedgerUseCase) GetBalance(ctx context.Context, partID, technicianID string, bucket entity.Bucket) (int64, error) {
	if technicianID == "" {
		stock, err := uc.stockRepo.GetWarehouse(partID)
		if err != nil {
			return 0, err
		}
		return stock.Quantity, nil
	}
	stock, err := uc.stockRepo.GetTechnician(technicianID, partID)
	if err != nil {
		return 0, err
	}
	if bucket == "" {
		return stock.Total(), nil
	}
	return stock.Bucket(bucket), nil
}

// PartBalances devuelve los saldos del repuesto en todas las ubicaciones.
func (uc *LedgerUseCase) PartBalances(ctx context.Context, partID string) (*entity.PartBalances, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	return uc.stockRepo.BalancesByPart(partID)
}

// Kardex lista las entradas del diario de un repuesto en un rango de fechas.
func (uc *LedgerUseCase) Kardex(ctx context.Context, partID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = 100
	}
	return uc.kardexRepo.ListByPart(partID, from, to, limit, offset)
}
