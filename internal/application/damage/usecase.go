package damage

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// Los repuestos usados se valoran con 50% de descuento para el reporte de
// pérdida financiera; el orden de débito USADO antes que NUEVO depende de este
// descuento y debe mantenerse exacto.
var usedDiscount = decimal.NewFromFloat(0.5)

// UseCase implementa el registro de bajas por daño: repuestos retirados de
// circulación de forma permanente. Es un sumidero terminal, no una ubicación;
// no existe primitiva de "deshacer", solo la anulación suave Void.
type UseCase struct {
	txRunner   inventory.TxRunner
	partRepo   repository.PartRepository
	techRepo   repository.TechnicianRepository
	damageRepo repository.DamageRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	partRepo repository.PartRepository,
	techRepo repository.TechnicianRepository,
	damageRepo repository.DamageRepository,
) *UseCase {
	return &UseCase{
		txRunner:   txRunner,
		partRepo:   partRepo,
		techRepo:   techRepo,
		damageRepo: damageRepo,
	}
}

// RecordInput entrada para Record. Al menos un origen debe estar presente.
type RecordInput struct {
	PartID       string
	Quantity     int64
	TechnicianID string // si viene, el stock se descuenta del técnico
	SupplierID   string
	ReceiptRef   string
	Reason       string
	UserID       string
}

// Record registra la baja. Con origen técnico debita su stock (USADO primero,
// NUEVO para el remanente) bajo bloqueo de fila, con la entrada de kardex
// BAJA_DANO en la misma transacción; con origen proveedor/recepción el
// repuesto nunca entró al ledger y solo se persiste el registro.
func (uc *UseCase) Record(ctx context.Context, in RecordInput) (*entity.DamagedPartRecord, error) {
	if in.Quantity <= 0 || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TechnicianID == "" && in.SupplierID == "" && in.ReceiptRef == "" {
		return nil, domain.ErrInvalidInput
	}
	part, err := uc.partRepo.GetByID(in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	if in.TechnicianID != "" {
		tech, err := uc.techRepo.GetByID(in.TechnicianID)
		if err != nil {
			return nil, err
		}
		if tech == nil {
			return nil, domain.ErrNotFound
		}
		if !tech.IsActive() {
			return nil, domain.ErrInactive
		}
	}

	now := time.Now()
	rec := &entity.DamagedPartRecord{
		ID:           uuid.New().String(),
		PartID:       in.PartID,
		Quantity:     in.Quantity,
		TechnicianID: in.TechnicianID,
		SupplierID:   in.SupplierID,
		ReceiptRef:   in.ReceiptRef,
		Reason:       in.Reason,
		RecordedBy:   in.UserID,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if in.TechnicianID != "" {
			stock, err := r.Stock.GetTechnicianForUpdate(in.TechnicianID, in.PartID)
			if err != nil {
				return err
			}
			if stock.Total() < in.Quantity {
				return domain.ErrInsufficientStock
			}
			// USADO primero, NUEVO para el remanente
			fromUsed := min64(stock.QtyUsed, in.Quantity)
			fromNew := in.Quantity - fromUsed
			rec.QtyFromUsed = fromUsed
			rec.QtyFromNew = fromNew

			if err := inventory.ApplyTechnician(r, inventory.TechnicianMovement{
				TransactionID: rec.ID,
				TechnicianID:  in.TechnicianID,
				PartID:        in.PartID,
				QtyNew:        -fromNew,
				QtyUsed:       -fromUsed,
				Type:          entity.KardexBajaDano,
				UnitCost:      part.AverageCost,
				Note:          in.Reason,
				UserID:        in.UserID,
				At:            now,
			}); err != nil {
				return err
			}
		}
		rec.LossValue = lossValue(part.AverageCost, rec.QtyFromNew, rec.QtyFromUsed, in.Quantity, in.TechnicianID == "")
		return r.Damages.Create(rec)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// lossValue valora la pérdida: unidades nuevas a costo promedio, usadas con
// descuento. Sin origen técnico no hay desglose por condición y todo se valora
// como nuevo.
func lossValue(avgCost decimal.Decimal, fromNew, fromUsed, total int64, noBreakdown bool) decimal.Decimal {
	if noBreakdown {
		return avgCost.Mul(decimal.NewFromInt(total))
	}
	newValue := avgCost.Mul(decimal.NewFromInt(fromNew))
	usedValue := avgCost.Mul(usedDiscount).Mul(decimal.NewFromInt(fromUsed))
	return newValue.Add(usedValue)
}

// Void marca la anulación suave del registro; el débito del ledger no se
// revierte.
func (uc *UseCase) Void(ctx context.Context, id string) error {
	rec, err := uc.damageRepo.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	if rec.Voided {
		return domain.ErrInvalidState
	}
	return uc.damageRepo.Void(id)
}

// GetByID devuelve el registro.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.DamagedPartRecord, error) {
	rec, err := uc.damageRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	return rec, nil
}

// List devuelve los registros de baja.
func (uc *UseCase) List(ctx context.Context, limit, offset int) ([]*entity.DamagedPartRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.damageRepo.List(limit, offset)
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
