package adjustment

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

// UseCase implementa el flujo de ajuste de inventario: reconciliar el saldo
// del sistema de un (técnico, repuesto) contra un conteo físico. Toda
// solicitud requiere autorización antes de tocar el ledger; el faltante
// (algún delta negativo) solo se marca como urgente para la UI.
type UseCase struct {
	txRunner  inventory.TxRunner
	partRepo  repository.PartRepository
	techRepo  repository.TechnicianRepository
	stockRepo repository.StockRepository
	adjRepo   repository.AdjustmentRepository
	auditRepo repository.AuditRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	partRepo repository.PartRepository,
	techRepo repository.TechnicianRepository,
	stockRepo repository.StockRepository,
	adjRepo repository.AdjustmentRepository,
	auditRepo repository.AuditRepository,
) *UseCase {
	return &UseCase{
		txRunner:  txRunner,
		partRepo:  partRepo,
		techRepo:  techRepo,
		stockRepo: stockRepo,
		adjRepo:   adjRepo,
		auditRepo: auditRepo,
	}
}

// CreateInput entrada para Create.
type CreateInput struct {
	TechnicianID string
	PartID       string
	PhysicalNew  int64
	PhysicalUsed int64
	Reason       string
	RequestedBy  string
}

// Create lee los saldos actuales del sistema (0/0 si aún no existe registro),
// congela snapshots y deltas, y persiste la solicitud PENDIENTE. Falla con
// ErrNoDifference si ambos deltas son exactamente cero. No toca el ledger.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.AdjustmentRequest, error) {
	if in.PhysicalNew < 0 || in.PhysicalUsed < 0 || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
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
	part, err := uc.partRepo.GetByID(in.PartID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}

	stock, err := uc.stockRepo.GetTechnician(in.TechnicianID, in.PartID)
	if err != nil {
		return nil, err
	}
	deltaNew := in.PhysicalNew - stock.QtyNew
	deltaUsed := in.PhysicalUsed - stock.QtyUsed
	if deltaNew == 0 && deltaUsed == 0 {
		return nil, domain.ErrNoDifference
	}

	now := time.Now()
	req := &entity.AdjustmentRequest{
		ID:           uuid.New().String(),
		TechnicianID: in.TechnicianID,
		PartID:       in.PartID,
		SystemNew:    stock.QtyNew,
		SystemUsed:   stock.QtyUsed,
		PhysicalNew:  in.PhysicalNew,
		PhysicalUsed: in.PhysicalUsed,
		DeltaNew:     deltaNew,
		DeltaUsed:    deltaUsed,
		RequiresAuth: deltaNew < 0 || deltaUsed < 0,
		Reason:       in.Reason,
		Status:       entity.AdjustmentPendiente,
		RequestedBy:  in.RequestedBy,
		CreatedAt:    now,
	}

	err = uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.Adjustments.Create(req); err != nil {
			return err
		}
		return r.Audit.Create(&entity.WorkflowEvent{
			ID:          uuid.New().String(),
			RequestKind: entity.RequestKindAjuste,
			RequestID:   req.ID,
			Kind:        entity.EventCreacion,
			Actor:       in.RequestedBy,
			Note:        in.Reason,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Authorize decide una solicitud PENDIENTE. Rechazar deja el ledger intacto.
// Aprobar fija los buckets del técnico en los valores contados físicamente (el
// conteo físico pasa a ser la verdad, no se aplica el delta dos veces) y, si
// el cambio neto es distinto de cero, escribe una entrada de kardex
// AJUSTE_INVENTARIO, todo bajo bloqueo de fila en una transacción. El neto se
// recalcula contra el saldo vigente dentro de la transacción para que el
// diario refleje el cambio realmente aplicado.
func (uc *UseCase) Authorize(ctx context.Context, requestID, authorizer string, approve bool, note string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Adjustments.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.AdjustmentPendiente {
			return domain.ErrInvalidState
		}

		if !approve {
			if err := r.Adjustments.UpdateStatus(req.ID, entity.AdjustmentRechazado, authorizer, note, now); err != nil {
				return err
			}
			return r.Audit.Create(&entity.WorkflowEvent{
				ID:          uuid.New().String(),
				RequestKind: entity.RequestKindAjuste,
				RequestID:   req.ID,
				Kind:        entity.EventRechazo,
				Actor:       authorizer,
				Note:        note,
				CreatedAt:   now,
			})
		}

		part, err := r.Parts.GetByID(req.PartID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.ErrNotFound
		}
		stock, err := r.Stock.GetTechnicianForUpdate(req.TechnicianID, req.PartID)
		if err != nil {
			return err
		}
		net := (req.PhysicalNew - stock.QtyNew) + (req.PhysicalUsed - stock.QtyUsed)
		stock.QtyNew = req.PhysicalNew
		stock.QtyUsed = req.PhysicalUsed
		stock.UpdatedAt = now
		if err := r.Stock.UpsertTechnician(stock); err != nil {
			return err
		}
		if net != 0 {
			entry := &entity.KardexEntry{
				ID:            uuid.New().String(),
				TransactionID: req.ID,
				PartID:        req.PartID,
				LocationKind:  entity.LocationTechnician,
				TechnicianID:  req.TechnicianID,
				Type:          entity.KardexAjusteInventario,
				Quantity:      net,
				UnitCost:      part.AverageCost,
				TotalCost:     part.AverageCost.Mul(decimal.NewFromInt(net)),
				Note:          req.Reason,
				Date:          now,
				CreatedAt:     now,
				CreatedBy:     authorizer,
			}
			if err := r.Kardex.Create(entry); err != nil {
				return err
			}
		}
		if err := r.Adjustments.UpdateStatus(req.ID, entity.AdjustmentAutorizado, authorizer, note, now); err != nil {
			return err
		}
		return r.Audit.Create(&entity.WorkflowEvent{
			ID:          uuid.New().String(),
			RequestKind: entity.RequestKindAjuste,
			RequestID:   req.ID,
			Kind:        entity.EventAutorizacion,
			Actor:       authorizer,
			Note:        note,
			CreatedAt:   now,
		})
	})
}

// Cancel retira una solicitud PENDIENTE sin tocar el ledger.
func (uc *UseCase) Cancel(ctx context.Context, requestID, userID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Adjustments.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.AdjustmentPendiente {
			return domain.ErrInvalidState
		}
		if err := r.Adjustments.UpdateStatus(req.ID, entity.AdjustmentRetirado, userID, "", now); err != nil {
			return err
		}
		return r.Audit.Create(&entity.WorkflowEvent{
			ID:          uuid.New().String(),
			RequestKind: entity.RequestKindAjuste,
			RequestID:   req.ID,
			Kind:        entity.EventCancelacion,
			Actor:       userID,
			CreatedAt:   now,
		})
	})
}

// GetByID devuelve la solicitud.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.AdjustmentRequest, error) {
	req, err := uc.adjRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List devuelve solicitudes, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.AdjustmentRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.adjRepo.List(status, limit, offset)
}
