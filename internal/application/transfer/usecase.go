package transfer

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// UseCase implementa el flujo de traslado de stock entre ubicaciones:
// crear (PENDIENTE), autorizar (aprobar ejecuta el ledger / rechazar lo deja
// intacto) y cancelar. La máquina de estados vive en la BD: la decisión se
// toma con el encabezado bloqueado (FOR UPDATE) para que una segunda decisión
// concurrente observe un estado no pendiente y falle con ErrInvalidState.
type UseCase struct {
	txRunner     inventory.TxRunner
	partRepo     repository.PartRepository
	techRepo     repository.TechnicianRepository
	stockRepo    repository.StockRepository
	transferRepo repository.TransferRepository
	auditRepo    repository.AuditRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	txRunner inventory.TxRunner,
	partRepo repository.PartRepository,
	techRepo repository.TechnicianRepository,
	stockRepo repository.StockRepository,
	transferRepo repository.TransferRepository,
	auditRepo repository.AuditRepository,
) *UseCase {
	return &UseCase{
		txRunner:     txRunner,
		partRepo:     partRepo,
		techRepo:     techRepo,
		stockRepo:    stockRepo,
		transferRepo: transferRepo,
		auditRepo:    auditRepo,
	}
}

// LineInput línea solicitada: cantidades por condición.
type LineInput struct {
	PartID  string
	QtyNew  int64
	QtyUsed int64
}

// CreateInput entrada para Create.
type CreateInput struct {
	Type               string // BODEGA_TECNICO, TECNICO_BODEGA, TECNICO_TECNICO
	OriginTechnicianID string
	DestTechnicianID   string
	Note               string
	RequestedBy        string
	Lines              []LineInput
}

// Create valida y persiste la solicitud en estado PENDIENTE. Verifica stock
// suficiente en el origen al momento de crear como chequeo temprano no
// vinculante: la suficiencia se revalida al autorizar porque puede pasar
// tiempo entre solicitud y decisión. No toca el ledger.
func (uc *UseCase) Create(ctx context.Context, in CreateInput) (*entity.TransferRequest, error) {
	if err := uc.validateEndpoints(in); err != nil {
		return nil, err
	}
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	req := &entity.TransferRequest{
		ID:                 uuid.New().String(),
		Type:               in.Type,
		OriginTechnicianID: in.OriginTechnicianID,
		DestTechnicianID:   in.DestTechnicianID,
		Status:             entity.TransferPendiente,
		RequestedBy:        in.RequestedBy,
		Note:               in.Note,
		CreatedAt:          now,
	}
	for _, l := range in.Lines {
		if l.QtyNew < 0 || l.QtyUsed < 0 || l.QtyNew+l.QtyUsed == 0 {
			return nil, domain.ErrInvalidInput
		}
		part, err := uc.partRepo.GetByID(l.PartID)
		if err != nil {
			return nil, err
		}
		if part == nil {
			return nil, domain.ErrNotFound
		}
		if !part.IsActive() {
			return nil, domain.ErrInactive
		}
		if err := uc.checkOriginStock(in, l); err != nil {
			return nil, err
		}
		req.Lines = append(req.Lines, &entity.TransferLine{
			ID:         uuid.New().String(),
			TransferID: req.ID,
			PartID:     l.PartID,
			QtyNew:     l.QtyNew,
			QtyUsed:    l.QtyUsed,
		})
	}

	err := uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		if err := r.Transfers.Create(req); err != nil {
			return err
		}
		return r.Audit.Create(&entity.WorkflowEvent{
			ID:          uuid.New().String(),
			RequestKind: entity.RequestKindTraslado,
			RequestID:   req.ID,
			Kind:        entity.EventCreacion,
			Actor:       in.RequestedBy,
			Note:        in.Note,
			CreatedAt:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return req, nil
}

// validateEndpoints verifica la consistencia tipo/origen/destino y que los
// técnicos referenciados existan y estén activos.
func (uc *UseCase) validateEndpoints(in CreateInput) error {
	switch in.Type {
	case entity.TransferBodegaATecnico:
		if in.OriginTechnicianID != "" || in.DestTechnicianID == "" {
			return domain.ErrInvalidInput
		}
	case entity.TransferTecnicoABodega:
		if in.OriginTechnicianID == "" || in.DestTechnicianID != "" {
			return domain.ErrInvalidInput
		}
	case entity.TransferEntreTecnicos:
		if in.OriginTechnicianID == "" || in.DestTechnicianID == "" ||
			in.OriginTechnicianID == in.DestTechnicianID {
			return domain.ErrInvalidInput
		}
	default:
		return domain.ErrInvalidInput
	}
	for _, id := range []string{in.OriginTechnicianID, in.DestTechnicianID} {
		if id == "" {
			continue
		}
		tech, err := uc.techRepo.GetByID(id)
		if err != nil {
			return err
		}
		if tech == nil {
			return domain.ErrNotFound
		}
		if !tech.IsActive() {
			return domain.ErrInactive
		}
	}
	return nil
}

// checkOriginStock chequeo temprano de suficiencia en el origen: buckets
// independientes para técnicos, cantidad combinada para la bodega.
func (uc *UseCase) checkOriginStock(in CreateInput, l LineInput) error {
	if in.Type == entity.TransferBodegaATecnico {
		stock, err := uc.stockRepo.GetWarehouse(l.PartID)
		if err != nil {
			return err
		}
		if stock.Quantity < l.QtyNew+l.QtyUsed {
			return domain.ErrInsufficientStock
		}
		return nil
	}
	stock, err := uc.stockRepo.GetTechnician(in.OriginTechnicianID, l.PartID)
	if err != nil {
		return err
	}
	if stock.QtyNew < l.QtyNew || stock.QtyUsed < l.QtyUsed {
		return domain.ErrInsufficientStock
	}
	return nil
}

// Authorize decide una solicitud PENDIENTE. Rechazar solo registra la
// transición. Aprobar revalida stock en el origen leyendo los saldos actuales
// bajo bloqueo de fila y, si alcanza, ejecuta por línea el débito en origen,
// el crédito en destino y el par de entradas de kardex, todo en una
// transacción; si alguna línea no alcanza, falla con ErrInsufficientStock y la
// solicitud permanece PENDIENTE (no se auto-rechaza).
func (uc *UseCase) Authorize(ctx context.Context, requestID, authorizer string, approve bool, note string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Transfers.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.TransferPendiente {
			return domain.ErrInvalidState
		}

		if !approve {
			if err := r.Transfers.UpdateStatus(req.ID, entity.TransferRechazado, authorizer, note, now); err != nil {
				return err
			}
			return r.Audit.Create(&entity.WorkflowEvent{
				ID:          uuid.New().String(),
				RequestKind: entity.RequestKindTraslado,
				RequestID:   req.ID,
				Kind:        entity.EventRechazo,
				Actor:       authorizer,
				Note:        note,
				CreatedAt:   now,
			})
		}

		for _, line := range req.Lines {
			if err := uc.executeLine(r, req, line, authorizer, now); err != nil {
				return err
			}
		}
		if err := r.Transfers.UpdateStatus(req.ID, entity.TransferAutorizado, authorizer, note, now); err != nil {
			return err
		}
		return r.Audit.Create(&entity.WorkflowEvent{
			ID:          uuid.New().String(),
			RequestKind: entity.RequestKindTraslado,
			RequestID:   req.ID,
			Kind:        entity.EventAutorizacion,
			Actor:       authorizer,
			Note:        note,
			CreatedAt:   now,
		})
	})
}

// executeLine debita el origen y acredita el destino de una línea, emitiendo
// el par de entradas de kardex (salida negativa, entrada positiva) con el
// mismo transaction id y magnitudes iguales.
func (uc *UseCase) executeLine(r inventory.TxRepos, req *entity.TransferRequest, line *entity.TransferLine, actor string, now time.Time) error {
	part, err := r.Parts.GetByID(line.PartID)
	if err != nil {
		return err
	}
	if part == nil {
		return domain.ErrNotFound
	}
	kardexType := req.KardexType()

	// Débito en el origen
	if req.Origin().IsWarehouse() {
		err = inventory.ApplyWarehouse(r, inventory.WarehouseMovement{
			TransactionID: req.ID,
			PartID:        line.PartID,
			Quantity:      -line.Total(),
			Type:          kardexType,
			UnitCost:      part.AverageCost,
			UserID:        actor,
			At:            now,
		})
	} else {
		err = inventory.ApplyTechnician(r, inventory.TechnicianMovement{
			TransactionID: req.ID,
			TechnicianID:  req.OriginTechnicianID,
			PartID:        line.PartID,
			QtyNew:        -line.QtyNew,
			QtyUsed:       -line.QtyUsed,
			Type:          kardexType,
			UnitCost:      part.AverageCost,
			UserID:        actor,
			At:            now,
		})
	}
	if err != nil {
		return err
	}

	// Crédito en el destino
	if req.Destination().IsWarehouse() {
		return inventory.ApplyWarehouse(r, inventory.WarehouseMovement{
			TransactionID: req.ID,
			PartID:        line.PartID,
			Quantity:      line.Total(),
			Type:          kardexType,
			UnitCost:      part.AverageCost,
			UserID:        actor,
			At:            now,
		})
	}
	return inventory.ApplyTechnician(r, inventory.TechnicianMovement{
		TransactionID: req.ID,
		TechnicianID:  req.DestTechnicianID,
		PartID:        line.PartID,
		QtyNew:        line.QtyNew,
		QtyUsed:       line.QtyUsed,
		Type:          kardexType,
		UnitCost:      part.AverageCost,
		UserID:        actor,
		At:            now,
	})
}

// Cancel retira una solicitud PENDIENTE sin tocar el ledger.
func (uc *UseCase) Cancel(ctx context.Context, requestID, userID string) error {
	now := time.Now()
	return uc.txRunner.Run(ctx, func(r inventory.TxRepos) error {
		req, err := r.Transfers.GetByIDForUpdate(requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrNotFound
		}
		if req.Status != entity.TransferPendiente {
			return domain.ErrInvalidState
		}
		if err := r.Transfers.UpdateStatus(req.ID, entity.TransferCancelado, userID, "", now); err != nil {
			return err
		}
		return r.Audit.Create(&entity.WorkflowEvent{
			ID:          uuid.New().String(),
			RequestKind: entity.RequestKindTraslado,
			RequestID:   req.ID,
			Kind:        entity.EventCancelacion,
			Actor:       userID,
			CreatedAt:   now,
		})
	})
}

// GetByID devuelve la solicitud con sus líneas.
func (uc *UseCase) GetByID(ctx context.Context, id string) (*entity.TransferRequest, error) {
	req, err := uc.transferRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrNotFound
	}
	return req, nil
}

// List devuelve solicitudes, opcionalmente filtradas por estado.
func (uc *UseCase) List(ctx context.Context, status string, limit, offset int) ([]*entity.TransferRequest, error) {
	if limit <= 0 {
		limit = 50
	}
	return uc.transferRepo.List(status, limit, offset)
}

// Events devuelve la traza de auditoría de la solicitud.
func (uc *UseCase) Events(ctx context.Context, id string) ([]*entity.WorkflowEvent, error) {
	return uc.auditRepo.ListByRequest(entity.RequestKindTraslado, id)
}
