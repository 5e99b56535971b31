package memory

import (
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo diario de movimientos en memoria (append-only).
type KardexRepo struct {
	s *Store
}

func (r *KardexRepo) Create(e *entity.KardexEntry) error {
	cp := *e
	r.s.kardex = append(r.s.kardex, &cp)
	return nil
}

func (r *KardexRepo) ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	var list []*entity.KardexEntry
	// El diario se recorre de atrás hacia adelante: más recientes primero.
	for i := len(r.s.kardex) - 1; i >= 0; i-- {
		e := r.s.kardex[i]
		if e.PartID != partID {
			continue
		}
		if from != nil && e.Date.Before(*from) {
			continue
		}
		if to != nil && e.Date.After(*to) {
			continue
		}
		cp := *e
		list = append(list, &cp)
	}
	return paginate(list, limit, offset), nil
}

func (r *KardexRepo) ListByTransaction(transactionID string) ([]*entity.KardexEntry, error) {
	var list []*entity.KardexEntry
	for _, e := range r.s.kardex {
		if e.TransactionID == transactionID {
			cp := *e
			list = append(list, &cp)
		}
	}
	return list, nil
}

func (r *KardexRepo) SumDeltasByPart(partID string) (int64, error) {
	var sum int64
	for _, e := range r.s.kardex {
		if e.PartID == partID {
			sum += e.Quantity
		}
	}
	return sum, nil
}

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo traza de auditoría en memoria (append-only).
type AuditRepo struct {
	s *Store
}

func (r *AuditRepo) Create(e *entity.WorkflowEvent) error {
	cp := *e
	r.s.events = append(r.s.events, &cp)
	return nil
}

func (r *AuditRepo) ListByRequest(requestKind, requestID string) ([]*entity.WorkflowEvent, error) {
	var list []*entity.WorkflowEvent
	for _, e := range r.s.events {
		if e.RequestKind == requestKind && e.RequestID == requestID {
			cp := *e
			list = append(list, &cp)
		}
	}
	return list, nil
}
