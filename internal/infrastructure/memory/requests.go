package memory

import (
	"sort"
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo solicitudes de traslado en memoria.
type TransferRepo struct {
	s *Store
}

func (r *TransferRepo) Create(req *entity.TransferRequest) error {
	r.s.transfers[req.ID] = cloneTransfer(req)
	return nil
}

func (r *TransferRepo) GetByID(id string) (*entity.TransferRequest, error) {
	req, ok := r.s.transfers[id]
	if !ok {
		return nil, nil
	}
	return cloneTransfer(req), nil
}

func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.TransferRequest, error) {
	return r.GetByID(id)
}

func (r *TransferRepo) UpdateStatus(id, status, decidedBy, note string, at time.Time) error {
	req, ok := r.s.transfers[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	req.DecidedBy = decidedBy
	if note != "" {
		req.Note = note
	}
	if status == entity.TransferCancelado {
		req.CancelledAt = &at
	} else {
		req.DecidedAt = &at
	}
	return nil
}

func (r *TransferRepo) List(status string, limit, offset int) ([]*entity.TransferRequest, error) {
	var list []*entity.TransferRequest
	for _, req := range r.s.transfers {
		if status != "" && req.Status != status {
			continue
		}
		list = append(list, cloneTransfer(req))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo solicitudes de ajuste en memoria.
type AdjustmentRepo struct {
	s *Store
}

func (r *AdjustmentRepo) Create(req *entity.AdjustmentRequest) error {
	r.s.adjustments[req.ID] = cloneAdjustment(req)
	return nil
}

func (r *AdjustmentRepo) GetByID(id string) (*entity.AdjustmentRequest, error) {
	req, ok := r.s.adjustments[id]
	if !ok {
		return nil, nil
	}
	return cloneAdjustment(req), nil
}

func (r *AdjustmentRepo) GetByIDForUpdate(id string) (*entity.AdjustmentRequest, error) {
	return r.GetByID(id)
}

func (r *AdjustmentRepo) UpdateStatus(id, status, decidedBy, note string, at time.Time) error {
	req, ok := r.s.adjustments[id]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status = status
	req.DecidedBy = decidedBy
	if note != "" {
		req.Note = note
	}
	req.DecidedAt = &at
	return nil
}

func (r *AdjustmentRepo) List(status string, limit, offset int) ([]*entity.AdjustmentRequest, error) {
	var list []*entity.AdjustmentRequest
	for _, req := range r.s.adjustments {
		if status != "" && req.Status != status {
			continue
		}
		list = append(list, cloneAdjustment(req))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

var _ repository.DamageRepository = (*DamageRepo)(nil)

// DamageRepo bajas por daño en memoria.
type DamageRepo struct {
	s *Store
}

func (r *DamageRepo) Create(rec *entity.DamagedPartRecord) error {
	r.s.damages[rec.ID] = cloneDamage(rec)
	return nil
}

func (r *DamageRepo) GetByID(id string) (*entity.DamagedPartRecord, error) {
	rec, ok := r.s.damages[id]
	if !ok {
		return nil, nil
	}
	return cloneDamage(rec), nil
}

func (r *DamageRepo) List(limit, offset int) ([]*entity.DamagedPartRecord, error) {
	var list []*entity.DamagedPartRecord
	for _, rec := range r.s.damages {
		list = append(list, cloneDamage(rec))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
	return paginate(list, limit, offset), nil
}

func (r *DamageRepo) Void(id string) error {
	rec, ok := r.s.damages[id]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Voided = true
	return nil
}
