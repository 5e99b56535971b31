package memory

import (
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// Los repositorios no toman el lock del store: la serialización la aporta el
// TxRunner y las pruebas ejecutan en un solo goroutine fuera de transacciones.

var _ repository.PartRepository = (*PartRepo)(nil)

// PartRepo catálogo de repuestos en memoria.
type PartRepo struct {
	s *Store
}

func (r *PartRepo) Create(part *entity.Part) error {
	for _, existing := range r.s.parts {
		if existing.SKU == part.SKU {
			return domain.ErrDuplicate
		}
	}
	r.s.parts[part.ID] = clonePart(part)
	return nil
}

func (r *PartRepo) GetByID(id string) (*entity.Part, error) {
	p, ok := r.s.parts[id]
	if !ok {
		return nil, nil
	}
	return clonePart(p), nil
}

func (r *PartRepo) GetBySKU(sku string) (*entity.Part, error) {
	for _, p := range r.s.parts {
		if p.SKU == sku {
			return clonePart(p), nil
		}
	}
	return nil, nil
}

func (r *PartRepo) List(search string, limit, offset int) ([]*entity.Part, error) {
	var list []*entity.Part
	for _, p := range r.s.parts {
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.SKU), search) {
			continue
		}
		list = append(list, clonePart(p))
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

func (r *PartRepo) Update(part *entity.Part) error {
	existing, ok := r.s.parts[part.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = part.Name
	existing.Description = part.Description
	existing.UnitMeasure = part.UnitMeasure
	existing.UpdatedAt = part.UpdatedAt
	return nil
}

func (r *PartRepo) UpdateAverageCost(id string, cost decimal.Decimal) error {
	existing, ok := r.s.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	existing.AverageCost = cost
	return nil
}

func (r *PartRepo) SetStatus(id, status string) error {
	existing, ok := r.s.parts[id]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Status = status
	return nil
}

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

// TechnicianRepo técnicos en memoria.
type TechnicianRepo struct {
	s *Store
}

func (r *TechnicianRepo) Create(t *entity.Technician) error {
	cp := *t
	r.s.technicians[t.ID] = &cp
	return nil
}

func (r *TechnicianRepo) GetByID(id string) (*entity.Technician, error) {
	t, ok := r.s.technicians[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *TechnicianRepo) List(limit, offset int) ([]*entity.Technician, error) {
	var list []*entity.Technician
	for _, t := range r.s.technicians {
		cp := *t
		list = append(list, &cp)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Name < list[j].Name })
	return paginate(list, limit, offset), nil
}

func (r *TechnicianRepo) Update(t *entity.Technician) error {
	existing, ok := r.s.technicians[t.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Name = t.Name
	existing.Document = t.Document
	existing.Phone = t.Phone
	existing.Email = t.Email
	existing.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *TechnicianRepo) SetStatus(id, status string) error {
	existing, ok := r.s.technicians[id]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Status = status
	return nil
}

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct {
	s *Store
}

func (r *UserRepo) Create(u *entity.User) error {
	for _, existing := range r.s.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepo) FindByEmail(email string) (*entity.User, error) {
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}
