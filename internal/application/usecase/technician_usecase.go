package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// TechnicianUseCase casos de uso del registro de técnicos de campo.
type TechnicianUseCase struct {
	techRepo repository.TechnicianRepository
}

// NewTechnicianUseCase construye el caso de uso.
func NewTechnicianUseCase(techRepo repository.TechnicianRepository) *TechnicianUseCase {
	return &TechnicianUseCase{techRepo: techRepo}
}

// Create persiste el técnico ACTIVO.
func (uc *TechnicianUseCase) Create(in dto.CreateTechnicianRequest) (*dto.TechnicianResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	tech := &entity.Technician{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Document:  in.Document,
		Phone:     in.Phone,
		Email:     in.Email,
		Status:    entity.TechnicianStatusActivo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.techRepo.Create(tech); err != nil {
		return nil, err
	}
	return toTechnicianResponse(tech), nil
}

// GetByID devuelve el técnico.
func (uc *TechnicianUseCase) GetByID(id string) (*dto.TechnicianResponse, error) {
	tech, err := uc.techRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, domain.ErrNotFound
	}
	return toTechnicianResponse(tech), nil
}

// List devuelve los técnicos registrados.
func (uc *TechnicianUseCase) List(limit, offset int) ([]*dto.TechnicianResponse, error) {
	if limit <= 0 {
		limit = 50
	}
	techs, err := uc.techRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.TechnicianResponse, 0, len(techs))
	for _, t := range techs {
		out = append(out, toTechnicianResponse(t))
	}
	return out, nil
}

// Update modifica los campos editables.
func (uc *TechnicianUseCase) Update(id string, in dto.UpdateTechnicianRequest) (*dto.TechnicianResponse, error) {
	tech, err := uc.techRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if tech == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		tech.Name = in.Name
	}
	if in.Document != "" {
		tech.Document = in.Document
	}
	if in.Phone != "" {
		tech.Phone = in.Phone
	}
	if in.Email != "" {
		tech.Email = in.Email
	}
	tech.UpdatedAt = time.Now()
	if err := uc.techRepo.Update(tech); err != nil {
		return nil, err
	}
	return toTechnicianResponse(tech), nil
}

// SetStatus cambia el ciclo de vida ACTIVO/INACTIVO. Un técnico inactivo
// conserva su stock e historial pero no participa en nuevos flujos.
func (uc *TechnicianUseCase) SetStatus(id, status string) error {
	if status != entity.TechnicianStatusActivo && status != entity.TechnicianStatusInactivo {
		return domain.ErrInvalidInput
	}
	tech, err := uc.techRepo.GetByID(id)
	if err != nil {
		return err
	}
	if tech == nil {
		return domain.ErrNotFound
	}
	return uc.techRepo.SetStatus(id, status)
}

func toTechnicianResponse(t *entity.Technician) *dto.TechnicianResponse {
	return &dto.TechnicianResponse{
		ID:        t.ID,
		Name:      t.Name,
		Document:  t.Document,
		Phone:     t.Phone,
		Email:     t.Email,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
