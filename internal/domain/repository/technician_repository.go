package repository

import "github.com/tu-usuario/rental-ops/internal/domain/entity"

// TechnicianRepository define el puerto de persistencia de técnicos.
type TechnicianRepository interface {
	Create(technician *entity.Technician) error
	GetByID(id string) (*entity.Technician, error)
	List(limit, offset int) ([]*entity.Technician, error)
	Update(technician *entity.Technician) error
	SetStatus(id, status string) error
}
