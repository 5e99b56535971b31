package repository

import (
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// AdjustmentRepository define el puerto de persistencia de solicitudes de ajuste.
type AdjustmentRepository interface {
	Create(request *entity.AdjustmentRequest) error
	GetByID(id string) (*entity.AdjustmentRequest, error)
	// GetByIDForUpdate bloquea el encabezado para decidir dentro de la misma transacción.
	GetByIDForUpdate(id string) (*entity.AdjustmentRequest, error)
	UpdateStatus(id, status, decidedBy, note string, at time.Time) error
	List(status string, limit, offset int) ([]*entity.AdjustmentRequest, error)
}
