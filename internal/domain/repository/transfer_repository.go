package repository

import (
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// TransferRepository define el puerto de persistencia de solicitudes de traslado.
type TransferRepository interface {
	// Create persiste el encabezado y sus líneas.
	Create(request *entity.TransferRequest) error
	GetByID(id string) (*entity.TransferRequest, error)
	// GetByIDForUpdate bloquea el encabezado para decidir dentro de la misma
	// transacción (guard de concurrencia: una sola decisión por solicitud).
	GetByIDForUpdate(id string) (*entity.TransferRequest, error)
	// UpdateStatus registra la transición de estado con el actor y la nota.
	UpdateStatus(id, status, decidedBy, note string, at time.Time) error
	List(status string, limit, offset int) ([]*entity.TransferRequest, error)
}
