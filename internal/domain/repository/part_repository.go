package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// PartRepository define el puerto de persistencia del catálogo de repuestos.
type PartRepository interface {
	Create(part *entity.Part) error
	GetByID(id string) (*entity.Part, error)
	GetBySKU(sku string) (*entity.Part, error)
	List(search string, limit, offset int) ([]*entity.Part, error)
	Update(part *entity.Part) error
	// UpdateAverageCost actualiza solo el costo promedio ponderado; lo invoca
	// únicamente el flujo de recepción de compras dentro de su transacción.
	UpdateAverageCost(id string, cost decimal.Decimal) error
	SetStatus(id, status string) error
}
