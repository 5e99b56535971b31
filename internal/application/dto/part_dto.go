package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePartRequest body para POST /api/parts.
type CreatePartRequest struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	UnitMeasure string `json:"unit_measure,omitempty"`
}

// UpdatePartRequest body para PUT /api/parts/:id. El costo promedio no es
// editable: lo recalculan las recepciones de compra.
type UpdatePartRequest struct {
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	UnitMeasure string `json:"unit_measure,omitempty"`
}

// PartResponse repuesto del catálogo.
type PartResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	AverageCost decimal.Decimal `json:"average_cost"`
	UnitMeasure string          `json:"unit_measure,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// SetStatusRequest body para PATCH .../status.
type SetStatusRequest struct {
	Status string `json:"status"` // ACTIVO, INACTIVO
}
