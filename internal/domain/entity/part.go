package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del ciclo de vida de un repuesto.
const (
	PartStatusActivo   = "ACTIVO"
	PartStatusInactivo = "INACTIVO"
)

// Part representa un repuesto del catálogo.
// AverageCost es el costo promedio ponderado del repuesto; es una propiedad del
// repuesto (compartida entre todas las ubicaciones) y solo lo recalculan las
// entradas por compra, nunca los traslados ni los ajustes.
type Part struct {
	ID          string
	SKU         string // código único
	Name        string
	Description string
	AverageCost decimal.Decimal // costo promedio ponderado (inicia en 0)
	UnitMeasure string
	Status      string // ACTIVO, INACTIVO
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el repuesto puede participar en nuevos movimientos.
func (p *Part) IsActive() bool { return p.Status == PartStatusActivo }
