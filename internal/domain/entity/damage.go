package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DamagedPartRecord registra repuestos retirados de circulación por daño.
// Es un sumidero terminal: una vez creado no es reversible salvo por el flag
// Voided (anulación suave); no existe primitiva de "deshacer".
type DamagedPartRecord struct {
	ID       string
	PartID   string
	Quantity int64

	// Origen del daño: al menos uno presente.
	TechnicianID string // el stock se descuenta del técnico (USADO primero)
	SupplierID   string // daño atribuido al proveedor
	ReceiptRef   string // referencia a la recepción de compra

	// Desglose del débito aplicado cuando el origen es un técnico.
	QtyFromUsed int64
	QtyFromNew  int64

	Reason     string
	LossValue  decimal.Decimal // nuevo a costo promedio, usado con 50% de descuento
	Voided     bool
	RecordedBy string
	CreatedAt  time.Time
}
