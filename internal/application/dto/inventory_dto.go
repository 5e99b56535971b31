package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ApplyMovementRequest body para POST /api/inventory/movements.
// technician_id vacío = bodega central; bucket obligatorio para técnicos.
type ApplyMovementRequest struct {
	PartID       string `json:"part_id"`
	TechnicianID string `json:"technician_id,omitempty"`
	Bucket       string `json:"bucket,omitempty"` // NUEVO, USADO
	Quantity     int64  `json:"quantity"`         // firmado
	Type         string `json:"type"`
	Note         string `json:"note,omitempty"`
}

// RegisterReceiptRequest body para POST /api/inventory/receipts.
type RegisterReceiptRequest struct {
	PartID     string          `json:"part_id"`
	Quantity   int64           `json:"quantity"`
	UnitCost   decimal.Decimal `json:"unit_cost"`
	ReceiptRef string          `json:"receipt_ref,omitempty"`
	Note       string          `json:"note,omitempty"`
}

// TechnicianBalanceDTO saldo de un técnico dividido por condición.
type TechnicianBalanceDTO struct {
	TechnicianID string `json:"technician_id"`
	QtyNew       int64  `json:"qty_new"`
	QtyUsed      int64  `json:"qty_used"`
}

// PartBalancesResponse saldos de un repuesto en todas las ubicaciones.
type PartBalancesResponse struct {
	PartID      string                 `json:"part_id"`
	Warehouse   int64                  `json:"warehouse"`
	Technicians []TechnicianBalanceDTO `json:"technicians"`
	Total       int64                  `json:"total"`
}

// KardexEntryDTO entrada del diario de movimientos.
type KardexEntryDTO struct {
	ID            string          `json:"id"`
	TransactionID string          `json:"transaction_id"`
	PartID        string          `json:"part_id"`
	Location      string          `json:"location"`
	Type          string          `json:"type"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Note          string          `json:"note,omitempty"`
	Date          time.Time       `json:"date"`
	CreatedBy     string          `json:"created_by,omitempty"`
}

// WarehouseStockDTO fila del listado de existencias de bodega.
type WarehouseStockDTO struct {
	PartID    string    `json:"part_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TechnicianStockDTO fila del listado de existencias de un técnico.
type TechnicianStockDTO struct {
	PartID  string `json:"part_id"`
	QtyNew  int64  `json:"qty_new"`
	QtyUsed int64  `json:"qty_used"`
	Total   int64  `json:"total"`
}
