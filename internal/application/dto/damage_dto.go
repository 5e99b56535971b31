package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordDamageRequest body para POST /api/damages. Al menos un origen
// (technician_id, supplier_id o receipt_ref) debe estar presente.
type RecordDamageRequest struct {
	PartID       string `json:"part_id"`
	Quantity     int64  `json:"quantity"`
	TechnicianID string `json:"technician_id,omitempty"`
	SupplierID   string `json:"supplier_id,omitempty"`
	ReceiptRef   string `json:"receipt_ref,omitempty"`
	Reason       string `json:"reason"`
}

// DamageResponse registro de baja por daño.
type DamageResponse struct {
	ID           string          `json:"id"`
	PartID       string          `json:"part_id"`
	Quantity     int64           `json:"quantity"`
	TechnicianID string          `json:"technician_id,omitempty"`
	SupplierID   string          `json:"supplier_id,omitempty"`
	ReceiptRef   string          `json:"receipt_ref,omitempty"`
	QtyFromUsed  int64           `json:"qty_from_used"`
	QtyFromNew   int64           `json:"qty_from_new"`
	Reason       string          `json:"reason"`
	LossValue    decimal.Decimal `json:"loss_value"`
	Voided       bool            `json:"voided"`
	RecordedBy   string          `json:"recorded_by"`
	CreatedAt    time.Time       `json:"created_at"`
}
