package dto

import "time"

// TransferLineRequest línea de un traslado.
type TransferLineRequest struct {
	PartID  string `json:"part_id"`
	QtyNew  int64  `json:"qty_new"`
	QtyUsed int64  `json:"qty_used"`
}

// CreateTransferRequest body para POST /api/transfers.
type CreateTransferRequest struct {
	Type               string                `json:"type"` // BODEGA_TECNICO, TECNICO_BODEGA, TECNICO_TECNICO
	OriginTechnicianID string                `json:"origin_technician_id,omitempty"`
	DestTechnicianID   string                `json:"dest_technician_id,omitempty"`
	Note               string                `json:"note,omitempty"`
	Lines              []TransferLineRequest `json:"lines"`
}

// DecisionRequest body para POST .../:id/authorize.
type DecisionRequest struct {
	Approve bool   `json:"approve"`
	Note    string `json:"note,omitempty"`
}

// TransferLineResponse línea persistida.
type TransferLineResponse struct {
	ID      string `json:"id"`
	PartID  string `json:"part_id"`
	QtyNew  int64  `json:"qty_new"`
	QtyUsed int64  `json:"qty_used"`
}

// TransferResponse solicitud de traslado con sus líneas.
type TransferResponse struct {
	ID                 string                 `json:"id"`
	Type               string                 `json:"type"`
	OriginTechnicianID string                 `json:"origin_technician_id,omitempty"`
	DestTechnicianID   string                 `json:"dest_technician_id,omitempty"`
	Status             string                 `json:"status"`
	RequestedBy        string                 `json:"requested_by"`
	DecidedBy          string                 `json:"decided_by,omitempty"`
	Note               string                 `json:"note,omitempty"`
	CreatedAt          time.Time              `json:"created_at"`
	DecidedAt          *time.Time             `json:"decided_at,omitempty"`
	Lines              []TransferLineResponse `json:"lines"`
}
