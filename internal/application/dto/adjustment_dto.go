package dto

import "time"

// CreateAdjustmentRequest body para POST /api/adjustments.
type CreateAdjustmentRequest struct {
	TechnicianID string `json:"technician_id"`
	PartID       string `json:"part_id"`
	PhysicalNew  int64  `json:"physical_new"`
	PhysicalUsed int64  `json:"physical_used"`
	Reason       string `json:"reason"`
}

// AdjustmentResponse solicitud de ajuste con snapshots y deltas congelados.
type AdjustmentResponse struct {
	ID           string     `json:"id"`
	TechnicianID string     `json:"technician_id"`
	PartID       string     `json:"part_id"`
	SystemNew    int64      `json:"system_new"`
	SystemUsed   int64      `json:"system_used"`
	PhysicalNew  int64      `json:"physical_new"`
	PhysicalUsed int64      `json:"physical_used"`
	DeltaNew     int64      `json:"delta_new"`
	DeltaUsed    int64      `json:"delta_used"`
	RequiresAuth bool       `json:"requires_auth"`
	Reason       string     `json:"reason"`
	Status       string     `json:"status"`
	RequestedBy  string     `json:"requested_by"`
	DecidedBy    string     `json:"decided_by,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	DecidedAt    *time.Time `json:"decided_at,omitempty"`
}
