package entity

import "time"

// Estados del flujo de ajuste de inventario.
const (
	AdjustmentPendiente  = "PENDIENTE"
	AdjustmentAutorizado = "AUTORIZADO"
	AdjustmentRechazado  = "RECHAZADO"
	AdjustmentRetirado   = "RETIRADO" // cancelado por el solicitante antes de decidir
)

// AdjustmentRequest reconcilia el saldo del sistema de un (técnico, repuesto)
// contra un conteo físico. Los saldos del sistema y los deltas se congelan al
// momento de la creación. Toda solicitud requiere autorización antes de tocar
// el ledger; RequiresAuth solo marca la urgencia cuando algún delta es
// negativo (faltante sin explicar).
type AdjustmentRequest struct {
	ID           string
	TechnicianID string
	PartID       string
	SystemNew    int64 // saldo del sistema al crear la solicitud
	SystemUsed   int64
	PhysicalNew  int64 // conteo físico reportado
	PhysicalUsed int64
	DeltaNew     int64 // PhysicalNew - SystemNew
	DeltaUsed    int64 // PhysicalUsed - SystemUsed
	RequiresAuth bool  // algún delta negativo: faltante, pista para la UI
	Reason       string
	Status       string
	RequestedBy  string
	DecidedBy    string
	Note         string
	CreatedAt    time.Time
	DecidedAt    *time.Time
}

// NetDelta devuelve el total firmado de ambos deltas congelados.
func (r *AdjustmentRequest) NetDelta() int64 { return r.DeltaNew + r.DeltaUsed }
