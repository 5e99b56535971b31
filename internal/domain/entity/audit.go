package entity

import "time"

// Clases de solicitud auditables.
const (
	RequestKindTraslado = "TRASLADO"
	RequestKindAjuste   = "AJUSTE"
)

// Tipos de evento del flujo de trabajo. Unión etiquetada de eventos conocidos
// en lugar de blobs JSON libres: la traza de auditoría queda verificable por
// máquina.
const (
	EventCreacion     = "CREACION"
	EventAutorizacion = "AUTORIZACION"
	EventRechazo      = "RECHAZO"
	EventCancelacion  = "CANCELACION"
)

// WorkflowEvent evento tipado de la traza de auditoría de una solicitud
// (traslado o ajuste).
type WorkflowEvent struct {
	ID          string
	RequestKind string // TRASLADO, AJUSTE
	RequestID   string
	Kind        string // CREACION, AUTORIZACION, RECHAZO, CANCELACION
	Actor       string // usuario que ejecutó la transición
	Note        string
	CreatedAt   time.Time
}
