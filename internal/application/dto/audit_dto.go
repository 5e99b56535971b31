package dto

import "time"

// WorkflowEventDTO evento de la traza de auditoría de una solicitud.
type WorkflowEventDTO struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"` // CREACION, AUTORIZACION, RECHAZO, CANCELACION
	Actor     string    `json:"actor"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
