package repository

import "github.com/tu-usuario/rental-ops/internal/domain/entity"

// AuditRepository define el puerto de persistencia de la traza de auditoría
// de los flujos de traslado y ajuste.
type AuditRepository interface {
	Create(event *entity.WorkflowEvent) error
	ListByRequest(requestKind, requestID string) ([]*entity.WorkflowEvent, error)
}
