package postgres

import (
	"context"
	"fmt"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.AuditRepository = (*AuditRepo)(nil)

// AuditRepo implementación de AuditRepository sobre PostgreSQL.
// Tabla append-only de eventos tipados de los flujos de solicitud.
type AuditRepo struct {
	q Querier
}

// NewAuditRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAuditRepository(q Querier) *AuditRepo {
	return &AuditRepo{q: q}
}

// Create inserta un evento de la traza.
func (r *AuditRepo) Create(e *entity.WorkflowEvent) error {
	query := `
		INSERT INTO workflow_events (id, request_kind, request_id, kind, actor, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.RequestKind, e.RequestID, e.Kind, e.Actor, e.Note, e.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert workflow event: %w", err)
	}
	return nil
}

// ListByRequest devuelve la traza de una solicitud en orden cronológico.
func (r *AuditRepo) ListByRequest(requestKind, requestID string) ([]*entity.WorkflowEvent, error) {
	query := `
		SELECT id, request_kind, request_id, kind, actor, note, created_at
		FROM workflow_events
		WHERE request_kind = $1 AND request_id = $2
		ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, requestKind, requestID)
	if err != nil {
		return nil, fmt.Errorf("list workflow events: %w", err)
	}
	defer rows.Close()

	var list []*entity.WorkflowEvent
	for rows.Next() {
		var e entity.WorkflowEvent
		if err := rows.Scan(&e.ID, &e.RequestKind, &e.RequestID, &e.Kind, &e.Actor, &e.Note, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan workflow event: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
