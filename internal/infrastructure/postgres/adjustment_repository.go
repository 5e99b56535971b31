package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.AdjustmentRepository = (*AdjustmentRepo)(nil)

// AdjustmentRepo implementación de AdjustmentRepository sobre PostgreSQL.
type AdjustmentRepo struct {
	q Querier
}

// NewAdjustmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAdjustmentRepository(q Querier) *AdjustmentRepo {
	return &AdjustmentRepo{q: q}
}

const adjustmentColumns = `id, technician_id, part_id, system_new, system_used,
	physical_new, physical_used, delta_new, delta_used, requires_auth, reason,
	status, requested_by, decided_by, note, created_at, decided_at`

// Create persiste la solicitud con los saldos del sistema congelados.
func (r *AdjustmentRepo) Create(req *entity.AdjustmentRequest) error {
	query := `
		INSERT INTO adjustment_requests (id, technician_id, part_id, system_new, system_used,
			physical_new, physical_used, delta_new, delta_used, requires_auth, reason,
			status, requested_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.TechnicianID, req.PartID, req.SystemNew, req.SystemUsed,
		req.PhysicalNew, req.PhysicalUsed, req.DeltaNew, req.DeltaUsed, req.RequiresAuth,
		req.Reason, req.Status, req.RequestedBy, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert adjustment: %w", err)
	}
	return nil
}

// GetByID obtiene la solicitud por ID.
func (r *AdjustmentRepo) GetByID(id string) (*entity.AdjustmentRequest, error) {
	return r.getByID(id, "")
}

// GetByIDForUpdate bloquea el encabezado: a lo sumo una decisión por solicitud.
func (r *AdjustmentRepo) GetByIDForUpdate(id string) (*entity.AdjustmentRequest, error) {
	return r.getByID(id, " FOR UPDATE")
}

func (r *AdjustmentRepo) getByID(id, lock string) (*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests WHERE id = $1` + lock
	req, err := scanAdjustment(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get adjustment: %w", err)
	}
	return req, nil
}

func scanAdjustment(row pgx.Row) (*entity.AdjustmentRequest, error) {
	var req entity.AdjustmentRequest
	var decidedBy *string
	err := row.Scan(&req.ID, &req.TechnicianID, &req.PartID, &req.SystemNew, &req.SystemUsed,
		&req.PhysicalNew, &req.PhysicalUsed, &req.DeltaNew, &req.DeltaUsed, &req.RequiresAuth,
		&req.Reason, &req.Status, &req.RequestedBy, &decidedBy, &req.Note,
		&req.CreatedAt, &req.DecidedAt)
	if err != nil {
		return nil, err
	}
	if decidedBy != nil {
		req.DecidedBy = *decidedBy
	}
	return &req, nil
}

// UpdateStatus registra la transición de estado con el actor y la nota.
func (r *AdjustmentRepo) UpdateStatus(id, status, decidedBy, note string, at time.Time) error {
	query := `
		UPDATE adjustment_requests
		SET status = $2, decided_by = $3, note = CASE WHEN $4 <> '' THEN $4 ELSE note END, decided_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status, decidedBy, note, at)
	if err != nil {
		return fmt.Errorf("update adjustment status: %w", err)
	}
	return nil
}

// List devuelve las solicitudes, opcionalmente filtradas por estado.
func (r *AdjustmentRepo) List(status string, limit, offset int) ([]*entity.AdjustmentRequest, error) {
	query := `SELECT ` + adjustmentColumns + ` FROM adjustment_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list adjustments: %w", err)
	}
	defer rows.Close()

	var list []*entity.AdjustmentRequest
	for rows.Next() {
		req, err := scanAdjustment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan adjustment: %w", err)
		}
		list = append(list, req)
	}
	return list, rows.Err()
}
