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

var _ repository.TransferRepository = (*TransferRepo)(nil)

// TransferRepo implementación de TransferRepository sobre PostgreSQL.
type TransferRepo struct {
	q Querier
}

// NewTransferRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransferRepository(q Querier) *TransferRepo {
	return &TransferRepo{q: q}
}

const transferColumns = `id, type, origin_technician_id, dest_technician_id, status,
	requested_by, decided_by, note, created_at, decided_at, cancelled_at`

// Create persiste el encabezado y sus líneas. Invocar dentro de una tx para
// que encabezado y líneas queden atómicos.
func (r *TransferRepo) Create(req *entity.TransferRequest) error {
	query := `
		INSERT INTO transfer_requests (id, type, origin_technician_id, dest_technician_id,
			status, requested_by, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		req.ID, req.Type, nullIfEmpty(req.OriginTechnicianID), nullIfEmpty(req.DestTechnicianID),
		req.Status, req.RequestedBy, req.Note, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transfer: %w", err)
	}

	lineQuery := `
		INSERT INTO transfer_lines (id, transfer_id, part_id, qty_new, qty_used)
		VALUES ($1, $2, $3, $4, $5)`
	for _, line := range req.Lines {
		if _, err := r.q.Exec(context.Background(), lineQuery,
			line.ID, req.ID, line.PartID, line.QtyNew, line.QtyUsed); err != nil {
			return fmt.Errorf("insert transfer line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la solicitud con sus líneas.
func (r *TransferRepo) GetByID(id string) (*entity.TransferRequest, error) {
	return r.getByID(id, "")
}

// GetByIDForUpdate bloquea el encabezado: a lo sumo una decisión por solicitud.
func (r *TransferRepo) GetByIDForUpdate(id string) (*entity.TransferRequest, error) {
	return r.getByID(id, " FOR UPDATE")
}

func (r *TransferRepo) getByID(id, lock string) (*entity.TransferRequest, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_requests WHERE id = $1` + lock
	req, err := r.scanHeader(r.q.QueryRow(context.Background(), query, id))
	if err != nil || req == nil {
		return req, err
	}
	if err := r.loadLines(req); err != nil {
		return nil, err
	}
	return req, nil
}

func (r *TransferRepo) scanHeader(row pgx.Row) (*entity.TransferRequest, error) {
	var req entity.TransferRequest
	var origin, dest, decidedBy *string
	err := row.Scan(&req.ID, &req.Type, &origin, &dest, &req.Status,
		&req.RequestedBy, &decidedBy, &req.Note, &req.CreatedAt, &req.DecidedAt, &req.CancelledAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transfer: %w", err)
	}
	if origin != nil {
		req.OriginTechnicianID = *origin
	}
	if dest != nil {
		req.DestTechnicianID = *dest
	}
	if decidedBy != nil {
		req.DecidedBy = *decidedBy
	}
	return &req, nil
}

func (r *TransferRepo) loadLines(req *entity.TransferRequest) error {
	query := `
		SELECT id, transfer_id, part_id, qty_new, qty_used
		FROM transfer_lines WHERE transfer_id = $1 ORDER BY id`
	rows, err := r.q.Query(context.Background(), query, req.ID)
	if err != nil {
		return fmt.Errorf("list transfer lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var line entity.TransferLine
		if err := rows.Scan(&line.ID, &line.TransferID, &line.PartID, &line.QtyNew, &line.QtyUsed); err != nil {
			return fmt.Errorf("scan transfer line: %w", err)
		}
		req.Lines = append(req.Lines, &line)
	}
	return rows.Err()
}

// UpdateStatus registra la transición de estado con el actor y la nota.
func (r *TransferRepo) UpdateStatus(id, status, decidedBy, note string, at time.Time) error {
	var query string
	if status == entity.TransferCancelado {
		query = `
			UPDATE transfer_requests
			SET status = $2, decided_by = $3, note = CASE WHEN $4 <> '' THEN $4 ELSE note END, cancelled_at = $5
			WHERE id = $1`
	} else {
		query = `
			UPDATE transfer_requests
			SET status = $2, decided_by = $3, note = CASE WHEN $4 <> '' THEN $4 ELSE note END, decided_at = $5
			WHERE id = $1`
	}
	_, err := r.q.Exec(context.Background(), query, id, status, decidedBy, note, at)
	if err != nil {
		return fmt.Errorf("update transfer status: %w", err)
	}
	return nil
}

// List devuelve las solicitudes, opcionalmente filtradas por estado.
func (r *TransferRepo) List(status string, limit, offset int) ([]*entity.TransferRequest, error) {
	query := `SELECT ` + transferColumns + ` FROM transfer_requests`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transfers: %w", err)
	}
	defer rows.Close()

	var list []*entity.TransferRequest
	for rows.Next() {
		req, err := r.scanHeader(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, req := range list {
		if err := r.loadLines(req); err != nil {
			return nil, err
		}
	}
	return list, nil
}
