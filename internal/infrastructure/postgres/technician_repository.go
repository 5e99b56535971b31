package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.TechnicianRepository = (*TechnicianRepo)(nil)

// TechnicianRepo implementación de TechnicianRepository sobre PostgreSQL.
type TechnicianRepo struct {
	q Querier
}

// NewTechnicianRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTechnicianRepository(q Querier) *TechnicianRepo {
	return &TechnicianRepo{q: q}
}

const technicianColumns = `id, name, document, phone, email, status, created_at, updated_at`

// Create persiste un técnico nuevo.
func (r *TechnicianRepo) Create(t *entity.Technician) error {
	query := `
		INSERT INTO technicians (id, name, document, phone, email, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Document, t.Phone, t.Email, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert technician: %w", err)
	}
	return nil
}

// GetByID obtiene un técnico por ID.
func (r *TechnicianRepo) GetByID(id string) (*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians WHERE id = $1`
	var t entity.Technician
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&t.ID, &t.Name, &t.Document, &t.Phone, &t.Email, &t.Status, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get technician: %w", err)
	}
	return &t, nil
}

// List devuelve los técnicos registrados.
func (r *TechnicianRepo) List(limit, offset int) ([]*entity.Technician, error) {
	query := `SELECT ` + technicianColumns + ` FROM technicians ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list technicians: %w", err)
	}
	defer rows.Close()
	var list []*entity.Technician
	for rows.Next() {
		var t entity.Technician
		if err := rows.Scan(&t.ID, &t.Name, &t.Document, &t.Phone, &t.Email,
			&t.Status, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Update actualiza los campos editables del técnico.
func (r *TechnicianRepo) Update(t *entity.Technician) error {
	query := `
		UPDATE technicians
		SET name = $2, document = $3, phone = $4, email = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.Name, t.Document, t.Phone, t.Email, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update technician: %w", err)
	}
	return nil
}

// SetStatus cambia el estado de ciclo de vida.
func (r *TechnicianRepo) SetStatus(id, status string) error {
	query := `UPDATE technicians SET status = $2, updated_at = now() WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id, status)
	if err != nil {
		return fmt.Errorf("set technician status: %w", err)
	}
	return nil
}
