package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.DamageRepository = (*DamageRepo)(nil)

// DamageRepo implementación de DamageRepository sobre PostgreSQL.
type DamageRepo struct {
	q Querier
}

// NewDamageRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDamageRepository(q Querier) *DamageRepo {
	return &DamageRepo{q: q}
}

const damageColumns = `id, part_id, quantity, technician_id, supplier_id, receipt_ref,
	qty_from_used, qty_from_new, reason, loss_value, voided, recorded_by, created_at`

// Create persiste la baja por daño.
func (r *DamageRepo) Create(rec *entity.DamagedPartRecord) error {
	query := `
		INSERT INTO damaged_parts (id, part_id, quantity, technician_id, supplier_id, receipt_ref,
			qty_from_used, qty_from_new, reason, loss_value, voided, recorded_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.PartID, rec.Quantity, nullIfEmpty(rec.TechnicianID),
		nullIfEmpty(rec.SupplierID), nullIfEmpty(rec.ReceiptRef),
		rec.QtyFromUsed, rec.QtyFromNew, rec.Reason, rec.LossValue,
		rec.Voided, rec.RecordedBy, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert damaged part: %w", err)
	}
	return nil
}

// GetByID obtiene el registro por ID.
func (r *DamageRepo) GetByID(id string) (*entity.DamagedPartRecord, error) {
	query := `SELECT ` + damageColumns + ` FROM damaged_parts WHERE id = $1`
	rec, err := scanDamage(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get damaged part: %w", err)
	}
	return rec, nil
}

func scanDamage(row pgx.Row) (*entity.DamagedPartRecord, error) {
	var rec entity.DamagedPartRecord
	var technicianID, supplierID, receiptRef *string
	err := row.Scan(&rec.ID, &rec.PartID, &rec.Quantity, &technicianID, &supplierID, &receiptRef,
		&rec.QtyFromUsed, &rec.QtyFromNew, &rec.Reason, &rec.LossValue,
		&rec.Voided, &rec.RecordedBy, &rec.CreatedAt)
	if err != nil {
		return nil, err
	}
	if technicianID != nil {
		rec.TechnicianID = *technicianID
	}
	if supplierID != nil {
		rec.SupplierID = *supplierID
	}
	if receiptRef != nil {
		rec.ReceiptRef = *receiptRef
	}
	return &rec, nil
}

// List devuelve las bajas registradas, más recientes primero.
func (r *DamageRepo) List(limit, offset int) ([]*entity.DamagedPartRecord, error) {
	query := `SELECT ` + damageColumns + ` FROM damaged_parts ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list damaged parts: %w", err)
	}
	defer rows.Close()

	var list []*entity.DamagedPartRecord
	for rows.Next() {
		rec, err := scanDamage(rows)
		if err != nil {
			return nil, fmt.Errorf("scan damaged part: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// Void marca la anulación suave; el débito del ledger permanece.
func (r *DamageRepo) Void(id string) error {
	query := `UPDATE damaged_parts SET voided = true WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, id)
	if err != nil {
		return fmt.Errorf("void damaged part: %w", err)
	}
	return nil
}
