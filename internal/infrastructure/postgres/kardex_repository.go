package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.KardexRepository = (*KardexRepo)(nil)

// KardexRepo implementación de KardexRepository sobre PostgreSQL.
// La tabla es append-only: este adaptador no expone UPDATE ni DELETE.
type KardexRepo struct {
	q Querier
}

// NewKardexRepository construye el adaptador. Pasar pool o tx (Querier).
func NewKardexRepository(q Querier) *KardexRepo {
	return &KardexRepo{q: q}
}

const kardexColumns = `id, transaction_id, part_id, location_kind, technician_id, type,
	quantity, unit_cost, total_cost, note, date, created_at, created_by`

// Create inserta una entrada del diario.
func (r *KardexRepo) Create(e *entity.KardexEntry) error {
	query := `
		INSERT INTO kardex_entries (id, transaction_id, part_id, location_kind, technician_id,
			type, quantity, unit_cost, total_cost, note, date, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(context.Background(), query,
		e.ID, e.TransactionID, e.PartID, string(e.LocationKind), nullIfEmpty(e.TechnicianID),
		e.Type, e.Quantity, e.UnitCost, e.TotalCost, e.Note, e.Date, e.CreatedAt, e.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert kardex entry: %w", err)
	}
	return nil
}

// ListByPart devuelve el kardex de un repuesto, opcionalmente filtrado por fechas.
func (r *KardexRepo) ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_entries WHERE part_id = $1`
	args := []any{partID}
	if from != nil {
		args = append(args, *from)
		query += fmt.Sprintf(" AND date >= $%d", len(args))
	}
	if to != nil {
		args = append(args, *to)
		query += fmt.Sprintf(" AND date <= $%d", len(args))
	}
	query += fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list kardex: %w", err)
	}
	defer rows.Close()
	return scanKardexRows(rows)
}

// ListByTransaction devuelve las entradas emitidas por una misma operación
// (p.ej. las dos mitades de un traslado).
func (r *KardexRepo) ListByTransaction(transactionID string) ([]*entity.KardexEntry, error) {
	query := `SELECT ` + kardexColumns + ` FROM kardex_entries WHERE transaction_id = $1 ORDER BY created_at`
	rows, err := r.q.Query(context.Background(), query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("list kardex by transaction: %w", err)
	}
	defer rows.Close()
	return scanKardexRows(rows)
}

// SumDeltasByPart suma las cantidades firmadas del repuesto. Debe igualar el
// saldo global del ledger.
func (r *KardexRepo) SumDeltasByPart(partID string) (int64, error) {
	query := `SELECT COALESCE(SUM(quantity), 0) FROM kardex_entries WHERE part_id = $1`
	var sum int64
	if err := r.q.QueryRow(context.Background(), query, partID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("sum kardex deltas: %w", err)
	}
	return sum, nil
}

func scanKardexRows(rows rowsScanner) ([]*entity.KardexEntry, error) {
	var list []*entity.KardexEntry
	for rows.Next() {
		var e entity.KardexEntry
		var locationKind string
		var technicianID *string
		if err := rows.Scan(&e.ID, &e.TransactionID, &e.PartID, &locationKind, &technicianID,
			&e.Type, &e.Quantity, &e.UnitCost, &e.TotalCost, &e.Note, &e.Date,
			&e.CreatedAt, &e.CreatedBy); err != nil {
			return nil, fmt.Errorf("scan kardex entry: %w", err)
		}
		e.LocationKind = entity.LocationKind(locationKind)
		if technicianID != nil {
			e.TechnicianID = *technicianID
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
