package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL. Las variantes
// ForUpdate toman el bloqueo de fila; deben invocarse dentro de la transacción
// que decide y escribe.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// GetWarehouse devuelve el saldo de bodega; registro en 0 si no existe fila.
func (r *StockRepo) GetWarehouse(partID string) (*entity.WarehouseStock, error) {
	return r.getWarehouse(partID, "")
}

// GetWarehouseForUpdate bloquea la fila de bodega del repuesto.
func (r *StockRepo) GetWarehouseForUpdate(partID string) (*entity.WarehouseStock, error) {
	return r.getWarehouse(partID, " FOR UPDATE")
}

func (r *StockRepo) getWarehouse(partID, lock string) (*entity.WarehouseStock, error) {
	query := `SELECT part_id, quantity, updated_at FROM warehouse_stock WHERE part_id = $1` + lock
	var s entity.WarehouseStock
	err := r.q.QueryRow(context.Background(), query, partID).Scan(&s.PartID, &s.Quantity, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Creación perezosa: sin fila = saldo 0.
			return &entity.WarehouseStock{PartID: partID}, nil
		}
		return nil, fmt.Errorf("get warehouse stock: %w", err)
	}
	return &s, nil
}

// UpsertWarehouse escribe el saldo de bodega (inserta la fila si no existe).
func (r *StockRepo) UpsertWarehouse(stock *entity.WarehouseStock) error {
	query := `
		INSERT INTO warehouse_stock (part_id, quantity, updated_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (part_id) DO UPDATE SET quantity = $2, updated_at = $3`
	_, err := r.q.Exec(context.Background(), query, stock.PartID, stock.Quantity, stock.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert warehouse stock: %w", err)
	}
	return nil
}

// GetTechnician devuelve el saldo del técnico; registro en 0 si no existe fila.
func (r *StockRepo) GetTechnician(technicianID, partID string) (*entity.TechnicianStock, error) {
	return r.getTechnician(technicianID, partID, "")
}

// GetTechnicianForUpdate bloquea la fila (técnico, repuesto).
func (r *StockRepo) GetTechnicianForUpdate(technicianID, partID string) (*entity.TechnicianStock, error) {
	return r.getTechnician(technicianID, partID, " FOR UPDATE")
}

func (r *StockRepo) getTechnician(technicianID, partID, lock string) (*entity.TechnicianStock, error) {
	query := `
		SELECT technician_id, part_id, qty_new, qty_used, updated_at
		FROM technician_stock
		WHERE technician_id = $1 AND part_id = $2` + lock
	var s entity.TechnicianStock
	err := r.q.QueryRow(context.Background(), query, technicianID, partID).Scan(
		&s.TechnicianID, &s.PartID, &s.QtyNew, &s.QtyUsed, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.TechnicianStock{TechnicianID: technicianID, PartID: partID}, nil
		}
		return nil, fmt.Errorf("get technician stock: %w", err)
	}
	return &s, nil
}

// UpsertTechnician escribe el saldo del técnico (inserta la fila si no existe).
func (r *StockRepo) UpsertTechnician(stock *entity.TechnicianStock) error {
	query := `
		INSERT INTO technician_stock (technician_id, part_id, qty_new, qty_used, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (technician_id, part_id) DO UPDATE SET qty_new = $3, qty_used = $4, updated_at = $5`
	_, err := r.q.Exec(context.Background(), query,
		stock.TechnicianID, stock.PartID, stock.QtyNew, stock.QtyUsed, stock.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert technician stock: %w", err)
	}
	return nil
}

// BalancesByPart devuelve los saldos del repuesto en todas las ubicaciones.
func (r *StockRepo) BalancesByPart(partID string) (*entity.PartBalances, error) {
	warehouse, err := r.GetWarehouse(partID)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT technician_id, part_id, qty_new, qty_used, updated_at
		FROM technician_stock
		WHERE part_id = $1 AND (qty_new > 0 OR qty_used > 0)
		ORDER BY technician_id`
	rows, err := r.q.Query(context.Background(), query, partID)
	if err != nil {
		return nil, fmt.Errorf("list technician balances: %w", err)
	}
	defer rows.Close()

	balances := &entity.PartBalances{PartID: partID, Warehouse: warehouse.Quantity}
	for rows.Next() {
		var s entity.TechnicianStock
		if err := rows.Scan(&s.TechnicianID, &s.PartID, &s.QtyNew, &s.QtyUsed, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician balance: %w", err)
		}
		balances.Technicians = append(balances.Technicians, &s)
	}
	return balances, rows.Err()
}

// TotalByPart devuelve el saldo global del repuesto en todas las ubicaciones.
// Se usa dentro de la transacción de recepción de compras para el costo
// promedio: la cantidad previa es la global, no solo la de bodega.
func (r *StockRepo) TotalByPart(partID string) (int64, error) {
	query := `
		SELECT COALESCE((SELECT quantity FROM warehouse_stock WHERE part_id = $1), 0)
		     + COALESCE((SELECT SUM(qty_new + qty_used) FROM technician_stock WHERE part_id = $1), 0)`
	var total int64
	if err := r.q.QueryRow(context.Background(), query, partID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total by part: %w", err)
	}
	return total, nil
}

// ListWarehouse devuelve los saldos de bodega con existencia.
func (r *StockRepo) ListWarehouse(limit, offset int) ([]*entity.WarehouseStock, error) {
	query := `
		SELECT part_id, quantity, updated_at
		FROM warehouse_stock
		WHERE quantity > 0
		ORDER BY part_id LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list warehouse stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.WarehouseStock
	for rows.Next() {
		var s entity.WarehouseStock
		if err := rows.Scan(&s.PartID, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan warehouse stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// ListByTechnician devuelve los saldos con existencia en poder del técnico.
func (r *StockRepo) ListByTechnician(technicianID string) ([]*entity.TechnicianStock, error) {
	query := `
		SELECT technician_id, part_id, qty_new, qty_used, updated_at
		FROM technician_stock
		WHERE technician_id = $1 AND (qty_new > 0 OR qty_used > 0)
		ORDER BY part_id`
	rows, err := r.q.Query(context.Background(), query, technicianID)
	if err != nil {
		return nil, fmt.Errorf("list technician stock: %w", err)
	}
	defer rows.Close()
	var list []*entity.TechnicianStock
	for rows.Next() {
		var s entity.TechnicianStock
		if err := rows.Scan(&s.TechnicianID, &s.PartID, &s.QtyNew, &s.QtyUsed, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan technician stock: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}
