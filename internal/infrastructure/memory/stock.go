package memory

import (
	"sort"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo saldos del ledger en memoria. Las variantes ForUpdate son
// equivalentes a las simples: el TxRunner serializa las transacciones.
type StockRepo struct {
	s *Store
}

func (r *StockRepo) GetWarehouse(partID string) (*entity.WarehouseStock, error) {
	if w, ok := r.s.warehouse[partID]; ok {
		return cloneWarehouse(w), nil
	}
	return &entity.WarehouseStock{PartID: partID}, nil
}

func (r *StockRepo) GetWarehouseForUpdate(partID string) (*entity.WarehouseStock, error) {
	return r.GetWarehouse(partID)
}

func (r *StockRepo) UpsertWarehouse(stock *entity.WarehouseStock) error {
	r.s.warehouse[stock.PartID] = cloneWarehouse(stock)
	return nil
}

func (r *StockRepo) GetTechnician(technicianID, partID string) (*entity.TechnicianStock, error) {
	if byPart, ok := r.s.technician[technicianID]; ok {
		if ts, ok := byPart[partID]; ok {
			return cloneTechnicianStock(ts), nil
		}
	}
	return &entity.TechnicianStock{TechnicianID: technicianID, PartID: partID}, nil
}

func (r *StockRepo) GetTechnicianForUpdate(technicianID, partID string) (*entity.TechnicianStock, error) {
	return r.GetTechnician(technicianID, partID)
}

func (r *StockRepo) UpsertTechnician(stock *entity.TechnicianStock) error {
	byPart, ok := r.s.technician[stock.TechnicianID]
	if !ok {
		byPart = map[string]*entity.TechnicianStock{}
		r.s.technician[stock.TechnicianID] = byPart
	}
	byPart[stock.PartID] = cloneTechnicianStock(stock)
	return nil
}

func (r *StockRepo) BalancesByPart(partID string) (*entity.PartBalances, error) {
	balances := &entity.PartBalances{PartID: partID}
	if w, ok := r.s.warehouse[partID]; ok {
		balances.Warehouse = w.Quantity
	}
	for _, byPart := range r.s.technician {
		if ts, ok := byPart[partID]; ok && ts.Total() > 0 {
			balances.Technicians = append(balances.Technicians, cloneTechnicianStock(ts))
		}
	}
	sort.Slice(balances.Technicians, func(i, j int) bool {
		return balances.Technicians[i].TechnicianID < balances.Technicians[j].TechnicianID
	})
	return balances, nil
}

func (r *StockRepo) TotalByPart(partID string) (int64, error) {
	var total int64
	if w, ok := r.s.warehouse[partID]; ok {
		total += w.Quantity
	}
	for _, byPart := range r.s.technician {
		if ts, ok := byPart[partID]; ok {
			total += ts.Total()
		}
	}
	return total, nil
}

func (r *StockRepo) ListWarehouse(limit, offset int) ([]*entity.WarehouseStock, error) {
	var list []*entity.WarehouseStock
	for _, w := range r.s.warehouse {
		if w.Quantity > 0 {
			list = append(list, cloneWarehouse(w))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PartID < list[j].PartID })
	return paginate(list, limit, offset), nil
}

func (r *StockRepo) ListByTechnician(technicianID string) ([]*entity.TechnicianStock, error) {
	var list []*entity.TechnicianStock
	for _, ts := range r.s.technician[technicianID] {
		if ts.Total() > 0 {
			list = append(list, cloneTechnicianStock(ts))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].PartID < list[j].PartID })
	return list, nil
}
