package repository

import "github.com/tu-usuario/rental-ops/internal/domain/entity"

// StockRepository define el puerto para consultar/actualizar los saldos del
// ledger por ubicación. Las variantes ForUpdate bloquean la fila
// (SELECT FOR UPDATE) y deben usarse dentro de la transacción que decide y
// escribe, nunca en una lectura separada.
// Si no existe fila, Get* devuelve un registro con saldo 0 (creación perezosa).
type StockRepository interface {
	GetWarehouse(partID string) (*entity.WarehouseStock, error)
	GetWarehouseForUpdate(partID string) (*entity.WarehouseStock, error)
	UpsertWarehouse(stock *entity.WarehouseStock) error

	GetTechnician(technicianID, partID string) (*entity.TechnicianStock, error)
	GetTechnicianForUpdate(technicianID, partID string) (*entity.TechnicianStock, error)
	UpsertTechnician(stock *entity.TechnicianStock) error

	// BalancesByPart devuelve los saldos del repuesto en todas las ubicaciones.
	BalancesByPart(partID string) (*entity.PartBalances, error)
	// TotalByPart devuelve el saldo global (todas las ubicaciones y buckets).
	TotalByPart(partID string) (int64, error)

	ListWarehouse(limit, offset int) ([]*entity.WarehouseStock, error)
	ListByTechnician(technicianID string) ([]*entity.TechnicianStock, error)
}
