package inventory

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// Primitivas del ledger para usar DENTRO de una transacción (TxRepos).
// Cada primitiva bloquea la fila de stock (SELECT FOR UPDATE), aplica el delta
// firmado verificando que ningún saldo quede negativo, y escribe la entrada de
// kardex correspondiente en la misma transacción. Débito y diario nunca se
// separan: un caller que olvide el diario rompería la conservación.

// WarehouseMovement movimiento firmado sobre el saldo de bodega.
type WarehouseMovement struct {
	TransactionID string
	PartID        string
	Quantity      int64 // firmado: positivo entrada, negativo salida
	Type          string
	UnitCost      decimal.Decimal
	Note          string
	UserID        string
	At            time.Time
}

// TechnicianMovement movimiento firmado sobre los buckets de un técnico.
// QtyNew y QtyUsed llevan el mismo signo; se escribe UNA entrada de kardex con
// la cantidad combinada.
type TechnicianMovement struct {
	TransactionID string
	TechnicianID  string
	PartID        string
	QtyNew        int64
	QtyUsed       int64
	Type          string
	UnitCost      decimal.Decimal
	Note          string
	UserID        string
	At            time.Time
}

// ApplyWarehouse aplica el movimiento sobre la bodega y registra el kardex.
func ApplyWarehouse(r TxRepos, m WarehouseMovement) error {
	if m.Quantity == 0 {
		return domain.ErrInvalidInput
	}
	stock, err := r.Stock.GetWarehouseForUpdate(m.PartID)
	if err != nil {
		return err
	}
	newQty := stock.Quantity + m.Quantity
	if newQty < 0 {
		return domain.ErrInsufficientStock
	}
	stock.Quantity = newQty
	stock.UpdatedAt = m.At
	if err := r.Stock.UpsertWarehouse(stock); err != nil {
		return err
	}
	return appendKardex(r, &entity.KardexEntry{
		TransactionID: m.TransactionID,
		PartID:        m.PartID,
		LocationKind:  entity.LocationWarehouse,
		Type:          m.Type,
		Quantity:      m.Quantity,
		UnitCost:      m.UnitCost,
		Note:          m.Note,
		Date:          m.At,
		CreatedAt:     m.At,
		CreatedBy:     m.UserID,
	})
}

// ApplyTechnician aplica el movimiento sobre los buckets del técnico y
// registra el kardex. Cada bucket se verifica de forma independiente.
func ApplyTechnician(r TxRepos, m TechnicianMovement) error {
	if m.QtyNew == 0 && m.QtyUsed == 0 {
		return domain.ErrInvalidInput
	}
	stock, err := r.Stock.GetTechnicianForUpdate(m.TechnicianID, m.PartID)
	if err != nil {
		return err
	}
	newQty := stock.QtyNew + m.QtyNew
	usedQty := stock.QtyUsed + m.QtyUsed
	if newQty < 0 || usedQty < 0 {
		return domain.ErrInsufficientStock
	}
	stock.QtyNew = newQty
	stock.QtyUsed = usedQty
	stock.UpdatedAt = m.At
	if err := r.Stock.UpsertTechnician(stock); err != nil {
		return err
	}
	return appendKardex(r, &entity.KardexEntry{
		TransactionID: m.TransactionID,
		PartID:        m.PartID,
		LocationKind:  entity.LocationTechnician,
		TechnicianID:  m.TechnicianID,
		Type:          m.Type,
		Quantity:      m.QtyNew + m.QtyUsed,
		UnitCost:      m.UnitCost,
		Note:          m.Note,
		Date:          m.At,
		CreatedAt:     m.At,
		CreatedBy:     m.UserID,
	})
}

func appendKardex(r TxRepos, e *entity.KardexEntry) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.TotalCost = decimal.NewFromInt(e.Quantity).Mul(e.UnitCost)
	return r.Kardex.Create(e)
}
