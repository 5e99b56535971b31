package entity

import "time"

// WarehouseStock representa el saldo actual de un repuesto en la bodega central.
// Se crea de forma perezosa con el primer movimiento y nunca se elimina
// físicamente (la cantidad puede volver a 0). Invariante: Quantity >= 0.
type WarehouseStock struct {
	PartID    string
	Quantity  int64
	UpdatedAt time.Time
}

// TechnicianStock representa el saldo actual de un repuesto en poder de un
// técnico, dividido por condición en NUEVO y USADO.
// Invariante: QtyNew >= 0 y QtyUsed >= 0.
type TechnicianStock struct {
	TechnicianID string
	PartID       string
	QtyNew       int64
	QtyUsed      int64
	UpdatedAt    time.Time
}

// Total devuelve el saldo combinado de ambos buckets.
func (s *TechnicianStock) Total() int64 { return s.QtyNew + s.QtyUsed }

// Bucket devuelve el saldo del bucket indicado.
func (s *TechnicianStock) Bucket(b Bucket) int64 {
	if b == BucketUsed {
		return s.QtyUsed
	}
	return s.QtyNew
}

// PartBalances agrupa los saldos de un repuesto en todas las ubicaciones
// (bodega + técnicos). Usado para reportes y para el cálculo de costo promedio.
type PartBalances struct {
	PartID      string
	Warehouse   int64
	Technicians []*TechnicianStock
}

// Total devuelve el saldo global del repuesto en todas las ubicaciones y buckets.
func (b *PartBalances) Total() int64 {
	total := b.Warehouse
	for _, ts := range b.Technicians {
		total += ts.Total()
	}
	return total
}
