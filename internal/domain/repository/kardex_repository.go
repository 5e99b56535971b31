package repository

import (
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// KardexRepository define el puerto de persistencia del diario de movimientos.
// El diario es append-only: no existen Update ni Delete.
type KardexRepository interface {
	Create(entry *entity.KardexEntry) error
	ListByPart(partID string, from, to *time.Time, limit, offset int) ([]*entity.KardexEntry, error)
	ListByTransaction(transactionID string) ([]*entity.KardexEntry, error)
	// SumDeltasByPart devuelve la suma de las cantidades firmadas del repuesto;
	// debe igualar el saldo global del ledger (invariante de conservación).
	SumDeltasByPart(partID string) (int64, error)
}
