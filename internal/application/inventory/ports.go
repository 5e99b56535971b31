package inventory

import (
	"context"

	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// TxRepos agrupa los repositorios atados a una misma transacción de BD.
// Toda mutación del ledger (movimiento directo, autorización de traslado o
// ajuste, baja por daño) ocurre a través de estos repositorios dentro de una
// única transacción.
type TxRepos struct {
	Stock       repository.StockRepository
	Kardex      repository.KardexRepository
	Parts       repository.PartRepository
	Transfers   repository.TransferRepository
	Adjustments repository.AdjustmentRepository
	Damages     repository.DamageRepository
	Audit       repository.AuditRepository
}

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// inventario: Commit si fn retorna nil, Rollback en caso contrario.
type TxRunner interface {
	Run(ctx context.Context, fn func(r TxRepos) error) error
}
