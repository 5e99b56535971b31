package reports

import (
	"context"

	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// KardexPDFGenerator genera la representación PDF del kardex de un repuesto.
type KardexPDFGenerator interface {
	GenerateKardexPDF(ctx context.Context, part *entity.Part, balances *entity.PartBalances, entries []*entity.KardexEntry) ([]byte, error)
}
