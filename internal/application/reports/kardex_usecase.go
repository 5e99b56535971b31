package reports

import (
	"context"
	"time"

	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// KardexReportUseCase arma el reporte PDF del kardex: encabezado del repuesto,
// resumen de saldos por ubicación y tabla de movimientos del período.
type KardexReportUseCase struct {
	partRepo   repository.PartRepository
	stockRepo  repository.StockRepository
	kardexRepo repository.KardexRepository
	generator  KardexPDFGenerator
}

// NewKardexReportUseCase construye el caso de uso.
func NewKardexReportUseCase(
	partRepo repository.PartRepository,
	stockRepo repository.StockRepository,
	kardexRepo repository.KardexRepository,
	generator KardexPDFGenerator,
) *KardexReportUseCase {
	return &KardexReportUseCase{
		partRepo:   partRepo,
		stockRepo:  stockRepo,
		kardexRepo: kardexRepo,
		generator:  generator,
	}
}

// GeneratePDF devuelve los bytes del PDF del kardex del repuesto en el rango
// de fechas indicado (nil = sin límite).
func (uc *KardexReportUseCase) GeneratePDF(ctx context.Context, partID string, from, to *time.Time) ([]byte, error) {
	part, err := uc.partRepo.GetByID(partID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.ErrNotFound
	}
	balances, err := uc.stockRepo.BalancesByPart(partID)
	if err != nil {
		return nil, err
	}
	entries, err := uc.kardexRepo.ListByPart(partID, from, to, 500, 0)
	if err != nil {
		return nil, err
	}
	return uc.generator.GenerateKardexPDF(ctx, part, balances, entries)
}
