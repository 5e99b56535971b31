package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/rental-ops/internal/domain/inventory"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestAverageCost_PrimeraCompraFijaElCosto(t *testing.T) {
	// Sin saldo previo, el promedio es el costo de la entrada.
	got := inventory.AverageCost(0, decimal.Zero, 10, d("100"))
	assert.True(t, d("100").Equal(got), "esperaba 100, obtuvo %s", got)
}

func TestAverageCost_PromedioPonderado(t *testing.T) {
	// 10 unidades a 100 en inventario, entran 10 a 200 → promedio 150.
	got := inventory.AverageCost(10, d("100"), 10, d("200"))
	assert.True(t, d("150").Equal(got), "esperaba 150, obtuvo %s", got)
}

func TestAverageCost_PonderaPorCantidades(t *testing.T) {
	// 30 a 100 y entran 10 a 200 → (3000+2000)/40 = 125.
	got := inventory.AverageCost(30, d("100"), 10, d("200"))
	assert.True(t, d("125").Equal(got), "esperaba 125, obtuvo %s", got)
}

func TestAverageCost_SaldoPrevioNegativo(t *testing.T) {
	// Saldo previo <= 0 (dato corrupto o arranque): el costo entrante manda.
	got := inventory.AverageCost(-5, d("80"), 4, d("60"))
	assert.True(t, d("60").Equal(got))
}

func TestAverageCost_CostoEntranteCero(t *testing.T) {
	// Entrada gratuita diluye el promedio.
	got := inventory.AverageCost(10, d("100"), 10, decimal.Zero)
	assert.True(t, d("50").Equal(got), "esperaba 50, obtuvo %s", got)
}
