package inventory_test

import (
	"context"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/infrastructure/memory"
)

const (
	partID = "part-1"
	techID = "tech-1"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// newLedger arma el caso de uso sobre el store en memoria con un repuesto y
// un técnico activos ya sembrados.
func newLedger(t *testing.T) (*inventory.LedgerUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.PartRepo().Create(&entity.Part{
		ID: partID, SKU: "FLT-001", Name: "Filtro hidráulico",
		AverageCost: decimal.Zero, Status: entity.PartStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.TechnicianRepo().Create(&entity.Technician{
		ID: techID, Name: "Carlos Pérez", Status: entity.TechnicianStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))
	uc := inventory.NewLedgerUseCase(
		memory.NewTxRunner(store),
		store.PartRepo(),
		store.TechnicianRepo(),
		store.StockRepo(),
		store.KardexRepo(),
	)
	return uc, store
}

// seedWarehouse acredita la bodega vía recepción de compra.
func seedWarehouse(t *testing.T, uc *inventory.LedgerUseCase, qty int64, unitCost string) {
	t.Helper()
	require.NoError(t, uc.RegisterReceipt(context.Background(), inventory.ReceiptInput{
		PartID: partID, Quantity: qty, UnitCost: d(unitCost), UserID: "u-test",
	}))
}

func TestApplyMovement_CreditoYDebitoBodega(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	seedWarehouse(t, uc, 10, "100")

	// Consumo de servicio: salida de 4
	err := uc.ApplyMovement(ctx, inventory.MovementInput{
		PartID: partID, Quantity: -4,
		Type: entity.KardexConsumoServicioBodega, UserID: "u-test",
	})
	require.NoError(t, err)

	bal, err := uc.GetBalance(ctx, partID, "", "")
	require.NoError(t, err)
	assert.Equal(t, int64(6), bal)

	// Retorno: entrada de 1
	require.NoError(t, uc.ApplyMovement(ctx, inventory.MovementInput{
		PartID: partID, Quantity: 1,
		Type: entity.KardexRetornoServicio, UserID: "u-test",
	}))
	bal, _ = uc.GetBalance(ctx, partID, "", "")
	assert.Equal(t, int64(7), bal)

	// El diario conserva el saldo
	sum, err := store.KardexRepo().SumDeltasByPart(partID)
	require.NoError(t, err)
	assert.Equal(t, int64(7), sum)
}

func TestApplyMovement_StockInsuficiente(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	seedWarehouse(t, uc, 3, "100")

	err := uc.ApplyMovement(ctx, inventory.MovementInput{
		PartID: partID, Quantity: -5,
		Type: entity.KardexConsumoServicioBodega, UserID: "u-test",
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El rechazo no dejó rastro: saldo y diario intactos.
	bal, _ := uc.GetBalance(ctx, partID, "", "")
	assert.Equal(t, int64(3), bal)
	sum, _ := store.KardexRepo().SumDeltasByPart(partID)
	assert.Equal(t, int64(3), sum)
}

func TestApplyMovement_TecnicoRequiereBucket(t *testing.T) {
	uc, _ := newLedger(t)
	err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		PartID: partID, TechnicianID: techID, Quantity: 2,
		Type: entity.KardexRetornoServicio, UserID: "u-test",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestApplyMovement_TipoNoSancionado(t *testing.T) {
	uc, _ := newLedger(t)
	// COMPRA solo entra por RegisterReceipt; TRASLADO solo por su flujo.
	for _, typ := range []string{entity.KardexCompra, entity.KardexTrasladoBodegaTecnico, "CUALQUIERA"} {
		err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
			PartID: partID, Quantity: 1, Type: typ, UserID: "u-test",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo %s no debe ser aceptado", typ)
	}
}

func TestApplyMovement_RepuestoInactivo(t *testing.T) {
	uc, store := newLedger(t)
	require.NoError(t, store.PartRepo().SetStatus(partID, entity.PartStatusInactivo))

	err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		PartID: partID, Quantity: 1,
		Type: entity.KardexRetornoServicio, UserID: "u-test",
	})
	assert.ErrorIs(t, err, domain.ErrInactive)
}

func TestRegisterReceipt_PromedioPonderado(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()

	// Primera compra: 10 @ 100 → promedio 100
	seedWarehouse(t, uc, 10, "100")
	part, err := store.PartRepo().GetByID(partID)
	require.NoError(t, err)
	assert.True(t, d("100").Equal(part.AverageCost), "promedio tras primera compra: %s", part.AverageCost)

	// Segunda compra: 10 @ 200 → promedio 150
	seedWarehouse(t, uc, 10, "200")
	part, _ = store.PartRepo().GetByID(partID)
	assert.True(t, d("150").Equal(part.AverageCost), "promedio tras segunda compra: %s", part.AverageCost)

	bal, _ := uc.GetBalance(ctx, partID, "", "")
	assert.Equal(t, int64(20), bal)

	// La entrada COMPRA queda valorada al costo de la recepción, no al promedio.
	entries, err := store.KardexRepo().ListByPart(partID, nil, nil, 10, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, entity.KardexCompra, entries[0].Type)
	assert.True(t, d("200").Equal(entries[0].UnitCost))
}

func TestRegisterReceipt_EntradaInvalida(t *testing.T) {
	uc, _ := newLedger(t)
	ctx := context.Background()

	err := uc.RegisterReceipt(ctx, inventory.ReceiptInput{PartID: partID, Quantity: 0, UnitCost: d("10")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = uc.RegisterReceipt(ctx, inventory.ReceiptInput{PartID: partID, Quantity: 5, UnitCost: d("-1")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// El invariante central del ledger: tras cualquier secuencia de movimientos
// (aceptados o rechazados), ningún saldo es negativo y la suma del diario
// iguala el saldo global del repuesto.
func TestLedger_ConservacionYNoNegatividad(t *testing.T) {
	uc, store := newLedger(t)
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	seedWarehouse(t, uc, 50, "100")

	buckets := []entity.Bucket{entity.BucketNew, entity.BucketUsed}
	for i := 0; i < 300; i++ {
		qty := int64(rng.Intn(9) - 4) // -4..4
		if qty == 0 {
			continue
		}
		in := inventory.MovementInput{
			PartID: partID, Quantity: qty,
			Type:   entity.KardexRetornoServicio,
			UserID: "u-fuzz",
		}
		if qty < 0 {
			in.Type = entity.KardexConsumoServicioTecnico
		}
		if rng.Intn(2) == 0 {
			in.TechnicianID = techID
			in.Bucket = buckets[rng.Intn(2)]
			if qty < 0 {
				in.Type = entity.KardexConsumoServicioTecnico
			}
		} else if qty < 0 {
			in.Type = entity.KardexConsumoServicioBodega
		}

		err := uc.ApplyMovement(ctx, in)
		if err != nil {
			// Único rechazo admisible en la secuencia: saldo insuficiente.
			require.ErrorIs(t, err, domain.ErrInsufficientStock)
		}

		// No-negatividad en todas las ubicaciones
		wh, err := store.StockRepo().GetWarehouse(partID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, wh.Quantity, int64(0))
		ts, err := store.StockRepo().GetTechnician(techID, partID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, ts.QtyNew, int64(0))
		assert.GreaterOrEqual(t, ts.QtyUsed, int64(0))

		// Conservación: diario == saldo global
		total, err := store.StockRepo().TotalByPart(partID)
		require.NoError(t, err)
		sum, err := store.KardexRepo().SumDeltasByPart(partID)
		require.NoError(t, err)
		assert.Equal(t, total, sum, "iteración %d: el diario no conserva el saldo", i)
	}
}
