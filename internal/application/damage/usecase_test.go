package damage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rental-ops/internal/application/damage"
	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/application/transfer"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/infrastructure/memory"
)

const (
	partID  = "part-1"
	techID  = "tech-1"
	adminID = "user-admin"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

type fixture struct {
	store *memory.Store
	uc    *damage.UseCase
}

// newFixture deja al técnico con 2 nuevos y 3 usados del repuesto, a costo
// promedio 100.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.PartRepo().Create(&entity.Part{
		ID: partID, SKU: "MAN-030", Name: "Manguera hidráulica",
		AverageCost: decimal.Zero, Status: entity.PartStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.TechnicianRepo().Create(&entity.Technician{
		ID: techID, Name: "Luis Rojas", Status: entity.TechnicianStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))

	ctx := context.Background()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.KardexRepo())
	require.NoError(t, ledger.RegisterReceipt(ctx, inventory.ReceiptInput{
		PartID: partID, Quantity: 10, UnitCost: decimal.NewFromInt(100), UserID: adminID,
	}))
	transferUC := transfer.NewUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.TransferRepo(), store.AuditRepo())
	req, err := transferUC.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techID,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 2, QtyUsed: 3}},
	})
	require.NoError(t, err)
	require.NoError(t, transferUC.Authorize(ctx, req.ID, adminID, true, ""))

	uc := damage.NewUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.DamageRepo())
	return &fixture{store: store, uc: uc}
}

func (f *fixture) techStock(t *testing.T) *entity.TechnicianStock {
	t.Helper()
	s, err := f.store.StockRepo().GetTechnician(techID, partID)
	require.NoError(t, err)
	return s
}

// El débito consume USADO primero y NUEVO para el remanente: con 2 nuevos y
// 3 usados, una baja de 4 sale 3 de usados y 1 de nuevos.
func TestRecord_DebitaUsadoPrimero(t *testing.T) {
	f := newFixture(t)

	rec, err := f.uc.Record(context.Background(), damage.RecordInput{
		PartID: partID, Quantity: 4, TechnicianID: techID,
		Reason: "caída desde el equipo", UserID: adminID,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3), rec.QtyFromUsed)
	assert.Equal(t, int64(1), rec.QtyFromNew)

	ts := f.techStock(t)
	assert.Equal(t, int64(1), ts.QtyNew)
	assert.Equal(t, int64(0), ts.QtyUsed)

	// Una entrada de kardex BAJA_DANO con el débito combinado
	entries, err := f.store.KardexRepo().ListByTransaction(rec.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.KardexBajaDano, entries[0].Type)
	assert.Equal(t, int64(-4), entries[0].Quantity)
}

// Pérdida valorada: nuevos a costo promedio, usados al 50%.
// 1·100 + 3·(100·0.5) = 250.
func TestRecord_ValorDePerdida(t *testing.T) {
	f := newFixture(t)

	rec, err := f.uc.Record(context.Background(), damage.RecordInput{
		PartID: partID, Quantity: 4, TechnicianID: techID,
		Reason: "daño irreparable", UserID: adminID,
	})
	require.NoError(t, err)
	assert.True(t, d("250").Equal(rec.LossValue), "esperaba 250, obtuvo %s", rec.LossValue)
}

func TestRecord_StockInsuficiente(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Record(context.Background(), damage.RecordInput{
		PartID: partID, Quantity: 6, TechnicianID: techID,
		Reason: "imposible", UserID: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Nada quedó registrado ni debitado
	ts := f.techStock(t)
	assert.Equal(t, int64(2), ts.QtyNew)
	assert.Equal(t, int64(3), ts.QtyUsed)
	records, err := f.uc.List(context.Background(), 10, 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

// Origen proveedor: el repuesto nunca entró al ledger, así que no hay débito
// ni kardex; la pérdida se valora toda como nuevo.
func TestRecord_OrigenProveedorNoTocaElLedger(t *testing.T) {
	f := newFixture(t)

	rec, err := f.uc.Record(context.Background(), damage.RecordInput{
		PartID: partID, Quantity: 5, SupplierID: "prov-9",
		Reason: "llegó dañado", UserID: adminID,
	})
	require.NoError(t, err)

	assert.True(t, d("500").Equal(rec.LossValue))
	assert.Equal(t, int64(0), rec.QtyFromNew)
	assert.Equal(t, int64(0), rec.QtyFromUsed)

	ts := f.techStock(t)
	assert.Equal(t, int64(2), ts.QtyNew)
	assert.Equal(t, int64(3), ts.QtyUsed)

	entries, err := f.store.KardexRepo().ListByTransaction(rec.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestRecord_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Record(ctx, damage.RecordInput{
		PartID: partID, Quantity: 0, TechnicianID: techID,
		Reason: "x", UserID: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = f.uc.Record(ctx, damage.RecordInput{
		PartID: partID, Quantity: 1, TechnicianID: techID, UserID: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin razón")

	_, err = f.uc.Record(ctx, damage.RecordInput{
		PartID: partID, Quantity: 1, Reason: "sin origen", UserID: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin origen")
}

// Void es anulación suave: marca el registro pero no devuelve stock.
func TestVoid_NoRevierteElDebito(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rec, err := f.uc.Record(ctx, damage.RecordInput{
		PartID: partID, Quantity: 2, TechnicianID: techID,
		Reason: "registro equivocado", UserID: adminID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Void(ctx, rec.ID))

	got, err := f.uc.GetByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.True(t, got.Voided)

	// El stock no vuelve: la corrección va por el flujo de ajuste
	ts := f.techStock(t)
	assert.Equal(t, int64(2), ts.QtyNew+ts.QtyUsed)

	err = f.uc.Void(ctx, rec.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState, "doble anulación")
}
