package adjustment_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rental-ops/internal/application/adjustment"
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

type fixture struct {
	store *memory.Store
	uc    *adjustment.UseCase
}

// newFixture siembra catálogo, acredita la bodega y traslada 20 nuevos + 5
// usados al técnico para que haya saldo de sistema contra el cual reconciliar.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.PartRepo().Create(&entity.Part{
		ID: partID, SKU: "SEL-020", Name: "Sello de aceite",
		AverageCost: decimal.Zero, Status: entity.PartStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.TechnicianRepo().Create(&entity.Technician{
		ID: techID, Name: "Ana Gómez", Status: entity.TechnicianStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))

	ctx := context.Background()
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.KardexRepo())
	require.NoError(t, ledger.RegisterReceipt(ctx, inventory.ReceiptInput{
		PartID: partID, Quantity: 30, UnitCost: decimal.NewFromInt(40), UserID: adminID,
	}))
	transferUC := transfer.NewUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.TransferRepo(), store.AuditRepo())
	req, err := transferUC.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techID,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 20, QtyUsed: 5}},
	})
	require.NoError(t, err)
	require.NoError(t, transferUC.Authorize(ctx, req.ID, adminID, true, ""))

	uc := adjustment.NewUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.AdjustmentRepo(), store.AuditRepo())
	return &fixture{store: store, uc: uc}
}

func (f *fixture) techStock(t *testing.T) *entity.TechnicianStock {
	t.Helper()
	s, err := f.store.StockRepo().GetTechnician(techID, partID)
	require.NoError(t, err)
	return s
}

func TestCreate_SinDiferencia(t *testing.T) {
	f := newFixture(t)
	// El conteo físico coincide con el sistema (20/5): nada que ajustar.
	_, err := f.uc.Create(context.Background(), adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 20, PhysicalUsed: 5,
		Reason: "conteo mensual", RequestedBy: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrNoDifference)
}

func TestCreate_CongelaSnapshotsYDeltas(t *testing.T) {
	f := newFixture(t)
	req, err := f.uc.Create(context.Background(), adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 15, PhysicalUsed: 7,
		Reason: "faltan nuevos, sobran usados", RequestedBy: adminID,
	})
	require.NoError(t, err)

	assert.Equal(t, entity.AdjustmentPendiente, req.Status)
	assert.Equal(t, int64(20), req.SystemNew)
	assert.Equal(t, int64(5), req.SystemUsed)
	assert.Equal(t, int64(-5), req.DeltaNew)
	assert.Equal(t, int64(2), req.DeltaUsed)
	assert.True(t, req.RequiresAuth, "un faltante marca la solicitud como urgente")
}

func TestCreate_SobranteNoMarcaUrgente(t *testing.T) {
	f := newFixture(t)
	req, err := f.uc.Create(context.Background(), adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 22, PhysicalUsed: 5,
		Reason: "aparecieron dos", RequestedBy: adminID,
	})
	require.NoError(t, err)
	assert.False(t, req.RequiresAuth)
}

func TestCreate_EntradaInvalida(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: -1, PhysicalUsed: 0,
		Reason: "x", RequestedBy: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "conteo negativo")

	_, err = f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 10, PhysicalUsed: 0,
		RequestedBy: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin razón")
}

// Aprobar fija los buckets en los valores físicos y escribe una sola entrada
// AJUSTE_INVENTARIO con el neto: 20/5 → 15/5 emite −5.
func TestAuthorize_AprobarFijaBucketsYEscribeKardex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 15, PhysicalUsed: 5,
		Reason: "faltante en conteo", RequestedBy: adminID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, true, "verificado"))

	got, err := f.uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.AdjustmentAutorizado, got.Status)

	ts := f.techStock(t)
	assert.Equal(t, int64(15), ts.QtyNew)
	assert.Equal(t, int64(5), ts.QtyUsed)

	entries, err := f.store.KardexRepo().ListByTransaction(req.ID)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.KardexAjusteInventario, entries[0].Type)
	assert.Equal(t, int64(-5), entries[0].Quantity)
	assert.Equal(t, techID, entries[0].TechnicianID)
}

// Cuando los deltas por bucket se cancelan entre sí (neto cero) los buckets
// igual se corrigen, pero no se emite entrada de kardex: el saldo global no
// cambió.
func TestAuthorize_NetoCeroNoEscribeKardex(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 18, PhysicalUsed: 7,
		Reason: "reclasificación nuevo→usado", RequestedBy: adminID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, true, ""))

	ts := f.techStock(t)
	assert.Equal(t, int64(18), ts.QtyNew)
	assert.Equal(t, int64(7), ts.QtyUsed)

	entries, err := f.store.KardexRepo().ListByTransaction(req.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestAuthorize_RechazoDejaElStock(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 10, PhysicalUsed: 5,
		Reason: "conteo dudoso", RequestedBy: adminID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, false, "recontar"))

	got, _ := f.uc.GetByID(ctx, req.ID)
	assert.Equal(t, entity.AdjustmentRechazado, got.Status)

	ts := f.techStock(t)
	assert.Equal(t, int64(20), ts.QtyNew)
	assert.Equal(t, int64(5), ts.QtyUsed)
}

func TestAuthorize_DobleDecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 19, PhysicalUsed: 5,
		Reason: "falta uno", RequestedBy: adminID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, false, ""))

	err = f.uc.Authorize(ctx, req.ID, adminID, true, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCancel_Retira(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, adjustment.CreateInput{
		TechnicianID: techID, PartID: partID,
		PhysicalNew: 19, PhysicalUsed: 5,
		Reason: "error de captura", RequestedBy: adminID,
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Cancel(ctx, req.ID, adminID))

	got, _ := f.uc.GetByID(ctx, req.ID)
	assert.Equal(t, entity.AdjustmentRetirado, got.Status)

	err = f.uc.Authorize(ctx, req.ID, adminID, true, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}
