package transfer_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/application/transfer"
	"github.com/tu-usuario/rental-ops/internal/domain"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/infrastructure/memory"
)

const (
	partID  = "part-1"
	techA   = "tech-a"
	techB   = "tech-b"
	adminID = "user-admin"
)

type fixture struct {
	store  *memory.Store
	ledger *inventory.LedgerUseCase
	uc     *transfer.UseCase
}

// newFixture siembra catálogo y saldo de bodega (20 @ 100) y arma ambos casos
// de uso sobre el mismo store.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	now := time.Now()
	require.NoError(t, store.PartRepo().Create(&entity.Part{
		ID: partID, SKU: "BRK-010", Name: "Pastilla de freno",
		AverageCost: decimal.Zero, Status: entity.PartStatusActivo,
		CreatedAt: now, UpdatedAt: now,
	}))
	for _, id := range []string{techA, techB} {
		require.NoError(t, store.TechnicianRepo().Create(&entity.Technician{
			ID: id, Name: "Técnico " + id, Status: entity.TechnicianStatusActivo,
			CreatedAt: now, UpdatedAt: now,
		}))
	}
	runner := memory.NewTxRunner(store)
	ledger := inventory.NewLedgerUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.KardexRepo())
	require.NoError(t, ledger.RegisterReceipt(context.Background(), inventory.ReceiptInput{
		PartID: partID, Quantity: 20, UnitCost: decimal.NewFromInt(100), UserID: adminID,
	}))
	uc := transfer.NewUseCase(runner, store.PartRepo(), store.TechnicianRepo(), store.StockRepo(), store.TransferRepo(), store.AuditRepo())
	return &fixture{store: store, ledger: ledger, uc: uc}
}

func (f *fixture) warehouseQty(t *testing.T) int64 {
	t.Helper()
	s, err := f.store.StockRepo().GetWarehouse(partID)
	require.NoError(t, err)
	return s.Quantity
}

func (f *fixture) techStock(t *testing.T, techID string) *entity.TechnicianStock {
	t.Helper()
	s, err := f.store.StockRepo().GetTechnician(techID, partID)
	require.NoError(t, err)
	return s
}

func TestCreate_ValidaCombinacionesDeEndpoints(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := []transfer.LineInput{{PartID: partID, QtyNew: 1}}

	cases := []struct {
		name string
		in   transfer.CreateInput
	}{
		{"tipo desconocido", transfer.CreateInput{Type: "OTRO", DestTechnicianID: techA, Lines: line}},
		{"bodega→técnico sin destino", transfer.CreateInput{Type: entity.TransferBodegaATecnico, Lines: line}},
		{"bodega→técnico con origen", transfer.CreateInput{Type: entity.TransferBodegaATecnico, OriginTechnicianID: techA, DestTechnicianID: techB, Lines: line}},
		{"técnico→bodega con destino", transfer.CreateInput{Type: entity.TransferTecnicoABodega, OriginTechnicianID: techA, DestTechnicianID: techB, Lines: line}},
		{"entre técnicos mismo técnico", transfer.CreateInput{Type: entity.TransferEntreTecnicos, OriginTechnicianID: techA, DestTechnicianID: techA, Lines: line}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tc.in.RequestedBy = adminID
			_, err := f.uc.Create(ctx, tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestCreate_LineasInvalidas(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA, RequestedBy: adminID,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA, RequestedBy: adminID,
		Lines: []transfer.LineInput{{PartID: partID, QtyNew: 0, QtyUsed: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "línea con cantidad cero")
}

// Ida y vuelta completa: bodega → técnico y técnico → bodega. Cada solicitud
// autorizada emite un par de entradas de kardex con signos opuestos y la misma
// magnitud, y al final los saldos vuelven al punto de partida.
func TestAuthorize_IdaYVuelta(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Ida: bodega → técnico A (3 nuevos, 2 usados)
	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 3, QtyUsed: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, entity.TransferPendiente, req.Status)

	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, true, "ok"))

	got, err := f.uc.GetByID(ctx, req.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TransferAutorizado, got.Status)
	assert.Equal(t, int64(15), f.warehouseQty(t))
	ts := f.techStock(t, techA)
	assert.Equal(t, int64(3), ts.QtyNew)
	assert.Equal(t, int64(2), ts.QtyUsed)

	assertPairedEntries(t, f.store, req.ID, 5)

	// Vuelta: técnico A → bodega, las mismas cantidades
	back, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferTecnicoABodega, OriginTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 3, QtyUsed: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, back.ID, adminID, true, ""))

	assert.Equal(t, int64(20), f.warehouseQty(t))
	ts = f.techStock(t, techA)
	assert.Equal(t, int64(0), ts.QtyNew)
	assert.Equal(t, int64(0), ts.QtyUsed)

	assertPairedEntries(t, f.store, back.ID, 5)
}

// assertPairedEntries verifica el par de entradas de una solicitud de una
// línea: dos entradas agrupadas por el id de la solicitud, signos opuestos,
// magnitud igual y suma cero.
func assertPairedEntries(t *testing.T, store *memory.Store, requestID string, magnitude int64) {
	t.Helper()
	entries, err := store.KardexRepo().ListByTransaction(requestID)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, -magnitude, entries[0].Quantity)
	assert.Equal(t, magnitude, entries[1].Quantity)
	assert.Equal(t, int64(0), entries[0].Quantity+entries[1].Quantity)
}

func TestAuthorize_EntreTecnicos(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Primero llevar stock al técnico A
	seed, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 4, QtyUsed: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, seed.ID, adminID, true, ""))

	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferEntreTecnicos, OriginTechnicianID: techA, DestTechnicianID: techB,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 2, QtyUsed: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, true, ""))

	a := f.techStock(t, techA)
	b := f.techStock(t, techB)
	assert.Equal(t, int64(2), a.QtyNew)
	assert.Equal(t, int64(0), a.QtyUsed)
	assert.Equal(t, int64(2), b.QtyNew)
	assert.Equal(t, int64(1), b.QtyUsed)

	assertPairedEntries(t, f.store, req.ID, 3)
}

func TestAuthorize_DobleDecision(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, true, ""))

	err = f.uc.Authorize(ctx, req.ID, adminID, true, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
	err = f.uc.Authorize(ctx, req.ID, adminID, false, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	// La segunda decisión no duplicó el movimiento
	assert.Equal(t, int64(19), f.warehouseQty(t))
}

func TestAuthorize_RechazoNoTocaElLedger(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 5}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, false, "no procede"))

	got, _ := f.uc.GetByID(ctx, req.ID)
	assert.Equal(t, entity.TransferRechazado, got.Status)
	assert.Equal(t, int64(20), f.warehouseQty(t))

	entries, err := f.store.KardexRepo().ListByTransaction(req.ID)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

// Entre la solicitud y la decisión el stock del origen puede haberse
// consumido: la autorización revalida, falla con ErrInsufficientStock y la
// transacción revierte todo — la solicitud sigue PENDIENTE y los saldos
// quedan como estaban.
func TestAuthorize_ConsumoInterinoRevierte(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 15}},
	})
	require.NoError(t, err)

	// Consumo interino deja la bodega en 8 (< 15)
	require.NoError(t, f.ledger.ApplyMovement(ctx, inventory.MovementInput{
		PartID: partID, Quantity: -12,
		Type: entity.KardexConsumoServicioBodega, UserID: adminID,
	}))

	err = f.uc.Authorize(ctx, req.ID, adminID, true, "")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	got, _ := f.uc.GetByID(ctx, req.ID)
	assert.Equal(t, entity.TransferPendiente, got.Status, "la solicitud no se auto-rechaza")
	assert.Equal(t, int64(8), f.warehouseQty(t))
	ts := f.techStock(t, techA)
	assert.Equal(t, int64(0), ts.QtyNew+ts.QtyUsed)

	entries, err := f.store.KardexRepo().ListByTransaction(req.ID)
	require.NoError(t, err)
	assert.Empty(t, entries, "la transacción revertida no deja entradas de kardex")
}

func TestCancel_LuegoAutorizarFalla(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 1}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Cancel(ctx, req.ID, adminID))

	got, _ := f.uc.GetByID(ctx, req.ID)
	assert.Equal(t, entity.TransferCancelado, got.Status)
	require.NotNil(t, got.CancelledAt)

	err = f.uc.Authorize(ctx, req.ID, adminID, true, "")
	assert.ErrorIs(t, err, domain.ErrInvalidState)
}

func TestCreate_StockInsuficienteEnOrigen(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.Create(context.Background(), transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID,
		Lines:       []transfer.LineInput{{PartID: partID, QtyNew: 25}},
	})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestEvents_TrazaDeAuditoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	req, err := f.uc.Create(ctx, transfer.CreateInput{
		Type: entity.TransferBodegaATecnico, DestTechnicianID: techA,
		RequestedBy: adminID, Note: "urgente",
		Lines: []transfer.LineInput{{PartID: partID, QtyNew: 2}},
	})
	require.NoError(t, err)
	require.NoError(t, f.uc.Authorize(ctx, req.ID, adminID, true, "aprobado"))

	events, err := f.uc.Events(ctx, req.ID)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, entity.EventCreacion, events[0].Kind)
	assert.Equal(t, entity.EventAutorizacion, events[1].Kind)
	assert.Equal(t, adminID, events[1].Actor)
}
