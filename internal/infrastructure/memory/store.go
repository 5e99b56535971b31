// Package memory implementa los puertos de persistencia sobre mapas en
// memoria. Se usa en las pruebas de los flujos de inventario: mismo contrato
// que los adaptadores de PostgreSQL, incluida la semántica transaccional
// (rollback restaura el estado previo).
package memory

import (
	"context"
	"sync"

	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	parts       map[string]*entity.Part
	technicians map[string]*entity.Technician
	users       map[string]*entity.User

	warehouse  map[string]*entity.WarehouseStock          // part_id
	technician map[string]map[string]*entity.TechnicianStock // technician_id -> part_id

	kardex      []*entity.KardexEntry
	transfers   map[string]*entity.TransferRequest
	adjustments map[string]*entity.AdjustmentRequest
	damages     map[string]*entity.DamagedPartRecord
	events      []*entity.WorkflowEvent
}

// NewStore crea el estado vacío.
func NewStore() *Store {
	return &Store{
		parts:       map[string]*entity.Part{},
		technicians: map[string]*entity.Technician{},
		users:       map[string]*entity.User{},
		warehouse:   map[string]*entity.WarehouseStock{},
		technician:  map[string]map[string]*entity.TechnicianStock{},
		transfers:   map[string]*entity.TransferRequest{},
		adjustments: map[string]*entity.AdjustmentRequest{},
		damages:     map[string]*entity.DamagedPartRecord{},
	}
}

// Repos devuelve el conjunto de repositorios atados al store, útil para
// sembrar datos en las pruebas fuera de una transacción.
func (s *Store) Repos() inventory.TxRepos {
	return inventory.TxRepos{
		Stock:       &StockRepo{s: s},
		Kardex:      &KardexRepo{s: s},
		Parts:       &PartRepo{s: s},
		Transfers:   &TransferRepo{s: s},
		Adjustments: &AdjustmentRepo{s: s},
		Damages:     &DamageRepo{s: s},
		Audit:       &AuditRepo{s: s},
	}
}

// PartRepo devuelve el repositorio de repuestos del store.
func (s *Store) PartRepo() *PartRepo { return &PartRepo{s: s} }

// TechnicianRepo devuelve el repositorio de técnicos del store.
func (s *Store) TechnicianRepo() *TechnicianRepo { return &TechnicianRepo{s: s} }

// UserRepo devuelve el repositorio de usuarios del store.
func (s *Store) UserRepo() *UserRepo { return &UserRepo{s: s} }

// StockRepo devuelve el repositorio de saldos del store.
func (s *Store) StockRepo() *StockRepo { return &StockRepo{s: s} }

// KardexRepo devuelve el repositorio del diario del store.
func (s *Store) KardexRepo() *KardexRepo { return &KardexRepo{s: s} }

// TransferRepo devuelve el repositorio de traslados del store.
func (s *Store) TransferRepo() *TransferRepo { return &TransferRepo{s: s} }

// AdjustmentRepo devuelve el repositorio de ajustes del store.
func (s *Store) AdjustmentRepo() *AdjustmentRepo { return &AdjustmentRepo{s: s} }

// DamageRepo devuelve el repositorio de bajas del store.
func (s *Store) DamageRepo() *DamageRepo { return &DamageRepo{s: s} }

// AuditRepo devuelve el repositorio de auditoría del store.
func (s *Store) AuditRepo() *AuditRepo { return &AuditRepo{s: s} }

var _ inventory.TxRunner = (*TxRunner)(nil)

// TxRunner serializa las "transacciones" con el mutex del store y toma una
// instantánea del estado al inicio: si fn falla, la restaura (rollback).
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn bajo el lock del store con semántica de commit/rollback.
func (r *TxRunner) Run(_ context.Context, fn func(repos inventory.TxRepos) error) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snap := r.s.snapshot()
	if err := fn(r.s.Repos()); err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

type storeSnapshot struct {
	parts       map[string]*entity.Part
	warehouse   map[string]*entity.WarehouseStock
	technician  map[string]map[string]*entity.TechnicianStock
	kardex      []*entity.KardexEntry
	transfers   map[string]*entity.TransferRequest
	adjustments map[string]*entity.AdjustmentRequest
	damages     map[string]*entity.DamagedPartRecord
	events      []*entity.WorkflowEvent
}

// snapshot copia en profundidad el estado mutable por transacciones.
// Técnicos y usuarios no mutan dentro de transacciones del ledger.
func (s *Store) snapshot() storeSnapshot {
	snap := storeSnapshot{
		parts:       map[string]*entity.Part{},
		warehouse:   map[string]*entity.WarehouseStock{},
		technician:  map[string]map[string]*entity.TechnicianStock{},
		kardex:      append([]*entity.KardexEntry(nil), s.kardex...),
		transfers:   map[string]*entity.TransferRequest{},
		adjustments: map[string]*entity.AdjustmentRequest{},
		damages:     map[string]*entity.DamagedPartRecord{},
		events:      append([]*entity.WorkflowEvent(nil), s.events...),
	}
	for id, p := range s.parts {
		snap.parts[id] = clonePart(p)
	}
	for id, w := range s.warehouse {
		snap.warehouse[id] = cloneWarehouse(w)
	}
	for tech, byPart := range s.technician {
		m := map[string]*entity.TechnicianStock{}
		for id, ts := range byPart {
			m[id] = cloneTechnicianStock(ts)
		}
		snap.technician[tech] = m
	}
	for id, t := range s.transfers {
		snap.transfers[id] = cloneTransfer(t)
	}
	for id, a := range s.adjustments {
		snap.adjustments[id] = cloneAdjustment(a)
	}
	for id, d := range s.damages {
		snap.damages[id] = cloneDamage(d)
	}
	return snap
}

func (s *Store) restore(snap storeSnapshot) {
	s.parts = snap.parts
	s.warehouse = snap.warehouse
	s.technician = snap.technician
	s.kardex = snap.kardex
	s.transfers = snap.transfers
	s.adjustments = snap.adjustments
	s.damages = snap.damages
	s.events = snap.events
}

// ── clones ────────────────────────────────────────────────────────────────────

func clonePart(p *entity.Part) *entity.Part {
	cp := *p
	return &cp
}

func cloneWarehouse(w *entity.WarehouseStock) *entity.WarehouseStock {
	cp := *w
	return &cp
}

func cloneTechnicianStock(ts *entity.TechnicianStock) *entity.TechnicianStock {
	cp := *ts
	return &cp
}

func cloneTransfer(t *entity.TransferRequest) *entity.TransferRequest {
	cp := *t
	if t.DecidedAt != nil {
		at := *t.DecidedAt
		cp.DecidedAt = &at
	}
	if t.CancelledAt != nil {
		at := *t.CancelledAt
		cp.CancelledAt = &at
	}
	cp.Lines = make([]*entity.TransferLine, len(t.Lines))
	for i, line := range t.Lines {
		cl := *line
		cp.Lines[i] = &cl
	}
	return &cp
}

func cloneAdjustment(a *entity.AdjustmentRequest) *entity.AdjustmentRequest {
	cp := *a
	if a.DecidedAt != nil {
		at := *a.DecidedAt
		cp.DecidedAt = &at
	}
	return &cp
}

func cloneDamage(d *entity.DamagedPartRecord) *entity.DamagedPartRecord {
	cp := *d
	return &cp
}
