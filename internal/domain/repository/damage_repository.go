package repository

import "github.com/tu-usuario/rental-ops/internal/domain/entity"

// DamageRepository define el puerto de persistencia de bajas por daño.
type DamageRepository interface {
	Create(record *entity.DamagedPartRecord) error
	GetByID(id string) (*entity.DamagedPartRecord, error)
	List(limit, offset int) ([]*entity.DamagedPartRecord, error)
	// Void marca la anulación suave; no revierte el débito del ledger.
	Void(id string) error
}
