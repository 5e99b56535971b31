package entity

import "time"

// Estados del ciclo de vida de un técnico.
const (
	TechnicianStatusActivo   = "ACTIVO"
	TechnicianStatusInactivo = "INACTIVO"
)

// Technician representa un técnico de campo que porta stock propio de repuestos.
// Un técnico inactivo conserva su historial pero no puede participar en nuevos
// traslados, ajustes ni bajas por daño.
type Technician struct {
	ID        string
	Name      string
	Document  string // documento de identidad
	Phone     string
	Email     string
	Status    string // ACTIVO, INACTIVO
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive indica si el técnico puede participar en nuevos movimientos.
func (t *Technician) IsActive() bool { return t.Status == TechnicianStatusActivo }
