package entity

// LocationKind discrimina el tipo de ubicación de stock.
type LocationKind string

const (
	LocationWarehouse  LocationKind = "BODEGA"
	LocationTechnician LocationKind = "TECNICO"
)

// Bucket clasifica el stock de un técnico por condición. La bodega no divide
// su stock en buckets.
type Bucket string

const (
	BucketNew  Bucket = "NUEVO"
	BucketUsed Bucket = "USADO"
)

// Location identifica dónde reside una cantidad de un repuesto: la bodega
// central (singleton) o un técnico concreto. Sum type explícito en lugar del
// patrón "técnico nullable = bodega".
type Location struct {
	Kind         LocationKind
	TechnicianID string // solo cuando Kind == LocationTechnician
}

// Warehouse devuelve la ubicación bodega central.
func Warehouse() Location {
	return Location{Kind: LocationWarehouse}
}

// AtTechnician devuelve la ubicación del técnico indicado.
func AtTechnician(technicianID string) Location {
	return Location{Kind: LocationTechnician, TechnicianID: technicianID}
}

// IsWarehouse indica si la ubicación es la bodega central.
func (l Location) IsWarehouse() bool { return l.Kind == LocationWarehouse }

// String para logs y entradas de kardex.
func (l Location) String() string {
	if l.IsWarehouse() {
		return "bodega"
	}
	return "tecnico:" + l.TechnicianID
}
