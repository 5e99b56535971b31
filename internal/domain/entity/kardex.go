package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del kardex. El tag documenta la razón semántica del
// movimiento para auditoría y reportes; la aritmética del saldo depende
// únicamente del signo de Quantity, nunca del tag.
const (
	KardexCompra                     = "COMPRA"
	KardexTrasladoBodegaTecnico      = "TRASLADO_BODEGA_TECNICO"
	KardexTrasladoTecnicoBodega      = "TRASLADO_TECNICO_BODEGA"
	KardexTrasladoEntreTecnicos      = "TRASLADO_ENTRE_TECNICOS"
	KardexConsumoServicioBodega      = "CONSUMO_SERVICIO_BODEGA"
	KardexConsumoServicioTecnico     = "CONSUMO_SERVICIO_TECNICO"
	KardexRetornoServicio            = "RETORNO_SERVICIO"
	KardexConsumoEnsamble            = "CONSUMO_ENSAMBLE"
	KardexRetornoEnsamble            = "RETORNO_ENSAMBLE"
	KardexConsumoReacondicionamiento = "CONSUMO_REACONDICIONAMIENTO"
	KardexRetornoReacondicionamiento = "RETORNO_REACONDICIONAMIENTO"
	KardexAjusteInventario           = "AJUSTE_INVENTARIO"
	KardexBajaDano                   = "BAJA_DANO"
)

// KardexEntry es un registro inmutable del diario de movimientos: cada cambio
// de saldo del ledger escribe exactamente una entrada con la cantidad firmada
// (positiva = entrada, negativa = salida) en la misma transacción.
// Para cualquier repuesto, la suma de todas las entradas debe igualar la suma
// de sus saldos en todas las ubicaciones.
type KardexEntry struct {
	ID            string
	TransactionID string // agrupa las entradas emitidas por una misma operación
	PartID        string
	LocationKind  LocationKind
	TechnicianID  string // vacío cuando LocationKind == BODEGA
	Type          string
	Quantity      int64           // delta firmado
	UnitCost      decimal.Decimal // costo unitario al momento del movimiento
	TotalCost     decimal.Decimal
	Note          string
	Date          time.Time
	CreatedAt     time.Time
	CreatedBy     string
}

// Location reconstruye la ubicación de la entrada.
func (e *KardexEntry) Location() Location {
	if e.LocationKind == LocationTechnician {
		return AtTechnician(e.TechnicianID)
	}
	return Warehouse()
}
