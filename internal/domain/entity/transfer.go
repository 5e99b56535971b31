package entity

import "time"

// Tipos de traslado entre ubicaciones.
const (
	TransferBodegaATecnico = "BODEGA_TECNICO"
	TransferTecnicoABodega = "TECNICO_BODEGA"
	TransferEntreTecnicos  = "TECNICO_TECNICO"
)

// Estados del flujo de traslado.
const (
	TransferPendiente  = "PENDIENTE"
	TransferAutorizado = "AUTORIZADO"
	TransferRechazado  = "RECHAZADO"
	TransferCancelado  = "CANCELADO"
)

// TransferRequest encabezado de una solicitud de traslado de stock entre dos
// ubicaciones. Creada PENDIENTE; estados terminales: AUTORIZADO (ledger ya
// mutado), RECHAZADO (ledger intacto), CANCELADO (solo desde PENDIENTE,
// ledger intacto).
type TransferRequest struct {
	ID                 string
	Type               string // BODEGA_TECNICO, TECNICO_BODEGA, TECNICO_TECNICO
	OriginTechnicianID string // vacío cuando el origen es la bodega
	DestTechnicianID   string // vacío cuando el destino es la bodega
	Status             string
	RequestedBy        string
	DecidedBy          string // autorizador (aprobación o rechazo)
	Note               string
	CreatedAt          time.Time
	DecidedAt          *time.Time
	CancelledAt        *time.Time
	Lines              []*TransferLine
}

// TransferLine línea de un traslado: cantidad de un repuesto a mover,
// separada por condición NUEVO/USADO.
type TransferLine struct {
	ID         string
	TransferID string
	PartID     string
	QtyNew     int64
	QtyUsed    int64
}

// Total cantidad combinada de la línea.
func (l *TransferLine) Total() int64 { return l.QtyNew + l.QtyUsed }

// Origin devuelve la ubicación de origen según el tipo.
func (r *TransferRequest) Origin() Location {
	if r.Type == TransferBodegaATecnico {
		return Warehouse()
	}
	return AtTechnician(r.OriginTechnicianID)
}

// Destination devuelve la ubicación de destino según el tipo.
func (r *TransferRequest) Destination() Location {
	if r.Type == TransferTecnicoABodega {
		return Warehouse()
	}
	return AtTechnician(r.DestTechnicianID)
}

// KardexType devuelve el tag de kardex correspondiente al tipo de traslado.
func (r *TransferRequest) KardexType() string {
	switch r.Type {
	case TransferBodegaATecnico:
		return KardexTrasladoBodegaTecnico
	case TransferTecnicoABodega:
		return KardexTrasladoTecnicoBodega
	default:
		return KardexTrasladoEntreTecnicos
	}
}
