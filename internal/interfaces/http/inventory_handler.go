package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/application/inventory"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
	"github.com/tu-usuario/rental-ops/internal/domain/repository"
)

// InventoryHandler maneja movimientos, recepciones, saldos y kardex (protegido).
type InventoryHandler struct {
	ledger    *inventory.LedgerUseCase
	stockRepo repository.StockRepository
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(ledger *inventory.LedgerUseCase, stockRepo repository.StockRepository) *InventoryHandler {
	return &InventoryHandler{ledger: ledger, stockRepo: stockRepo}
}

// ApplyMovement godoc
// @Summary      Registrar movimiento incondicional de inventario
// @Description  Consumos y retornos de servicio/ensamble/reacondicionamiento.
//
//	La cantidad es firmada: positiva entrada, negativa salida.
//
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ApplyMovementRequest  true  "part_id, technician_id (vacío = bodega), bucket, quantity, type, note"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) ApplyMovement(c *fiber.Ctx) error {
	var in dto.ApplyMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledger.ApplyMovement(c.Context(), inventory.MovementInput{
		PartID:       in.PartID,
		TechnicianID: in.TechnicianID,
		Bucket:       entity.Bucket(in.Bucket),
		Quantity:     in.Quantity,
		Type:         in.Type,
		Note:         in.Note,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "movimiento registrado"})
}

// RegisterReceipt godoc
// @Summary      Registrar recepción de compra
// @Description  Acredita la bodega y recalcula el costo promedio ponderado del repuesto.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterReceiptRequest  true  "part_id, quantity, unit_cost, receipt_ref, note"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/receipts [post]
func (h *InventoryHandler) RegisterReceipt(c *fiber.Ctx) error {
	var in dto.RegisterReceiptRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	err := h.ledger.RegisterReceipt(c.Context(), inventory.ReceiptInput{
		PartID:     in.PartID,
		Quantity:   in.Quantity,
		UnitCost:   in.UnitCost,
		ReceiptRef: in.ReceiptRef,
		Note:       in.Note,
		UserID:     GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"message": "recepción registrada"})
}

// GetBalances godoc
// @Summary      Saldos de un repuesto en todas las ubicaciones
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PartBalancesResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/balances/{partID} [get]
func (h *InventoryHandler) GetBalances(c *fiber.Ctx) error {
	balances, err := h.ledger.PartBalances(c.Context(), c.Params("partID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	resp := dto.PartBalancesResponse{
		PartID:    balances.PartID,
		Warehouse: balances.Warehouse,
		Total:     balances.Total(),
	}
	for _, ts := range balances.Technicians {
		resp.Technicians = append(resp.Technicians, dto.TechnicianBalanceDTO{
			TechnicianID: ts.TechnicianID,
			QtyNew:       ts.QtyNew,
			QtyUsed:      ts.QtyUsed,
		})
	}
	return c.JSON(resp)
}

// GetKardex godoc
// @Summary      Kardex de un repuesto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        from  query  string  false  "fecha inicial (RFC3339)"
// @Param        to    query  string  false  "fecha final (RFC3339)"
// @Success      200  {array}  dto.KardexEntryDTO
// @Router       /api/inventory/kardex/{partID} [get]
func (h *InventoryHandler) GetKardex(c *fiber.Ctx) error {
	from, err := queryTime(c, "from")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from inválido (RFC3339)"})
	}
	to, err := queryTime(c, "to")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to inválido (RFC3339)"})
	}
	entries, err := h.ledger.Kardex(c.Context(), c.Params("partID"),
		from, to, queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.KardexEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, dto.KardexEntryDTO{
			ID:            e.ID,
			TransactionID: e.TransactionID,
			PartID:        e.PartID,
			Location:      e.Location().String(),
			Type:          e.Type,
			Quantity:      e.Quantity,
			UnitCost:      e.UnitCost,
			TotalCost:     e.TotalCost,
			Note:          e.Note,
			Date:          e.Date,
			CreatedBy:     e.CreatedBy,
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "entries": out})
}

// ListWarehouseStock devuelve los saldos de bodega con existencia.
func (h *InventoryHandler) ListWarehouseStock(c *fiber.Ctx) error {
	list, err := h.stockRepo.ListWarehouse(queryInt(c, "limit", 100), queryInt(c, "offset", 0))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.WarehouseStockDTO, 0, len(list))
	for _, w := range list {
		out = append(out, dto.WarehouseStockDTO{PartID: w.PartID, Quantity: w.Quantity, UpdatedAt: w.UpdatedAt})
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}

// ListTechnicianStock devuelve los saldos en poder de un técnico.
func (h *InventoryHandler) ListTechnicianStock(c *fiber.Ctx) error {
	list, err := h.stockRepo.ListByTechnician(c.Params("technicianID"))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]dto.TechnicianStockDTO, 0, len(list))
	for _, ts := range list {
		out = append(out, dto.TechnicianStockDTO{
			PartID:  ts.PartID,
			QtyNew:  ts.QtyNew,
			QtyUsed: ts.QtyUsed,
			Total:   ts.Total(),
		})
	}
	return c.JSON(fiber.Map{"total": len(out), "stock": out})
}

// queryTime parsea un parámetro de query RFC3339 opcional.
func queryTime(c *fiber.Ctx, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
