package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/damage"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// DamageHandler maneja las bajas por daño (protegido).
type DamageHandler struct {
	uc *damage.UseCase
}

// NewDamageHandler construye el handler.
func NewDamageHandler(uc *damage.UseCase) *DamageHandler {
	return &DamageHandler{uc: uc}
}

// Record godoc
// @Summary      Registrar baja por daño
// @Description  Con origen técnico debita su stock (USADO primero) y escribe
//
//	el kardex BAJA_DANO; con origen proveedor/recepción solo registra.
//
// @Tags         damages
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RecordDamageRequest  true  "part_id, quantity, origen (technician_id | supplier_id | receipt_ref), reason"
// @Success      201   {object}  dto.DamageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/damages [post]
func (h *DamageHandler) Record(c *fiber.Ctx) error {
	var in dto.RecordDamageRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	rec, err := h.uc.Record(c.Context(), damage.RecordInput{
		PartID:       in.PartID,
		Quantity:     in.Quantity,
		TechnicianID: in.TechnicianID,
		SupplierID:   in.SupplierID,
		ReceiptRef:   in.ReceiptRef,
		Reason:       in.Reason,
		UserID:       GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toDamageResponse(rec))
}

// Void marca la anulación suave del registro; el débito del ledger permanece.
func (h *DamageHandler) Void(c *fiber.Ctx) error {
	if err := h.uc.Void(c.Context(), c.Params("id")); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "registro anulado"})
}

func (h *DamageHandler) GetByID(c *fiber.Ctx) error {
	rec, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toDamageResponse(rec))
}

func (h *DamageHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]*dto.DamageResponse, 0, len(list))
	for _, rec := range list {
		out = append(out, toDamageResponse(rec))
	}
	return c.JSON(fiber.Map{"total": len(out), "damages": out})
}

func toDamageResponse(rec *entity.DamagedPartRecord) *dto.DamageResponse {
	return &dto.DamageResponse{
		ID:           rec.ID,
		PartID:       rec.PartID,
		Quantity:     rec.Quantity,
		TechnicianID: rec.TechnicianID,
		SupplierID:   rec.SupplierID,
		ReceiptRef:   rec.ReceiptRef,
		QtyFromUsed:  rec.QtyFromUsed,
		QtyFromNew:   rec.QtyFromNew,
		Reason:       rec.Reason,
		LossValue:    rec.LossValue,
		Voided:       rec.Voided,
		RecordedBy:   rec.RecordedBy,
		CreatedAt:    rec.CreatedAt,
	}
}
