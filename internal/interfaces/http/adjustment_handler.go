package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/adjustment"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// AdjustmentHandler maneja el flujo de ajustes de inventario (protegido).
type AdjustmentHandler struct {
	uc *adjustment.UseCase
}

// NewAdjustmentHandler construye el handler.
func NewAdjustmentHandler(uc *adjustment.UseCase) *AdjustmentHandler {
	return &AdjustmentHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de ajuste
// @Description  Congela los saldos del sistema y los deltas al momento de crear.
//
//	Falla con 422 si el conteo físico no difiere del sistema.
//
// @Tags         adjustments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAdjustmentRequest  true  "technician_id, part_id, physical_new, physical_used, reason"
// @Success      201   {object}  dto.AdjustmentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/adjustments [post]
func (h *AdjustmentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAdjustmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	req, err := h.uc.Create(c.Context(), adjustment.CreateInput{
		TechnicianID: in.TechnicianID,
		PartID:       in.PartID,
		PhysicalNew:  in.PhysicalNew,
		PhysicalUsed: in.PhysicalUsed,
		Reason:       in.Reason,
		RequestedBy:  GetUserID(c),
	})
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toAdjustmentResponse(req))
}

// Authorize decide la solicitud: aprobar fija los buckets del técnico al
// conteo físico; rechazar deja el ledger intacto.
func (h *AdjustmentHandler) Authorize(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Authorize(c.Context(), c.Params("id"), GetUserID(c), in.Approve, in.Note); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud decidida"})
}

// Cancel retira una solicitud PENDIENTE (estado RETIRADO).
func (h *AdjustmentHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud retirada"})
}

func (h *AdjustmentHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toAdjustmentResponse(req))
}

func (h *AdjustmentHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("status"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]*dto.AdjustmentResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toAdjustmentResponse(req))
	}
	return c.JSON(fiber.Map{"total": len(out), "adjustments": out})
}

func toAdjustmentResponse(req *entity.AdjustmentRequest) *dto.AdjustmentResponse {
	return &dto.AdjustmentResponse{
		ID:           req.ID,
		TechnicianID: req.TechnicianID,
		PartID:       req.PartID,
		SystemNew:    req.SystemNew,
		SystemUsed:   req.SystemUsed,
		PhysicalNew:  req.PhysicalNew,
		PhysicalUsed: req.PhysicalUsed,
		DeltaNew:     req.DeltaNew,
		DeltaUsed:    req.DeltaUsed,
		RequiresAuth: req.RequiresAuth,
		Reason:       req.Reason,
		Status:       req.Status,
		RequestedBy:  req.RequestedBy,
		DecidedBy:    req.DecidedBy,
		CreatedAt:    req.CreatedAt,
		DecidedAt:    req.DecidedAt,
	}
}
