package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/application/transfer"
	"github.com/tu-usuario/rental-ops/internal/domain/entity"
)

// TransferHandler maneja el flujo de solicitudes de traslado (protegido).
type TransferHandler struct {
	uc *transfer.UseCase
}

// NewTransferHandler construye el handler.
func NewTransferHandler(uc *transfer.UseCase) *TransferHandler {
	return &TransferHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de traslado
// @Description  Queda PENDIENTE; el ledger no se toca hasta la autorización.
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "type, origin/dest technician, lines"
// @Success      201   {object}  dto.TransferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *TransferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	input := transfer.CreateInput{
		Type:               in.Type,
		OriginTechnicianID: in.OriginTechnicianID,
		DestTechnicianID:   in.DestTechnicianID,
		Note:               in.Note,
		RequestedBy:        GetUserID(c),
	}
	for _, l := range in.Lines {
		input.Lines = append(input.Lines, transfer.LineInput{PartID: l.PartID, QtyNew: l.QtyNew, QtyUsed: l.QtyUsed})
	}
	req, err := h.uc.Create(c.Context(), input)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toTransferResponse(req))
}

// Authorize godoc
// @Summary      Decidir una solicitud de traslado
// @Description  approve=true ejecuta el traslado contra el ledger; approve=false
//
//	la rechaza sin tocar saldos. Solo decidible desde PENDIENTE.
//
// @Tags         transfers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.DecisionRequest  true  "approve, note"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/transfers/{id}/authorize [post]
func (h *TransferHandler) Authorize(c *fiber.Ctx) error {
	var in dto.DecisionRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.Authorize(c.Context(), c.Params("id"), GetUserID(c), in.Approve, in.Note); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud decidida"})
}

// Cancel retira una solicitud PENDIENTE sin tocar el ledger.
func (h *TransferHandler) Cancel(c *fiber.Ctx) error {
	if err := h.uc.Cancel(c.Context(), c.Params("id"), GetUserID(c)); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "solicitud cancelada"})
}

func (h *TransferHandler) GetByID(c *fiber.Ctx) error {
	req, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(toTransferResponse(req))
}

func (h *TransferHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.Context(), c.Query("status"), queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return mapDomainError(c, err)
	}
	out := make([]*dto.TransferResponse, 0, len(list))
	for _, req := range list {
		out = append(out, toTransferResponse(req))
	}
	return c.JSON(fiber.Map{"total": len(out), "transfers": out})
}

// Events devuelve la traza de auditoría de la solicitud.
func (h *TransferHandler) Events(c *fiber.Ctx) error {
	events, err := h.uc.Events(c.Context(), c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(events), "events": toEventResponses(events)})
}

func toEventResponses(events []*entity.WorkflowEvent) []dto.WorkflowEventDTO {
	out := make([]dto.WorkflowEventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.WorkflowEventDTO{
			ID:        e.ID,
			Kind:      e.Kind,
			Actor:     e.Actor,
			Note:      e.Note,
			CreatedAt: e.CreatedAt,
		})
	}
	return out
}

func toTransferResponse(req *entity.TransferRequest) *dto.TransferResponse {
	resp := &dto.TransferResponse{
		ID:                 req.ID,
		Type:               req.Type,
		OriginTechnicianID: req.OriginTechnicianID,
		DestTechnicianID:   req.DestTechnicianID,
		Status:             req.Status,
		RequestedBy:        req.RequestedBy,
		DecidedBy:          req.DecidedBy,
		Note:               req.Note,
		CreatedAt:          req.CreatedAt,
		DecidedAt:          req.DecidedAt,
	}
	for _, l := range req.Lines {
		resp.Lines = append(resp.Lines, dto.TransferLineResponse{
			ID: l.ID, PartID: l.PartID, QtyNew: l.QtyNew, QtyUsed: l.QtyUsed,
		})
	}
	return resp
}
