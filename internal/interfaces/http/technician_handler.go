package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/rental-ops/internal/application/dto"
	"github.com/tu-usuario/rental-ops/internal/application/usecase"
)

// TechnicianHandler maneja el registro de técnicos (protegido).
type TechnicianHandler struct {
	uc *usecase.TechnicianUseCase
}

// NewTechnicianHandler construye el handler.
func NewTechnicianHandler(uc *usecase.TechnicianUseCase) *TechnicianHandler {
	return &TechnicianHandler{uc: uc}
}

// Create godoc
// @Summary      Crear técnico
// @Tags         technicians
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTechnicianRequest  true  "name, document, phone, email"
// @Success      201   {object}  dto.TechnicianResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/technicians [post]
func (h *TechnicianHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tech, err := h.uc.Create(in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tech)
}

func (h *TechnicianHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(list), "technicians": list})
}

func (h *TechnicianHandler) GetByID(c *fiber.Ctx) error {
	tech, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(tech)
}

func (h *TechnicianHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTechnicianRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	tech, err := h.uc.Update(c.Params("id"), in)
	if err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(tech)
}

// SetStatus activa o desactiva al técnico. Un técnico INACTIVO no puede
// aparecer en nuevos traslados, ajustes ni bajas.
func (h *TechnicianHandler) SetStatus(c *fiber.Ctx) error {
	var in dto.SetStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.uc.SetStatus(c.Params("id"), in.Status); err != nil {
		return mapDomainError(c, err)
	}
	return c.JSON(fiber.Map{"message": "estado actualizado"})
}
