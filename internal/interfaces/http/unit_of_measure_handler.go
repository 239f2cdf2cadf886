package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// UnitOfMeasureHandler maneja las peticiones HTTP para unidades de medida (protegido).
type UnitOfMeasureHandler struct {
	uc *usecase.UnitOfMeasureUseCase
}

// NewUnitOfMeasureHandler construye el handler.
func NewUnitOfMeasureHandler(uc *usecase.UnitOfMeasureUseCase) *UnitOfMeasureHandler {
	return &UnitOfMeasureHandler{uc: uc}
}

// List godoc
// @Summary      Listar unidades de medida
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UnitOfMeasureResponse
// @Router       /api/units [get]
func (h *UnitOfMeasureHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear unidad de medida
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateUnitOfMeasureRequest  true  "Datos de la unidad"
// @Success      201   {object}  dto.UnitOfMeasureResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units [post]
func (h *UnitOfMeasureHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateUnitOfMeasureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Renombrar unidad de medida
// @Tags         units
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la unidad"
// @Param        body  body  dto.UpdateUnitOfMeasureRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.UnitOfMeasureResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/units/{id} [put]
func (h *UnitOfMeasureHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateUnitOfMeasureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Archive godoc
// @Summary      Archivar o eliminar unidad de medida
// @Description  Si la unidad se usa en documentos o balances se archiva; si no, se elimina.
// @Tags         units
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la unidad"
// @Success      200  {object}  dto.ArchiveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/units/{id} [delete]
func (h *UnitOfMeasureHandler) Archive(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.Archive(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
