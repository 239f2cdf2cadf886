package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// ResourceHandler maneja las peticiones HTTP para recursos (protegido).
type ResourceHandler struct {
	uc *usecase.ResourceUseCase
}

// NewResourceHandler construye el handler.
func NewResourceHandler(uc *usecase.ResourceUseCase) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

// List godoc
// @Summary      Listar recursos
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ResourceResponse
// @Router       /api/resources [get]
func (h *ResourceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear recurso
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateResourceRequest  true  "Datos del recurso"
// @Success      201   {object}  dto.ResourceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resources [post]
func (h *ResourceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateResourceRequest
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
// @Summary      Renombrar recurso
// @Tags         resources
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del recurso"
// @Param        body  body  dto.UpdateResourceRequest  true  "Datos a actualizar"
// @Success      200   {object}  dto.ResourceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/resources/{id} [put]
func (h *ResourceHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateResourceRequest
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
// @Summary      Archivar o eliminar recurso
// @Description  Si el recurso se usa en documentos o balances se archiva; si no, se elimina.
// @Tags         resources
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del recurso"
// @Success      200  {object}  dto.ArchiveResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/resources/{id} [delete]
func (h *ResourceHandler) Archive(c *fiber.Ctx) error {
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
