package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

// IncomeHandler maneja las peticiones HTTP para documentos de ingreso (protegido).
type IncomeHandler struct {
	uc *document.IncomeUseCase
}

// NewIncomeHandler construye el handler.
func NewIncomeHandler(uc *document.IncomeUseCase) *IncomeHandler {
	return &IncomeHandler{uc: uc}
}

// List godoc
// @Summary      Listar documentos de ingreso
// @Tags         incomes
// @Security     Bearer
// @Produce      json
// @Param        from_date     query  string  false  "Fecha desde (YYYY-MM-DD)"
// @Param        to_date       query  string  false  "Fecha hasta (YYYY-MM-DD)"
// @Param        numbers       query  string  false  "Números de documento separados por coma"
// @Param        resource_ids  query  string  false  "IDs de recursos separados por coma"
// @Param        unit_ids      query  string  false  "IDs de unidades separados por coma"
// @Success      200  {array}  dto.IncomeDocumentResponse
// @Router       /api/incomes [get]
func (h *IncomeHandler) List(c *fiber.Ctx) error {
	filter, err := parseDocumentFilter(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_FILTER", Message: err.Error()})
	}
	out, err := h.uc.List(c.UserContext(), filter)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener documento de ingreso por ID
// @Tags         incomes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del documento"
// @Success      200  {object}  dto.IncomeDocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/incomes/{id} [get]
func (h *IncomeHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear documento de ingreso
// @Description  Persiste el documento y abona cada línea al balance en una transacción.
// @Tags         incomes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateIncomeDocumentRequest  true  "Documento de ingreso"
// @Success      201   {object}  dto.IncomeDocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/incomes [post]
func (h *IncomeHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateIncomeDocumentRequest
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
// @Summary      Actualizar documento de ingreso
// @Description  Revierte las líneas anteriores y aplica las nuevas en una transacción.
// @Tags         incomes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del documento"
// @Param        body  body  dto.UpdateIncomeDocumentRequest  true  "Documento de ingreso"
// @Success      200   {object}  dto.IncomeDocumentResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/incomes/{id} [put]
func (h *IncomeHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	var in dto.UpdateIncomeDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento de ingreso
// @Description  Falla con 409 si revertir alguna línea dejaría el balance negativo.
// @Tags         incomes
// @Security     Bearer
// @Param        id  path  string  true  "ID del documento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/incomes/{id} [delete]
func (h *IncomeHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
