package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// BalanceHandler consulta del balance de bodega (protegido, solo lectura).
type BalanceHandler struct {
	uc *usecase.BalanceUseCase
}

// NewBalanceHandler construye el handler.
func NewBalanceHandler(uc *usecase.BalanceUseCase) *BalanceHandler {
	return &BalanceHandler{uc: uc}
}

// List godoc
// @Summary      Consultar balance de bodega
// @Tags         balances
// @Security     Bearer
// @Produce      json
// @Param        resource_ids  query  string  false  "IDs de recursos separados por coma"
// @Param        unit_ids      query  string  false  "IDs de unidades separados por coma"
// @Success      200  {array}  dto.BalanceResponse
// @Router       /api/balances [get]
func (h *BalanceHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), splitCSV(c.Query("resource_ids")), splitCSV(c.Query("unit_ids")))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
