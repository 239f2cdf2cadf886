package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

// parseDocumentFilter arma el filtro de documentos desde los query params.
// Las listas van separadas por comas; las fechas en RFC3339 o YYYY-MM-DD.
func parseDocumentFilter(c *fiber.Ctx) (dto.DocumentFilterRequest, error) {
	var filter dto.DocumentFilterRequest
	from, err := parseDateParam(c.Query("from_date"))
	if err != nil {
		return filter, fmt.Errorf("from_date: %w", err)
	}
	to, err := parseDateParam(c.Query("to_date"))
	if err != nil {
		return filter, fmt.Errorf("to_date: %w", err)
	}
	filter.FromDate = from
	filter.ToDate = to
	filter.DocumentNumbers = splitCSV(c.Query("numbers"))
	filter.ResourceIDs = splitCSV(c.Query("resource_ids"))
	filter.UnitOfMeasureIDs = splitCSV(c.Query("unit_ids"))
	return filter, nil
}

func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha inválida: %q", raw)
}

func splitCSV(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
