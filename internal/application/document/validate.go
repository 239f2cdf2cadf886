package document

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
)

// validateDocumentFields valida los campos comunes de un documento
// (número, fecha y líneas) acumulando todos los errores encontrados.
func validateDocumentFields(number string, date time.Time, lines []dto.DocumentLineRequest) []string {
	var errs []string

	if strings.TrimSpace(number) == "" {
		errs = append(errs, "el número del documento no puede estar vacío")
	}
	if len(number) > 50 {
		errs = append(errs, "el número del documento no puede superar los 50 caracteres")
	}
	if date.IsZero() {
		errs = append(errs, "la fecha del documento no puede estar vacía")
	}
	if date.After(time.Now()) {
		errs = append(errs, "la fecha del documento no puede estar en el futuro")
	}
	for _, line := range lines {
		if line.ResourceID == "" {
			errs = append(errs, "el ID del recurso no puede estar vacío")
		}
		if line.UnitOfMeasureID == "" {
			errs = append(errs, "el ID de la unidad de medida no puede estar vacío")
		}
		if !line.Quantity.GreaterThan(decimal.Zero) {
			errs = append(errs, "la cantidad debe ser mayor que cero")
		}
	}
	return errs
}
