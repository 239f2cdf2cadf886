package document

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// insufficientStock arma el error de stock insuficiente resolviendo los
// nombres del recurso y la unidad para la capa de presentación.
func insufficientStock(
	resources repository.ResourceRepository,
	units repository.UnitOfMeasureRepository,
	resourceID, unitID string,
	available, required decimal.Decimal,
) error {
	resourceName := resourceID
	if res, err := resources.GetByID(resourceID); err == nil && res != nil {
		resourceName = res.Name
	}
	unitName := unitID
	if unit, err := units.GetByID(unitID); err == nil && unit != nil {
		unitName = unit.Name
	}
	return &domain.InsufficientStockError{
		ResourceName: resourceName,
		UnitName:     unitName,
		Available:    available,
		Required:     required,
	}
}
