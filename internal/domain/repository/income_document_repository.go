package repository

import (
	"time"

	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// DocumentFilter filtro para listados de documentos (ingresos y despachos).
type DocumentFilter struct {
	FromDate         *time.Time
	ToDate           *time.Time
	DocumentNumbers  []string
	ResourceIDs      []string
	UnitOfMeasureIDs []string
}

// IncomeDocumentRepository puerto de persistencia para documentos de ingreso.
type IncomeDocumentRepository interface {
	GetByID(id string) (*entity.IncomeDocument, error)
	List(filter DocumentFilter) ([]*entity.IncomeDocument, error)
	ExistsWithNumber(number string) (bool, error)
	Create(doc *entity.IncomeDocument) error
	// Update reescribe el documento y reemplaza el conjunto de líneas completo.
	Update(doc *entity.IncomeDocument) error
	Delete(id string) error
	IsResourceUsed(resourceID string) (bool, error)
	IsUnitOfMeasureUsed(unitID string) (bool, error)
}
