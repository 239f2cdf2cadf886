package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ShipmentDocumentRepository puerto de persistencia para documentos de despacho.
type ShipmentDocumentRepository interface {
	GetByID(id string) (*entity.ShipmentDocument, error)
	List(filter DocumentFilter) ([]*entity.ShipmentDocument, error)
	ExistsWithNumber(number string) (bool, error)
	Create(doc *entity.ShipmentDocument) error
	// Update reescribe el documento (incluido el estado) y reemplaza las líneas.
	Update(doc *entity.ShipmentDocument) error
	IsResourceUsed(resourceID string) (bool, error)
	IsUnitOfMeasureUsed(unitID string) (bool, error)
	IsClientUsed(clientID string) (bool, error)
}
