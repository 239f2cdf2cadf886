package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// UnitOfMeasureRepository puerto de persistencia para unidades de medida.
type UnitOfMeasureRepository interface {
	GetByID(id string) (*entity.UnitOfMeasure, error)
	GetAll() ([]*entity.UnitOfMeasure, error)
	ExistsWithName(name string) (bool, error)
	Create(unit *entity.UnitOfMeasure) error
	Update(unit *entity.UnitOfMeasure) error
	Delete(id string) error
}
