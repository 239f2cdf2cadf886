package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ResourceRepository puerto de persistencia para recursos.
type ResourceRepository interface {
	GetByID(id string) (*entity.Resource, error)
	GetAll() ([]*entity.Resource, error)
	ExistsWithName(name string) (bool, error)
	Create(resource *entity.Resource) error
	Update(resource *entity.Resource) error
	Delete(id string) error
}
