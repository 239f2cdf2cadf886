package repository

import "github.com/tu-usuario/almacen-api/internal/domain/entity"

// ClientRepository puerto de persistencia para clientes.
type ClientRepository interface {
	GetByID(id string) (*entity.Client, error)
	GetAll() ([]*entity.Client, error)
	ExistsWithName(name string) (bool, error)
	Create(client *entity.Client) error
	Update(client *entity.Client) error
	Delete(id string) error
}
