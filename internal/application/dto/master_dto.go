package dto

import "time"

// CreateResourceRequest alta de recurso.
type CreateResourceRequest struct {
	Name string `json:"name"`
}

// UpdateResourceRequest renombrado de recurso.
type UpdateResourceRequest struct {
	Name string `json:"name"`
}

// ResourceResponse representación de un recurso.
type ResourceResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateUnitOfMeasureRequest alta de unidad de medida.
type CreateUnitOfMeasureRequest struct {
	Name string `json:"name"`
}

// UpdateUnitOfMeasureRequest renombrado de unidad de medida.
type UpdateUnitOfMeasureRequest struct {
	Name string `json:"name"`
}

// UnitOfMeasureResponse representación de una unidad de medida.
type UnitOfMeasureResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CreateClientRequest alta de cliente.
type CreateClientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// UpdateClientRequest actualización de cliente.
type UpdateClientRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// ClientResponse representación de un cliente.
type ClientResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	State     string    `json:"state"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ArchiveResponse resultado de archivar datos maestros: indica si la fila se
// archivó (tiene referencias) o se eliminó definitivamente (sin referencias).
type ArchiveResponse struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
	Deleted  bool   `json:"deleted"`
}
