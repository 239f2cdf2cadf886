package entity

import "time"

// Resource recurso almacenable (materia prima, producto). Nombre único.
type Resource struct {
	ID        string
	Name      string
	State     EntityState
	CreatedAt time.Time
	UpdatedAt time.Time
}
