package entity

import "time"

// UnitOfMeasure unidad de medida (kg, litro, unidad). Nombre único.
type UnitOfMeasure struct {
	ID        string
	Name      string
	State     EntityState
	CreatedAt time.Time
	UpdatedAt time.Time
}
