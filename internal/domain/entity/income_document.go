package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// IncomeDocument documento de ingreso (recepción de mercancía).
// Afecta el balance directamente al crearse, actualizarse o eliminarse.
type IncomeDocument struct {
	ID        string
	Number    string
	Date      time.Time
	Lines     []IncomeLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IncomeLine línea de un documento de ingreso. Referencia recurso y unidad
// solo por ID; el documento es dueño exclusivo de sus líneas.
type IncomeLine struct {
	ID              string
	ResourceID      string
	UnitOfMeasureID string
	Quantity        decimal.Decimal
}
