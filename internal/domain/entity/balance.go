package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance cantidad en bodega por par (recurso, unidad de medida).
// Única por par; se crea con el primer abono y nunca se elimina
// (puede quedar en cero). Invariante: Quantity >= 0 en todo estado confirmado.
type Balance struct {
	ID              string
	ResourceID      string
	UnitOfMeasureID string
	Quantity        decimal.Decimal
	UpdatedAt       time.Time
}
