package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentState estado del documento de despacho.
// Máquina de estados: Created --sign--> Signed --revoke--> Canceled.
// Canceled es terminal; un documento firmado solo admite la revocación.
type ShipmentState string

const (
	ShipmentCreated  ShipmentState = "CREATED"
	ShipmentSigned   ShipmentState = "SIGNED"
	ShipmentCanceled ShipmentState = "CANCELED"
)

// ShipmentDocument documento de despacho (salida de mercancía).
// No toca el balance al crearse: el stock sale únicamente al firmar
// y regresa al revocar. Debe llevar al menos una línea.
type ShipmentDocument struct {
	ID        string
	Number    string
	ClientID  string
	Date      time.Time
	State     ShipmentState
	Lines     []ShipmentLine
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ShipmentLine línea de un documento de despacho.
type ShipmentLine struct {
	ID              string
	ResourceID      string
	UnitOfMeasureID string
	Quantity        decimal.Decimal
}
