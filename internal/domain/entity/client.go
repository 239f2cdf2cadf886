package entity

import "time"

// Client destinatario de los documentos de despacho. Nombre único.
type Client struct {
	ID        string
	Name      string
	Address   string
	State     EntityState
	CreatedAt time.Time
	UpdatedAt time.Time
}
