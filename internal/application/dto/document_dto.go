package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentLineRequest línea de documento (ingreso o despacho).
type DocumentLineRequest struct {
	ResourceID      string          `json:"resource_id"`
	UnitOfMeasureID string          `json:"unit_of_measure_id"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// DocumentLineResponse línea de documento en respuestas.
type DocumentLineResponse struct {
	ID              string          `json:"id"`
	ResourceID      string          `json:"resource_id"`
	UnitOfMeasureID string          `json:"unit_of_measure_id"`
	Quantity        decimal.Decimal `json:"quantity"`
}

// CreateIncomeDocumentRequest alta de documento de ingreso.
type CreateIncomeDocumentRequest struct {
	Number string                `json:"number"`
	Date   time.Time             `json:"date"`
	Lines  []DocumentLineRequest `json:"lines"`
}

// UpdateIncomeDocumentRequest actualización de documento de ingreso.
// Reemplaza el conjunto de líneas completo.
type UpdateIncomeDocumentRequest struct {
	Number string                `json:"number"`
	Date   time.Time             `json:"date"`
	Lines  []DocumentLineRequest `json:"lines"`
}

// IncomeDocumentResponse representación de un documento de ingreso.
type IncomeDocumentResponse struct {
	ID        string                 `json:"id"`
	Number    string                 `json:"number"`
	Date      time.Time              `json:"date"`
	Lines     []DocumentLineResponse `json:"lines"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// CreateShipmentDocumentRequest alta de documento de despacho.
type CreateShipmentDocumentRequest struct {
	Number   string                `json:"number"`
	ClientID string                `json:"client_id"`
	Date     time.Time             `json:"date"`
	Lines    []DocumentLineRequest `json:"lines"`
}

// UpdateShipmentDocumentRequest actualización de documento de despacho.
type UpdateShipmentDocumentRequest struct {
	Number   string                `json:"number"`
	ClientID string                `json:"client_id"`
	Date     time.Time             `json:"date"`
	Lines    []DocumentLineRequest `json:"lines"`
}

// ShipmentDocumentResponse representación de un documento de despacho.
type ShipmentDocumentResponse struct {
	ID        string                 `json:"id"`
	Number    string                 `json:"number"`
	ClientID  string                 `json:"client_id"`
	Date      time.Time              `json:"date"`
	State     string                 `json:"state"`
	Lines     []DocumentLineResponse `json:"lines"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// DocumentFilterRequest filtros de listado de documentos (query params).
type DocumentFilterRequest struct {
	FromDate         *time.Time `query:"from_date"`
	ToDate           *time.Time `query:"to_date"`
	DocumentNumbers  []string   `query:"numbers"`
	ResourceIDs      []string   `query:"resource_ids"`
	UnitOfMeasureIDs []string   `query:"unit_ids"`
}

// BalanceResponse fila del balance de bodega.
type BalanceResponse struct {
	ID              string          `json:"id"`
	ResourceID      string          `json:"resource_id"`
	UnitOfMeasureID string          `json:"unit_of_measure_id"`
	Quantity        decimal.Decimal `json:"quantity"`
	UpdatedAt       time.Time       `json:"updated_at"`
}
