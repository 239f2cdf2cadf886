package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas más allá de decimal).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrInvalidState       = errors.New("estado inválido para la operación")
	ErrAlreadySigned      = errors.New("el documento ya está firmado")
	ErrDocumentSigned     = errors.New("no se puede modificar un documento firmado")
	ErrEmptyDocument      = errors.New("el documento de despacho no puede estar vacío")
	ErrArchivedEntity     = errors.New("no se puede usar una entidad archivada")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrUnauthorized       = errors.New("no autorizado")
)

// ValidationErrors acumula errores de validación campo a campo.
// Los comandos validan todos los campos antes de fallar, no al primer error.
type ValidationErrors []string

func (v ValidationErrors) Error() string {
	return strings.Join(v, "; ")
}

// InsufficientStockError indica que el balance no alcanza la cantidad requerida.
// Lleva nombres y cantidades para que la capa de presentación los muestre.
type InsufficientStockError struct {
	ResourceName string
	UnitName     string
	Available    decimal.Decimal
	Required     decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente del recurso '%s' en unidades '%s': disponible %s, requerido %s",
		e.ResourceName, e.UnitName, e.Available.String(), e.Required.String())
}

// IsInsufficientStock reporta si err es (o envuelve) un InsufficientStockError.
func IsInsufficientStock(err error) bool {
	var target *InsufficientStockError
	return errors.As(err, &target)
}

// IsValidation reporta si err es una lista de errores de validación.
func IsValidation(err error) bool {
	var target ValidationErrors
	return errors.As(err, &target)
}
