package repository

import (
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
)

// BalanceFilter filtro para el listado de balances.
type BalanceFilter struct {
	ResourceIDs      []string
	UnitOfMeasureIDs []string
}

// BalanceRepository puerto del libro de balances por (recurso, unidad).
// Usado dentro de transacciones para garantizar consistencia.
type BalanceRepository interface {
	// Get devuelve el balance actual; fila ausente = balance cero.
	Get(resourceID, unitID string) (*entity.Balance, error)
	// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
	// Es el punto de serialización de toda secuencia leer-verificar-escribir.
	GetForUpdate(resourceID, unitID string) (*entity.Balance, error)
	// AddDelta suma delta al balance del par; crea la fila con quantity=delta
	// si no existe. Suma ciega: no valida que el resultado sea >= 0, eso es
	// responsabilidad del comando que la invoca.
	AddDelta(resourceID, unitID string, delta decimal.Decimal) error
	List(filter BalanceFilter) ([]*entity.Balance, error)
	IsResourceUsed(resourceID string) (bool, error)
	IsUnitOfMeasureUsed(unitID string) (bool, error)
}
