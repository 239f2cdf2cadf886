package document

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza que la escritura del documento y todos los
// abonos al balance confirmen como una sola unidad: si fn devuelve error,
// nada de lo aplicado queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		incomes repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		resources repository.ResourceRepository,
		units repository.UnitOfMeasureRepository,
		clients repository.ClientRepository,
	) error) error
}
