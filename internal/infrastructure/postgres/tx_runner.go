package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// Ensure TxRunner implements document.TxRunner.
var _ document.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
// Es la frontera de commit del sistema: documento y abonos al balance
// confirman juntos o no confirma ninguno.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	incomes repository.IncomeDocumentRepository,
	shipments repository.ShipmentDocumentRepository,
	balances repository.BalanceRepository,
	resources repository.ResourceRepository,
	units repository.UnitOfMeasureRepository,
	clients repository.ClientRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	incomes := NewIncomeDocumentRepository(tx)
	shipments := NewShipmentDocumentRepository(tx)
	balances := NewBalanceRepository(tx)
	resources := NewResourceRepository(tx)
	units := NewUnitOfMeasureRepository(tx)
	clients := NewClientRepository(tx)

	if err := fn(incomes, shipments, balances, resources, units, clients); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
