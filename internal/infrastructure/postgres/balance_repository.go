package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.BalanceRepository = (*BalanceRepo)(nil)

// BalanceRepo implementación de BalanceRepository sobre PostgreSQL.
// Las operaciones de escritura deben ejecutarse dentro de una transacción
// (vía TxRunner); fuera de transacción solo tiene sentido List.
type BalanceRepo struct {
	q Querier
}

// NewBalanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBalanceRepository(q Querier) *BalanceRepo {
	return &BalanceRepo{q: q}
}

// Get devuelve el balance del par (recurso, unidad). Fila ausente = balance cero.
func (r *BalanceRepo) Get(resourceID, unitID string) (*entity.Balance, error) {
	return r.get(resourceID, unitID, false)
}

// GetForUpdate igual que Get pero bloqueando la fila con SELECT ... FOR UPDATE.
// Si la fila no existe no hay nada que bloquear: se devuelve el balance cero
// y la serialización la da el índice único al insertar.
func (r *BalanceRepo) GetForUpdate(resourceID, unitID string) (*entity.Balance, error) {
	return r.get(resourceID, unitID, true)
}

func (r *BalanceRepo) get(resourceID, unitID string, forUpdate bool) (*entity.Balance, error) {
	query := `
		SELECT id, resource_id, unit_of_measure_id, quantity, updated_at
		FROM balances
		WHERE resource_id = $1 AND unit_of_measure_id = $2`
	if forUpdate {
		query += " FOR UPDATE"
	}
	var b entity.Balance
	err := r.q.QueryRow(context.Background(), query, resourceID, unitID).Scan(
		&b.ID, &b.ResourceID, &b.UnitOfMeasureID, &b.Quantity, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Balance{
				ResourceID:      resourceID,
				UnitOfMeasureID: unitID,
				Quantity:        decimal.Zero,
			}, nil
		}
		return nil, fmt.Errorf("get balance: %w", err)
	}
	return &b, nil
}

// AddDelta suma delta al balance del par, creando la fila si no existe.
// Suma ciega: la verificación de suficiencia es del caso de uso, no de aquí.
func (r *BalanceRepo) AddDelta(resourceID, unitID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO balances (id, resource_id, unit_of_measure_id, quantity, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (resource_id, unit_of_measure_id)
		DO UPDATE SET quantity = balances.quantity + EXCLUDED.quantity,
		              updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(context.Background(), query,
		uuid.New().String(), resourceID, unitID, delta, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("add balance delta: %w", err)
	}
	return nil
}

// List devuelve los balances que cumplen el filtro, ordenados por par.
func (r *BalanceRepo) List(filter repository.BalanceFilter) ([]*entity.Balance, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if len(filter.ResourceIDs) > 0 {
		args = append(args, filter.ResourceIDs)
		conditions = append(conditions, fmt.Sprintf("resource_id = ANY($%d)", len(args)))
	}
	if len(filter.UnitOfMeasureIDs) > 0 {
		args = append(args, filter.UnitOfMeasureIDs)
		conditions = append(conditions, fmt.Sprintf("unit_of_measure_id = ANY($%d)", len(args)))
	}
	query := `
		SELECT id, resource_id, unit_of_measure_id, quantity, updated_at
		FROM balances`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY resource_id, unit_of_measure_id"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list balances: %w", err)
	}
	defer rows.Close()
	var list []*entity.Balance
	for rows.Next() {
		var b entity.Balance
		if err := rows.Scan(&b.ID, &b.ResourceID, &b.UnitOfMeasureID, &b.Quantity, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan balance: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// IsResourceUsed indica si el recurso tiene alguna fila de balance.
func (r *BalanceRepo) IsResourceUsed(resourceID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM balances WHERE resource_id = $1)`, resourceID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("balance usage by resource: %w", err)
	}
	return used, nil
}

// IsUnitOfMeasureUsed indica si la unidad tiene alguna fila de balance.
func (r *BalanceRepo) IsUnitOfMeasureUsed(unitID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM balances WHERE unit_of_measure_id = $1)`, unitID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("balance usage by unit: %w", err)
	}
	return used, nil
}
