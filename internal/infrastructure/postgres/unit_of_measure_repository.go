package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.UnitOfMeasureRepository = (*UnitOfMeasureRepo)(nil)

// UnitOfMeasureRepo implementación de UnitOfMeasureRepository sobre PostgreSQL.
type UnitOfMeasureRepo struct {
	q Querier
}

// NewUnitOfMeasureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitOfMeasureRepository(q Querier) *UnitOfMeasureRepo {
	return &UnitOfMeasureRepo{q: q}
}

// GetByID obtiene una unidad de medida por ID.
func (r *UnitOfMeasureRepo) GetByID(id string) (*entity.UnitOfMeasure, error) {
	query := `
		SELECT id, name, state, created_at, updated_at
		FROM units_of_measure WHERE id = $1`
	var u entity.UnitOfMeasure
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&u.ID, &u.Name, &u.State, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit of measure: %w", err)
	}
	return &u, nil
}

// GetAll lista todas las unidades de medida por nombre.
func (r *UnitOfMeasureRepo) GetAll() ([]*entity.UnitOfMeasure, error) {
	query := `
		SELECT id, name, state, created_at, updated_at
		FROM units_of_measure ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list units of measure: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitOfMeasure
	for rows.Next() {
		var u entity.UnitOfMeasure
		if err := rows.Scan(&u.ID, &u.Name, &u.State, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit of measure: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

// ExistsWithName verifica si ya existe una unidad con ese nombre.
func (r *UnitOfMeasureRepo) ExistsWithName(name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM units_of_measure WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists unit by name: %w", err)
	}
	return exists, nil
}

// Create persiste una nueva unidad de medida.
func (r *UnitOfMeasureRepo) Create(unit *entity.UnitOfMeasure) error {
	query := `
		INSERT INTO units_of_measure (id, name, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.State, unit.CreatedAt, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit of measure: %w", err)
	}
	return nil
}

// Update actualiza nombre y estado de una unidad existente.
func (r *UnitOfMeasureRepo) Update(unit *entity.UnitOfMeasure) error {
	query := `
		UPDATE units_of_measure SET name = $2, state = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		unit.ID, unit.Name, unit.State, unit.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit of measure: %w", err)
	}
	return nil
}

// Delete elimina una unidad por ID.
func (r *UnitOfMeasureRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM units_of_measure WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit of measure: %w", err)
	}
	return nil
}
