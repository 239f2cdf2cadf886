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

var _ repository.ResourceRepository = (*ResourceRepo)(nil)

// ResourceRepo implementación de ResourceRepository sobre PostgreSQL (usable con pool o tx).
type ResourceRepo struct {
	q Querier
}

// NewResourceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewResourceRepository(q Querier) *ResourceRepo {
	return &ResourceRepo{q: q}
}

// GetByID obtiene un recurso por ID.
func (r *ResourceRepo) GetByID(id string) (*entity.Resource, error) {
	query := `
		SELECT id, name, state, created_at, updated_at
		FROM resources WHERE id = $1`
	var res entity.Resource
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&res.ID, &res.Name, &res.State, &res.CreatedAt, &res.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get resource: %w", err)
	}
	return &res, nil
}

// GetAll lista todos los recursos (activos y archivados) por nombre.
func (r *ResourceRepo) GetAll() ([]*entity.Resource, error) {
	query := `
		SELECT id, name, state, created_at, updated_at
		FROM resources ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list resources: %w", err)
	}
	defer rows.Close()
	var list []*entity.Resource
	for rows.Next() {
		var res entity.Resource
		if err := rows.Scan(&res.ID, &res.Name, &res.State, &res.CreatedAt, &res.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resource: %w", err)
		}
		list = append(list, &res)
	}
	return list, rows.Err()
}

// ExistsWithName verifica si ya existe un recurso con ese nombre.
func (r *ResourceRepo) ExistsWithName(name string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM resources WHERE name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists resource by name: %w", err)
	}
	return exists, nil
}

// Create persiste un nuevo recurso.
func (r *ResourceRepo) Create(resource *entity.Resource) error {
	query := `
		INSERT INTO resources (id, name, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		resource.ID, resource.Name, resource.State, resource.CreatedAt, resource.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert resource: %w", err)
	}
	return nil
}

// Update actualiza nombre y estado de un recurso existente.
func (r *ResourceRepo) Update(resource *entity.Resource) error {
	query := `
		UPDATE resources SET name = $2, state = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		resource.ID, resource.Name, resource.State, resource.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update resource: %w", err)
	}
	return nil
}

// Delete elimina un recurso por ID (solo lo invoca la política de archivado
// cuando el recurso no tiene ningún uso).
func (r *ResourceRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resource: %w", err)
	}
	return nil
}
