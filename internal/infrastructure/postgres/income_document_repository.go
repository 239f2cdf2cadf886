package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

var _ repository.IncomeDocumentRepository = (*IncomeDocumentRepo)(nil)

// IncomeDocumentRepo implementación de IncomeDocumentRepository sobre PostgreSQL.
// El documento es dueño de sus líneas: Update reemplaza el conjunto completo
// y Delete las elimina en cascada (FK ON DELETE CASCADE).
type IncomeDocumentRepo struct {
	q Querier
}

// NewIncomeDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewIncomeDocumentRepository(q Querier) *IncomeDocumentRepo {
	return &IncomeDocumentRepo{q: q}
}

// GetByID obtiene un documento de ingreso con sus líneas.
func (r *IncomeDocumentRepo) GetByID(id string) (*entity.IncomeDocument, error) {
	query := `
		SELECT id, number, date, created_at, updated_at
		FROM income_documents WHERE id = $1`
	var doc entity.IncomeDocument
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&doc.ID, &doc.Number, &doc.Date, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get income document: %w", err)
	}
	lines, err := r.linesByDocument(doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return &doc, nil
}

// List devuelve los documentos de ingreso que cumplen el filtro, con sus líneas,
// ordenados por fecha y número.
func (r *IncomeDocumentRepo) List(filter repository.DocumentFilter) ([]*entity.IncomeDocument, error) {
	var (
		conditions []string
		args       []interface{}
	)
	if filter.FromDate != nil {
		args = append(args, *filter.FromDate)
		conditions = append(conditions, fmt.Sprintf("d.date >= $%d", len(args)))
	}
	if filter.ToDate != nil {
		args = append(args, *filter.ToDate)
		conditions = append(conditions, fmt.Sprintf("d.date <= $%d", len(args)))
	}
	if len(filter.DocumentNumbers) > 0 {
		args = append(args, filter.DocumentNumbers)
		conditions = append(conditions, fmt.Sprintf("d.number = ANY($%d)", len(args)))
	}
	if len(filter.ResourceIDs) > 0 {
		args = append(args, filter.ResourceIDs)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM income_lines l WHERE l.document_id = d.id AND l.resource_id = ANY($%d))", len(args)))
	}
	if len(filter.UnitOfMeasureIDs) > 0 {
		args = append(args, filter.UnitOfMeasureIDs)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM income_lines l WHERE l.document_id = d.id AND l.unit_of_measure_id = ANY($%d))", len(args)))
	}
	query := `
		SELECT d.id, d.number, d.date, d.created_at, d.updated_at
		FROM income_documents d`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY d.date, d.number"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list income documents: %w", err)
	}
	defer rows.Close()
	var docs []*entity.IncomeDocument
	for rows.Next() {
		var doc entity.IncomeDocument
		if err := rows.Scan(&doc.ID, &doc.Number, &doc.Date, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan income document: %w", err)
		}
		docs = append(docs, &doc)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for _, doc := range docs {
		lines, err := r.linesByDocument(doc.ID)
		if err != nil {
			return nil, err
		}
		doc.Lines = lines
	}
	return docs, nil
}

// ExistsWithNumber verifica si ya existe un ingreso con ese número.
func (r *IncomeDocumentRepo) ExistsWithNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM income_documents WHERE number = $1)`, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists income by number: %w", err)
	}
	return exists, nil
}

// Create persiste el documento y sus líneas.
func (r *IncomeDocumentRepo) Create(doc *entity.IncomeDocument) error {
	query := `
		INSERT INTO income_documents (id, number, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Number, doc.Date, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert income document: %w", err)
	}
	return r.insertLines(doc.ID, doc.Lines)
}

// Update reescribe la cabecera y reemplaza el conjunto de líneas completo.
func (r *IncomeDocumentRepo) Update(doc *entity.IncomeDocument) error {
	ctx := context.Background()
	query := `
		UPDATE income_documents SET number = $2, date = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query, doc.ID, doc.Number, doc.Date, doc.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update income document: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM income_lines WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete income lines: %w", err)
	}
	return r.insertLines(doc.ID, doc.Lines)
}

// Delete elimina el documento; las líneas caen en cascada.
func (r *IncomeDocumentRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM income_documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete income document: %w", err)
	}
	return nil
}

// IsResourceUsed indica si el recurso aparece en alguna línea de ingreso.
func (r *IncomeDocumentRepo) IsResourceUsed(resourceID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM income_lines WHERE resource_id = $1)`, resourceID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("income usage by resource: %w", err)
	}
	return used, nil
}

// IsUnitOfMeasureUsed indica si la unidad aparece en alguna línea de ingreso.
func (r *IncomeDocumentRepo) IsUnitOfMeasureUsed(unitID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM income_lines WHERE unit_of_measure_id = $1)`, unitID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("income usage by unit: %w", err)
	}
	return used, nil
}

func (r *IncomeDocumentRepo) insertLines(docID string, lines []entity.IncomeLine) error {
	query := `
		INSERT INTO income_lines (id, document_id, resource_id, unit_of_measure_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, line := range lines {
		_, err := r.q.Exec(context.Background(), query,
			line.ID, docID, line.ResourceID, line.UnitOfMeasureID, line.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("insert income line: %w", err)
		}
	}
	return nil
}

func (r *IncomeDocumentRepo) linesByDocument(docID string) ([]entity.IncomeLine, error) {
	query := `
		SELECT id, resource_id, unit_of_measure_id, quantity
		FROM income_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, docID)
	if err != nil {
		return nil, fmt.Errorf("list income lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.IncomeLine
	for rows.Next() {
		var line entity.IncomeLine
		if err := rows.Scan(&line.ID, &line.ResourceID, &line.UnitOfMeasureID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan income line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
