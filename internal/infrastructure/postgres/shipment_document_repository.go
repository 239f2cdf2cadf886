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

var _ repository.ShipmentDocumentRepository = (*ShipmentDocumentRepo)(nil)

// ShipmentDocumentRepo implementación de ShipmentDocumentRepository sobre PostgreSQL.
// Los despachos nunca se eliminan: la cancelación es un estado, no un borrado.
type ShipmentDocumentRepo struct {
	q Querier
}

// NewShipmentDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentDocumentRepository(q Querier) *ShipmentDocumentRepo {
	return &ShipmentDocumentRepo{q: q}
}

// GetByID obtiene un documento de despacho con sus líneas.
func (r *ShipmentDocumentRepo) GetByID(id string) (*entity.ShipmentDocument, error) {
	query := `
		SELECT id, number, client_id, date, state, created_at, updated_at
		FROM shipment_documents WHERE id = $1`
	var doc entity.ShipmentDocument
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&doc.ID, &doc.Number, &doc.ClientID, &doc.Date, &doc.State, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment document: %w", err)
	}
	lines, err := r.linesByDocument(doc.ID)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines
	return &doc, nil
}

// List devuelve los documentos de despacho que cumplen el filtro, con sus líneas,
// ordenados por fecha y número.
func (r *ShipmentDocumentRepo) List(filter repository.DocumentFilter) ([]*entity.ShipmentDocument, error) {
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
			"EXISTS(SELECT 1 FROM shipment_lines l WHERE l.document_id = d.id AND l.resource_id = ANY($%d))", len(args)))
	}
	if len(filter.UnitOfMeasureIDs) > 0 {
		args = append(args, filter.UnitOfMeasureIDs)
		conditions = append(conditions, fmt.Sprintf(
			"EXISTS(SELECT 1 FROM shipment_lines l WHERE l.document_id = d.id AND l.unit_of_measure_id = ANY($%d))", len(args)))
	}
	query := `
		SELECT d.id, d.number, d.client_id, d.date, d.state, d.created_at, d.updated_at
		FROM shipment_documents d`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY d.date, d.number"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shipment documents: %w", err)
	}
	defer rows.Close()
	var docs []*entity.ShipmentDocument
	for rows.Next() {
		var doc entity.ShipmentDocument
		if err := rows.Scan(&doc.ID, &doc.Number, &doc.ClientID, &doc.Date, &doc.State, &doc.CreatedAt, &doc.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan shipment document: %w", err)
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

// ExistsWithNumber verifica si ya existe un despacho con ese número.
func (r *ShipmentDocumentRepo) ExistsWithNumber(number string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM shipment_documents WHERE number = $1)`, number,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists shipment by number: %w", err)
	}
	return exists, nil
}

// Create persiste el documento y sus líneas.
func (r *ShipmentDocumentRepo) Create(doc *entity.ShipmentDocument) error {
	query := `
		INSERT INTO shipment_documents (id, number, client_id, date, state, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		doc.ID, doc.Number, doc.ClientID, doc.Date, doc.State, doc.CreatedAt, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment document: %w", err)
	}
	return r.insertLines(doc.ID, doc.Lines)
}

// Update reescribe la cabecera (incluido el estado) y reemplaza las líneas.
func (r *ShipmentDocumentRepo) Update(doc *entity.ShipmentDocument) error {
	ctx := context.Background()
	query := `
		UPDATE shipment_documents SET number = $2, client_id = $3, date = $4, state = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		doc.ID, doc.Number, doc.ClientID, doc.Date, doc.State, doc.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update shipment document: %w", err)
	}
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_lines WHERE document_id = $1`, doc.ID); err != nil {
		return fmt.Errorf("delete shipment lines: %w", err)
	}
	return r.insertLines(doc.ID, doc.Lines)
}

// IsResourceUsed indica si el recurso aparece en alguna línea de despacho.
func (r *ShipmentDocumentRepo) IsResourceUsed(resourceID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM shipment_lines WHERE resource_id = $1)`, resourceID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("shipment usage by resource: %w", err)
	}
	return used, nil
}

// IsUnitOfMeasureUsed indica si la unidad aparece en alguna línea de despacho.
func (r *ShipmentDocumentRepo) IsUnitOfMeasureUsed(unitID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM shipment_lines WHERE unit_of_measure_id = $1)`, unitID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("shipment usage by unit: %w", err)
	}
	return used, nil
}

// IsClientUsed indica si el cliente figura en algún despacho.
func (r *ShipmentDocumentRepo) IsClientUsed(clientID string) (bool, error) {
	var used bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM shipment_documents WHERE client_id = $1)`, clientID,
	).Scan(&used)
	if err != nil {
		return false, fmt.Errorf("shipment usage by client: %w", err)
	}
	return used, nil
}

func (r *ShipmentDocumentRepo) insertLines(docID string, lines []entity.ShipmentLine) error {
	query := `
		INSERT INTO shipment_lines (id, document_id, resource_id, unit_of_measure_id, quantity, position)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for i, line := range lines {
		_, err := r.q.Exec(context.Background(), query,
			line.ID, docID, line.ResourceID, line.UnitOfMeasureID, line.Quantity, i,
		)
		if err != nil {
			return fmt.Errorf("insert shipment line: %w", err)
		}
	}
	return nil
}

func (r *ShipmentDocumentRepo) linesByDocument(docID string) ([]entity.ShipmentLine, error) {
	query := `
		SELECT id, resource_id, unit_of_measure_id, quantity
		FROM shipment_lines WHERE document_id = $1 ORDER BY position`
	rows, err := r.q.Query(context.Background(), query, docID)
	if err != nil {
		return nil, fmt.Errorf("list shipment lines: %w", err)
	}
	defer rows.Close()
	var lines []entity.ShipmentLine
	for rows.Next() {
		var line entity.ShipmentLine
		if err := rows.Scan(&line.ID, &line.ResourceID, &line.UnitOfMeasureID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan shipment line: %w", err)
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}
