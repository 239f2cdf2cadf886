package document

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ShipmentUseCase ciclo de vida de documentos de despacho.
// Máquina de estados: Created --Sign--> Signed --Revoke--> Canceled.
// El stock sale de bodega únicamente al firmar y regresa al revocar;
// crear o editar un borrador nunca toca el balance.
type ShipmentUseCase struct {
	txRunner     TxRunner
	shipmentRepo repository.ShipmentDocumentRepository
}

// NewShipmentUseCase construye el caso de uso.
func NewShipmentUseCase(txRunner TxRunner, shipmentRepo repository.ShipmentDocumentRepository) *ShipmentUseCase {
	return &ShipmentUseCase{txRunner: txRunner, shipmentRepo: shipmentRepo}
}

// Create valida el comando, resuelve cliente, recursos y unidades (deben
// existir y estar activos) y persiste el documento en estado Created.
// No hay abonos al balance: un despacho sin firmar no reserva nada.
func (uc *ShipmentUseCase) Create(ctx context.Context, in dto.CreateShipmentDocumentRequest) (*dto.ShipmentDocumentResponse, error) {
	errs := validateDocumentFields(in.Number, in.Date, in.Lines)
	if in.ClientID == "" {
		errs = append(errs, "el ID del cliente no puede estar vacío")
	}
	if len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}

	now := time.Now()
	doc := &entity.ShipmentDocument{
		ID:        uuid.New().String(),
		Number:    in.Number,
		ClientID:  in.ClientID,
		Date:      in.Date,
		State:     entity.ShipmentCreated,
		Lines:     toShipmentLines(in.Lines),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		_ repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		_ repository.BalanceRepository,
		resources repository.ResourceRepository,
		units repository.UnitOfMeasureRepository,
		clients repository.ClientRepository,
	) error {
		exists, err := shipments.ExistsWithNumber(in.Number)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}
		if err := checkShipmentReferences(clients, resources, units, in.ClientID, doc.Lines); err != nil {
			return err
		}
		return shipments.Create(doc)
	})
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(doc), nil
}

// Update solo es válido en estado Created. Reemplaza el conjunto de líneas
// con las mismas validaciones del alta y no toca el balance.
func (uc *ShipmentUseCase) Update(ctx context.Context, id string, in dto.UpdateShipmentDocumentRequest) (*dto.ShipmentDocumentResponse, error) {
	errs := validateDocumentFields(in.Number, in.Date, in.Lines)
	if in.ClientID == "" {
		errs = append(errs, "el ID del cliente no puede estar vacío")
	}
	if len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}

	var updated *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(
		_ repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		_ repository.BalanceRepository,
		resources repository.ResourceRepository,
		units repository.UnitOfMeasureRepository,
		clients repository.ClientRepository,
	) error {
		doc, err := shipments.GetByID(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		switch doc.State {
		case entity.ShipmentSigned:
			return domain.ErrDocumentSigned
		case entity.ShipmentCanceled:
			return domain.ErrInvalidState
		}
		if doc.Number != in.Number {
			exists, err := shipments.ExistsWithNumber(in.Number)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicate
			}
		}
		newLines := toShipmentLines(in.Lines)
		if err := checkShipmentReferences(clients, resources, units, in.ClientID, newLines); err != nil {
			return err
		}

		doc.Number = in.Number
		doc.ClientID = in.ClientID
		doc.Date = in.Date
		doc.Lines = newLines
		doc.UpdatedAt = time.Now()
		updated = doc
		return shipments.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(updated), nil
}

// Sign firma el documento: bloquea la fila de balance de cada línea, verifica
// la suficiencia de TODAS las líneas antes de aplicar cualquier descuento y,
// solo si todas alcanzan, descuenta cada línea y pasa el estado a Signed.
// Ante cualquier faltante no se muta nada. Este es el punto donde el stock
// realmente sale de bodega.
func (uc *ShipmentUseCase) Sign(ctx context.Context, id string) (*dto.ShipmentDocumentResponse, error) {
	var signed *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(
		_ repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		resources repository.ResourceRepository,
		units repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		doc, err := shipments.GetByID(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		switch doc.State {
		case entity.ShipmentSigned:
			return domain.ErrAlreadySigned
		case entity.ShipmentCanceled:
			return domain.ErrInvalidState
		}

		// Verificación completa antes del primer descuento, con las filas
		// bloqueadas para cerrar la carrera entre dos firmas concurrentes.
		for _, line := range doc.Lines {
			balance, err := balances.GetForUpdate(line.ResourceID, line.UnitOfMeasureID)
			if err != nil {
				return err
			}
			if balance.Quantity.LessThan(line.Quantity) {
				return insufficientStock(resources, units, line.ResourceID, line.UnitOfMeasureID, balance.Quantity, line.Quantity)
			}
		}
		for _, line := range doc.Lines {
			if err := balances.AddDelta(line.ResourceID, line.UnitOfMeasureID, line.Quantity.Neg()); err != nil {
				return err
			}
		}

		doc.State = entity.ShipmentSigned
		doc.UpdatedAt = time.Now()
		signed = doc
		return shipments.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(signed), nil
}

// Revoke revoca un documento firmado: devuelve cada línea al balance
// (+cantidad) y pasa el estado a Canceled. Solo un documento firmado puede
// revocarse, y un documento cancelado jamás vuelve a firmarse.
func (uc *ShipmentUseCase) Revoke(ctx context.Context, id string) (*dto.ShipmentDocumentResponse, error) {
	var revoked *entity.ShipmentDocument
	err := uc.txRunner.Run(ctx, func(
		_ repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		_ repository.ResourceRepository,
		_ repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		doc, err := shipments.GetByID(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.State != entity.ShipmentSigned {
			return domain.ErrInvalidState
		}
		for _, line := range doc.Lines {
			if err := balances.AddDelta(line.ResourceID, line.UnitOfMeasureID, line.Quantity); err != nil {
				return err
			}
		}
		doc.State = entity.ShipmentCanceled
		doc.UpdatedAt = time.Now()
		revoked = doc
		return shipments.Update(doc)
	})
	if err != nil {
		return nil, err
	}
	return toShipmentResponse(revoked), nil
}

// GetByID obtiene un documento de despacho por ID.
func (uc *ShipmentUseCase) GetByID(ctx context.Context, id string) (*dto.ShipmentDocumentResponse, error) {
	doc, err := uc.shipmentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toShipmentResponse(doc), nil
}

// List lista documentos de despacho aplicando el filtro.
func (uc *ShipmentUseCase) List(ctx context.Context, in dto.DocumentFilterRequest) ([]dto.ShipmentDocumentResponse, error) {
	docs, err := uc.shipmentRepo.List(toDocumentFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.ShipmentDocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toShipmentResponse(d))
	}
	return items, nil
}

// checkShipmentReferences valida que el documento no esté vacío y que cliente,
// recursos y unidades referenciados existan y no estén archivados.
func checkShipmentReferences(
	clients repository.ClientRepository,
	resources repository.ResourceRepository,
	units repository.UnitOfMeasureRepository,
	clientID string,
	lines []entity.ShipmentLine,
) error {
	client, err := clients.GetByID(clientID)
	if err != nil {
		return err
	}
	if client == nil {
		return domain.ErrNotFound
	}
	if client.State == entity.StateArchived {
		return domain.ErrArchivedEntity
	}
	if len(lines) == 0 {
		return domain.ErrEmptyDocument
	}
	for _, line := range lines {
		resource, err := resources.GetByID(line.ResourceID)
		if err != nil {
			return err
		}
		if resource == nil {
			return domain.ErrNotFound
		}
		if resource.State == entity.StateArchived {
			return domain.ErrArchivedEntity
		}
		unit, err := units.GetByID(line.UnitOfMeasureID)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		if unit.State == entity.StateArchived {
			return domain.ErrArchivedEntity
		}
	}
	return nil
}

func toShipmentLines(in []dto.DocumentLineRequest) []entity.ShipmentLine {
	lines := make([]entity.ShipmentLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.ShipmentLine{
			ID:              uuid.New().String(),
			ResourceID:      l.ResourceID,
			UnitOfMeasureID: l.UnitOfMeasureID,
			Quantity:        l.Quantity,
		})
	}
	return lines
}

func toShipmentResponse(doc *entity.ShipmentDocument) *dto.ShipmentDocumentResponse {
	if doc == nil {
		return nil
	}
	lines := make([]dto.DocumentLineResponse, 0, len(doc.Lines))
	for _, l := range doc.Lines {
		lines = append(lines, dto.DocumentLineResponse{
			ID:              l.ID,
			ResourceID:      l.ResourceID,
			UnitOfMeasureID: l.UnitOfMeasureID,
			Quantity:        l.Quantity,
		})
	}
	return &dto.ShipmentDocumentResponse{
		ID:        doc.ID,
		Number:    doc.Number,
		ClientID:  doc.ClientID,
		Date:      doc.Date,
		State:     string(doc.State),
		Lines:     lines,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
