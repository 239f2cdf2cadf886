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

// IncomeUseCase ciclo de vida de documentos de ingreso. Cada comando ejecuta
// la escritura del documento y sus abonos al balance en una transacción
// (Commit/Rollback vía TxRunner); las lecturas usan el repositorio del pool.
type IncomeUseCase struct {
	txRunner   TxRunner
	incomeRepo repository.IncomeDocumentRepository
}

// NewIncomeUseCase construye el caso de uso.
func NewIncomeUseCase(txRunner TxRunner, incomeRepo repository.IncomeDocumentRepository) *IncomeUseCase {
	return &IncomeUseCase{txRunner: txRunner, incomeRepo: incomeRepo}
}

// Create valida el comando, persiste el documento y abona cada línea al
// balance (+cantidad). Documento y abonos confirman como una sola unidad.
func (uc *IncomeUseCase) Create(ctx context.Context, in dto.CreateIncomeDocumentRequest) (*dto.IncomeDocumentResponse, error) {
	if errs := validateDocumentFields(in.Number, in.Date, in.Lines); len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}

	now := time.Now()
	doc := &entity.IncomeDocument{
		ID:        uuid.New().String(),
		Number:    in.Number,
		Date:      in.Date,
		Lines:     toIncomeLines(in.Lines),
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(
		incomes repository.IncomeDocumentRepository,
		_ repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		_ repository.ResourceRepository,
		_ repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		exists, err := incomes.ExistsWithNumber(in.Number)
		if err != nil {
			return err
		}
		if exists {
			return domain.ErrDuplicate
		}
		if err := incomes.Create(doc); err != nil {
			return err
		}
		for _, line := range doc.Lines {
			if err := balances.AddDelta(line.ResourceID, line.UnitOfMeasureID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toIncomeResponse(doc), nil
}

// Update revierte las líneas anteriores (-cantidad), reemplaza el conjunto de
// líneas y aplica las nuevas (+cantidad), todo dentro de la misma transacción
// que la reescritura del documento. Las filas de balance afectadas se bloquean
// antes del primer abono para que ningún lector externo observe el estado
// intermedio "revertido pero aún no reaplicado".
func (uc *IncomeUseCase) Update(ctx context.Context, id string, in dto.UpdateIncomeDocumentRequest) (*dto.IncomeDocumentResponse, error) {
	if errs := validateDocumentFields(in.Number, in.Date, in.Lines); len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}

	var updated *entity.IncomeDocument
	err := uc.txRunner.Run(ctx, func(
		incomes repository.IncomeDocumentRepository,
		_ repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		_ repository.ResourceRepository,
		_ repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		doc, err := incomes.GetByID(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}
		if doc.Number != in.Number {
			exists, err := incomes.ExistsWithNumber(in.Number)
			if err != nil {
				return err
			}
			if exists {
				return domain.ErrDuplicate
			}
		}

		newLines := toIncomeLines(in.Lines)
		if err := lockIncomeBalances(balances, doc.Lines, newLines); err != nil {
			return err
		}
		for _, line := range doc.Lines {
			if err := balances.AddDelta(line.ResourceID, line.UnitOfMeasureID, line.Quantity.Neg()); err != nil {
				return err
			}
		}

		doc.Number = in.Number
		doc.Date = in.Date
		doc.Lines = newLines
		doc.UpdatedAt = time.Now()
		if err := incomes.Update(doc); err != nil {
			return err
		}

		for _, line := range doc.Lines {
			if err := balances.AddDelta(line.ResourceID, line.UnitOfMeasureID, line.Quantity); err != nil {
				return err
			}
		}
		updated = doc
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toIncomeResponse(updated), nil
}

// Delete verifica que cada línea quepa en el balance actual ANTES de aplicar
// cualquier reverso; si alguna no alcanza, falla con InsufficientStockError y
// no muta nada. Si todas alcanzan, descuenta cada línea y elimina el documento.
func (uc *IncomeUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		incomes repository.IncomeDocumentRepository,
		_ repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		resources repository.ResourceRepository,
		units repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		doc, err := incomes.GetByID(id)
		if err != nil {
			return err
		}
		if doc == nil {
			return domain.ErrNotFound
		}

		// Bloquear y verificar todas las líneas antes del primer abono.
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
		return incomes.Delete(id)
	})
}

// GetByID obtiene un documento de ingreso por ID.
func (uc *IncomeUseCase) GetByID(ctx context.Context, id string) (*dto.IncomeDocumentResponse, error) {
	doc, err := uc.incomeRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	return toIncomeResponse(doc), nil
}

// List lista documentos de ingreso aplicando el filtro.
func (uc *IncomeUseCase) List(ctx context.Context, in dto.DocumentFilterRequest) ([]dto.IncomeDocumentResponse, error) {
	docs, err := uc.incomeRepo.List(toDocumentFilter(in))
	if err != nil {
		return nil, err
	}
	items := make([]dto.IncomeDocumentResponse, 0, len(docs))
	for _, d := range docs {
		items = append(items, *toIncomeResponse(d))
	}
	return items, nil
}

// lockIncomeBalances bloquea (FOR UPDATE) cada par (recurso, unidad) afectado
// por el reverso o la reaplicación, una sola vez por par.
func lockIncomeBalances(balances repository.BalanceRepository, oldLines, newLines []entity.IncomeLine) error {
	locked := make(map[[2]string]bool)
	for _, line := range append(append([]entity.IncomeLine{}, oldLines...), newLines...) {
		key := [2]string{line.ResourceID, line.UnitOfMeasureID}
		if locked[key] {
			continue
		}
		if _, err := balances.GetForUpdate(line.ResourceID, line.UnitOfMeasureID); err != nil {
			return err
		}
		locked[key] = true
	}
	return nil
}

func toIncomeLines(in []dto.DocumentLineRequest) []entity.IncomeLine {
	lines := make([]entity.IncomeLine, 0, len(in))
	for _, l := range in {
		lines = append(lines, entity.IncomeLine{
			ID:              uuid.New().String(),
			ResourceID:      l.ResourceID,
			UnitOfMeasureID: l.UnitOfMeasureID,
			Quantity:        l.Quantity,
		})
	}
	return lines
}

func toIncomeResponse(doc *entity.IncomeDocument) *dto.IncomeDocumentResponse {
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
	return &dto.IncomeDocumentResponse{
		ID:        doc.ID,
		Number:    doc.Number,
		Date:      doc.Date,
		Lines:     lines,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}

func toDocumentFilter(in dto.DocumentFilterRequest) repository.DocumentFilter {
	return repository.DocumentFilter{
		FromDate:         in.FromDate,
		ToDate:           in.ToDate,
		DocumentNumbers:  in.DocumentNumbers,
		ResourceIDs:      in.ResourceIDs,
		UnitOfMeasureIDs: in.UnitOfMeasureIDs,
	}
}
