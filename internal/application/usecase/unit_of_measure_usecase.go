package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// UnitOfMeasureUseCase registro de unidades de medida con política de archivado.
type UnitOfMeasureUseCase struct {
	repo     repository.UnitOfMeasureRepository
	txRunner document.TxRunner
}

// NewUnitOfMeasureUseCase construye el caso de uso.
func NewUnitOfMeasureUseCase(repo repository.UnitOfMeasureRepository, txRunner document.TxRunner) *UnitOfMeasureUseCase {
	return &UnitOfMeasureUseCase{repo: repo, txRunner: txRunner}
}

// List lista todas las unidades de medida.
func (uc *UnitOfMeasureUseCase) List(ctx context.Context) ([]dto.UnitOfMeasureResponse, error) {
	units, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitOfMeasureResponse, 0, len(units))
	for _, u := range units {
		items = append(items, *toUnitResponse(u))
	}
	return items, nil
}

// Create crea una unidad de medida activa con nombre único.
func (uc *UnitOfMeasureUseCase) Create(ctx context.Context, in dto.CreateUnitOfMeasureRequest) (*dto.UnitOfMeasureResponse, error) {
	if errs := validateName(in.Name, 50); len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}
	exists, err := uc.repo.ExistsWithName(in.Name)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	unit := &entity.UnitOfMeasure{
		ID:        uuid.New().String(),
		Name:      in.Name,
		State:     entity.StateActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// Update renombra una unidad, verificando unicidad si el nombre cambió.
func (uc *UnitOfMeasureUseCase) Update(ctx context.Context, id string, in dto.UpdateUnitOfMeasureRequest) (*dto.UnitOfMeasureResponse, error) {
	if errs := validateName(in.Name, 50); len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, domain.ErrNotFound
	}
	if unit.Name != in.Name {
		exists, err := uc.repo.ExistsWithName(in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	unit.Name = in.Name
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// Archive archiva la unidad si aparece en líneas de documentos o balances;
// la elimina definitivamente si no tiene ningún uso.
func (uc *UnitOfMeasureUseCase) Archive(ctx context.Context, id string) (*dto.ArchiveResponse, error) {
	var out *dto.ArchiveResponse
	err := uc.txRunner.Run(ctx, func(
		incomes repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		_ repository.ResourceRepository,
		units repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		unit, err := units.GetByID(id)
		if err != nil {
			return err
		}
		if unit == nil {
			return domain.ErrNotFound
		}
		usedInIncome, err := incomes.IsUnitOfMeasureUsed(id)
		if err != nil {
			return err
		}
		usedInShipment, err := shipments.IsUnitOfMeasureUsed(id)
		if err != nil {
			return err
		}
		usedInBalance, err := balances.IsUnitOfMeasureUsed(id)
		if err != nil {
			return err
		}
		if usedInIncome || usedInShipment || usedInBalance {
			unit.State = entity.StateArchived
			unit.UpdatedAt = time.Now()
			if err := units.Update(unit); err != nil {
				return err
			}
			out = &dto.ArchiveResponse{ID: id, Archived: true}
			return nil
		}
		if err := units.Delete(id); err != nil {
			return err
		}
		out = &dto.ArchiveResponse{ID: id, Deleted: true}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func toUnitResponse(u *entity.UnitOfMeasure) *dto.UnitOfMeasureResponse {
	if u == nil {
		return nil
	}
	return &dto.UnitOfMeasureResponse{
		ID:        u.ID,
		Name:      u.Name,
		State:     string(u.State),
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
