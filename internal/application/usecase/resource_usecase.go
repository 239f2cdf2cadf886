package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ResourceUseCase registro de recursos: CRUD más la política de archivado.
// Archivar decide entre borrado lógico y eliminación definitiva según el uso
// del recurso en documentos o balances.
type ResourceUseCase struct {
	repo     repository.ResourceRepository
	txRunner document.TxRunner
}

// NewResourceUseCase construye el caso de uso.
func NewResourceUseCase(repo repository.ResourceRepository, txRunner document.TxRunner) *ResourceUseCase {
	return &ResourceUseCase{repo: repo, txRunner: txRunner}
}

// List lista todos los recursos (activos y archivados).
func (uc *ResourceUseCase) List(ctx context.Context) ([]dto.ResourceResponse, error) {
	resources, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ResourceResponse, 0, len(resources))
	for _, r := range resources {
		items = append(items, *toResourceResponse(r))
	}
	return items, nil
}

// Create crea un recurso activo con nombre único.
func (uc *ResourceUseCase) Create(ctx context.Context, in dto.CreateResourceRequest) (*dto.ResourceResponse, error) {
	if errs := validateName(in.Name, 255); len(errs) > 0 {
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
	resource := &entity.Resource{
		ID:        uuid.New().String(),
		Name:      in.Name,
		State:     entity.StateActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(resource); err != nil {
		return nil, err
	}
	return toResourceResponse(resource), nil
}

// Update renombra un recurso, verificando unicidad si el nombre cambió.
func (uc *ResourceUseCase) Update(ctx context.Context, id string, in dto.UpdateResourceRequest) (*dto.ResourceResponse, error) {
	if errs := validateName(in.Name, 255); len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}
	resource, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if resource == nil {
		return nil, domain.ErrNotFound
	}
	if resource.Name != in.Name {
		exists, err := uc.repo.ExistsWithName(in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	resource.Name = in.Name
	resource.UpdatedAt = time.Now()
	if err := uc.repo.Update(resource); err != nil {
		return nil, err
	}
	return toResourceResponse(resource), nil
}

// Archive aplica la política de archivado: si el recurso aparece en alguna
// línea de ingreso, de despacho o en una fila de balance se archiva (borrado
// lógico); si no se usa en ningún lado se elimina definitivamente. El uso se
// evalúa dentro de la misma transacción que confirma la decisión, nunca se
// borra de forma especulativa.
func (uc *ResourceUseCase) Archive(ctx context.Context, id string) (*dto.ArchiveResponse, error) {
	var out *dto.ArchiveResponse
	err := uc.txRunner.Run(ctx, func(
		incomes repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		balances repository.BalanceRepository,
		resources repository.ResourceRepository,
		_ repository.UnitOfMeasureRepository,
		_ repository.ClientRepository,
	) error {
		resource, err := resources.GetByID(id)
		if err != nil {
			return err
		}
		if resource == nil {
			return domain.ErrNotFound
		}
		usedInIncome, err := incomes.IsResourceUsed(id)
		if err != nil {
			return err
		}
		usedInShipment, err := shipments.IsResourceUsed(id)
		if err != nil {
			return err
		}
		usedInBalance, err := balances.IsResourceUsed(id)
		if err != nil {
			return err
		}
		if usedInIncome || usedInShipment || usedInBalance {
			resource.State = entity.StateArchived
			resource.UpdatedAt = time.Now()
			if err := resources.Update(resource); err != nil {
				return err
			}
			out = &dto.ArchiveResponse{ID: id, Archived: true}
			return nil
		}
		if err := resources.Delete(id); err != nil {
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

func toResourceResponse(r *entity.Resource) *dto.ResourceResponse {
	if r == nil {
		return nil
	}
	return &dto.ResourceResponse{
		ID:        r.ID,
		Name:      r.Name,
		State:     string(r.State),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// validateName valida nombre no vacío y dentro del largo máximo, acumulando.
func validateName(name string, maxLen int) []string {
	var errs []string
	if strings.TrimSpace(name) == "" {
		errs = append(errs, "el nombre no puede estar vacío")
	}
	if len(name) > maxLen {
		errs = append(errs, fmt.Sprintf("el nombre no puede superar los %d caracteres", maxLen))
	}
	return errs
}
