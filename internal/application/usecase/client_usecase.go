package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ClientUseCase registro de clientes con política de archivado.
// Un cliente se usa cuando algún documento de despacho lo referencia.
type ClientUseCase struct {
	repo     repository.ClientRepository
	txRunner document.TxRunner
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, txRunner document.TxRunner) *ClientUseCase {
	return &ClientUseCase{repo: repo, txRunner: txRunner}
}

// List lista todos los clientes.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := uc.repo.GetAll()
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		items = append(items, *toClientResponse(c))
	}
	return items, nil
}

// Create crea un cliente activo con nombre único.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if errs := validateClientFields(in.Name, in.Address); len(errs) > 0 {
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
	client := &entity.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Address:   in.Address,
		State:     entity.StateActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Update actualiza nombre y dirección, verificando unicidad si el nombre cambió.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if errs := validateClientFields(in.Name, in.Address); len(errs) > 0 {
		return nil, domain.ValidationErrors(errs)
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, domain.ErrNotFound
	}
	if client.Name != in.Name {
		exists, err := uc.repo.ExistsWithName(in.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, domain.ErrDuplicate
		}
	}
	client.Name = in.Name
	client.Address = in.Address
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Archive archiva al cliente si algún documento de despacho lo referencia;
// lo elimina definitivamente si nunca fue usado.
func (uc *ClientUseCase) Archive(ctx context.Context, id string) (*dto.ArchiveResponse, error) {
	var out *dto.ArchiveResponse
	err := uc.txRunner.Run(ctx, func(
		_ repository.IncomeDocumentRepository,
		shipments repository.ShipmentDocumentRepository,
		_ repository.BalanceRepository,
		_ repository.ResourceRepository,
		_ repository.UnitOfMeasureRepository,
		clients repository.ClientRepository,
	) error {
		client, err := clients.GetByID(id)
		if err != nil {
			return err
		}
		if client == nil {
			return domain.ErrNotFound
		}
		used, err := shipments.IsClientUsed(id)
		if err != nil {
			return err
		}
		if used {
			client.State = entity.StateArchived
			client.UpdatedAt = time.Now()
			if err := clients.Update(client); err != nil {
				return err
			}
			out = &dto.ArchiveResponse{ID: id, Archived: true}
			return nil
		}
		if err := clients.Delete(id); err != nil {
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

func validateClientFields(name, address string) []string {
	errs := validateName(name, 255)
	if strings.TrimSpace(address) == "" {
		errs = append(errs, "la dirección no puede estar vacía")
	}
	if len(address) > 500 {
		errs = append(errs, "la dirección no puede superar los 500 caracteres")
	}
	return errs
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	if c == nil {
		return nil
	}
	return &dto.ClientResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		State:     string(c.State),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
