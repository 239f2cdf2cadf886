package usecase

import (
	"context"

	"github.com/tu-usuario/almacen-api/internal/application/dto"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// BalanceUseCase consulta de balances de bodega. Solo lectura: las filas de
// balance se mutan exclusivamente desde los comandos de documentos.
type BalanceUseCase struct {
	repo repository.BalanceRepository
}

// NewBalanceUseCase construye el caso de uso.
func NewBalanceUseCase(repo repository.BalanceRepository) *BalanceUseCase {
	return &BalanceUseCase{repo: repo}
}

// List lista los balances, opcionalmente filtrados por recursos y unidades.
func (uc *BalanceUseCase) List(ctx context.Context, resourceIDs, unitIDs []string) ([]dto.BalanceResponse, error) {
	balances, err := uc.repo.List(repository.BalanceFilter{
		ResourceIDs:      resourceIDs,
		UnitOfMeasureIDs: unitIDs,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.BalanceResponse, 0, len(balances))
	for _, b := range balances {
		items = append(items, dto.BalanceResponse{
			ID:              b.ID,
			ResourceID:      b.ResourceID,
			UnitOfMeasureID: b.UnitOfMeasureID,
			Quantity:        b.Quantity,
			UpdatedAt:       b.UpdatedAt,
		})
	}
	return items, nil
}
