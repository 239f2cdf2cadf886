package document_test

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/domain/entity"
	"github.com/tu-usuario/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Almacén en memoria para los tests de casos de uso de documentos.
//
// memTxRunner simula la semántica transaccional real: el callback trabaja
// sobre una copia del store y solo si retorna nil la copia reemplaza al store
// vivo. Así los tests de atomicidad (firma con stock insuficiente, reverso
// parcial) verifican que un comando fallido no deja mutación visible.
// ──────────────────────────────────────────────────────────────────────────────

type balanceKey [2]string

type memStore struct {
	resources map[string]*entity.Resource
	units     map[string]*entity.UnitOfMeasure
	clients   map[string]*entity.Client
	balances  map[balanceKey]decimal.Decimal
	incomes   map[string]*entity.IncomeDocument
	shipments map[string]*entity.ShipmentDocument
}

func newMemStore() *memStore {
	return &memStore{
		resources: make(map[string]*entity.Resource),
		units:     make(map[string]*entity.UnitOfMeasure),
		clients:   make(map[string]*entity.Client),
		balances:  make(map[balanceKey]decimal.Decimal),
		incomes:   make(map[string]*entity.IncomeDocument),
		shipments: make(map[string]*entity.ShipmentDocument),
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.resources {
		cp := *v
		c.resources[k] = &cp
	}
	for k, v := range s.units {
		cp := *v
		c.units[k] = &cp
	}
	for k, v := range s.clients {
		cp := *v
		c.clients[k] = &cp
	}
	for k, v := range s.balances {
		c.balances[k] = v
	}
	for k, v := range s.incomes {
		cp := *v
		cp.Lines = append([]entity.IncomeLine(nil), v.Lines...)
		c.incomes[k] = &cp
	}
	for k, v := range s.shipments {
		cp := *v
		cp.Lines = append([]entity.ShipmentLine(nil), v.Lines...)
		c.shipments[k] = &cp
	}
	return c
}

func (s *memStore) repos() (
	repository.IncomeDocumentRepository,
	repository.ShipmentDocumentRepository,
	repository.BalanceRepository,
	repository.ResourceRepository,
	repository.UnitOfMeasureRepository,
	repository.ClientRepository,
) {
	return &memIncomeRepo{s}, &memShipmentRepo{s}, &memBalanceRepo{s},
		&memResourceRepo{s}, &memUnitRepo{s}, &memClientRepo{s}
}

type memTxRunner struct {
	s *memStore
}

var _ document.TxRunner = (*memTxRunner)(nil)

func (r *memTxRunner) Run(_ context.Context, fn func(
	incomes repository.IncomeDocumentRepository,
	shipments repository.ShipmentDocumentRepository,
	balances repository.BalanceRepository,
	resources repository.ResourceRepository,
	units repository.UnitOfMeasureRepository,
	clients repository.ClientRepository,
) error) error {
	clone := r.s.clone()
	if err := fn(clone.repos()); err != nil {
		return err
	}
	*r.s = *clone
	return nil
}

// ── Repos en memoria ──────────────────────────────────────────────────────────

type memBalanceRepo struct{ s *memStore }

func (r *memBalanceRepo) Get(resourceID, unitID string) (*entity.Balance, error) {
	return &entity.Balance{
		ResourceID:      resourceID,
		UnitOfMeasureID: unitID,
		Quantity:        r.s.balances[balanceKey{resourceID, unitID}],
	}, nil
}

func (r *memBalanceRepo) GetForUpdate(resourceID, unitID string) (*entity.Balance, error) {
	return r.Get(resourceID, unitID)
}

func (r *memBalanceRepo) AddDelta(resourceID, unitID string, delta decimal.Decimal) error {
	key := balanceKey{resourceID, unitID}
	r.s.balances[key] = r.s.balances[key].Add(delta)
	return nil
}

func (r *memBalanceRepo) List(filter repository.BalanceFilter) ([]*entity.Balance, error) {
	var out []*entity.Balance
	for key, qty := range r.s.balances {
		if len(filter.ResourceIDs) > 0 && !contains(filter.ResourceIDs, key[0]) {
			continue
		}
		if len(filter.UnitOfMeasureIDs) > 0 && !contains(filter.UnitOfMeasureIDs, key[1]) {
			continue
		}
		out = append(out, &entity.Balance{ResourceID: key[0], UnitOfMeasureID: key[1], Quantity: qty})
	}
	return out, nil
}

func (r *memBalanceRepo) IsResourceUsed(resourceID string) (bool, error) {
	for key := range r.s.balances {
		if key[0] == resourceID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memBalanceRepo) IsUnitOfMeasureUsed(unitID string) (bool, error) {
	for key := range r.s.balances {
		if key[1] == unitID {
			return true, nil
		}
	}
	return false, nil
}

type memIncomeRepo struct{ s *memStore }

func (r *memIncomeRepo) GetByID(id string) (*entity.IncomeDocument, error) {
	return r.s.incomes[id], nil
}

func (r *memIncomeRepo) List(filter repository.DocumentFilter) ([]*entity.IncomeDocument, error) {
	var out []*entity.IncomeDocument
	for _, doc := range r.s.incomes {
		if len(filter.DocumentNumbers) > 0 && !contains(filter.DocumentNumbers, doc.Number) {
			continue
		}
		if filter.FromDate != nil && doc.Date.Before(*filter.FromDate) {
			continue
		}
		if filter.ToDate != nil && doc.Date.After(*filter.ToDate) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *memIncomeRepo) ExistsWithNumber(number string) (bool, error) {
	for _, doc := range r.s.incomes {
		if doc.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memIncomeRepo) Create(doc *entity.IncomeDocument) error {
	cp := *doc
	cp.Lines = append([]entity.IncomeLine(nil), doc.Lines...)
	r.s.incomes[doc.ID] = &cp
	return nil
}

func (r *memIncomeRepo) Update(doc *entity.IncomeDocument) error {
	return r.Create(doc)
}

func (r *memIncomeRepo) Delete(id string) error {
	delete(r.s.incomes, id)
	return nil
}

func (r *memIncomeRepo) IsResourceUsed(resourceID string) (bool, error) {
	for _, doc := range r.s.incomes {
		for _, line := range doc.Lines {
			if line.ResourceID == resourceID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memIncomeRepo) IsUnitOfMeasureUsed(unitID string) (bool, error) {
	for _, doc := range r.s.incomes {
		for _, line := range doc.Lines {
			if line.UnitOfMeasureID == unitID {
				return true, nil
			}
		}
	}
	return false, nil
}

type memShipmentRepo struct{ s *memStore }

func (r *memShipmentRepo) GetByID(id string) (*entity.ShipmentDocument, error) {
	return r.s.shipments[id], nil
}

func (r *memShipmentRepo) List(filter repository.DocumentFilter) ([]*entity.ShipmentDocument, error) {
	var out []*entity.ShipmentDocument
	for _, doc := range r.s.shipments {
		if len(filter.DocumentNumbers) > 0 && !contains(filter.DocumentNumbers, doc.Number) {
			continue
		}
		out = append(out, doc)
	}
	return out, nil
}

func (r *memShipmentRepo) ExistsWithNumber(number string) (bool, error) {
	for _, doc := range r.s.shipments {
		if doc.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *memShipmentRepo) Create(doc *entity.ShipmentDocument) error {
	cp := *doc
	cp.Lines = append([]entity.ShipmentLine(nil), doc.Lines...)
	r.s.shipments[doc.ID] = &cp
	return nil
}

func (r *memShipmentRepo) Update(doc *entity.ShipmentDocument) error {
	return r.Create(doc)
}

func (r *memShipmentRepo) IsResourceUsed(resourceID string) (bool, error) {
	for _, doc := range r.s.shipments {
		for _, line := range doc.Lines {
			if line.ResourceID == resourceID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memShipmentRepo) IsUnitOfMeasureUsed(unitID string) (bool, error) {
	for _, doc := range r.s.shipments {
		for _, line := range doc.Lines {
			if line.UnitOfMeasureID == unitID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (r *memShipmentRepo) IsClientUsed(clientID string) (bool, error) {
	for _, doc := range r.s.shipments {
		if doc.ClientID == clientID {
			return true, nil
		}
	}
	return false, nil
}

type memResourceRepo struct{ s *memStore }

func (r *memResourceRepo) GetByID(id string) (*entity.Resource, error) { return r.s.resources[id], nil }
func (r *memResourceRepo) GetAll() ([]*entity.Resource, error) {
	var out []*entity.Resource
	for _, v := range r.s.resources {
		out = append(out, v)
	}
	return out, nil
}
func (r *memResourceRepo) ExistsWithName(name string) (bool, error) {
	for _, v := range r.s.resources {
		if strings.EqualFold(v.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
func (r *memResourceRepo) Create(res *entity.Resource) error { r.s.resources[res.ID] = res; return nil }
func (r *memResourceRepo) Update(res *entity.Resource) error { r.s.resources[res.ID] = res; return nil }
func (r *memResourceRepo) Delete(id string) error { delete(r.s.resources, id); return nil }

type memUnitRepo struct{ s *memStore }

func (r *memUnitRepo) GetByID(id string) (*entity.UnitOfMeasure, error) { return r.s.units[id], nil }
func (r *memUnitRepo) GetAll() ([]*entity.UnitOfMeasure, error) {
	var out []*entity.UnitOfMeasure
	for _, v := range r.s.units {
		out = append(out, v)
	}
	return out, nil
}
func (r *memUnitRepo) ExistsWithName(name string) (bool, error) {
	for _, v := range r.s.units {
		if strings.EqualFold(v.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
func (r *memUnitRepo) Create(u *entity.UnitOfMeasure) error { r.s.units[u.ID] = u; return nil }
func (r *memUnitRepo) Update(u *entity.UnitOfMeasure) error { r.s.units[u.ID] = u; return nil }
func (r *memUnitRepo) Delete(id string) error { delete(r.s.units, id); return nil }

type memClientRepo struct{ s *memStore }

func (r *memClientRepo) GetByID(id string) (*entity.Client, error) { return r.s.clients[id], nil }
func (r *memClientRepo) GetAll() ([]*entity.Client, error) {
	var out []*entity.Client
	for _, v := range r.s.clients {
		out = append(out, v)
	}
	return out, nil
}
func (r *memClientRepo) ExistsWithName(name string) (bool, error) {
	for _, v := range r.s.clients {
		if strings.EqualFold(v.Name, name) {
			return true, nil
		}
	}
	return false, nil
}
func (r *memClientRepo) Create(c *entity.Client) error { r.s.clients[c.ID] = c; return nil }
func (r *memClientRepo) Update(c *entity.Client) error { r.s.clients[c.ID] = c; return nil }
func (r *memClientRepo) Delete(id string) error { delete(r.s.clients, id); return nil }

// ── Helpers de seed ───────────────────────────────────────────────────────────

func seedResource(s *memStore, id, name string) {
	s.resources[id] = &entity.Resource{ID: id, Name: name, State: entity.StateActive}
}

func seedArchivedResource(s *memStore, id, name string) {
	s.resources[id] = &entity.Resource{ID: id, Name: name, State: entity.StateArchived}
}

func seedUnit(s *memStore, id, name string) {
	s.units[id] = &entity.UnitOfMeasure{ID: id, Name: name, State: entity.StateActive}
}

func seedClient(s *memStore, id, name string) {
	s.clients[id] = &entity.Client{ID: id, Name: name, Address: "Calle 1 #2-3", State: entity.StateActive}
}

func seedArchivedClient(s *memStore, id, name string) {
	s.clients[id] = &entity.Client{ID: id, Name: name, Address: "Calle 1 #2-3", State: entity.StateArchived}
}

func balanceOf(s *memStore, resourceID, unitID string) decimal.Decimal {
	return s.balances[balanceKey{resourceID, unitID}]
}

func yesterday() time.Time {
	return time.Now().Add(-24 * time.Hour)
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
