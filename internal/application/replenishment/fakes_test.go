package replenishment_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/application/replenishment"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// repoStore estado compartido de los repositorios en memoria para las pruebas
// de reposición. El fakeTxRunner restaura una copia profunda si fn falla.
type repoStore struct {
	backorders     map[string]*entity.Backorder
	backorderLines map[string][]entity.BackorderLine
	suppliers      map[string]*entity.Supplier
	positions      []entity.StockPosition
	units          map[int64]*entity.StorageUnit
	slots          []entity.StorageSlot
	products       map[string]*entity.Product
	nextUnitID     int64
}

func newRepoStore() *repoStore {
	return &repoStore{
		backorders:     map[string]*entity.Backorder{},
		backorderLines: map[string][]entity.BackorderLine{},
		suppliers:      map[string]*entity.Supplier{},
		units:          map[int64]*entity.StorageUnit{},
		products:       map[string]*entity.Product{},
		nextUnitID:     1,
	}
}

func (s *repoStore) clone() *repoStore {
	c := newRepoStore()
	for k, v := range s.backorders {
		cp := *v
		c.backorders[k] = &cp
	}
	for k, v := range s.backorderLines {
		c.backorderLines[k] = append([]entity.BackorderLine(nil), v...)
	}
	for k, v := range s.suppliers {
		cp := *v
		c.suppliers[k] = &cp
	}
	c.positions = append([]entity.StockPosition(nil), s.positions...)
	for k, v := range s.units {
		cp := *v
		c.units[k] = &cp
	}
	c.slots = append([]entity.StorageSlot(nil), s.slots...)
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	c.nextUnitID = s.nextUnitID
	return c
}

func (s *repoStore) restore(from *repoStore) { *s = *from }

func (s *repoStore) totalFor(productID string) int64 {
	var total int64
	for _, p := range s.positions {
		if p.ProductID == productID {
			total += p.Quantity
		}
	}
	return total
}

// addUnit registra una bodega con sus ubicaciones fisicas.
func (s *repoStore) addUnit(location string, slots ...[2]int32) int64 {
	id := s.nextUnitID
	s.nextUnitID++
	s.units[id] = &entity.StorageUnit{ID: id, Location: location}
	for _, sl := range slots {
		s.slots = append(s.slots, entity.StorageSlot{StorageUnitID: id, Aisle: sl[0], Shelf: sl[1]})
	}
	return id
}

func (s *repoStore) addPosition(productID string, unit int64, aisle, shelf int32, qty int64) {
	s.positions = append(s.positions, entity.StockPosition{
		ProductID: productID, StorageUnitID: unit, Aisle: aisle, Shelf: shelf, Quantity: qty,
	})
}

func (s *repoStore) slotOccupied(slot entity.StorageSlot) bool {
	for _, p := range s.positions {
		if p.Slot() == slot {
			return true
		}
	}
	return false
}

type memBackorderRepo struct{ s *repoStore }

func (r *memBackorderRepo) Create(_ context.Context, b *entity.Backorder) error {
	cp := *b
	r.s.backorders[b.ID] = &cp
	return nil
}

func (r *memBackorderRepo) CreateLine(_ context.Context, line *entity.BackorderLine) error {
	r.s.backorderLines[line.BackorderID] = append(r.s.backorderLines[line.BackorderID], *line)
	return nil
}

func (r *memBackorderRepo) GetByID(_ context.Context, id string) (*entity.Backorder, error) {
	b, ok := r.s.backorders[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (r *memBackorderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Backorder, error) {
	return r.GetByID(ctx, id)
}

func (r *memBackorderRepo) Lines(_ context.Context, backorderID string) ([]entity.BackorderLine, error) {
	return append([]entity.BackorderLine(nil), r.s.backorderLines[backorderID]...), nil
}

func (r *memBackorderRepo) ListByStorageUnit(_ context.Context, storageUnitID int64) ([]entity.Backorder, error) {
	var out []entity.Backorder
	for _, b := range r.s.backorders {
		if b.StorageUnitID == storageUnitID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MovedAt.After(out[j].MovedAt) })
	return out, nil
}

func (r *memBackorderRepo) MarkCompleted(_ context.Context, id string, movedAt time.Time) error {
	b, ok := r.s.backorders[id]
	if !ok {
		return fmt.Errorf("backorder %s no existe", id)
	}
	b.Completed = true
	b.MovedAt = movedAt
	return nil
}

type memSupplierRepo struct{ s *repoStore }

func (r *memSupplierRepo) Create(_ context.Context, sup *entity.Supplier) error {
	cp := *sup
	r.s.suppliers[sup.ID] = &cp
	return nil
}

type memPositionRepo struct{ s *repoStore }

func (r *memPositionRepo) ListForProductForUpdate(_ context.Context, productID string) ([]entity.StockPosition, error) {
	var out []entity.StockPosition
	for _, p := range r.s.positions {
		if p.ProductID == productID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.StorageUnitID != b.StorageUnitID {
			return a.StorageUnitID < b.StorageUnitID
		}
		if a.Aisle != b.Aisle {
			return a.Aisle < b.Aisle
		}
		return a.Shelf < b.Shelf
	})
	return out, nil
}

func (r *memPositionRepo) BestForProductForUpdate(_ context.Context, productID string) (*entity.StockPosition, error) {
	var best *entity.StockPosition
	for i := range r.s.positions {
		p := r.s.positions[i]
		if p.ProductID != productID {
			continue
		}
		if best == nil || p.Quantity > best.Quantity {
			cp := p
			best = &cp
		}
	}
	return best, nil
}

func (r *memPositionRepo) Decrement(_ context.Context, pos entity.StockPosition, amount int64) error {
	for i := range r.s.positions {
		p := &r.s.positions[i]
		if p.ProductID == pos.ProductID && p.Slot() == pos.Slot() {
			p.Quantity -= amount
			if p.Quantity <= 0 {
				r.s.positions = append(r.s.positions[:i], r.s.positions[i+1:]...)
			}
			return nil
		}
	}
	return fmt.Errorf("posición no encontrada")
}

func (r *memPositionRepo) Increment(_ context.Context, productID string, slot entity.StorageSlot, amount int64) error {
	for i := range r.s.positions {
		p := &r.s.positions[i]
		if p.ProductID == productID && p.Slot() == slot {
			p.Quantity += amount
			return nil
		}
	}
	r.s.positions = append(r.s.positions, entity.StockPosition{
		ProductID: productID, StorageUnitID: slot.StorageUnitID,
		Aisle: slot.Aisle, Shelf: slot.Shelf, Quantity: amount,
	})
	return nil
}

func (r *memPositionRepo) AvailableByProducts(_ context.Context, ids []string) (map[string]int64, error) {
	out := map[string]int64{}
	for _, id := range ids {
		if total := r.s.totalFor(id); total > 0 {
			out[id] = total
		}
	}
	return out, nil
}

type memStorageRepo struct{ s *repoStore }

func (r *memStorageRepo) FreeSlot(_ context.Context) (*entity.StorageSlot, error) {
	for _, sl := range r.s.slots {
		if u, ok := r.s.units[sl.StorageUnitID]; ok && u.Location == entity.SupplierStorageLabel {
			continue
		}
		if !r.s.slotOccupied(sl) {
			cp := sl
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memStorageRepo) MintSlot(_ context.Context) (entity.StorageSlot, error) {
	id := r.s.nextUnitID
	r.s.nextUnitID++
	r.s.units[id] = &entity.StorageUnit{ID: id, Location: fmt.Sprintf("bodega-%d", id)}
	slot := entity.StorageSlot{StorageUnitID: id, Aisle: 1, Shelf: 1}
	r.s.slots = append(r.s.slots, slot)
	return slot, nil
}

func (r *memStorageRepo) SupplierUnitID(_ context.Context) (int64, error) {
	for id, u := range r.s.units {
		if u.Location == entity.SupplierStorageLabel {
			return id, nil
		}
	}
	return 0, nil
}

func (r *memStorageRepo) EnsureSupplierUnit(ctx context.Context) (int64, error) {
	if id, _ := r.SupplierUnitID(ctx); id != 0 {
		return id, nil
	}
	return r.s.addUnit(entity.SupplierStorageLabel), nil
}

type memProductRepo struct{ s *repoStore }

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) PricesByIDs(_ context.Context, ids []string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out[id] = p.UnitPrice
		}
	}
	return out, nil
}

func (r *memProductRepo) ListWithAvailability(_ context.Context) ([]entity.ProductAvailability, error) {
	var out []entity.ProductAvailability
	for _, p := range r.s.products {
		out = append(out, entity.ProductAvailability{Product: *p, Available: r.s.totalFor(p.ID)})
	}
	return out, nil
}

// fakeTxRunner implementa replenishment.TxRunner sobre repoStore.
type fakeTxRunner struct{ s *repoStore }

var _ replenishment.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.BackorderRepository,
	repository.PositionRepository,
	repository.StorageRepository,
	repository.SupplierRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(&memBackorderRepo{t.s}, &memPositionRepo{t.s}, &memStorageRepo{t.s}, &memSupplierRepo{t.s})
	if err != nil {
		t.s.restore(snapshot)
		return err
	}
	return nil
}
