package orders_test

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/domain/entity"
	"github.com/farmalink/suministro-api/internal/domain/repository"
)

// memStore estado compartido de los repositorios en memoria. El fakeTxRunner
// emula rollback restaurando una copia profunda si fn devuelve error.
type memStore struct {
	orders        map[string]*entity.Order
	orderLines    map[string][]entity.OrderLine
	shipments     map[string]*entity.Shipment // por orderID
	shipmentLines map[string][]entity.ShipmentLine
	positions     []entity.StockPosition
	prices        map[string]decimal.Decimal
	pharmacies    map[string]*entity.Pharmacy
	contracts     []entity.Contract
}

func newMemStore() *memStore {
	return &memStore{
		orders:        map[string]*entity.Order{},
		orderLines:    map[string][]entity.OrderLine{},
		shipments:     map[string]*entity.Shipment{},
		shipmentLines: map[string][]entity.ShipmentLine{},
		prices:        map[string]decimal.Decimal{},
		pharmacies:    map[string]*entity.Pharmacy{},
	}
}

func (s *memStore) clone() *memStore {
	c := newMemStore()
	for k, v := range s.orders {
		cp := *v
		c.orders[k] = &cp
	}
	for k, v := range s.orderLines {
		c.orderLines[k] = append([]entity.OrderLine(nil), v...)
	}
	for k, v := range s.shipments {
		cp := *v
		c.shipments[k] = &cp
	}
	for k, v := range s.shipmentLines {
		c.shipmentLines[k] = append([]entity.ShipmentLine(nil), v...)
	}
	c.positions = append([]entity.StockPosition(nil), s.positions...)
	for k, v := range s.prices {
		c.prices[k] = v
	}
	for k, v := range s.pharmacies {
		cp := *v
		c.pharmacies[k] = &cp
	}
	c.contracts = append([]entity.Contract(nil), s.contracts...)
	return c
}

func (s *memStore) restore(from *memStore) { *s = *from }

// totalFor cantidad total en el libro para un producto.
func (s *memStore) totalFor(productID string) int64 {
	var total int64
	for _, p := range s.positions {
		if p.ProductID == productID {
			total += p.Quantity
		}
	}
	return total
}

func (s *memStore) addPosition(productID string, unit int64, aisle, shelf int32, qty int64) {
	s.positions = append(s.positions, entity.StockPosition{
		ProductID: productID, StorageUnitID: unit, Aisle: aisle, Shelf: shelf, Quantity: qty,
	})
}

type memOrderRepo struct{ s *memStore }

func (r *memOrderRepo) Create(_ context.Context, order *entity.Order, lines []entity.OrderLine) error {
	cp := *order
	r.s.orders[order.ID] = &cp
	r.s.orderLines[order.ID] = append([]entity.OrderLine(nil), lines...)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.orders[id]
	if !ok {
		return nil, nil
	}
	cp := *o
	return &cp, nil
}

func (r *memOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *memOrderRepo) Lines(_ context.Context, orderID string) ([]entity.OrderLine, error) {
	return append([]entity.OrderLine(nil), r.s.orderLines[orderID]...), nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status entity.OrderStatus) error {
	o, ok := r.s.orders[id]
	if !ok {
		return fmt.Errorf("pedido %s no existe", id)
	}
	o.Status = status
	return nil
}

func (r *memOrderRepo) ListByPharmacy(_ context.Context, nit string, status *entity.OrderStatus) ([]repository.OrderSummary, error) {
	var out []repository.OrderSummary
	for _, o := range r.s.orders {
		if o.PharmacyNIT != nit {
			continue
		}
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, r.summary(o))
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(_ context.Context, status *entity.OrderStatus) ([]repository.OrderSummary, error) {
	var out []repository.OrderSummary
	for _, o := range r.s.orders {
		if status != nil && o.Status != *status {
			continue
		}
		out = append(out, r.summary(o))
	}
	return out, nil
}

func (r *memOrderRepo) summary(o *entity.Order) repository.OrderSummary {
	sum := repository.OrderSummary{Order: *o, PharmacyNIT: o.PharmacyNIT}
	if sh, ok := r.s.shipments[o.ID]; ok {
		st := sh.Status
		at := sh.ShippedAt
		sum.ShipmentStatus = &st
		sum.ShippedAt = &at
	}
	return sum
}

func (r *memOrderRepo) LineViews(_ context.Context, orderIDs []string) (map[string][]repository.OrderLineView, error) {
	out := map[string][]repository.OrderLineView{}
	for _, id := range orderIDs {
		for _, ln := range r.s.orderLines[id] {
			var shipped int64
			if sh, ok := r.s.shipments[id]; ok {
				for _, sl := range r.s.shipmentLines[sh.ID] {
					if sl.ProductID == ln.ProductID {
						shipped += sl.Shipped
					}
				}
			}
			out[id] = append(out[id], repository.OrderLineView{
				OrderID:   id,
				ProductID: ln.ProductID,
				Requested: ln.Requested,
				Shipped:   shipped,
				Available: r.s.totalFor(ln.ProductID),
				UnitPrice: r.s.prices[ln.ProductID],
			})
		}
	}
	return out, nil
}

type memShipmentRepo struct{ s *memStore }

func (r *memShipmentRepo) ExistsForOrder(_ context.Context, orderID string) (bool, error) {
	_, ok := r.s.shipments[orderID]
	return ok, nil
}

func (r *memShipmentRepo) GetByOrder(_ context.Context, orderID string) (*entity.Shipment, error) {
	sh, ok := r.s.shipments[orderID]
	if !ok {
		return nil, nil
	}
	cp := *sh
	return &cp, nil
}

func (r *memShipmentRepo) Create(_ context.Context, shipment *entity.Shipment, lines []entity.ShipmentLine) error {
	if _, ok := r.s.shipments[shipment.OrderID]; ok {
		return fmt.Errorf("envío duplicado para pedido %s", shipment.OrderID)
	}
	cp := *shipment
	r.s.shipments[shipment.OrderID] = &cp
	r.s.shipmentLines[shipment.ID] = append([]entity.ShipmentLine(nil), lines...)
	return nil
}

func (r *memShipmentRepo) Lines(_ context.Context, shipmentID string) ([]entity.ShipmentLine, error) {
	return append([]entity.ShipmentLine(nil), r.s.shipmentLines[shipmentID]...), nil
}

type memPositionRepo struct{ s *memStore }

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
		if p.ProductID == pos.ProductID && p.StorageUnitID == pos.StorageUnitID &&
			p.Aisle == pos.Aisle && p.Shelf == pos.Shelf {
			if amount > p.Quantity {
				return fmt.Errorf("decremento %d excede cantidad %d", amount, p.Quantity)
			}
			p.Quantity -= amount
			if p.Quantity == 0 {
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

type memProductRepo struct{ s *memStore }

func (r *memProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	price, ok := r.s.prices[id]
	if !ok {
		return nil, nil
	}
	return &entity.Product{ID: id, Name: "producto " + id, UnitPrice: price}, nil
}

func (r *memProductRepo) PricesByIDs(_ context.Context, ids []string) (map[string]decimal.Decimal, error) {
	out := map[string]decimal.Decimal{}
	for _, id := range ids {
		if price, ok := r.s.prices[id]; ok {
			out[id] = price
		}
	}
	return out, nil
}

func (r *memProductRepo) ListWithAvailability(_ context.Context) ([]entity.ProductAvailability, error) {
	var out []entity.ProductAvailability
	for id, price := range r.s.prices {
		out = append(out, entity.ProductAvailability{
			Product:   entity.Product{ID: id, UnitPrice: price},
			Available: r.s.totalFor(id),
		})
	}
	return out, nil
}

type memPharmacyRepo struct{ s *memStore }

func (r *memPharmacyRepo) GetByNIT(_ context.Context, nit string) (*entity.Pharmacy, error) {
	p, ok := r.s.pharmacies[nit]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

type memContractRepo struct{ s *memStore }

func (r *memContractRepo) Create(_ context.Context, c *entity.Contract) error {
	r.s.contracts = append(r.s.contracts, *c)
	return nil
}

func (r *memContractRepo) ListByPharmacy(_ context.Context, nit string) ([]entity.Contract, error) {
	var out []entity.Contract
	for _, c := range r.s.contracts {
		if c.PharmacyNIT == nit {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SignedAt.After(out[j].SignedAt) })
	return out, nil
}

func (r *memContractRepo) ActiveByPharmacy(_ context.Context, nit string, today time.Time) (*entity.Contract, error) {
	for _, c := range r.s.contracts {
		if c.PharmacyNIT == nit && c.ActiveAt(today) {
			cp := c
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memContractRepo) SetExpiry(_ context.Context, id string, expiresAt time.Time) error {
	for i := range r.s.contracts {
		if r.s.contracts[i].ID == id {
			r.s.contracts[i].ExpiresAt = expiresAt
			return nil
		}
	}
	return fmt.Errorf("contrato %s no existe", id)
}

// failingContractRepo simula un almacén de contratos caído.
type failingContractRepo struct{}

func (r *failingContractRepo) Create(_ context.Context, _ *entity.Contract) error {
	return fmt.Errorf("almacén de contratos no disponible")
}

func (r *failingContractRepo) ListByPharmacy(_ context.Context, _ string) ([]entity.Contract, error) {
	return nil, fmt.Errorf("almacén de contratos no disponible")
}

func (r *failingContractRepo) ActiveByPharmacy(_ context.Context, _ string, _ time.Time) (*entity.Contract, error) {
	return nil, fmt.Errorf("almacén de contratos no disponible")
}

func (r *failingContractRepo) SetExpiry(_ context.Context, _ string, _ time.Time) error {
	return fmt.Errorf("almacén de contratos no disponible")
}

// fakeTxRunner implementa orders.TxRunner sobre memStore, restaurando el
// estado previo si fn falla (emulación de rollback).
type fakeTxRunner struct{ s *memStore }

var _ orders.TxRunner = (*fakeTxRunner)(nil)

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.OrderRepository,
	repository.ShipmentRepository,
	repository.PositionRepository,
) error) error {
	snapshot := t.s.clone()
	err := fn(&memOrderRepo{t.s}, &memShipmentRepo{t.s}, &memPositionRepo{t.s})
	if err != nil {
		t.s.restore(snapshot)
		return err
	}
	return nil
}
