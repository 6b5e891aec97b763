package orders_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/domain"
	"github.com/farmalink/suministro-api/internal/domain/entity"
)

func newShipFixture() (*memStore, *orders.ShipOrderUseCase) {
	s := newMemStore()
	uc := orders.NewShipOrderUseCase(&fakeTxRunner{s}, &memProductRepo{s})
	return s, uc
}

func seedOrder(s *memStore, id string, discount int32, lines ...entity.OrderLine) {
	s.orders[id] = &entity.Order{
		ID:              id,
		PharmacyNIT:     "900123456",
		Status:          entity.OrderStatusPending,
		DiscountPercent: discount,
		CreatedAt:       time.Now(),
	}
	for i := range lines {
		lines[i].OrderID = id
	}
	s.orderLines[id] = lines
}

func TestShip_EnvioCompleto(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(10)
	s.addPosition("p1", 1, 1, 1, 4)
	s.addPosition("p1", 2, 1, 1, 10)
	seedOrder(s, "o1", 0, entity.OrderLine{ProductID: "p1", Requested: 8})

	res, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusComplete, res.Status)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(8), res.Lines[0].Shipped)
	assert.True(t, decimal.NewFromInt(80).Equal(res.FinalCost))
	assert.Equal(t, entity.OrderStatusShipped, s.orders["o1"].Status)

	// orden fijo de drenaje: la posición de índice más bajo se vació primero
	// (4 completos) y la segunda quedó en 6
	require.Len(t, s.positions, 1)
	assert.Equal(t, int64(2), s.positions[0].StorageUnitID)
	assert.Equal(t, int64(6), s.positions[0].Quantity)
}

func TestShip_EnvioParcial(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(5)
	s.addPosition("p1", 1, 1, 1, 4)
	s.addPosition("p1", 1, 2, 1, 2)
	seedOrder(s, "o1", 0, entity.OrderLine{ProductID: "p1", Requested: 10})

	res, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusPartial, res.Status)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, int64(6), res.Lines[0].Shipped)

	// ambas posiciones llegaron a 0 y se eliminaron (sin filas muertas)
	assert.Empty(t, s.positions)
	// el pedido avanza a SHIPPED aunque el envío sea parcial
	assert.Equal(t, entity.OrderStatusShipped, s.orders["o1"].Status)
}

func TestShip_SinFilasEnCeroTrasDrenajeExacto(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(1)
	s.addPosition("p1", 3, 2, 5, 4)
	seedOrder(s, "o1", 0, entity.OrderLine{ProductID: "p1", Requested: 4})

	_, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	assert.Empty(t, s.positions, "una posición drenada a 0 no debe persistir")
}

func TestShip_DescuentoAplicado(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(100)
	s.addPosition("p1", 1, 1, 1, 3)
	seedOrder(s, "o1", 15, entity.OrderLine{ProductID: "p1", Requested: 3})

	res, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	// 300 * (1 - 0.15) = 255
	assert.True(t, decimal.NewFromInt(255).Equal(res.FinalCost), "esperaba 255, obtuve %s", res.FinalCost)
}

func TestShip_ExactamenteUnaVez(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(10)
	s.addPosition("p1", 1, 1, 1, 20)
	seedOrder(s, "o1", 0, entity.OrderLine{ProductID: "p1", Requested: 5})

	_, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	totalAfterFirst := s.totalFor("p1")

	_, err = uc.Ship(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrShipmentExists)
	// el segundo intento no tocó el libro ni el pedido
	assert.Equal(t, totalAfterFirst, s.totalFor("p1"))
	assert.Equal(t, entity.OrderStatusShipped, s.orders["o1"].Status)
	assert.Len(t, s.shipments, 1)
}

func TestShip_SinStockDisponible(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(10)
	seedOrder(s, "o1", 0, entity.OrderLine{ProductID: "p1", Requested: 5})

	_, err := uc.Ship(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	// sin mutación alguna: ni envío ni cambio de estado
	assert.Empty(t, s.shipments)
	assert.Equal(t, entity.OrderStatusPending, s.orders["o1"].Status)
}

func TestShip_StockParcialEnUnaLineaDeVarias(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(10)
	s.prices["p2"] = decimal.NewFromInt(3)
	s.addPosition("p1", 1, 1, 1, 5)
	// p2 sin stock
	seedOrder(s, "o1", 0,
		entity.OrderLine{ProductID: "p1", Requested: 5},
		entity.OrderLine{ProductID: "p2", Requested: 4},
	)

	res, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	// una línea completa y una vacía dan envío parcial con solo la línea servida
	assert.Equal(t, entity.ShipmentStatusPartial, res.Status)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "p1", res.Lines[0].ProductID)
	assert.True(t, decimal.NewFromInt(50).Equal(res.FinalCost))
}

func TestShip_ConservacionDelLibro(t *testing.T) {
	s, uc := newShipFixture()
	s.prices["p1"] = decimal.NewFromInt(2)
	s.addPosition("p1", 1, 1, 1, 7)
	s.addPosition("p1", 2, 3, 1, 9)
	initial := s.totalFor("p1")
	seedOrder(s, "o1", 0, entity.OrderLine{ProductID: "p1", Requested: 11})

	res, err := uc.Ship(context.Background(), "o1")
	require.NoError(t, err)
	var shipped int64
	for _, ln := range res.Lines {
		shipped += ln.Shipped
	}
	// el libro baja exactamente en lo enviado: nada se crea ni se destruye
	assert.Equal(t, initial-shipped, s.totalFor("p1"))
	assert.LessOrEqual(t, shipped, int64(11))
}

func TestShip_PedidoInexistente(t *testing.T) {
	_, uc := newShipFixture()
	_, err := uc.Ship(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func TestShip_PedidoSinLineas(t *testing.T) {
	s, uc := newShipFixture()
	seedOrder(s, "o1", 0)
	_, err := uc.Ship(context.Background(), "o1")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
