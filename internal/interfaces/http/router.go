package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/farmalink/suministro-api/internal/application/catalog"
	"github.com/farmalink/suministro-api/internal/application/contracts"
	"github.com/farmalink/suministro-api/internal/application/orders"
	"github.com/farmalink/suministro-api/internal/application/replenishment"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CreateOrder      *orders.CreateOrderUseCase
	OrderLifecycle   *orders.LifecycleUseCase
	OrderQueries     *orders.QueryUseCase
	PackingSlip      *orders.PackingSlipUseCase
	CreateBackorder  *replenishment.CreateBackorderUseCase
	ReceiveBackorder *replenishment.ReceiveBackorderUseCase
	ReplenishQueries *replenishment.QueryUseCase
	ContractUC       *contracts.UseCase
	CatalogUC        *catalog.UseCase
	JWTSecret        string
}

// Router registra las rutas de la API. Todas requieren Bearer Token del
// gateway de identidad; las de farmacia y bodega se separan por rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Catálogo (ambos roles)
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/products", catalogHandler.List)

	// Pedidos de la farmacia autenticada
	orderHandler := NewOrderHandler(deps.CreateOrder, deps.OrderLifecycle, deps.OrderQueries, deps.PackingSlip)
	pharmacyOrders := api.Group("/orders", RequireRole(RolePharmacy))
	pharmacyOrders.Post("/", orderHandler.Create)
	pharmacyOrders.Get("/", orderHandler.History)

	// Contratos de suministro (farmacia)
	contractHandler := NewContractHandler(deps.ContractUC)
	contractsGroup := api.Group("/contracts", RequireRole(RolePharmacy))
	contractsGroup.Post("/", contractHandler.Sign)
	contractsGroup.Get("/", contractHandler.List)
	contractsGroup.Get("/current", contractHandler.Current)
	contractsGroup.Delete("/current", contractHandler.Cancel)

	// Pantalla de bodega
	warehouse := api.Group("/warehouse", RequireRole(RoleWarehouse))
	warehouse.Get("/orders", orderHandler.ListAll)
	warehouse.Put("/orders/:id/status", orderHandler.SetStatus)
	warehouse.Get("/orders/:id/shipment", orderHandler.GetShipment)
	warehouse.Get("/orders/:id/packing-slip", orderHandler.PackingSlip)

	// Reabastecimiento (bodega)
	replenishHandler := NewReplenishmentHandler(deps.CreateBackorder, deps.ReceiveBackorder, deps.ReplenishQueries)
	warehouse.Post("/supplier-orders", replenishHandler.Create)
	warehouse.Get("/supplier-orders", replenishHandler.List)
	warehouse.Post("/supplier-orders/:id/receive", replenishHandler.Receive)
	warehouse.Get("/storage-units/:id/last-restock", replenishHandler.LastRestock)
}
