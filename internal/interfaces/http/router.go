package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/almacen-api/internal/application/auth"
	"github.com/tu-usuario/almacen-api/internal/application/document"
	"github.com/tu-usuario/almacen-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ResourceUC *usecase.ResourceUseCase
	UnitUC     *usecase.UnitOfMeasureUseCase
	ClientUC   *usecase.ClientUseCase
	BalanceUC  *usecase.BalanceUseCase
	IncomeUC   *document.IncomeUseCase
	ShipmentUC *document.ShipmentUseCase
	AuthUC     *auth.AuthUseCase
	JWTSecret  string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Recursos (protegido)
	resources := protected.Group("/resources")
	resourceHandler := NewResourceHandler(deps.ResourceUC)
	resources.Get("/", resourceHandler.List)
	resources.Post("/", resourceHandler.Create)
	resources.Put("/:id", resourceHandler.Update)
	resources.Delete("/:id", resourceHandler.Archive)

	// Unidades de medida (protegido)
	units := protected.Group("/units")
	unitHandler := NewUnitOfMeasureHandler(deps.UnitUC)
	units.Get("/", unitHandler.List)
	units.Post("/", unitHandler.Create)
	units.Put("/:id", unitHandler.Update)
	units.Delete("/:id", unitHandler.Archive)

	// Clientes (protegido)
	clients := protected.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Get("/", clientHandler.List)
	clients.Post("/", clientHandler.Create)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Archive)

	// Balance de bodega (protegido, solo lectura)
	balances := protected.Group("/balances")
	balanceHandler := NewBalanceHandler(deps.BalanceUC)
	balances.Get("/", balanceHandler.List)

	// Documentos de ingreso (protegido)
	incomes := protected.Group("/incomes")
	incomeHandler := NewIncomeHandler(deps.IncomeUC)
	incomes.Get("/", incomeHandler.List)
	incomes.Post("/", incomeHandler.Create)
	incomes.Get("/:id", incomeHandler.GetByID)
	incomes.Put("/:id", incomeHandler.Update)
	incomes.Delete("/:id", incomeHandler.Delete)

	// Documentos de despacho (protegido)
	shipments := protected.Group("/shipments")
	shipmentHandler := NewShipmentHandler(deps.ShipmentUC)
	shipments.Get("/", shipmentHandler.List)
	shipments.Post("/", shipmentHandler.Create)
	shipments.Get("/:id", shipmentHandler.GetByID)
	shipments.Put("/:id", shipmentHandler.Update)
	shipments.Post("/:id/sign", shipmentHandler.Sign)
	shipments.Post("/:id/revoke", shipmentHandler.Revoke)
}
