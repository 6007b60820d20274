package http

import (
	"github.com/gofiber/fiber/v2"
	appsync "github.com/jhoicas/petstore-sync/internal/application/sync"
	"github.com/jhoicas/petstore-sync/internal/application/usecase"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
	"github.com/jhoicas/petstore-sync/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Coordinator *appsync.Coordinator
	Cache       repository.CacheStore
	SalesUC     *usecase.SalesUseCase
	Log         *logger.Logger
	JWTSecret   string
}

// Router registra las rutas del servicio.
func Router(app *fiber.App, deps RouterDeps) {
	// Rutas protegidas: solo el dashboard (admin o empleado) puede disparar
	// sincronizaciones o consultar el caché.
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret), RequireRole("admin", "empleado"))

	syncHandler := NewSyncHandler(deps.Coordinator, deps.Cache, deps.Log)
	sincronizacion := api.Group("/sincronizacion")
	sincronizacion.Post("/usuarios", syncHandler.SyncUser)
	sincronizacion.Post("/clientes", syncHandler.SyncCustomer)
	sincronizacion.Get("/estado/:entidad/:id", syncHandler.CachedStatus)

	salesHandler := NewSalesHandler(deps.SalesUC)
	ventas := api.Group("/ventas")
	ventas.Post("/totales", salesHandler.Totals)
}
