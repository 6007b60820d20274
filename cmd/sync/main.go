package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	appsync "github.com/jhoicas/petstore-sync/internal/application/sync"
	"github.com/jhoicas/petstore-sync/internal/application/usecase"
	"github.com/jhoicas/petstore-sync/internal/domain/repository"
	"github.com/jhoicas/petstore-sync/internal/infrastructure/cache"
	"github.com/jhoicas/petstore-sync/internal/infrastructure/postgres"
	"github.com/jhoicas/petstore-sync/internal/infrastructure/rest"
	httpRouter "github.com/jhoicas/petstore-sync/internal/interfaces/http"
	"github.com/jhoicas/petstore-sync/pkg/config"
	"github.com/jhoicas/petstore-sync/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando sincronizador")

	ctx := context.Background()

	// Caché de respaldo: postgres si está configurado, si no archivos locales.
	var cacheStore repository.CacheStore
	if cfg.Cache.Backend == "postgres" {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL para caché")
		}
		defer pool.Close()
		cacheStore = postgres.NewCacheStore(pool)
	} else {
		fs, err := cache.NewFileStore(cfg.Cache.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("caché de archivos")
		}
		cacheStore = fs
	}

	customersClient := rest.NewClient(rest.Options{
		BaseURL:    cfg.API.CustomersBaseURL,
		Token:      cfg.API.Token,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	})
	usersClient := rest.NewClient(rest.Options{
		BaseURL:    cfg.API.UsersBaseURL,
		Token:      cfg.API.Token,
		Timeout:    cfg.API.Timeout,
		MaxRetries: cfg.API.MaxRetries,
	})

	customerRepo := rest.NewCustomerRepository(customersClient)
	userRepo := rest.NewUserRepository(usersClient)
	coordinator := appsync.NewCoordinator(userRepo, customerRepo, cacheStore, log)
	salesUC := usecase.NewSalesUseCase()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Coordinator: coordinator,
		Cache:       cacheStore,
		SalesUC:     salesUC,
		Log:         log,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("sincronizador detenido")
}
