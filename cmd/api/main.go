package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Inventario-ai/internal/application/assistant"
	"github.com/jhoicas/Inventario-ai/internal/application/inventory"
	"github.com/jhoicas/Inventario-ai/internal/application/usecase"
	"github.com/jhoicas/Inventario-ai/internal/domain/repository"
	infraai "github.com/jhoicas/Inventario-ai/internal/infrastructure/ai"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/cache"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/identity"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/observability"
	infrapdf "github.com/jhoicas/Inventario-ai/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-ai/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Inventario-ai/internal/interfaces/http"
	"github.com/jhoicas/Inventario-ai/pkg/config"
	"github.com/jhoicas/Inventario-ai/pkg/logger"

	_ "github.com/jhoicas/Inventario-ai/docs"
)

// @title        Inventario AI API
// @version      1.0
// @description  Inventario con roles, categorías y asistente de IA.
// @BasePath     /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Str("ai_provider", cfg.AI.Provider).
		Msg("iniciando aplicación")

	ctx := context.Background()

	var (
		itemRepo     repository.ItemRepository
		categoryRepo repository.CategoryRepository
		profileRepo  repository.ProfileRepository
		txRunner     inventory.TxRunner
	)
	switch cfg.App.StoreDriver {
	case "memory":
		store := memory.NewStore()
		itemRepo, categoryRepo, profileRepo, txRunner = store.Items(), store.Categories(), store.Profiles(), store
		log.Warn().Msg("store en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema de base de datos")
		}
		itemRepo = postgres.NewItemRepository(pool)
		categoryRepo = postgres.NewCategoryRepository(pool)
		profileRepo = postgres.NewProfileRepository(pool)
		txRunner = postgres.NewTxRunner(pool)
	}

	// Caché opcional del listado de categorías.
	if cfg.Redis.Addr != "" {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("redis no disponible, sin caché de categorías")
		} else {
			defer client.Close()
			categoryRepo = cache.NewCategoryCache(categoryRepo, client, cfg.Redis.CategoryTTL(), log.Named("cache"))
		}
	}

	llm, breaker, err := infraai.NewService(cfg.AI, log.Named("ai"))
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de IA")
	}
	if llm == nil {
		log.Warn().Msg("AI_PROVIDER=none: el asistente responde solo con fallbacks")
	}
	assistantSvc := assistant.NewService(llm, itemRepo, categoryRepo, observability.AIMetrics{}, log.Named("assistant"), cfg.AI.Timeout())

	identityClient := identity.NewAdminClient(cfg.Identity.URL, cfg.Identity.ServiceKey)

	itemUC := usecase.NewItemUseCase(itemRepo, categoryRepo)
	categoryUC := usecase.NewCategoryUseCase(categoryRepo, txRunner)
	teamUC := usecase.NewTeamUseCase(profileRepo, identityClient, cfg.Identity.PublicURL+"/login")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: cfg.AI.Timeout() + 10*time.Second,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))
	app.Use(httpRouter.Metrics())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat("./docs/swagger.json"); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Inventario AI API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		body := fiber.Map{"status": "ok", "service": cfg.App.Name, "ai_provider": cfg.AI.Provider}
		if breaker != nil {
			body["ai_circuit"] = breaker.State()
		}
		return c.JSON(body)
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:     itemUC,
		CategoryUC: categoryUC,
		TeamUC:     teamUC,
		Assistant:  assistantSvc,
		DraftsPDF:  infrapdf.NewMarotoDraftsGenerator(cfg.App.Name + " - Purchase Order Drafts"),
		Profiles:   profileRepo,
		JWTSecret:  cfg.JWT.Secret,
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

	log.Info().Msg("aplicación detenida")
}
