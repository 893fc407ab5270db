package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/tu-usuario/lotes-api/internal/application/auth"
	applots "github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/application/usecase"
	infrapdf "github.com/tu-usuario/lotes-api/internal/infrastructure/pdf"
	"github.com/tu-usuario/lotes-api/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/lotes-api/internal/interfaces/http"
	"github.com/tu-usuario/lotes-api/pkg/config"
	"github.com/tu-usuario/lotes-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	policyRepo := postgres.NewCategoryPolicyRepository(pool)
	batchRepo := postgres.NewBatchRepository(pool)
	serialRepo := postgres.NewSerialRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	productUC := usecase.NewProductUseCase(productRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	sessionStore := applots.NewSessionStore()
	openSessionUC := applots.NewOpenSessionUseCase(sessionStore, productRepo, policyRepo, batchRepo, serialRepo, nil)
	commitUC := applots.NewCommitUseCase(txRunner)

	// PDF: reporte de vencimientos en orden FEFO
	expiryReportUC := applots.NewExpiryReportUseCase(productRepo, batchRepo, infrapdf.NewMarotoExpiryReport())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Lotes API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		AuthUC:       authUC,
		SessionStore: sessionStore,
		OpenSession:  openSessionUC,
		Commit:       commitUC,
		ExpiryReport: expiryReportUC,
		JWTSecret:    cfg.JWT.Secret,
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
