package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/tu-usuario/lotes-api/internal/application/auth"
	"github.com/tu-usuario/lotes-api/internal/application/lots"
	"github.com/tu-usuario/lotes-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	AuthUC       *auth.AuthUseCase
	SessionStore *lots.SessionStore
	OpenSession  *lots.OpenSessionUseCase
	Commit       *lots.CommitUseCase
	ExpiryReport *lots.ExpiryReportUseCase
	JWTSecret    string
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

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", RequireRole("admin", "bodeguero"), productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", RequireRole("admin", "bodeguero"), productHandler.Update)

	// Sesiones de edición de lotes/seriales (protegido)
	sessionHandler := NewSessionHandler(deps.SessionStore, deps.OpenSession, deps.Commit, nil)
	products.Post("/:id/sessions", RequireRole("admin", "bodeguero"), sessionHandler.Open)

	sessions := protected.Group("/sessions", RequireRole("admin", "bodeguero"))
	sessions.Get("/:sid", sessionHandler.Get)
	sessions.Delete("/:sid", sessionHandler.Close)
	sessions.Post("/:sid/commit", sessionHandler.Commit)

	sessions.Post("/:sid/batches", sessionHandler.AddBatch)
	sessions.Get("/:sid/batches/suggest-code", sessionHandler.SuggestBatchCode)
	sessions.Get("/:sid/batches/fefo", sessionHandler.BatchFEFO)
	sessions.Get("/:sid/batches/stats", sessionHandler.BatchStats)
	sessions.Get("/:sid/batches/:bid/edit", sessionHandler.EditBatch)
	sessions.Put("/:sid/batches/:bid", sessionHandler.SaveBatch)
	sessions.Delete("/:sid/batches/:bid", sessionHandler.RemoveBatch)

	sessions.Post("/:sid/serials", sessionHandler.AddSerial)
	sessions.Get("/:sid/serials/stats", sessionHandler.SerialStats)
	sessions.Delete("/:sid/serials/:uid", sessionHandler.RemoveSerial)

	// Reportes (protegido)
	reportHandler := NewReportHandler(deps.ExpiryReport)
	products.Get("/:id/reports/expiry", reportHandler.ExpiryReport)
}
