package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/techstore/pos-api/internal/application/auth"
	"github.com/techstore/pos-api/internal/application/reports"
	"github.com/techstore/pos-api/internal/application/usecase"
	"github.com/techstore/pos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC   *usecase.ProductUseCase
	SaleCreator SaleCreator
	SaleReader  SaleReader
	ReportUC    *reports.ReportUseCase
	AuthUC      *auth.AuthUseCase
	JWTSecret   string
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

	// Products: lectura para cualquier rol; escritura solo admin
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	adminOnly := RequireRole(entity.RoleAdmin)
	products.Post("/", adminOnly, productHandler.Create)
	products.Put("/:id", adminOnly, productHandler.Update)
	products.Delete("/:id", adminOnly, productHandler.Delete)

	// Sales: cualquier usuario autenticado (admin o employee)
	salesGroup := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleCreator, deps.SaleReader)
	salesGroup.Post("/", saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Get("/:id/pdf", saleHandler.InvoicePDF)

	// Reports: solo admin
	reportsGroup := protected.Group("/reports", adminOnly)
	reportHandler := NewReportHandler(deps.ReportUC)
	reportsGroup.Get("/summary", reportHandler.Summary)
	reportsGroup.Get("/top-products", reportHandler.TopProducts)
}
