package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/operia/stock-ajustes-api/internal/application/ajuste"
	"github.com/operia/stock-ajustes-api/internal/application/auth"
	"github.com/operia/stock-ajustes-api/internal/application/usecase"
	"github.com/operia/stock-ajustes-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CompanyUC    *usecase.CompanyUseCase
	MaterialUC   *usecase.MaterialUseCase
	ProyectoUC   *usecase.ProyectoUseCase
	MovimientoUC *usecase.MovimientoUseCase
	ImportarUC   *ajuste.ImportarUseCase
	Exportador   *ajuste.Exportador
	AuthUC       *auth.AuthUseCase
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

	// Companies (público por ahora; se puede proteger con AuthMiddleware(deps.JWTSecret))
	companies := api.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Materiales (protegido)
	materiales := protected.Group("/materiales")
	materialHandler := NewMaterialHandler(deps.MaterialUC)
	materiales.Post("/", materialHandler.Create)
	materiales.Get("/", materialHandler.List)
	materiales.Get("/:id", materialHandler.GetByID)

	// Proyectos (protegido)
	proyectos := protected.Group("/proyectos")
	proyectoHandler := NewProyectoHandler(deps.ProyectoUC)
	proyectos.Post("/", proyectoHandler.Create)
	proyectos.Get("/", proyectoHandler.List)

	// Ajustes de stock por planilla (protegido; vendedor no ajusta inventario)
	ajustes := protected.Group("/ajustes", RequireRole(entity.RoleAdmin, entity.RoleBodeguero))
	ajusteHandler := NewAjusteHandler(deps.ImportarUC, deps.Exportador)
	ajustes.Post("/previsualizar", ajusteHandler.Previsualizar)
	ajustes.Post("/confirmar", ajusteHandler.Confirmar)
	ajustes.Get("/exportar", ajusteHandler.Exportar)

	// Movimientos (protegido, auditoría)
	movimientos := protected.Group("/movimientos")
	movimientoHandler := NewMovimientoHandler(deps.MovimientoUC)
	movimientos.Get("/", movimientoHandler.List)
	movimientos.Get("/:transactionId/acta", movimientoHandler.Acta)
}
