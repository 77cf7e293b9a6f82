package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contaperu/contaperu-api/internal/application/ai"
	"github.com/contaperu/contaperu-api/internal/application/alerts"
	"github.com/contaperu/contaperu-api/internal/application/auth"
	"github.com/contaperu/contaperu-api/internal/application/comprobante"
	"github.com/contaperu/contaperu-api/internal/application/declaration"
	"github.com/contaperu/contaperu-api/internal/application/inventory"
	"github.com/contaperu/contaperu-api/internal/application/lookup"
	"github.com/contaperu/contaperu-api/internal/application/settings"
	"github.com/contaperu/contaperu-api/internal/application/usecase"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	CompanyUC     *usecase.CompanyUseCase
	UserUC        *usecase.UserUseCase
	ImportUC      *comprobante.ImportUseCase
	QueryUC       *comprobante.QueryUseCase
	DeclarationUC *declaration.UseCase
	AlertUC       *alerts.UseCase
	Scanner       *alerts.Scanner
	SettingsUC    *settings.UseCase
	Assistant     *ai.Assistant
	LookupUC      *lookup.UseCase
	ProductUC     *inventory.ProductUseCase
	ReportUC      *inventory.ReportUseCase
	JWTSecret     string
	Log           *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := logger.OrNop(deps.Log).Component("http")
	api := app.Group("/api")

	const (
		admin     = entity.RoleAdmin
		contador  = entity.RoleContador
		asistente = entity.RoleAsistente
	)
	anyRole := RequireRole(admin, contador, asistente)
	staff := RequireRole(admin, contador)
	onlyAdmin := RequireRole(admin)
	platform := RequireRole() // sólo superadmin

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Companies
	companyHandler := NewCompanyHandler(deps.CompanyUC, log)
	companies := protected.Group("/companies")
	companies.Get("/", platform, companyHandler.List)
	companies.Post("/", platform, companyHandler.Create)
	companies.Get("/:id", anyRole, companyHandler.GetByID)
	companies.Put("/:id", onlyAdmin, companyHandler.Update)

	// Users
	userHandler := NewUserHandler(deps.UserUC, log)
	users := protected.Group("/users", requireCompany, onlyAdmin)
	users.Post("/", userHandler.Create)
	users.Get("/", userHandler.List)
	users.Get("/:id", userHandler.GetByID)

	// Comprobantes
	compHandler := NewComprobanteHandler(deps.ImportUC, deps.QueryUC, log)
	comps := protected.Group("/comprobantes", requireCompany)
	comps.Post("/import", staff, compHandler.Import)
	comps.Get("/", anyRole, compHandler.List)
	comps.Get("/:id", anyRole, compHandler.Get)
	comps.Get("/:id/pdf", anyRole, compHandler.PDF)
	comps.Delete("/:id", staff, compHandler.Delete)

	// Declaraciones
	declHandler := NewDeclarationHandler(deps.DeclarationUC, log)
	protected.Get("/declarations/:period", requireCompany, staff, declHandler.Summary)

	// Alertas
	alertHandler := NewAlertHandler(deps.AlertUC, deps.Scanner, log)
	alertGroup := protected.Group("/alerts", requireCompany)
	alertGroup.Get("/", anyRole, alertHandler.List)
	alertGroup.Get("/matches", anyRole, alertHandler.Matches)
	alertGroup.Get("/:id", anyRole, alertHandler.Get)
	alertGroup.Post("/", staff, alertHandler.Create)
	alertGroup.Put("/:id", staff, alertHandler.Update)
	alertGroup.Delete("/:id", staff, alertHandler.Delete)

	// Inventario
	invHandler := NewInventoryHandler(deps.ProductUC, deps.ReportUC, log)
	inv := protected.Group("/inventory", requireCompany)
	inv.Get("/products", anyRole, invHandler.List)
	inv.Get("/products/:id", anyRole, invHandler.Get)
	inv.Post("/products", staff, invHandler.Create)
	inv.Put("/products/:id", staff, invHandler.Update)
	inv.Delete("/products/:id", staff, invHandler.Delete)
	inv.Post("/products/:id/entries", anyRole, invHandler.RegisterEntry)
	inv.Post("/products/:id/exits", anyRole, invHandler.RegisterExit)
	inv.Get("/anexo2.xlsx", staff, invHandler.Anexo2)
	inv.Get("/report.pdf", staff, invHandler.ReportPDF)

	// Consultas RUC/DNI
	lookupHandler := NewLookupHandler(deps.LookupUC, log)
	protected.Get("/lookup/ruc/:ruc", anyRole, lookupHandler.RUC)
	protected.Get("/lookup/dni/:dni", anyRole, lookupHandler.DNI)

	// Asistente IA
	aiHandler := NewAIHandler(deps.Assistant, log)
	protected.Post("/ai/chat", requireCompany, anyRole, aiHandler.Chat)

	// Panel de administración
	settingsHandler := NewSettingsHandler(deps.SettingsUC, deps.Assistant, log)
	adminGroup := protected.Group("/admin")
	adminGroup.Get("/storage", onlyAdmin, settingsHandler.StorageUsage)
	adminGroup.Get("/ai", platform, settingsHandler.GetAI)
	adminGroup.Put("/ai", platform, settingsHandler.SaveAI)
	adminGroup.Post("/ai/test", platform, settingsHandler.TestAI)
	adminGroup.Get("/smtp", platform, settingsHandler.GetSMTP)
	adminGroup.Put("/smtp", platform, settingsHandler.SaveSMTP)
	adminGroup.Post("/smtp/test", platform, settingsHandler.TestSMTP)
	adminGroup.Post("/tenders", platform, alertHandler.UpsertTenders)
	adminGroup.Post("/alerts/scan", platform, alertHandler.Scan)
}
