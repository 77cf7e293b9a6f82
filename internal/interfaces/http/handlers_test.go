package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/application/comprobante"
	"github.com/contaperu/contaperu-api/internal/application/declaration"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/mocks"
	"github.com/contaperu/contaperu-api/internal/application/settings"
	"github.com/contaperu/contaperu-api/internal/application/usecase"
	apphttp "github.com/contaperu/contaperu-api/internal/interfaces/http"
)

// asUser simula AuthMiddleware cargando los locals directamente.
func asUser(companyID, role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Locals(apphttp.LocalUserID, testUserID)
		c.Locals(apphttp.LocalCompanyID, companyID)
		c.Locals(apphttp.LocalRole, role)
		return c.Next()
	}
}

func send(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, dto.ErrorResponse) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out dto.ErrorResponse
	_ = json.NewDecoder(resp.Body).Decode(&out)
	resp.Body.Close()
	return resp, out
}

// ── Empresas ──────────────────────────────────────────────────────────────────

func TestCompanyHandler_OtraEmpresaNoVisible(t *testing.T) {
	repo := new(mocks.CompanyRepository)
	h := apphttp.NewCompanyHandler(usecase.NewCompanyUseCase(repo), nil)
	app := fiber.New()
	app.Get("/companies/:id", asUser(testCompanyID, "admin"), h.GetByID)

	resp, body := send(t, app, http.MethodGet, "/companies/otra-empresa", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCompanyHandler_AdminNoCambiaEstado(t *testing.T) {
	repo := new(mocks.CompanyRepository)
	h := apphttp.NewCompanyHandler(usecase.NewCompanyUseCase(repo), nil)
	app := fiber.New()
	app.Put("/companies/:id", asUser(testCompanyID, "admin"), h.Update)

	resp, body := send(t, app, http.MethodPut, "/companies/"+testCompanyID, `{"status":"suspended"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "FORBIDDEN", body.Code)
}

// ── Usuarios ──────────────────────────────────────────────────────────────────

func TestUserHandler_ValidacionDevuelveDetalles(t *testing.T) {
	h := apphttp.NewUserHandler(usecase.NewUserUseCase(new(mocks.UserRepository)), nil)
	app := fiber.New()
	app.Post("/users", asUser(testCompanyID, "admin"), h.Create)

	resp, body := send(t, app, http.MethodPost, "/users", `{"email":"no-es-email","password":"12345678","name":"Ana","role":"contador"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
	assert.NotEmpty(t, body.Details)
}

// ── Comprobantes ──────────────────────────────────────────────────────────────

func TestComprobanteHandler_NoEncontrado(t *testing.T) {
	repo := new(mocks.ComprobanteRepository)
	repo.On("GetByID", mock.Anything, testCompanyID, "x").Return(nil, nil)
	query := comprobante.NewQueryUseCase(repo, new(mocks.CompanyRepository), new(mocks.PDFGenerator))
	h := apphttp.NewComprobanteHandler(nil, query, nil)
	app := fiber.New()
	app.Get("/comprobantes/:id", asUser(testCompanyID, "contador"), h.Get)

	resp, body := send(t, app, http.MethodGet, "/comprobantes/x", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestComprobanteHandler_ImportSinArchivos(t *testing.T) {
	h := apphttp.NewComprobanteHandler(nil, nil, nil)
	app := fiber.New()
	app.Post("/comprobantes/import", asUser(testCompanyID, "contador"), h.Import)

	resp, _ := send(t, app, http.MethodPost, "/comprobantes/import", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestComprobanteHandler_ErrorNoMapeadoEsInterno(t *testing.T) {
	repo := new(mocks.ComprobanteRepository)
	repo.On("GetByID", mock.Anything, testCompanyID, "x").Return(nil, context.Canceled)
	query := comprobante.NewQueryUseCase(repo, new(mocks.CompanyRepository), new(mocks.PDFGenerator))
	h := apphttp.NewComprobanteHandler(nil, query, nil)
	app := fiber.New()
	app.Get("/comprobantes/:id", asUser(testCompanyID, "contador"), h.Get)

	resp, body := send(t, app, http.MethodGet, "/comprobantes/x", "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "INTERNAL", body.Code)
	assert.NotContains(t, body.Message, "canceled")
}

// ── Declaraciones ─────────────────────────────────────────────────────────────

func TestDeclarationHandler_SaldoAnteriorNoNumerico(t *testing.T) {
	h := apphttp.NewDeclarationHandler(declaration.NewUseCase(new(mocks.ComprobanteRepository)), nil)
	app := fiber.New()
	app.Get("/declarations/:period", asUser(testCompanyID, "contador"), h.Summary)

	resp, body := send(t, app, http.MethodGet, "/declarations/2024-03?previous_credit=abc", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", body.Code)
}

func TestDeclarationHandler_PeriodoInvalido(t *testing.T) {
	h := apphttp.NewDeclarationHandler(declaration.NewUseCase(new(mocks.ComprobanteRepository)), nil)
	app := fiber.New()
	app.Get("/declarations/:period", asUser(testCompanyID, "contador"), h.Summary)

	resp, _ := send(t, app, http.MethodGet, "/declarations/2024-13", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

// ── Panel de administración ───────────────────────────────────────────────────

func TestSettingsHandler_AdminSoloVeSuEmpresa(t *testing.T) {
	comps := new(mocks.ComprobanteRepository)
	comps.On("StorageBytes", mock.Anything, testCompanyID).Return(int64(2048), 3, nil)
	uc := settings.NewUseCase(settings.NewCache(new(mocks.SettingsRepository), settings.DefaultTTL),
		settings.Defaults{}, new(mocks.Mailer), nil, comps, nil)
	h := apphttp.NewSettingsHandler(uc, nil, nil)
	app := fiber.New()
	app.Get("/admin/storage", asUser(testCompanyID, "admin"), h.StorageUsage)

	req := httptest.NewRequest(http.MethodGet, "/admin/storage?company_id=otra", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out dto.StorageUsage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, testCompanyID, out.CompanyID)
	assert.Equal(t, "database", out.Source)
	assert.Equal(t, int64(2048), out.Bytes)
}

// ── Router ────────────────────────────────────────────────────────────────────

func TestRouter_RutaDePlataformaExigeSuperadmin(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/ai", nil)
	req.Header.Set("Authorization", tokenForRole(t, "admin"))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestRouter_SinTokenRetorna401(t *testing.T) {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{JWTSecret: testJWTSecret})

	resp, body := send(t, app, http.MethodGet, "/api/comprobantes", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", body.Code)
}
