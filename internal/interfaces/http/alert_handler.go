package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/contaperu/contaperu-api/internal/application/alerts"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// AlertHandler reglas de alerta de licitaciones, coincidencias e ingesta.
type AlertHandler struct {
	uc      *alerts.UseCase
	scanner *alerts.Scanner
	log     *logger.Logger
}

// NewAlertHandler construye el handler. scanner puede ser nil si el job está deshabilitado.
func NewAlertHandler(uc *alerts.UseCase, scanner *alerts.Scanner, log *logger.Logger) *AlertHandler {
	return &AlertHandler{uc: uc, scanner: scanner, log: logger.OrNop(log)}
}

// Create godoc
// @Summary      Crear regla de alerta
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AlertConfigRequest  true  "Regla"
// @Success      201   {object}  dto.AlertConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/alerts [post]
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var in dto.AlertConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Reemplazar regla de alerta
// @Tags         alerts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID de la regla"
// @Param        body  body  dto.AlertConfigRequest  true  "Regla"
// @Success      200   {object}  dto.AlertConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [put]
func (h *AlertHandler) Update(c *fiber.Ctx) error {
	var in dto.AlertConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener regla de alerta
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la regla"
// @Success      200  {object}  dto.AlertConfigResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [get]
func (h *AlertHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar reglas de alerta de la empresa
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.AlertConfigResponse
// @Router       /api/alerts [get]
func (h *AlertHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar regla de alerta
// @Tags         alerts
// @Security     Bearer
// @Param        id   path  string  true  "ID de la regla"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/alerts/{id} [delete]
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Matches godoc
// @Summary      Coincidencias registradas
// @Tags         alerts
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "Límite"  default(20)
// @Param        offset  query  int  false  "Offset"  default(0)
// @Success      200  {array}  dto.AlertMatchResponse
// @Router       /api/alerts/matches [get]
func (h *AlertHandler) Matches(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badQuery(c)
	}
	out, err := h.uc.Matches(c.UserContext(), GetCompanyID(c), page)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpsertTenders godoc
// @Summary      Ingerir licitaciones (superadmin)
// @Description  Inserta o actualiza por (source, external_id).
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TenderBatchRequest  true  "Lote de licitaciones"
// @Success      200   {object}  dto.TenderBatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/tenders [post]
func (h *AlertHandler) UpsertTenders(c *fiber.Ctx) error {
	var in dto.TenderBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpsertTenders(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Scan godoc
// @Summary      Ejecutar una pasada del escáner de alertas (superadmin)
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ScanResult
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /api/admin/alerts/scan [post]
func (h *AlertHandler) Scan(c *fiber.Ctx) error {
	if h.scanner == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: "escáner de alertas deshabilitado"})
	}
	out, err := h.scanner.RunOnce(c.UserContext(), time.Now())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
