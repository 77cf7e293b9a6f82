package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contaperu/contaperu-api/internal/application/ai"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/settings"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// SettingsHandler panel de administración: proveedor IA, SMTP y uso de almacenamiento.
type SettingsHandler struct {
	uc        *settings.UseCase
	assistant *ai.Assistant
	log       *logger.Logger
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase, assistant *ai.Assistant, log *logger.Logger) *SettingsHandler {
	return &SettingsHandler{uc: uc, assistant: assistant, log: logger.OrNop(log)}
}

// GetAI godoc
// @Summary      Configuración del proveedor IA
// @Description  Las claves se devuelven enmascaradas.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AIConfigResponse
// @Router       /api/admin/ai [get]
func (h *SettingsHandler) GetAI(c *fiber.Ctx) error {
	out, err := h.uc.GetAIConfig(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SaveAI godoc
// @Summary      Guardar configuración del proveedor IA
// @Description  Una clave vacía o enmascarada conserva la guardada.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIConfigRequest  true  "Proveedor y credenciales"
// @Success      200   {object}  dto.AIConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/ai [put]
func (h *SettingsHandler) SaveAI(c *fiber.Ctx) error {
	var in dto.AIConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SaveAIConfig(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Str("provider", out.Provider).Msg("configuración IA actualizada")
	return c.JSON(out)
}

// TestAI godoc
// @Summary      Probar el proveedor IA configurado
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AITestResponse
// @Router       /api/admin/ai/test [post]
func (h *SettingsHandler) TestAI(c *fiber.Ctx) error {
	return c.JSON(h.assistant.TestProvider(c.UserContext()))
}

// GetSMTP godoc
// @Summary      Configuración SMTP
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SMTPConfigResponse
// @Router       /api/admin/smtp [get]
func (h *SettingsHandler) GetSMTP(c *fiber.Ctx) error {
	out, err := h.uc.GetSMTPConfig(c.UserContext())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// SaveSMTP godoc
// @Summary      Guardar configuración SMTP
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SMTPConfigRequest  true  "Servidor SMTP"
// @Success      200   {object}  dto.SMTPConfigResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/admin/smtp [put]
func (h *SettingsHandler) SaveSMTP(c *fiber.Ctx) error {
	var in dto.SMTPConfigRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SaveSMTPConfig(c.UserContext(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().Str("user_id", GetUserID(c)).Str("host", out.Host).Msg("configuración SMTP actualizada")
	return c.JSON(out)
}

// TestSMTP godoc
// @Summary      Enviar correo de prueba
// @Description  Si el envío falla responde success=false con sugerencias de diagnóstico.
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SMTPTestRequest  true  "Destinatario"
// @Success      200   {object}  dto.SMTPTestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Router       /api/admin/smtp/test [post]
func (h *SettingsHandler) TestSMTP(c *fiber.Ctx) error {
	var in dto.SMTPTestRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(in); err != nil {
		return writeError(c, h.log, err)
	}
	out, err := h.uc.TestSMTP(c.UserContext(), in.To)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// StorageUsage godoc
// @Summary      Uso de almacenamiento por empresa
// @Description  company_id sólo lo puede indicar superadmin; por defecto es la empresa del token.
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Empresa"
// @Success      200  {object}  dto.StorageUsage
// @Router       /api/admin/storage [get]
func (h *SettingsHandler) StorageUsage(c *fiber.Ctx) error {
	companyID := GetCompanyID(c)
	if q := c.Query("company_id"); q != "" && GetRole(c) == entity.RoleSuperAdmin {
		companyID = q
	}
	out, err := h.uc.StorageUsage(c.UserContext(), companyID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
