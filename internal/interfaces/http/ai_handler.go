package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contaperu/contaperu-api/internal/application/ai"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// AIHandler asistente tributario.
type AIHandler struct {
	assistant *ai.Assistant
	log       *logger.Logger
}

// NewAIHandler construye el handler.
func NewAIHandler(assistant *ai.Assistant, log *logger.Logger) *AIHandler {
	return &AIHandler{assistant: assistant, log: logger.OrNop(log)}
}

// Chat godoc
// @Summary      Conversar con el asistente tributario
// @Description  Envía el mensaje y el historial al proveedor configurado. Con comprobante_id
// @Description  se agrega el detalle del comprobante como contexto.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "Mensaje, historial y comprobante opcional"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      503   {object}  dto.ErrorResponse
// @Failure      504   {object}  dto.ErrorResponse
// @Router       /api/ai/chat [post]
func (h *AIHandler) Chat(c *fiber.Ctx) error {
	var in dto.ChatRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.assistant.Chat(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
