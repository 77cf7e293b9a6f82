package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/application/declaration"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// DeclarationHandler resumen mensual de IGV.
type DeclarationHandler struct {
	uc  *declaration.UseCase
	log *logger.Logger
}

// NewDeclarationHandler construye el handler.
func NewDeclarationHandler(uc *declaration.UseCase, log *logger.Logger) *DeclarationHandler {
	return &DeclarationHandler{uc: uc, log: logger.OrNop(log)}
}

// Summary godoc
// @Summary      Resumen PDT 621 del periodo
// @Description  Agrega ventas y compras en soles del periodo y calcula el IGV a pagar
// @Description  o el saldo a favor que se arrastra al mes siguiente.
// @Tags         declarations
// @Security     Bearer
// @Produce      json
// @Param        period           path   string  true   "Periodo YYYY-MM"
// @Param        previous_credit  query  string  false  "Saldo a favor del periodo anterior"
// @Success      200  {object}  dto.DeclarationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/declarations/{period} [get]
func (h *DeclarationHandler) Summary(c *fiber.Ctx) error {
	credit := decimal.Zero
	if raw := c.Query("previous_credit"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "previous_credit debe ser numérico"})
		}
		credit = d
	}
	out, err := h.uc.Summary(c.UserContext(), GetCompanyID(c), c.Params("period"), credit)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
