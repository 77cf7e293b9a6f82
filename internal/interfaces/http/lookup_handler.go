package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/contaperu/contaperu-api/internal/application/lookup"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// LookupHandler consultas de contribuyentes (RUC) y personas (DNI).
type LookupHandler struct {
	uc  *lookup.UseCase
	log *logger.Logger
}

// NewLookupHandler construye el handler.
func NewLookupHandler(uc *lookup.UseCase, log *logger.Logger) *LookupHandler {
	return &LookupHandler{uc: uc, log: logger.OrNop(log)}
}

// RUC godoc
// @Summary      Consultar RUC
// @Description  Valida el dígito verificador y consulta el padrón (con caché).
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        ruc  path  string  true  "RUC de 11 dígitos"
// @Success      200  {object}  entity.TaxpayerInfo
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lookup/ruc/{ruc} [get]
func (h *LookupHandler) RUC(c *fiber.Ctx) error {
	out, err := h.uc.RUC(c.UserContext(), c.Params("ruc"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// DNI godoc
// @Summary      Consultar DNI
// @Tags         lookup
// @Security     Bearer
// @Produce      json
// @Param        dni  path  string  true  "DNI de 8 dígitos"
// @Success      200  {object}  entity.PersonInfo
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/lookup/dni/{dni} [get]
func (h *LookupHandler) DNI(c *fiber.Ctx) error {
	out, err := h.uc.DNI(c.UserContext(), c.Params("dni"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
