package http

import (
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/contaperu/contaperu-api/internal/application/comprobante"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// ComprobanteHandler importación y consulta de comprobantes electrónicos.
type ComprobanteHandler struct {
	importer *comprobante.ImportUseCase
	query    *comprobante.QueryUseCase
	log      *logger.Logger
}

// NewComprobanteHandler construye el handler.
func NewComprobanteHandler(importer *comprobante.ImportUseCase, query *comprobante.QueryUseCase, log *logger.Logger) *ComprobanteHandler {
	return &ComprobanteHandler{importer: importer, query: query, log: logger.OrNop(log)}
}

// Import godoc
// @Summary      Importar comprobantes XML/ZIP
// @Description  Acepta uno o varios archivos en el campo "files". Cada ZIP se expande y
// @Description  cada XML UBL se decodifica, clasifica como VENTA o COMPRA y se guarda.
// @Description  Los duplicados se cuentan sin error. Con fail_fast=true el primer
// @Description  documento inválido cancela el lote completo.
// @Tags         comprobantes
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        files      formData  file  true   "XML o ZIP (repetible)"
// @Param        fail_fast  query     bool  false  "Abortar ante el primer error"
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/comprobantes/import [post]
func (h *ComprobanteHandler) Import(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "se espera multipart/form-data con el campo files"})
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "no se recibieron archivos"})
	}
	files := make([]comprobante.UploadedFile, 0, len(headers))
	for _, fh := range headers {
		f, err := fh.Open()
		if err != nil {
			return writeError(c, h.log, fmt.Errorf("abrir %s: %w", fh.Filename, err))
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			return writeError(c, h.log, fmt.Errorf("leer %s: %w", fh.Filename, err))
		}
		files = append(files, comprobante.UploadedFile{Filename: fh.Filename, Data: data})
	}

	out, err := h.importer.Import(c.UserContext(), GetCompanyID(c), files, comprobante.ImportOptions{
		FailFast: c.QueryBool("fail_fast", false),
	})
	if err != nil {
		return writeError(c, h.log, err)
	}
	h.log.Info().
		Str("company_id", GetCompanyID(c)).
		Int("files", len(files)).
		Int("imported", out.Imported).
		Int("duplicates", out.Duplicates).
		Int("failed", len(out.Failed)).
		Msg("importación de comprobantes")
	return c.JSON(out)
}

// List godoc
// @Summary      Listar comprobantes
// @Tags         comprobantes
// @Security     Bearer
// @Produce      json
// @Param        period         query  string  false  "Periodo YYYY-MM"
// @Param        direction      query  string  false  "VENTA | COMPRA"
// @Param        document_type  query  string  false  "01, 03, 07, 08"
// @Param        ruc            query  string  false  "RUC del emisor o documento del receptor"
// @Param        limit          query  int     false  "Límite"  default(20)
// @Param        offset         query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ComprobanteListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/comprobantes [get]
func (h *ComprobanteHandler) List(c *fiber.Ctx) error {
	var in dto.ComprobanteListRequest
	if err := c.QueryParser(&in); err != nil {
		return badQuery(c)
	}
	out, err := h.query.List(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de un comprobante con sus líneas
// @Tags         comprobantes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {object}  dto.ComprobanteResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comprobantes/{id} [get]
func (h *ComprobanteHandler) Get(c *fiber.Ctx) error {
	out, err := h.query.Get(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar un comprobante (borrado lógico)
// @Tags         comprobantes
// @Security     Bearer
// @Param        id   path  string  true  "ID del comprobante"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comprobantes/{id} [delete]
func (h *ComprobanteHandler) Delete(c *fiber.Ctx) error {
	if err := h.query.Delete(c.UserContext(), GetCompanyID(c), c.Params("id")); err != nil {
		return writeError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// PDF godoc
// @Summary      Representación impresa del comprobante
// @Tags         comprobantes
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del comprobante"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/comprobantes/{id}/pdf [get]
func (h *ComprobanteHandler) PDF(c *fiber.Ctx) error {
	data, filename, err := h.query.PDF(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, "application/pdf", filename, data)
}
