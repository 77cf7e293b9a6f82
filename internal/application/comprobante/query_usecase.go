package comprobante

import (
	"context"
	"fmt"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// QueryUseCase listado, detalle, baja y PDF de comprobantes importados.
type QueryUseCase struct {
	repo      repository.ComprobanteRepository
	companies repository.CompanyRepository
	pdf       ports.ComprobantePDFGenerator
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(repo repository.ComprobanteRepository, companies repository.CompanyRepository, pdf ports.ComprobantePDFGenerator) *QueryUseCase {
	return &QueryUseCase{repo: repo, companies: companies, pdf: pdf}
}

// List comprobantes de la empresa con filtros y paginación.
func (uc *QueryUseCase) List(ctx context.Context, companyID string, in dto.ComprobanteListRequest) (*dto.ComprobanteListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, companyID, entity.ComprobanteFilter{
		Period:       in.Period,
		Direction:    in.Direction,
		DocumentType: in.DocumentType,
		RUC:          sunat.NormalizeDocument(in.RUC),
		Limit:        in.Limit,
		Offset:       in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ComprobanteResponse, 0, len(items))
	for _, c := range items {
		out = append(out, *ToResponse(c, false))
	}
	return &dto.ComprobanteListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Get detalle con líneas.
func (uc *QueryUseCase) Get(ctx context.Context, companyID, id string) (*dto.ComprobanteResponse, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(c, true), nil
}

// Delete baja lógica.
func (uc *QueryUseCase) Delete(ctx context.Context, companyID, id string) error {
	return uc.repo.SoftDelete(ctx, companyID, id)
}

// PDF representación impresa. Devuelve bytes y un nombre de archivo sugerido.
func (uc *QueryUseCase) PDF(ctx context.Context, companyID, id string) ([]byte, string, error) {
	c, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, "", err
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, "", err
	}
	b, err := uc.pdf.ComprobantePDF(ctx, c, company)
	if err != nil {
		return nil, "", fmt.Errorf("pdf comprobante: %w", err)
	}
	return b, fmt.Sprintf("%s-%s-%s.pdf", c.EmitterRUC, c.DocumentType, c.DocumentNumber()), nil
}

func (uc *QueryUseCase) get(ctx context.Context, companyID, id string) (*entity.Comprobante, error) {
	c, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// ToResponse mapea la entidad; withItems incluye las líneas.
func ToResponse(c *entity.Comprobante, withItems bool) *dto.ComprobanteResponse {
	r := &dto.ComprobanteResponse{
		ID:                c.ID,
		Direction:         c.Direction,
		DocumentType:      c.DocumentType,
		DocumentTypeName:  sunat.DocumentTypeNames[c.DocumentType],
		Serie:             c.Serie,
		Numero:            c.Numero,
		IssueDate:         c.IssueDate.Format("2006-01-02"),
		Currency:          c.Currency,
		EmitterRUC:        c.EmitterRUC,
		EmitterName:       c.EmitterName,
		ReceiverDocType:   c.ReceiverDocType,
		ReceiverDoc:       c.ReceiverDoc,
		ReceiverName:      c.ReceiverName,
		BaseAmount:        c.BaseAmount,
		IGVAmount:         c.IGVAmount,
		TotalAmount:       c.TotalAmount,
		ExoneratedAmount:  c.ExoneratedAmount,
		UnaffectedAmount:  c.UnaffectedAmount,
		Notes:             c.Notes,
		ReferenceDocument: c.ReferenceDocument,
		NoteReasonCode:    c.NoteReasonCode,
		NoteReason:        c.NoteReason,
		SignatureHash:     c.SignatureHash,
		Fingerprint:       c.Fingerprint,
		SourceFilename:    c.SourceFilename,
		CreatedAt:         c.CreatedAt,
	}
	if r.Notes == nil {
		r.Notes = []string{}
	}
	if c.DueDate != nil {
		s := c.DueDate.Format("2006-01-02")
		r.DueDate = &s
	}
	if withItems {
		r.Items = make([]dto.ComprobanteItemResponse, 0, len(c.Items))
		for _, it := range c.Items {
			r.Items = append(r.Items, dto.ComprobanteItemResponse{
				LineNumber:         it.LineNumber,
				Code:               it.Code,
				Description:        it.Description,
				UnitCode:           it.UnitCode,
				Quantity:           it.Quantity,
				UnitValue:          it.UnitValue,
				UnitPrice:          it.UnitPrice,
				BaseAmount:         it.BaseAmount,
				IGVAmount:          it.IGVAmount,
				TotalAmount:        it.TotalAmount,
				IGVAffectationCode: it.IGVAffectationCode,
			})
		}
	}
	return r
}
