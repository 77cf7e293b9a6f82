package inventory

import (
	"context"
	"fmt"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/declaration"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// ReportUseCase reportes del inventario valorizado.
type ReportUseCase struct {
	products  repository.ProductRepository
	companies repository.CompanyRepository
	xlsx      ports.InventoryReportGenerator
	pdf       ports.InventoryPDFGenerator
}

// NewReportUseCase construye el caso de uso.
func NewReportUseCase(
	products repository.ProductRepository,
	companies repository.CompanyRepository,
	xlsx ports.InventoryReportGenerator,
	pdf ports.InventoryPDFGenerator,
) *ReportUseCase {
	return &ReportUseCase{products: products, companies: companies, xlsx: xlsx, pdf: pdf}
}

// Anexo2 XLSX del inventario permanente valorizado al cierre de period (YYYY-MM).
func (uc *ReportUseCase) Anexo2(ctx context.Context, companyID, period string) ([]byte, string, error) {
	company, products, err := uc.load(ctx, companyID, period)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.xlsx.Anexo2(ctx, company, period, products)
	if err != nil {
		return nil, "", fmt.Errorf("anexo 2: %w", err)
	}
	return data, fmt.Sprintf("anexo2-%s-%s.xlsx", company.RUC, period), nil
}

// PDF versión imprimible del inventario.
func (uc *ReportUseCase) PDF(ctx context.Context, companyID, period string) ([]byte, string, error) {
	company, products, err := uc.load(ctx, companyID, period)
	if err != nil {
		return nil, "", err
	}
	data, err := uc.pdf.InventoryPDF(ctx, company, period, products)
	if err != nil {
		return nil, "", fmt.Errorf("inventario pdf: %w", err)
	}
	return data, fmt.Sprintf("inventario-%s-%s.pdf", company.RUC, period), nil
}

func (uc *ReportUseCase) load(ctx context.Context, companyID, period string) (*entity.Company, []*entity.Product, error) {
	if _, _, err := declaration.ParsePeriod(period); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	company, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	if company == nil {
		return nil, nil, fmt.Errorf("empresa: %w", domain.ErrNotFound)
	}
	products, err := uc.products.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	return company, products, nil
}
