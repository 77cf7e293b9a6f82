package ports

import (
	"context"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// ComprobantePDFGenerator representación impresa de un comprobante importado.
type ComprobantePDFGenerator interface {
	ComprobantePDF(ctx context.Context, c *entity.Comprobante, company *entity.Company) ([]byte, error)
}

// InventoryReportGenerator reportes de inventario valorizado.
type InventoryReportGenerator interface {
	// Anexo2 formato XLSX del inventario permanente valorizado.
	Anexo2(ctx context.Context, company *entity.Company, period string, products []*entity.Product) ([]byte, error)
}

// InventoryPDFGenerator versión imprimible del inventario.
type InventoryPDFGenerator interface {
	InventoryPDF(ctx context.Context, company *entity.Company, period string, products []*entity.Product) ([]byte, error)
}
