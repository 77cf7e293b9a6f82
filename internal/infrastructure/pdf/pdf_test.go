package pdf_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/infrastructure/pdf"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func comprobante() *entity.Comprobante {
	return &entity.Comprobante{
		DocumentType:    "01",
		Serie:           "F001",
		Numero:          "123",
		IssueDate:       time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
		Currency:        "PEN",
		EmitterRUC:      "20100070970",
		EmitterName:     "SUPERMERCADOS PERUANOS S.A.",
		ReceiverDocType: "6",
		ReceiverDoc:     "20131312955",
		ReceiverName:    "CLIENTE S.A.C.",
		BaseAmount:      d("100.00"),
		IGVAmount:       d("18.00"),
		TotalAmount:     d("118.00"),
		SignatureHash:   "abc=",
		Notes:           []string{"Entrega en almacén"},
		Items: []entity.ComprobanteItem{
			{LineNumber: 1, Code: "P1", Description: "Arroz", UnitCode: "KGM", Quantity: d("10"), UnitValue: d("10"), BaseAmount: d("100"), IGVAmount: d("18")},
		},
	}
}

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0.00", pdf.FormatMoney(decimal.Zero))
	assert.Equal(t, "999.50", pdf.FormatMoney(d("999.5")))
	assert.Equal(t, "1,234,567.80", pdf.FormatMoney(d("1234567.8")))
	assert.Equal(t, "-12,000.00", pdf.FormatMoney(d("-12000")))
}

func TestQRContent(t *testing.T) {
	assert.Equal(t,
		"20100070970|01|F001|123|18.00|118.00|2024-03-15|6|20131312955|abc=",
		pdf.QRContent(comprobante()))
}

func TestComprobantePDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	b, err := g.ComprobantePDF(context.Background(), comprobante(), &entity.Company{RazonSocial: "ACME", RUC: "20131312955"})
	require.NoError(t, err)
	assert.True(t, len(b) > 4 && string(b[:4]) == "%PDF")
}

func TestInventoryPDF_GeneraDocumento(t *testing.T) {
	g := pdf.NewMarotoPDFGenerator()
	products := []*entity.Product{{Code: "A1", Description: "Cemento", ExistenceType: "01", UnitCode: "BX", Quantity: d("5"), UnitCost: d("25.5")}}
	b, err := g.InventoryPDF(context.Background(), &entity.Company{RazonSocial: "ACME", RUC: "20131312955"}, "2024-03", products)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(b[:4]))
}
