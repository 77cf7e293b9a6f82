package excel_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/infrastructure/excel"
)

func TestAnexo2_Layout(t *testing.T) {
	company := &entity.Company{RUC: "20131312955", RazonSocial: "ACME S.A.C."}
	products := []*entity.Product{
		{Code: "A1", Description: "Cemento", ExistenceType: "01", UnitCode: "BX",
			Quantity: decimal.NewFromInt(10), UnitCost: decimal.RequireFromString("25.50")},
		{Code: "B2", Description: "Fierro 1/2", ExistenceType: "01",
			Quantity: decimal.NewFromInt(4), UnitCost: decimal.RequireFromString("40")},
	}

	b, err := excel.NewAnexo2Generator().Anexo2(context.Background(), company, "2024-03", products)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(b))
	require.NoError(t, err)
	defer f.Close()

	get := func(cell string) string {
		v, err := f.GetCellValue(excel.SheetName, cell)
		require.NoError(t, err)
		return v
	}
	assert.Contains(t, get("A1"), "ANEXO 2")
	assert.Equal(t, "2024-03", get("C2"))
	assert.Equal(t, "20131312955", get("C3"))
	assert.Equal(t, "Código de la existencia", get("B7"))
	assert.Equal(t, "A1", get("B8"))
	assert.Equal(t, "NIU", get("E9"))
	assert.Equal(t, "COSTO TOTAL GENERAL", get("A10"))

	total, err := f.GetCellValue(excel.SheetName, "H10", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "415", total)
}

func TestAnexo2_SinProductos(t *testing.T) {
	b, err := excel.NewAnexo2Generator().Anexo2(context.Background(), &entity.Company{RUC: "20131312955"}, "2024-03", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
}
