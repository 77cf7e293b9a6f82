package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// InventoryPDF genera el inventario valorizado imprimible del periodo.
func (g *MarotoPDFGenerator) InventoryPDF(
	_ context.Context,
	company *entity.Company,
	period string,
	products []*entity.Product,
) ([]byte, error) {
	if company == nil {
		return nil, fmt.Errorf("pdf: empresa nil")
	}
	m := maroto.New(baseConfig("Inventario valorizado "+period, company.RazonSocial))

	m.AddRows(row.New(18).Add(
		col.New(8).Add(
			text.New(company.RazonSocial, props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+company.RUC, props.Text{Size: 9, Top: 9, Color: colorGray}),
		),
		col.New(4).Add(
			text.New("INVENTARIO VALORIZADO", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Periodo: "+period, props.Text{Size: 9, Align: align.Right, Top: 8}),
		),
	))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(inventoryHeaderRow())
	total := decimal.Zero
	for _, p := range products {
		m.AddRows(inventoryRow(p))
		total = total.Add(p.TotalCost())
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(8).Add(
		col.New(9).Add(text.New("COSTO TOTAL GENERAL", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
		})),
		col.New(3).Add(text.New("S/ "+FormatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Right: 1, Top: 1,
		})),
	))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar inventario: %w", err)
	}
	return doc.GetBytes(), nil
}

func inventoryHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Descripción", 4, align.Left),
		h("Tipo", 1, align.Center),
		h("Unid.", 1, align.Center),
		h("Cantidad", 1, align.Right),
		h("C. Unit.", 1, align.Right),
		h("Costo total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func inventoryRow(p *entity.Product) core.Row {
	cell := func(s string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(p.Code, 2, align.Left),
		cell(p.Description, 4, align.Left),
		cell(p.ExistenceType, 1, align.Center),
		cell(nonEmpty(p.UnitCode, sunat.UnitNIU), 1, align.Center),
		cell(p.Quantity.String(), 1, align.Right),
		cell(FormatMoney(p.UnitCost), 1, align.Right),
		cell(FormatMoney(p.TotalCost()), 2, align.Right),
	)
}
