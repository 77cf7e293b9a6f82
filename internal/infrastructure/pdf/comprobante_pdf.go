// Package pdf genera las representaciones impresas con Maroto v2: el comprobante
// importado y el inventario valorizado.
//
// Layout del comprobante (A4):
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Emisor + RUC        │  Tipo + Serie-Número + Fecha │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ADQUIRIENTE: Nombre + Doc. identidad + Moneda               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Unid | Descripción | V.Unit | IGV | Importe   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Gravado / Exonerado / Inafecto / IGV / TOTAL       │
//	│  NOTAS                                                       │
//	│  FOOTER: QR SUNAT + valor resumen (hash de firma)            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	mentity "github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

var (
	_ ports.ComprobantePDFGenerator = (*MarotoPDFGenerator)(nil)
	_ ports.InventoryPDFGenerator   = (*MarotoPDFGenerator)(nil)
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 155, Green: 28, Blue: 31}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa los generadores PDF usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// ComprobantePDF genera la representación impresa de un comprobante importado.
func (g *MarotoPDFGenerator) ComprobantePDF(
	_ context.Context,
	c *entity.Comprobante,
	company *entity.Company,
) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("pdf: comprobante nil")
	}
	author := c.EmitterName
	if company != nil {
		author = company.RazonSocial
	}
	m := maroto.New(baseConfig(documentTitle(c.DocumentType), author))

	m.AddRows(headerRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(receiverRow(c))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(itemsHeaderRow())
	m.AddRows(itemRows(c.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(c))
	if r := referenceRow(c); r != nil {
		m.AddRows(r)
	}
	m.AddRows(notesRows(c.Notes)...)

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(c))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func baseConfig(title, author string) *mentity.Config {
	return config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(author, true).
		Build()
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: emisor + RUC (izq) y recuadro con tipo, número y fecha (der).
func headerRow(c *entity.Comprobante) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(nonEmpty(c.EmitterName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 12, Color: colorPrimary, Top: 1,
			}),
			text.New("RUC: "+c.EmitterRUC, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(strings.ToUpper(documentTitle(c.DocumentType))+" ELECTRÓNICA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(c.DocumentNumber(), props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha de emisión: "+c.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// receiverRow: adquiriente, moneda y vencimiento.
func receiverRow(c *entity.Comprobante) core.Row {
	due := "—"
	if c.DueDate != nil {
		due = c.DueDate.Format("02/01/2006")
	}
	return row.New(16).Add(
		col.New(12).Add(
			text.New("ADQUIRIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(c.ReceiverName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("%s: %s   |   Moneda: %s   |   Vencimiento: %s",
				identityLabel(c.ReceiverDocType),
				nonEmpty(c.ReceiverDoc, "—"),
				c.Currency,
				due,
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// itemsHeaderRow: cabecera de la tabla de detalles.
func itemsHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Unid.", 1, align.Center),
		h("Descripción", 5, align.Left),
		h("V. Unit.", 2, align.Right),
		h("IGV", 1, align.Right),
		h("Importe", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// itemRows: una fila por línea de detalle.
func itemRows(items []entity.ComprobanteItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		desc := it.Description
		if it.Code != "" {
			desc = it.Code + " - " + desc
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(it.Quantity.String(),
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(it.UnitCode,
				props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(5).Add(text.New(desc,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(FormatMoney(it.UnitValue),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(FormatMoney(it.IGVAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(FormatMoney(it.BaseAmount),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(c *entity.Comprobante) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(d decimal.Decimal, top float64) core.Component {
		return text.New(c.Currency+" "+FormatMoney(d), props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	taxable := c.BaseAmount.Sub(c.ExoneratedAmount).Sub(c.UnaffectedAmount)

	return row.New(28).Add(
		col.New(4),
		col.New(4).Add(
			label("Op. gravadas:"),
			text.New("Op. exoneradas:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("Op. inafectas:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 10}),
			text.New("IGV:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 15}),
			text.New("IMPORTE TOTAL:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 21,
			}),
		),
		col.New(4).Add(
			value(taxable, 0),
			value(c.ExoneratedAmount, 5),
			value(c.UnaffectedAmount, 10),
			value(c.IGVAmount, 15),
			text.New(c.Currency+" "+FormatMoney(c.TotalAmount), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 21,
			}),
		),
	)
}

// referenceRow: documento afectado y motivo (notas de crédito y débito).
func referenceRow(c *entity.Comprobante) core.Row {
	if c.ReferenceDocument == "" && c.NoteReason == "" {
		return nil
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Documento que modifica: %s   |   Motivo (%s): %s",
			nonEmpty(c.ReferenceDocument, "—"),
			nonEmpty(c.NoteReasonCode, "—"),
			nonEmpty(c.NoteReason, "—"),
		), props.Text{Size: 8, Top: 2}),
	))
}

func notesRows(notes []string) []core.Row {
	if len(notes) == 0 {
		return nil
	}
	rows := []core.Row{row.New(6).Add(col.New(12).Add(
		text.New("OBSERVACIONES", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2}),
	))}
	for _, n := range notes {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(n, props.Text{Size: 8, Top: 1, Left: 2}),
		)))
	}
	return rows
}

// footerRow: QR con el contenido SUNAT y el valor resumen.
func footerRow(c *entity.Comprobante) core.Row {
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(QRContent(c), props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Representación impresa del comprobante electrónico importado.", props.Text{
				Size: 8, Top: 4, Left: 3, Color: colorGray,
			}),
			text.New("Valor resumen: "+nonEmpty(c.SignatureHash, "—"), props.Text{
				Size: 7, Top: 12, Left: 3,
			}),
			text.New("Huella del XML (SHA-256):", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 20, Left: 3,
			}),
			text.New(nonEmpty(c.Fingerprint, "—"), props.Text{
				Size: 6.5, Top: 25, Left: 3, Color: colorGray,
			}),
		),
	)
}

// QRContent arma el texto del QR según el formato SUNAT:
// RUC|TIPO|SERIE|NUMERO|IGV|TOTAL|FECHA|TIPO DOC ADQ|NUM DOC ADQ|VALOR RESUMEN
func QRContent(c *entity.Comprobante) string {
	return strings.Join([]string{
		c.EmitterRUC,
		c.DocumentType,
		c.Serie,
		c.Numero,
		c.IGVAmount.StringFixed(2),
		c.TotalAmount.StringFixed(2),
		c.IssueDate.Format("2006-01-02"),
		c.ReceiverDocType,
		c.ReceiverDoc,
		c.SignatureHash,
	}, "|")
}

// ── helpers ───────────────────────────────────────────────────────────────────

func documentTitle(docType string) string {
	if name, ok := sunat.DocumentTypeNames[docType]; ok {
		return name
	}
	return "Comprobante"
}

func identityLabel(docType string) string {
	switch docType {
	case sunat.IdentityRUC:
		return "RUC"
	case sunat.IdentityDNI:
		return "DNI"
	case sunat.IdentityCE:
		return "C.E."
	case sunat.IdentityPasaporte:
		return "Pasaporte"
	default:
		return "Doc."
	}
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// FormatMoney formatea con separador de miles "," y 2 decimales.
// Ej: 1234567.8 → "1,234,567.80"
func FormatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	if n <= 3 {
		return sign + intPart + frac
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + frac
}
