package ubl

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/pkg/logger"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// ErrMalformedXML el contenido no es XML bien formado.
var ErrMalformedXML = errors.New("ubl: XML mal formado")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Decoder convierte XML UBL de SUNAT en ParsedDocument. Es seguro para uso concurrente.
type Decoder struct {
	log *logger.Logger
}

// NewDecoder construye el decodificador.
func NewDecoder(log *logger.Logger) *Decoder {
	return &Decoder{log: logger.OrNop(log).Component("ubl")}
}

// Parse es el punto de entrada tolerante del paquete: decodifica el documento y
// devuelve nil si está mal formado o la raíz no es Invoice/CreditNote/DebitNote.
// El motivo queda registrado en el log. Sirve a los llamadores que omiten los
// documentos inválidos sin reportarlos; la importación por lotes usa Decode
// porque necesita el motivo de cada rechazo.
func (d *Decoder) Parse(data []byte) (doc *ParsedDocument) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error().Interface("panic", r).Int("bytes", len(data)).Msg("pánico al decodificar comprobante")
			doc = nil
		}
	}()
	parsed, err := d.Decode(data)
	if err != nil {
		d.log.Warn().Err(err).Int("bytes", len(data)).Msg("comprobante XML descartado")
		return nil
	}
	return parsed
}

// Decode es la forma estricta de Parse: devuelve el motivo del rechazo como error.
func (d *Decoder) Decode(data []byte) (*ParsedDocument, error) {
	data = bytes.TrimPrefix(data, utf8BOM)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("%w: contenido vacío", domain.ErrUnrecognizedDocument)
	}

	xdoc := etree.NewDocument()
	xdoc.ReadSettings.CharsetReader = charsetReader
	if err := xdoc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
	}
	root := xdoc.Root()
	if root == nil {
		return nil, fmt.Errorf("%w: sin elemento raíz", domain.ErrUnrecognizedDocument)
	}

	var shape docShape
	switch root.Tag {
	case RootInvoice:
		shape = docShape{docType: invoiceTypeCode(root), lineTag: "InvoiceLine", qtyTag: "InvoicedQuantity", totalTag: "LegalMonetaryTotal"}
	case RootCreditNote:
		shape = docShape{docType: sunat.DocTypeNotaCredito, lineTag: "CreditNoteLine", qtyTag: "CreditedQuantity", totalTag: "LegalMonetaryTotal"}
	case RootDebitNote:
		shape = docShape{docType: sunat.DocTypeNotaDebito, lineTag: "DebitNoteLine", qtyTag: "DebitedQuantity", totalTag: "RequestedMonetaryTotal"}
	default:
		return nil, fmt.Errorf("%w: raíz <%s>", domain.ErrUnrecognizedDocument, root.Tag)
	}

	out := &ParsedDocument{
		RootElement:  root.Tag,
		UBLVersion:   text(root, "UBLVersionID"),
		DocumentType: shape.docType,
		Currency:     text(root, "DocumentCurrencyCode"),
	}
	if out.Currency == "" {
		out.Currency = "PEN"
	}

	id := text(root, "ID")
	if id == "" {
		return nil, fmt.Errorf("%w: falta cbc:ID", domain.ErrUnrecognizedDocument)
	}
	out.Serie, out.Numero = splitDocumentID(id)

	issue, err := parseDate(text(root, "IssueDate"))
	if err != nil {
		return nil, fmt.Errorf("ubl: %s: fecha de emisión inválida: %w", id, err)
	}
	out.IssueDate = issue
	out.DueDate = dueDate(root)

	out.Emitter = supplierParty(root)
	out.Receiver = customerParty(root)

	extractTotals(root, shape.totalTag, out)
	out.Lines = extractLines(root, shape)
	out.Notes = filterNotes(children(root, "Note"))
	extractNoteReferences(root, out)

	out.SignatureHash = signatureHash(root)
	out.Fingerprint = Fingerprint(data)
	return out, nil
}

type docShape struct {
	docType  string
	lineTag  string
	qtyTag   string
	totalTag string
}

// invoiceTypeCode deriva 01 (factura) o 03 (boleta) de cbc:InvoiceTypeCode.
func invoiceTypeCode(root *etree.Element) string {
	if text(root, "InvoiceTypeCode") == sunat.DocTypeBoleta {
		return sunat.DocTypeBoleta
	}
	return sunat.DocTypeFactura
}

// splitDocumentID separa "F001-00000123" en ("F001", "123").
func splitDocumentID(id string) (serie, numero string) {
	id = strings.TrimSpace(id)
	idx := strings.Index(id, "-")
	if idx < 0 {
		return "", normalizeNumero(id)
	}
	return strings.ToUpper(id[:idx]), normalizeNumero(id[idx+1:])
}

func normalizeNumero(n string) string {
	n = strings.TrimSpace(n)
	trimmed := strings.TrimLeft(n, "0")
	if trimmed == "" && n != "" {
		return "0"
	}
	return trimmed
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if len(s) > 10 {
		s = s[:10]
	}
	return time.Parse("2006-01-02", s)
}

func dueDate(root *etree.Element) *time.Time {
	for _, raw := range []string{text(root, "DueDate"), text(root, "PaymentTerms", "PaymentDueDate")} {
		if raw == "" {
			continue
		}
		if t, err := parseDate(raw); err == nil {
			return &t
		}
	}
	return nil
}

func supplierParty(root *etree.Element) Party {
	sp := child(root, "AccountingSupplierParty")
	p := partyFrom(child(sp, "Party"))
	if p.DocNumber == "" {
		// UBL 2.0: cbc:CustomerAssignedAccountID + cbc:AdditionalAccountID
		p.DocNumber = text(sp, "CustomerAssignedAccountID")
		p.DocType = text(sp, "AdditionalAccountID")
	}
	if p.DocType == "" && p.DocNumber != "" {
		p.DocType = sunat.IdentityRUC
	}
	return p
}

func customerParty(root *etree.Element) Party {
	cp := child(root, "AccountingCustomerParty")
	p := partyFrom(child(cp, "Party"))
	if p.DocNumber == "" {
		p.DocNumber = text(cp, "CustomerAssignedAccountID")
		p.DocType = text(cp, "AdditionalAccountID")
	}
	return p
}

func partyFrom(party *etree.Element) Party {
	if party == nil {
		return Party{}
	}
	var p Party
	if idEl := child(party, "PartyIdentification", "ID"); idEl != nil {
		p.DocNumber = strings.TrimSpace(idEl.Text())
		p.DocType = strings.TrimSpace(idEl.SelectAttrValue("schemeID", ""))
	}
	p.Name = text(party, "PartyLegalEntity", "RegistrationName")
	if p.Name == "" {
		p.Name = text(party, "PartyName", "Name")
	}
	return p
}

// extractTotals aplica la conciliación defensiva de montos:
// total = PayableAmount (o TaxInclusiveAmount); base = LineExtensionAmount, o la
// suma de bases imponibles, o total - impuesto si no hay subtotal.
func extractTotals(root *etree.Element, totalTag string, out *ParsedDocument) {
	mt := child(root, totalTag)

	total, ok := amountOK(child(mt, "PayableAmount"))
	if !ok {
		total, ok = amountOK(child(mt, "TaxInclusiveAmount"))
	}
	hasTotal := ok

	var tax, igv, taxable decimal.Decimal
	hasTax, hasTaxable, hasSubtotals := false, false, false
	for _, tt := range children(root, "TaxTotal") {
		if v, ok := amountOK(child(tt, "TaxAmount")); ok {
			tax = tax.Add(v)
			hasTax = true
		}
		for _, sub := range children(tt, "TaxSubtotal") {
			hasSubtotals = true
			base, baseOK := amountOK(child(sub, "TaxableAmount"))
			scheme := taxSchemeID(sub)
			switch scheme {
			case sunat.TaxIGV, sunat.TaxIVAP:
				igv = igv.Add(amount(child(sub, "TaxAmount")))
			case sunat.TaxExonerated:
				out.Exonerated = out.Exonerated.Add(base)
			case sunat.TaxUnaffected, sunat.TaxExport:
				out.Unaffected = out.Unaffected.Add(base)
			}
			if baseOK && scheme != sunat.TaxFree && scheme != sunat.TaxICBPER {
				taxable = taxable.Add(base)
				hasTaxable = true
			}
		}
	}

	base, hasBase := amountOK(child(mt, "LineExtensionAmount"))
	if !hasBase || base.IsZero() {
		switch {
		case hasTaxable && !taxable.IsZero():
			base, hasBase = taxable, true
		case hasTotal:
			base, hasBase = total.Sub(tax), true
		}
	}
	if !hasTax && hasTotal && hasBase {
		tax = total.Sub(base)
	}
	if !hasTotal {
		total = base.Add(tax)
	}
	// Sin desglose por tributo se asume que todo el impuesto es IGV. Con desglose,
	// ICBPER e ISC nunca cuentan como IGV.
	if !hasSubtotals {
		igv = tax
	}

	out.Base = base
	out.Tax = tax
	out.IGV = igv
	out.Total = total
}

func taxSchemeID(sub *etree.Element) string {
	return text(sub, "TaxCategory", "TaxScheme", "ID")
}

// affectationCode toma el código de afectación (catálogo 07) del primer
// subtotal de la línea que no sea ICBPER.
func affectationCode(line *etree.Element) string {
	for _, tt := range children(line, "TaxTotal") {
		for _, sub := range children(tt, "TaxSubtotal") {
			if taxSchemeID(sub) == sunat.TaxICBPER {
				continue
			}
			if code := text(sub, "TaxCategory", "TaxExemptionReasonCode"); code != "" {
				return code
			}
		}
	}
	return ""
}

func extractLines(root *etree.Element, shape docShape) []ParsedLine {
	raw := children(root, shape.lineTag)
	lines := make([]ParsedLine, 0, len(raw))
	for i, el := range raw {
		l := ParsedLine{LineNumber: i + 1}
		if n, err := strconv.Atoi(text(el, "ID")); err == nil && n > 0 {
			l.LineNumber = n
		}
		if q := child(el, shape.qtyTag); q != nil {
			l.Quantity = amount(q)
			l.UnitCode = strings.TrimSpace(q.SelectAttrValue("unitCode", ""))
		}
		l.BaseAmount = amount(child(el, "LineExtensionAmount"))
		l.TaxAmount = amount(child(el, "TaxTotal", "TaxAmount"))
		l.IGVAffectationCode = affectationCode(el)

		item := child(el, "Item")
		var desc []string
		for _, d := range children(item, "Description") {
			if s := strings.TrimSpace(d.Text()); s != "" {
				desc = append(desc, s)
			}
		}
		l.Description = strings.Join(desc, " ")
		l.Code = text(item, "SellersItemIdentification", "ID")

		l.UnitValue = amount(child(el, "Price", "PriceAmount"))
		for _, acp := range children(child(el, "PricingReference"), "AlternativeConditionPrice") {
			if text(acp, "PriceTypeCode") == "01" {
				l.UnitPrice = amount(child(acp, "PriceAmount"))
				break
			}
		}
		lines = append(lines, l)
	}
	return lines
}

func extractNoteReferences(root *etree.Element, out *ParsedDocument) {
	for _, br := range children(root, "BillingReference") {
		if id := text(br, "InvoiceDocumentReference", "ID"); id != "" {
			out.ReferenceDocument = id
			break
		}
	}
	if dr := child(root, "DiscrepancyResponse"); dr != nil {
		out.NoteReasonCode = text(dr, "ResponseCode")
		out.NoteReason = text(dr, "Description")
		if out.ReferenceDocument == "" {
			out.ReferenceDocument = text(dr, "ReferenceID")
		}
	}
}

// charsetReader admite comprobantes declarados en ISO-8859-1 / Windows-1252.
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return transform.NewReader(input, charmap.ISO8859_1.NewDecoder()), nil
	case "windows-1252", "cp1252":
		return transform.NewReader(input, charmap.Windows1252.NewDecoder()), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("ubl: codificación no soportada %q", label)
}

// ── navegación por nombre local (los prefijos varían entre emisores) ─────────

func child(el *etree.Element, path ...string) *etree.Element {
	cur := el
	for _, name := range path {
		if cur == nil {
			return nil
		}
		var next *etree.Element
		for _, c := range cur.ChildElements() {
			if c.Tag == name {
				next = c
				break
			}
		}
		cur = next
	}
	return cur
}

func children(el *etree.Element, name string) []*etree.Element {
	if el == nil {
		return nil
	}
	var out []*etree.Element
	for _, c := range el.ChildElements() {
		if c.Tag == name {
			out = append(out, c)
		}
	}
	return out
}

func text(el *etree.Element, path ...string) string {
	e := child(el, path...)
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}

func amountOK(el *etree.Element) (decimal.Decimal, bool) {
	if el == nil {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(strings.TrimSpace(el.Text()))
	if err != nil {
		return decimal.Zero, false
	}
	return v, true
}

func amount(el *etree.Element) decimal.Decimal {
	v, _ := amountOK(el)
	return v
}
