// Package ubl decodifica comprobantes electrónicos SUNAT en formato UBL 2.0/2.1
// (Invoice, CreditNote, DebitNote) hacia un registro plano.
package ubl

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// Namespaces UBL 2.1 usados por SUNAT.
const (
	NsInvoice    = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	NsCreditNote = "urn:oasis:names:specification:ubl:schema:xsd:CreditNote-2"
	NsDebitNote  = "urn:oasis:names:specification:ubl:schema:xsd:DebitNote-2"
	NsCac        = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	NsCbc        = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	NsExt        = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	NsDs         = "http://www.w3.org/2000/09/xmldsig#"
)

// Elementos raíz reconocidos.
const (
	RootInvoice    = "Invoice"
	RootCreditNote = "CreditNote"
	RootDebitNote  = "DebitNote"
)

// DefaultTolerance diferencia máxima aceptada entre base + impuesto y total (redondeos SUNAT).
var DefaultTolerance = decimal.RequireFromString("0.05")

// Party emisor o receptor del comprobante.
type Party struct {
	DocType   string // catálogo 06 (schemeID)
	DocNumber string
	Name      string
}

// ParsedLine línea del comprobante tal como viene en el XML.
type ParsedLine struct {
	LineNumber         int
	Code               string
	Description        string
	UnitCode           string
	Quantity           decimal.Decimal
	UnitValue          decimal.Decimal
	UnitPrice          decimal.Decimal
	BaseAmount         decimal.Decimal
	TaxAmount          decimal.Decimal
	IGVAffectationCode string
}

// ParsedDocument registro unificado de Invoice, CreditNote y DebitNote.
type ParsedDocument struct {
	RootElement       string
	UBLVersion        string
	DocumentType      string // 01, 03, 07, 08
	Serie             string
	Numero            string
	IssueDate         time.Time
	DueDate           *time.Time
	Currency          string
	Emitter           Party
	Receiver          Party
	Base              decimal.Decimal // subtotal (valor de venta)
	Tax               decimal.Decimal // total de tributos del documento
	IGV               decimal.Decimal // tributos 1000/1016
	Total             decimal.Decimal // importe total a pagar
	Exonerated        decimal.Decimal
	Unaffected        decimal.Decimal
	Lines             []ParsedLine
	Notes             []string
	ReferenceDocument string
	NoteReasonCode    string
	NoteReason        string
	SignatureHash     string
	Fingerprint       string
}

// DocumentNumber devuelve serie-número.
func (d *ParsedDocument) DocumentNumber() string {
	if d.Serie == "" {
		return d.Numero
	}
	return d.Serie + "-" + d.Numero
}

// Reconciles informa si base + impuesto coincide con el total dentro de la tolerancia.
func (d *ParsedDocument) Reconciles(tolerance decimal.Decimal) bool {
	return d.Base.Add(d.Tax).Sub(d.Total).Abs().LessThanOrEqual(tolerance)
}

// ToComprobante convierte el documento en la entidad persistible (sin empresa ni dirección).
func (d *ParsedDocument) ToComprobante() *entity.Comprobante {
	c := &entity.Comprobante{
		DocumentType:      d.DocumentType,
		Serie:             d.Serie,
		Numero:            d.Numero,
		IssueDate:         d.IssueDate,
		DueDate:           d.DueDate,
		Currency:          d.Currency,
		EmitterRUC:        d.Emitter.DocNumber,
		EmitterName:       d.Emitter.Name,
		ReceiverDocType:   d.Receiver.DocType,
		ReceiverDoc:       d.Receiver.DocNumber,
		ReceiverName:      d.Receiver.Name,
		BaseAmount:        d.Base,
		IGVAmount:         d.IGV,
		TotalAmount:       d.Total,
		ExoneratedAmount:  d.Exonerated,
		UnaffectedAmount:  d.Unaffected,
		Notes:             append([]string(nil), d.Notes...),
		ReferenceDocument: d.ReferenceDocument,
		NoteReasonCode:    d.NoteReasonCode,
		NoteReason:        d.NoteReason,
		SignatureHash:     d.SignatureHash,
		Fingerprint:       d.Fingerprint,
	}
	c.Items = make([]entity.ComprobanteItem, 0, len(d.Lines))
	for _, l := range d.Lines {
		c.Items = append(c.Items, entity.ComprobanteItem{
			LineNumber:         l.LineNumber,
			Code:               l.Code,
			Description:        l.Description,
			UnitCode:           l.UnitCode,
			Quantity:           l.Quantity,
			UnitValue:          l.UnitValue,
			UnitPrice:          l.UnitPrice,
			BaseAmount:         l.BaseAmount,
			IGVAmount:          l.TaxAmount,
			TotalAmount:        l.BaseAmount.Add(l.TaxAmount),
			IGVAffectationCode: l.IGVAffectationCode,
		})
	}
	return c
}
