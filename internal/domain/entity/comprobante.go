package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dirección del comprobante respecto de la empresa que lo importa.
const (
	DirectionVenta  = "VENTA"  // la empresa es el emisor
	DirectionCompra = "COMPRA" // la empresa es el adquiriente
)

// Comprobante es un comprobante electrónico SUNAT importado (factura, boleta, nota).
// La clave de deduplicación es (CompanyID, EmitterRUC, DocumentType, Serie, Numero).
type Comprobante struct {
	ID                string
	CompanyID         string
	Direction         string
	DocumentType      string // catálogo 01
	Serie             string
	Numero            string
	IssueDate         time.Time
	DueDate           *time.Time
	Currency          string
	EmitterRUC        string
	EmitterName       string
	ReceiverDocType   string // catálogo 06
	ReceiverDoc       string
	ReceiverName      string
	BaseAmount        decimal.Decimal
	IGVAmount         decimal.Decimal
	TotalAmount       decimal.Decimal
	ExoneratedAmount  decimal.Decimal
	UnaffectedAmount  decimal.Decimal
	Notes             []string
	ReferenceDocument string // documento afectado (notas)
	NoteReasonCode    string // catálogos 09/10
	NoteReason        string
	SignatureHash     string
	Fingerprint       string
	StorageKey        string
	SourceFilename    string
	SizeBytes         int64
	Items             []ComprobanteItem
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// DocumentNumber devuelve serie-número (ej. F001-123).
func (c *Comprobante) DocumentNumber() string {
	if c.Serie == "" {
		return c.Numero
	}
	return c.Serie + "-" + c.Numero
}

// ComprobanteItem línea de detalle de un comprobante.
type ComprobanteItem struct {
	ID                 string
	ComprobanteID      string
	LineNumber         int
	Code               string
	Description        string
	UnitCode           string
	Quantity           decimal.Decimal
	UnitValue          decimal.Decimal // valor unitario sin impuestos
	UnitPrice          decimal.Decimal // precio unitario con impuestos
	BaseAmount         decimal.Decimal
	IGVAmount          decimal.Decimal
	TotalAmount        decimal.Decimal
	IGVAffectationCode string // catálogo 07
}

// ComprobanteFilter filtros de listado.
type ComprobanteFilter struct {
	Period       string // YYYY-MM
	Direction    string
	DocumentType string
	RUC          string // emisor o receptor
	Limit        int
	Offset       int
}
