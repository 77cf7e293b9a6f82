package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ComprobanteListRequest filtros de GET /api/comprobantes.
type ComprobanteListRequest struct {
	PageRequest
	Period       string `query:"period" validate:"omitempty,period"`
	Direction    string `query:"direction" validate:"omitempty,oneof=VENTA COMPRA"`
	DocumentType string `query:"document_type" validate:"omitempty,oneof=01 03 07 08"`
	RUC          string `query:"ruc" validate:"omitempty,max=15"`
}

// ComprobanteItemResponse línea de detalle.
type ComprobanteItemResponse struct {
	LineNumber         int             `json:"line_number"`
	Code               string          `json:"code"`
	Description        string          `json:"description"`
	UnitCode           string          `json:"unit_code"`
	Quantity           decimal.Decimal `json:"quantity"`
	UnitValue          decimal.Decimal `json:"unit_value"`
	UnitPrice          decimal.Decimal `json:"unit_price"`
	BaseAmount         decimal.Decimal `json:"base_amount"`
	IGVAmount          decimal.Decimal `json:"igv_amount"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	IGVAffectationCode string          `json:"igv_affectation_code"`
}

// ComprobanteResponse salida de un comprobante (items solo en el detalle).
type ComprobanteResponse struct {
	ID                string                    `json:"id"`
	Direction         string                    `json:"direction"`
	DocumentType      string                    `json:"document_type"`
	DocumentTypeName  string                    `json:"document_type_name"`
	Serie             string                    `json:"serie"`
	Numero            string                    `json:"numero"`
	IssueDate         string                    `json:"issue_date"`
	DueDate           *string                   `json:"due_date,omitempty"`
	Currency          string                    `json:"currency"`
	EmitterRUC        string                    `json:"emitter_ruc"`
	EmitterName       string                    `json:"emitter_name"`
	ReceiverDocType   string                    `json:"receiver_doc_type"`
	ReceiverDoc       string                    `json:"receiver_doc"`
	ReceiverName      string                    `json:"receiver_name"`
	BaseAmount        decimal.Decimal           `json:"base_amount"`
	IGVAmount         decimal.Decimal           `json:"igv_amount"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	ExoneratedAmount  decimal.Decimal           `json:"exonerated_amount"`
	UnaffectedAmount  decimal.Decimal           `json:"unaffected_amount"`
	Notes             []string                  `json:"notes"`
	ReferenceDocument string                    `json:"reference_document,omitempty"`
	NoteReasonCode    string                    `json:"note_reason_code,omitempty"`
	NoteReason        string                    `json:"note_reason,omitempty"`
	SignatureHash     string                    `json:"signature_hash"`
	Fingerprint       string                    `json:"fingerprint"`
	SourceFilename    string                    `json:"source_filename"`
	Items             []ComprobanteItemResponse `json:"items,omitempty"`
	CreatedAt         time.Time                 `json:"created_at"`
}

// ComprobanteListResponse lista paginada de comprobantes.
type ComprobanteListResponse struct {
	Items []ComprobanteResponse `json:"items"`
	Page  PageResponse          `json:"page"`
}

// ImportFailure documento que no pudo importarse.
type ImportFailure struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// ImportResult resultado de un lote de importación.
type ImportResult struct {
	Imported   int             `json:"imported"`
	Duplicates int             `json:"duplicates"`
	Failed     []ImportFailure `json:"failed"`
}
