package dto

import "github.com/shopspring/decimal"

// DeclarationResponse resumen mensual para el PDT 621 (IGV).
type DeclarationResponse struct {
	Period             string          `json:"period"`
	SalesBase          decimal.Decimal `json:"sales_base"`
	SalesIGV           decimal.Decimal `json:"sales_igv"`
	SalesExonerated    decimal.Decimal `json:"sales_exonerated"`
	SalesUnaffected    decimal.Decimal `json:"sales_unaffected"`
	PurchasesBase      decimal.Decimal `json:"purchases_base"`
	PurchasesIGV       decimal.Decimal `json:"purchases_igv"`
	PreviousCredit     decimal.Decimal `json:"previous_credit"`
	IGVPayable         decimal.Decimal `json:"igv_payable"`
	CreditCarryforward decimal.Decimal `json:"credit_carryforward"`
	SalesCount         int             `json:"sales_count"`
	PurchasesCount     int             `json:"purchases_count"`
	ForeignCurrency    int             `json:"foreign_currency_documents"`
}
