package dto

import "github.com/shopspring/decimal"

// RegisterEntryRequest body para POST /api/inventory/products/:id/entries.
// El costo unitario del producto se recalcula por promedio ponderado.
type RegisterEntryRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// RegisterExitRequest body para POST /api/inventory/products/:id/exits.
type RegisterExitRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}
