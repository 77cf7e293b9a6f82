package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product existencia del inventario valorizado (Anexo 2 / PLE).
type Product struct {
	ID            string
	CompanyID     string
	Code          string // único por empresa
	Description   string
	ExistenceType string // tabla 5
	UnitCode      string // tabla 6
	Quantity      decimal.Decimal
	UnitCost      decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// TotalCost cantidad × costo unitario, redondeado a 2 decimales.
func (p *Product) TotalCost() decimal.Decimal {
	return p.Quantity.Mul(p.UnitCost).Round(2)
}
