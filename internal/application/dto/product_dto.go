package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear una existencia.
type CreateProductRequest struct {
	Code          string          `json:"code" validate:"required,min=1,max=50"`
	Description   string          `json:"description" validate:"required,min=1,max=300"`
	ExistenceType string          `json:"existence_type" validate:"required,oneof=01 02 03 04 05 06 07 99"`
	UnitCode      string          `json:"unit_code" validate:"required,max=5"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
}

// UpdateProductRequest entrada para actualizar una existencia (campos opcionales).
type UpdateProductRequest struct {
	Code          *string          `json:"code" validate:"omitempty,min=1,max=50"`
	Description   *string          `json:"description" validate:"omitempty,min=1,max=300"`
	ExistenceType *string          `json:"existence_type" validate:"omitempty,oneof=01 02 03 04 05 06 07 99"`
	UnitCode      *string          `json:"unit_code" validate:"omitempty,max=5"`
	Quantity      *decimal.Decimal `json:"quantity"`
	UnitCost      *decimal.Decimal `json:"unit_cost"`
}

// ProductResponse salida de una existencia.
type ProductResponse struct {
	ID            string          `json:"id"`
	Code          string          `json:"code"`
	Description   string          `json:"description"`
	ExistenceType string          `json:"existence_type"`
	UnitCode      string          `json:"unit_code"`
	Quantity      decimal.Decimal `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
