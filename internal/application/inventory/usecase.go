// Package inventory administra las existencias valorizadas de la empresa
// (costo promedio ponderado) y sus reportes.
package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/inventory"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// ProductUseCase CRUD de existencias e ingresos/salidas al costo promedio.
type ProductUseCase struct {
	products repository.ProductRepository
	tx       TxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(products repository.ProductRepository, tx TxRunner) *ProductUseCase {
	return &ProductUseCase{products: products, tx: tx}
}

// Create registra una existencia con su saldo inicial.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	if in.Quantity.IsNegative() || in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: cantidad y costo no pueden ser negativos", domain.ErrInvalidInput)
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		CompanyID:     companyID,
		Code:          strings.TrimSpace(in.Code),
		Description:   strings.TrimSpace(in.Description),
		ExistenceType: in.ExistenceType,
		UnitCode:      strings.ToUpper(strings.TrimSpace(in.UnitCode)),
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// Update aplica los campos presentes en in.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if in.Code != nil {
		p.Code = strings.TrimSpace(*in.Code)
	}
	if in.Description != nil {
		p.Description = strings.TrimSpace(*in.Description)
	}
	if in.ExistenceType != nil {
		p.ExistenceType = *in.ExistenceType
	}
	if in.UnitCode != nil {
		p.UnitCode = strings.ToUpper(strings.TrimSpace(*in.UnitCode))
	}
	if in.Quantity != nil {
		if in.Quantity.IsNegative() {
			return nil, fmt.Errorf("%w: cantidad negativa", domain.ErrInvalidInput)
		}
		p.Quantity = *in.Quantity
	}
	if in.UnitCost != nil {
		if in.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: costo negativo", domain.ErrInvalidInput)
		}
		p.UnitCost = *in.UnitCost
	}
	p.UpdatedAt = time.Now()
	if err := uc.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// Get devuelve una existencia de la empresa.
func (uc *ProductUseCase) Get(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	p, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToProductResponse(p), nil
}

// List existencias de la empresa ordenadas por código.
func (uc *ProductUseCase) List(ctx context.Context, companyID string) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *ToProductResponse(p))
	}
	return out, nil
}

// Delete elimina una existencia.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.products.Delete(ctx, companyID, id)
}

// RegisterEntry suma un ingreso y recalcula el costo unitario por promedio
// ponderado. La fila queda bloqueada durante la transacción.
func (uc *ProductUseCase) RegisterEntry(ctx context.Context, companyID, id string, in dto.RegisterEntryRequest) (*dto.ProductResponse, error) {
	if !in.Quantity.IsPositive() || in.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: el ingreso requiere cantidad positiva y costo no negativo", domain.ErrInvalidInput)
	}
	var out *entity.Product
	err := uc.tx.RunInventory(ctx, func(products repository.ProductRepository) error {
		p, err := lockProduct(ctx, products, companyID, id)
		if err != nil {
			return err
		}
		p.UnitCost = inventory.WeightedAverageCost(p.Quantity, p.UnitCost, in.Quantity, in.UnitCost)
		p.Quantity = p.Quantity.Add(in.Quantity)
		p.UpdatedAt = time.Now()
		out = p
		return products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(out), nil
}

// RegisterExit descuenta una salida al costo promedio vigente. No permite saldo negativo.
func (uc *ProductUseCase) RegisterExit(ctx context.Context, companyID, id string, in dto.RegisterExitRequest) (*dto.ProductResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: la salida requiere cantidad positiva", domain.ErrInvalidInput)
	}
	var out *entity.Product
	err := uc.tx.RunInventory(ctx, func(products repository.ProductRepository) error {
		p, err := lockProduct(ctx, products, companyID, id)
		if err != nil {
			return err
		}
		if p.Quantity.LessThan(in.Quantity) {
			return fmt.Errorf("%w: stock %s insuficiente para salida de %s", domain.ErrConflict, p.Quantity, in.Quantity)
		}
		p.Quantity = p.Quantity.Sub(in.Quantity)
		if p.Quantity.IsZero() {
			p.UnitCost = decimal.Zero
		}
		p.UpdatedAt = time.Now()
		out = p
		return products.Update(ctx, p)
	})
	if err != nil {
		return nil, err
	}
	return ToProductResponse(out), nil
}

func (uc *ProductUseCase) get(ctx context.Context, companyID, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("existencia: %w", domain.ErrNotFound)
	}
	return p, nil
}

func lockProduct(ctx context.Context, products repository.ProductRepository, companyID, id string) (*entity.Product, error) {
	p, err := products.GetForUpdate(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("existencia: %w", domain.ErrNotFound)
	}
	return p, nil
}

// ToProductResponse mapea la entidad al DTO.
func ToProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:            p.ID,
		Code:          p.Code,
		Description:   p.Description,
		ExistenceType: p.ExistenceType,
		UnitCode:      p.UnitCode,
		Quantity:      p.Quantity,
		UnitCost:      p.UnitCost,
		TotalCost:     p.TotalCost(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
