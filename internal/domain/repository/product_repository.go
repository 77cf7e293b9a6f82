package repository

import (
	"context"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para existencias.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	Update(ctx context.Context, p *entity.Product) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (ingresos concurrentes).
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Product, error)
	Delete(ctx context.Context, companyID, id string) error
}
