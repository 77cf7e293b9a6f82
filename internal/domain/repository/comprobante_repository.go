package repository

import (
	"context"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// ComprobanteRepository define el puerto de persistencia para comprobantes y sus líneas.
type ComprobanteRepository interface {
	// Insert persiste cabecera y líneas. Devuelve inserted=false (sin error) si
	// ya existe un comprobante con la misma clave de deduplicación.
	Insert(ctx context.Context, c *entity.Comprobante) (inserted bool, err error)
	GetByID(ctx context.Context, companyID, id string) (*entity.Comprobante, error)
	List(ctx context.Context, companyID string, f entity.ComprobanteFilter) ([]*entity.Comprobante, int, error)
	// ListByPeriod devuelve todos los comprobantes (sin líneas) de un periodo YYYY-MM.
	ListByPeriod(ctx context.Context, companyID, period string) ([]*entity.Comprobante, error)
	SoftDelete(ctx context.Context, companyID, id string) error
	// StorageBytes suma el tamaño de los documentos originales de la empresa.
	StorageBytes(ctx context.Context, companyID string) (int64, int, error)
}
