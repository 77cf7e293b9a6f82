package ports

import (
	"context"
	"time"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// TaxpayerLookup proveedor externo de consultas RUC/DNI.
type TaxpayerLookup interface {
	LookupRUC(ctx context.Context, ruc string) (*entity.TaxpayerInfo, error)
	LookupDNI(ctx context.Context, dni string) (*entity.PersonInfo, error)
}

// Cache caché clave/valor con expiración (Redis o memoria).
type Cache interface {
	// Get devuelve ok=false si la clave no existe o expiró.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}
