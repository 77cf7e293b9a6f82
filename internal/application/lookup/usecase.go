// Package lookup consulta datos de contribuyentes (RUC) y personas (DNI) con
// caché de lectura.
package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/pkg/logger"
	"github.com/contaperu/contaperu-api/pkg/sunat"
)

// DefaultTTL vigencia de una consulta en caché.
const DefaultTTL = 24 * time.Hour

// UseCase consultas RUC/DNI.
type UseCase struct {
	provider ports.TaxpayerLookup
	cache    ports.Cache
	ttl      time.Duration
	log      *logger.Logger
}

// NewUseCase construye el caso de uso; ttl <= 0 usa DefaultTTL.
func NewUseCase(provider ports.TaxpayerLookup, cache ports.Cache, ttl time.Duration, log *logger.Logger) *UseCase {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &UseCase{provider: provider, cache: cache, ttl: ttl, log: logger.OrNop(log).Component("lookup")}
}

// RUC datos del contribuyente. Valida longitud, prefijo y dígito verificador.
func (uc *UseCase) RUC(ctx context.Context, ruc string) (*entity.TaxpayerInfo, error) {
	if err := sunat.ValidateRUC(ruc); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	ruc = sunat.NormalizeDocument(ruc)
	var out entity.TaxpayerInfo
	err := readThrough(ctx, uc, "ruc:"+ruc, &out, func() (any, error) {
		return uc.provider.LookupRUC(ctx, ruc)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// DNI datos de la persona.
func (uc *UseCase) DNI(ctx context.Context, dni string) (*entity.PersonInfo, error) {
	if err := sunat.ValidateDNI(dni); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	dni = sunat.NormalizeDocument(dni)
	var out entity.PersonInfo
	err := readThrough(ctx, uc, "dni:"+dni, &out, func() (any, error) {
		return uc.provider.LookupDNI(ctx, dni)
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// readThrough lee key de la caché en out; si no está, llama a fetch y guarda
// el resultado. Un fallo de la caché no impide la consulta al proveedor.
func readThrough(ctx context.Context, uc *UseCase, key string, out any, fetch func() (any, error)) error {
	if uc.cache != nil {
		raw, ok, err := uc.cache.Get(ctx, key)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("caché de consultas no disponible")
		} else if ok {
			if err := json.Unmarshal(raw, out); err == nil {
				return nil
			}
			uc.log.Warn().Str("key", key).Msg("entrada de caché corrupta; se vuelve a consultar")
		}
	}

	v, err := fetch()
	if err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("consulta %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("consulta %s: %w", key, err)
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, raw, uc.ttl); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar en caché")
		}
	}
	return nil
}
