package comprobante

import (
	"context"

	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con un repositorio atado a ella.
// Se usa en modo FailFast para que el lote completo sea atómico.
type TxRunner interface {
	Run(ctx context.Context, fn func(repo repository.ComprobanteRepository) error) error
}
