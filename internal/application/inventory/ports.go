package inventory

import (
	"context"

	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción con el repositorio de
// existencias atado a ella. Commit si fn devuelve nil; Rollback en otro caso.
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(products repository.ProductRepository) error) error
}
