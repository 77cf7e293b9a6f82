package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/contaperu/contaperu-api/internal/application/comprobante"
	"github.com/contaperu/contaperu-api/internal/application/inventory"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

var (
	_ comprobante.TxRunner = (*TxRunner)(nil)
	_ inventory.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run ejecuta fn con un repositorio de comprobantes atado a la tx. Con FailFast
// el lote completo se importa aquí: cualquier error deshace todo el lote.
func (r *TxRunner) Run(ctx context.Context, fn func(repo repository.ComprobanteRepository) error) error {
	return r.within(ctx, func(q Querier) error {
		return fn(NewComprobanteRepository(q))
	})
}

// RunInventory ejecuta fn con el repositorio de existencias atado a la tx.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(products repository.ProductRepository) error) error {
	return r.within(ctx, func(q Querier) error {
		return fn(NewProductRepository(q))
	})
}

func (r *TxRunner) within(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
