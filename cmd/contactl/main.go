// contactl herramienta de operación de ContaPerú: migraciones, alta de
// empresas y usuarios, importación masiva de comprobantes y el escáner de alertas.
//
//	contactl migrate up
//	contactl company create --ruc 20100070970 --name "ACME S.A.C."
//	contactl user create --company <id> --email ops@acme.pe --role superadmin
//	contactl import --company <id> ./xml/*.zip
//	contactl tenders load licitaciones.json
//	contactl alerts scan
//
// La configuración se lee de las mismas variables de entorno que la API.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"

	"github.com/contaperu/contaperu-api/internal/infrastructure/postgres"
	"github.com/contaperu/contaperu-api/pkg/config"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

var rootCmd = &cobra.Command{
	Use:           "contactl",
	Short:         "Operación de ContaPerú",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

// env dependencias comunes de los subcomandos.
type env struct {
	cfg  *config.Config
	log  *logger.Logger
	pool *pgxpool.Pool
}

// setup carga configuración y logger; con withDB abre además el pool.
func setup(ctx context.Context, withDB bool) (*env, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: "info"})
	e := &env{cfg: cfg, log: log}
	if !withDB {
		return e, func() {}, nil
	}
	pool, err := postgres.NewPool(ctx, cfg.DB, log)
	if err != nil {
		return nil, nil, err
	}
	e.pool = pool
	return e, pool.Close, nil
}
