package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/contaperu/contaperu-api/internal/application/comprobante"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/infrastructure/postgres"
	"github.com/contaperu/contaperu-api/internal/infrastructure/storage"
	"github.com/contaperu/contaperu-api/internal/infrastructure/ubl"
)

var importCmd = &cobra.Command{
	Use:   "import [archivos...]",
	Short: "Importar XML/ZIP de comprobantes para una empresa",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		companyID, _ := cmd.Flags().GetString("company")
		failFast, _ := cmd.Flags().GetBool("fail-fast")

		files := make([]comprobante.UploadedFile, 0, len(args))
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			files = append(files, comprobante.UploadedFile{Filename: filepath.Base(path), Data: data})
		}

		ctx := cmd.Context()
		e, done, err := setup(ctx, true)
		if err != nil {
			return err
		}
		defer done()

		var store ports.ObjectStorage
		if e.cfg.Storage.Enabled {
			s3, err := storage.NewS3Storage(ctx, e.cfg.Storage, e.log)
			if err != nil {
				return err
			}
			store = s3
		}
		uc := comprobante.NewImportUseCase(
			postgres.NewComprobanteRepository(e.pool),
			postgres.NewCompanyRepository(e.pool),
			postgres.NewTxRunner(e.pool),
			store,
			ubl.NewDecoder(e.log),
			comprobante.Config{
				Workers:       e.cfg.Import.Workers,
				MaxZipBytes:   e.cfg.Import.MaxZipBytes,
				MaxZipEntries: e.cfg.Import.MaxZipEntries,
			},
			e.log,
		)
		res, err := uc.Import(ctx, companyID, files, comprobante.ImportOptions{FailFast: failFast})
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(res); err != nil {
			return err
		}
		if len(res.Failed) > 0 {
			return fmt.Errorf("%d documentos fallidos", len(res.Failed))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().String("company", "", "ID de la empresa")
	importCmd.Flags().Bool("fail-fast", false, "Abortar el lote ante el primer documento inválido")
	_ = importCmd.MarkFlagRequired("company")
}
