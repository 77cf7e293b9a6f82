package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/contaperu/contaperu-api/internal/application/alerts"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/settings"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/infrastructure/mail"
	"github.com/contaperu/contaperu-api/internal/infrastructure/postgres"
)

var tendersCmd = &cobra.Command{Use: "tenders", Short: "Licitaciones"}

var tendersLoadCmd = &cobra.Command{
	Use:   "load <archivo.json>",
	Short: `Cargar un lote {"tenders": [...]} (upsert por source y external_id)`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		var in dto.TenderBatchRequest
		if err := json.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("leer %s: %w", args[0], err)
		}
		e, done, err := setup(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer done()
		uc := alerts.NewUseCase(postgres.NewAlertRepository(e.pool), postgres.NewTenderRepository(e.pool))
		out, err := uc.UpsertTenders(cmd.Context(), in)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "upserted=%d\n", out.Upserted)
		return nil
	},
}

var alertsCmd = &cobra.Command{Use: "alerts", Short: "Alertas de licitaciones"}

var alertsScanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Ejecutar una pasada del escáner y enviar los avisos",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		e, done, err := setup(ctx, true)
		if err != nil {
			return err
		}
		defer done()

		mailer := mail.NewGomailSender(e.log)
		smtp := settings.NewUseCase(
			settings.NewCache(postgres.NewSettingsRepository(e.pool), settings.DefaultTTL),
			settings.Defaults{SMTP: entity.SMTPSettings{
				Host:     e.cfg.SMTP.Host,
				Port:     e.cfg.SMTP.Port,
				User:     e.cfg.SMTP.User,
				Password: e.cfg.SMTP.Password,
				From:     e.cfg.SMTP.From,
				TLSMode:  e.cfg.SMTP.TLSMode,
			}},
			mailer, nil, postgres.NewComprobanteRepository(e.pool), e.log,
		)
		scanner := alerts.NewScanner(
			postgres.NewAlertRepository(e.pool), postgres.NewTenderRepository(e.pool),
			mailer, smtp,
			alerts.ScannerConfig{RecentWindow: time.Duration(e.cfg.Alerts.RecentWindowDays) * 24 * time.Hour},
			e.log,
		)
		res, err := scanner.RunOnce(ctx, time.Now())
		if err != nil {
			return err
		}
		return json.NewEncoder(cmd.OutOrStdout()).Encode(res)
	},
}

func init() {
	rootCmd.AddCommand(tendersCmd, alertsCmd)
	tendersCmd.AddCommand(tendersLoadCmd)
	alertsCmd.AddCommand(alertsScanCmd)
}
