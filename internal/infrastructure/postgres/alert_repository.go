package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

var _ repository.AlertRepository = (*AlertRepo)(nil)

// AlertRepo reglas de alerta y coincidencias sobre PostgreSQL.
type AlertRepo struct {
	q Querier
}

// NewAlertRepository construye el adaptador.
func NewAlertRepository(q Querier) *AlertRepo {
	return &AlertRepo{q: q}
}

const alertColumns = `id, company_id, name, keywords, entities, regions, min_amount, max_amount,
	notify_email, days_before_deadline, active, created_at, updated_at`

// Create persiste una regla nueva.
func (r *AlertRepo) Create(ctx context.Context, cfg *entity.AlertConfig) error {
	query := `INSERT INTO alert_configs (` + alertColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		cfg.ID, cfg.CompanyID, cfg.Name, nonNil(cfg.Keywords), nonNil(cfg.Entities), nonNil(cfg.Regions),
		toNullDecimal(cfg.MinAmount), toNullDecimal(cfg.MaxAmount), cfg.NotifyEmail,
		cfg.DaysBeforeDeadline, cfg.Active, cfg.CreatedAt, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert alert config: %w", err)
	}
	return nil
}

// Update reemplaza la regla (ámbito de empresa).
func (r *AlertRepo) Update(ctx context.Context, cfg *entity.AlertConfig) error {
	query := `UPDATE alert_configs
		SET name = $3, keywords = $4, entities = $5, regions = $6, min_amount = $7, max_amount = $8,
		    notify_email = $9, days_before_deadline = $10, active = $11, updated_at = $12
		WHERE company_id = $1 AND id = $2`
	cmd, err := r.q.Exec(ctx, query,
		cfg.CompanyID, cfg.ID, cfg.Name, nonNil(cfg.Keywords), nonNil(cfg.Entities), nonNil(cfg.Regions),
		toNullDecimal(cfg.MinAmount), toNullDecimal(cfg.MaxAmount), cfg.NotifyEmail,
		cfg.DaysBeforeDeadline, cfg.Active, cfg.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update alert config: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID devuelve la regla o nil si no existe.
func (r *AlertRepo) GetByID(ctx context.Context, companyID, id string) (*entity.AlertConfig, error) {
	cfg, err := scanAlertConfig(r.q.QueryRow(ctx,
		`SELECT `+alertColumns+` FROM alert_configs WHERE company_id = $1 AND id = $2`, companyID, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get alert config: %w", err)
	}
	return cfg, nil
}

// ListByCompany reglas de una empresa.
func (r *AlertRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.AlertConfig, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alert_configs WHERE company_id = $1 ORDER BY name`, companyID)
}

// ListActive reglas activas de todas las empresas (job de escaneo).
func (r *AlertRepo) ListActive(ctx context.Context) ([]*entity.AlertConfig, error) {
	return r.list(ctx, `SELECT `+alertColumns+` FROM alert_configs WHERE active ORDER BY company_id, name`)
}

// Delete elimina la regla y sus coincidencias.
func (r *AlertRepo) Delete(ctx context.Context, companyID, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM alert_configs WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return fmt.Errorf("delete alert config: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// RecordMatch inserta la coincidencia; created=false si (regla, licitación, tipo) ya existía.
func (r *AlertRepo) RecordMatch(ctx context.Context, m *entity.AlertMatch) (bool, error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	cmd, err := r.q.Exec(ctx, `INSERT INTO alert_matches (id, alert_config_id, tender_id, kind, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT ON CONSTRAINT uq_alert_matches DO NOTHING`,
		m.ID, m.AlertConfigID, m.TenderID, m.Kind, m.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert alert match: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// MarkNotified registra el envío del correo.
func (r *AlertRepo) MarkNotified(ctx context.Context, matchID string, at time.Time) error {
	if _, err := r.q.Exec(ctx, `UPDATE alert_matches SET notified_at = $2 WHERE id = $1`, matchID, at); err != nil {
		return fmt.Errorf("mark alert notified: %w", err)
	}
	return nil
}

// ListMatches coincidencias recientes de las reglas de una empresa.
func (r *AlertRepo) ListMatches(ctx context.Context, companyID string, limit, offset int) ([]*entity.AlertMatch, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.alert_config_id, m.tender_id, m.kind, m.notified_at, m.created_at
		  FROM alert_matches m
		  JOIN alert_configs c ON c.id = m.alert_config_id
		 WHERE c.company_id = $1
		 ORDER BY m.created_at DESC
		 LIMIT $2 OFFSET $3`, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list alert matches: %w", err)
	}
	defer rows.Close()

	var list []*entity.AlertMatch
	for rows.Next() {
		var m entity.AlertMatch
		if err := rows.Scan(&m.ID, &m.AlertConfigID, &m.TenderID, &m.Kind, &m.NotifiedAt, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alert match: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *AlertRepo) list(ctx context.Context, query string, args ...any) ([]*entity.AlertConfig, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list alert configs: %w", err)
	}
	defer rows.Close()

	var list []*entity.AlertConfig
	for rows.Next() {
		cfg, err := scanAlertConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("scan alert config: %w", err)
		}
		list = append(list, cfg)
	}
	return list, rows.Err()
}

func scanAlertConfig(row pgx.Row) (*entity.AlertConfig, error) {
	var cfg entity.AlertConfig
	var minAmt, maxAmt decimal.NullDecimal
	err := row.Scan(
		&cfg.ID, &cfg.CompanyID, &cfg.Name, &cfg.Keywords, &cfg.Entities, &cfg.Regions, &minAmt, &maxAmt,
		&cfg.NotifyEmail, &cfg.DaysBeforeDeadline, &cfg.Active, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	cfg.MinAmount = fromNullDecimal(minAmt)
	cfg.MaxAmount = fromNullDecimal(maxAmt)
	return &cfg, nil
}
