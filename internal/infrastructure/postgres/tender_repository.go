package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

var _ repository.TenderRepository = (*TenderRepo)(nil)

// TenderRepo licitaciones publicadas sobre PostgreSQL.
type TenderRepo struct {
	q Querier
}

// NewTenderRepository construye el adaptador.
func NewTenderRepository(q Querier) *TenderRepo {
	return &TenderRepo{q: q}
}

const tenderColumns = `id, source, external_id, entity, title, description, object_type, region,
	estimated_amount, currency, published_at, deadline_at, url, created_at`

// Upsert inserta o actualiza por (source, external_id). t.ID queda con el id persistido.
func (r *TenderRepo) Upsert(ctx context.Context, t *entity.Tender) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}
	query := `INSERT INTO tenders (` + tenderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT ON CONSTRAINT uq_tenders_source DO UPDATE SET
		    entity = EXCLUDED.entity, title = EXCLUDED.title, description = EXCLUDED.description,
		    object_type = EXCLUDED.object_type, region = EXCLUDED.region,
		    estimated_amount = EXCLUDED.estimated_amount, currency = EXCLUDED.currency,
		    published_at = EXCLUDED.published_at, deadline_at = EXCLUDED.deadline_at, url = EXCLUDED.url
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		t.ID, t.Source, t.ExternalID, t.Entity, t.Title, t.Description, t.ObjectType, t.Region,
		toNullDecimal(t.EstimatedAmount), t.Currency, t.PublishedAt, t.DeadlineAt, t.URL, t.CreatedAt,
	).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("upsert tender %s/%s: %w", t.Source, t.ExternalID, err)
	}
	return nil
}

// ListPublishedSince licitaciones publicadas desde la fecha o con plazo aún abierto.
func (r *TenderRepo) ListPublishedSince(ctx context.Context, since time.Time) ([]*entity.Tender, error) {
	rows, err := r.q.Query(ctx, `SELECT `+tenderColumns+` FROM tenders
		WHERE published_at >= $1 OR deadline_at >= now()
		ORDER BY published_at DESC`, since)
	if err != nil {
		return nil, fmt.Errorf("list tenders: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tender
	for rows.Next() {
		t, err := scanTender(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tender: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// GetByID devuelve la licitación o nil.
func (r *TenderRepo) GetByID(ctx context.Context, id string) (*entity.Tender, error) {
	t, err := scanTender(r.q.QueryRow(ctx, `SELECT `+tenderColumns+` FROM tenders WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tender: %w", err)
	}
	return t, nil
}

func scanTender(row pgx.Row) (*entity.Tender, error) {
	var t entity.Tender
	var amount decimal.NullDecimal
	err := row.Scan(
		&t.ID, &t.Source, &t.ExternalID, &t.Entity, &t.Title, &t.Description, &t.ObjectType, &t.Region,
		&amount, &t.Currency, &t.PublishedAt, &t.DeadlineAt, &t.URL, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.EstimatedAmount = fromNullDecimal(amount)
	return &t, nil
}
