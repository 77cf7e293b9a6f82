package repository

import (
	"context"
	"time"

	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// AlertRepository define el puerto de persistencia para reglas y coincidencias de alertas.
type AlertRepository interface {
	Create(ctx context.Context, cfg *entity.AlertConfig) error
	Update(ctx context.Context, cfg *entity.AlertConfig) error
	GetByID(ctx context.Context, companyID, id string) (*entity.AlertConfig, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.AlertConfig, error)
	ListActive(ctx context.Context) ([]*entity.AlertConfig, error)
	Delete(ctx context.Context, companyID, id string) error
	// RecordMatch registra la coincidencia; created=false si ya existía.
	RecordMatch(ctx context.Context, m *entity.AlertMatch) (created bool, err error)
	MarkNotified(ctx context.Context, matchID string, at time.Time) error
	ListMatches(ctx context.Context, companyID string, limit, offset int) ([]*entity.AlertMatch, error)
}

// TenderRepository define el puerto de persistencia para licitaciones.
type TenderRepository interface {
	// Upsert inserta o actualiza por (source, external_id).
	Upsert(ctx context.Context, t *entity.Tender) error
	ListPublishedSince(ctx context.Context, since time.Time) ([]*entity.Tender, error)
	GetByID(ctx context.Context, id string) (*entity.Tender, error)
}
