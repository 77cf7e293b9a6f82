// Package alerts administra las reglas de alerta sobre licitaciones y el
// escáner periódico que registra coincidencias y avisa por correo.
package alerts

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
)

// UseCase CRUD de reglas y carga de licitaciones.
type UseCase struct {
	alerts  repository.AlertRepository
	tenders repository.TenderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(alerts repository.AlertRepository, tenders repository.TenderRepository) *UseCase {
	return &UseCase{alerts: alerts, tenders: tenders}
}

// Create registra una regla para la empresa.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.AlertConfigRequest) (*dto.AlertConfigResponse, error) {
	if err := validateConfig(in); err != nil {
		return nil, err
	}
	now := time.Now()
	cfg := &entity.AlertConfig{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	apply(cfg, in)
	if err := uc.alerts.Create(ctx, cfg); err != nil {
		return nil, err
	}
	return ToConfigResponse(cfg), nil
}

// Update reemplaza los campos de una regla existente.
func (uc *UseCase) Update(ctx context.Context, companyID, id string, in dto.AlertConfigRequest) (*dto.AlertConfigResponse, error) {
	if err := validateConfig(in); err != nil {
		return nil, err
	}
	cfg, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	apply(cfg, in)
	cfg.UpdatedAt = time.Now()
	if err := uc.alerts.Update(ctx, cfg); err != nil {
		return nil, err
	}
	return ToConfigResponse(cfg), nil
}

// Get devuelve una regla de la empresa.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.AlertConfigResponse, error) {
	cfg, err := uc.get(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	return ToConfigResponse(cfg), nil
}

// List reglas de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID string) ([]dto.AlertConfigResponse, error) {
	list, err := uc.alerts.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertConfigResponse, 0, len(list))
	for _, c := range list {
		out = append(out, *ToConfigResponse(c))
	}
	return out, nil
}

// Delete elimina una regla de la empresa.
func (uc *UseCase) Delete(ctx context.Context, companyID, id string) error {
	if _, err := uc.get(ctx, companyID, id); err != nil {
		return err
	}
	return uc.alerts.Delete(ctx, companyID, id)
}

// Matches coincidencias registradas para las reglas de la empresa.
func (uc *UseCase) Matches(ctx context.Context, companyID string, page dto.PageRequest) ([]dto.AlertMatchResponse, error) {
	page.DefaultPage()
	list, err := uc.alerts.ListMatches(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AlertMatchResponse, 0, len(list))
	for _, m := range list {
		out = append(out, dto.AlertMatchResponse{
			ID:            m.ID,
			AlertConfigID: m.AlertConfigID,
			TenderID:      m.TenderID,
			Kind:          m.Kind,
			NotifiedAt:    m.NotifiedAt,
			CreatedAt:     m.CreatedAt,
		})
	}
	return out, nil
}

// UpsertTenders inserta o actualiza un lote de licitaciones por (source, external_id).
func (uc *UseCase) UpsertTenders(ctx context.Context, in dto.TenderBatchRequest) (*dto.TenderBatchResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	n := 0
	for _, t := range in.Tenders {
		currency := strings.ToUpper(t.Currency)
		if currency == "" {
			currency = "PEN"
		}
		tender := &entity.Tender{
			ID:              uuid.New().String(),
			Source:          strings.ToLower(strings.TrimSpace(t.Source)),
			ExternalID:      strings.TrimSpace(t.ExternalID),
			Entity:          strings.TrimSpace(t.Entity),
			Title:           strings.TrimSpace(t.Title),
			Description:     t.Description,
			ObjectType:      t.ObjectType,
			Region:          t.Region,
			EstimatedAmount: t.EstimatedAmount,
			Currency:        currency,
			PublishedAt:     t.PublishedAt,
			DeadlineAt:      t.DeadlineAt,
			URL:             t.URL,
			CreatedAt:       time.Now(),
		}
		if err := uc.tenders.Upsert(ctx, tender); err != nil {
			return &dto.TenderBatchResponse{Upserted: n}, fmt.Errorf("licitación %s/%s: %w", tender.Source, tender.ExternalID, err)
		}
		n++
	}
	return &dto.TenderBatchResponse{Upserted: n}, nil
}

func (uc *UseCase) get(ctx context.Context, companyID, id string) (*entity.AlertConfig, error) {
	cfg, err := uc.alerts.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("regla de alerta: %w", domain.ErrNotFound)
	}
	return cfg, nil
}

func validateConfig(in dto.AlertConfigRequest) error {
	if err := dto.Validate(in); err != nil {
		return err
	}
	if in.MinAmount != nil && in.MaxAmount != nil && in.MinAmount.GreaterThan(*in.MaxAmount) {
		return fmt.Errorf("%w: min_amount mayor que max_amount", domain.ErrInvalidInput)
	}
	return nil
}

func apply(cfg *entity.AlertConfig, in dto.AlertConfigRequest) {
	cfg.Name = strings.TrimSpace(in.Name)
	cfg.Keywords = cleanList(in.Keywords)
	cfg.Entities = cleanList(in.Entities)
	cfg.Regions = cleanList(in.Regions)
	cfg.MinAmount = in.MinAmount
	cfg.MaxAmount = in.MaxAmount
	cfg.NotifyEmail = strings.TrimSpace(in.NotifyEmail)
	cfg.DaysBeforeDeadline = in.DaysBeforeDeadline
	if in.Active != nil {
		cfg.Active = *in.Active
	}
}

// cleanList recorta espacios y descarta vacíos y repetidos.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		k := strings.ToLower(s)
		if s == "" || seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, s)
	}
	return out
}

// ToConfigResponse mapea la entidad al DTO.
func ToConfigResponse(c *entity.AlertConfig) *dto.AlertConfigResponse {
	return &dto.AlertConfigResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Keywords:           c.Keywords,
		Entities:           c.Entities,
		Regions:            c.Regions,
		MinAmount:          c.MinAmount,
		MaxAmount:          c.MaxAmount,
		NotifyEmail:        c.NotifyEmail,
		DaysBeforeDeadline: c.DaysBeforeDeadline,
		Active:             c.Active,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}
