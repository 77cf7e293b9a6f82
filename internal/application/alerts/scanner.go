package alerts

import (
	"bytes"
	"context"
	"html/template"
	"time"

	"github.com/google/uuid"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain/alert"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// SMTPSource configuración SMTP vigente (settings.UseCase).
type SMTPSource interface {
	SMTPSettings(ctx context.Context) (entity.SMTPSettings, error)
}

// ScannerConfig ventanas de búsqueda del escáner.
type ScannerConfig struct {
	// RecentWindow antigüedad máxima de publicación para avisos de coincidencia.
	RecentWindow time.Duration
	// DeadlineLookback antigüedad máxima de publicación para avisos de cierre.
	DeadlineLookback time.Duration
}

func (c ScannerConfig) withDefaults() ScannerConfig {
	if c.RecentWindow <= 0 {
		c.RecentWindow = 7 * 24 * time.Hour
	}
	if c.DeadlineLookback <= 0 {
		c.DeadlineLookback = 60 * 24 * time.Hour
	}
	if c.DeadlineLookback < c.RecentWindow {
		c.DeadlineLookback = c.RecentWindow
	}
	return c
}

// Scanner cruza las reglas activas con las licitaciones publicadas.
type Scanner struct {
	alerts  repository.AlertRepository
	tenders repository.TenderRepository
	mailer  ports.Mailer
	smtp    SMTPSource
	cfg     ScannerConfig
	log     *logger.Logger
}

// NewScanner construye el escáner. mailer o smtp nil desactivan los correos.
func NewScanner(
	alerts repository.AlertRepository,
	tenders repository.TenderRepository,
	mailer ports.Mailer,
	smtp SMTPSource,
	cfg ScannerConfig,
	log *logger.Logger,
) *Scanner {
	return &Scanner{
		alerts:  alerts,
		tenders: tenders,
		mailer:  mailer,
		smtp:    smtp,
		cfg:     cfg.withDefaults(),
		log:     logger.OrNop(log).Component("alerts"),
	}
}

// RunOnce una pasada completa. Sólo falla si no se pueden leer reglas o
// licitaciones; los errores por coincidencia se registran y la pasada sigue.
func (s *Scanner) RunOnce(ctx context.Context, now time.Time) (*dto.ScanResult, error) {
	configs, err := s.alerts.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	tenders, err := s.tenders.ListPublishedSince(ctx, now.Add(-s.cfg.DeadlineLookback))
	if err != nil {
		return nil, err
	}
	res := &dto.ScanResult{Configs: len(configs), Tenders: len(tenders)}
	recentFrom := now.Add(-s.cfg.RecentWindow)

	smtp, mailOK := s.smtpSettings(ctx)

	for _, cfg := range configs {
		for _, t := range tenders {
			if ctx.Err() != nil {
				return res, ctx.Err()
			}
			if !alert.Match(cfg, t) {
				continue
			}
			if !t.PublishedAt.Before(recentFrom) {
				if s.record(ctx, cfg, t, entity.AlertKindMatch, now, smtp, mailOK, res) {
					res.NewMatches++
				}
			}
			if alert.DeadlineDue(cfg, t, now) {
				if s.record(ctx, cfg, t, entity.AlertKindDeadline, now, smtp, mailOK, res) {
					res.Deadlines++
				}
			}
		}
	}
	s.log.Info().
		Int("configs", res.Configs).
		Int("tenders", res.Tenders).
		Int("new_matches", res.NewMatches).
		Int("deadlines", res.Deadlines).
		Int("notified", res.Notified).
		Int("errors", res.Errors).
		Msg("escaneo de alertas terminado")
	return res, nil
}

// Start ejecuta RunOnce cada every hasta que ctx se cancele.
func (s *Scanner) Start(ctx context.Context, every time.Duration) {
	if every <= 0 {
		every = time.Hour
	}
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		if _, err := s.RunOnce(ctx, time.Now()); err != nil && ctx.Err() == nil {
			s.log.Error().Err(err).Msg("escaneo de alertas fallido")
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// record registra la coincidencia y, si es nueva, avisa por correo.
func (s *Scanner) record(
	ctx context.Context,
	cfg *entity.AlertConfig,
	t *entity.Tender,
	kind string,
	now time.Time,
	smtp entity.SMTPSettings,
	mailOK bool,
	res *dto.ScanResult,
) bool {
	m := &entity.AlertMatch{ID: uuid.New().String(), AlertConfigID: cfg.ID, TenderID: t.ID, Kind: kind, CreatedAt: now}
	created, err := s.alerts.RecordMatch(ctx, m)
	if err != nil {
		res.Errors++
		s.log.Warn().Err(err).Str("alert_id", cfg.ID).Str("tender_id", t.ID).Str("kind", kind).Msg("no se pudo registrar la coincidencia")
		return false
	}
	if !created {
		return false
	}
	if !mailOK || cfg.NotifyEmail == "" {
		return true
	}

	body, err := renderMail(cfg, t, kind)
	if err == nil {
		err = s.mailer.Send(ctx, smtp, ports.MailMessage{
			To:       []string{cfg.NotifyEmail},
			Subject:  subject(kind, t),
			HTMLBody: body,
		})
	}
	if err != nil {
		res.Errors++
		s.log.Warn().Err(err).Str("alert_id", cfg.ID).Str("to", cfg.NotifyEmail).Msg("no se pudo notificar la coincidencia")
		return true
	}
	if err := s.alerts.MarkNotified(ctx, m.ID, now); err != nil {
		res.Errors++
		s.log.Warn().Err(err).Str("match_id", m.ID).Msg("no se pudo marcar como notificada")
		return true
	}
	res.Notified++
	return true
}

func (s *Scanner) smtpSettings(ctx context.Context) (entity.SMTPSettings, bool) {
	if s.mailer == nil || s.smtp == nil {
		return entity.SMTPSettings{}, false
	}
	cfg, err := s.smtp.SMTPSettings(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("configuración SMTP no disponible; se omiten los correos")
		return entity.SMTPSettings{}, false
	}
	return cfg, cfg.Configured()
}

func subject(kind string, t *entity.Tender) string {
	if kind == entity.AlertKindDeadline {
		return "Cierre próximo: " + t.Title
	}
	return "Nueva licitación: " + t.Title
}

var mailTmpl = template.Must(template.New("alert").Parse(`<h3>{{.Heading}}</h3>
<p><strong>{{.Tender.Title}}</strong></p>
<p>Entidad: {{.Tender.Entity}}{{if .Tender.Region}} ({{.Tender.Region}}){{end}}</p>
{{if .Amount}}<p>Monto estimado: {{.Tender.Currency}} {{.Amount}}</p>{{end}}
{{if .Deadline}}<p>Fecha límite: {{.Deadline}}</p>{{end}}
{{if .Tender.URL}}<p><a href="{{.Tender.URL}}">Ver convocatoria</a></p>{{end}}
<p style="color:#888">Regla: {{.Rule}}</p>`))

func renderMail(cfg *entity.AlertConfig, t *entity.Tender, kind string) (string, error) {
	data := struct {
		Heading  string
		Tender   *entity.Tender
		Amount   string
		Deadline string
		Rule     string
	}{Heading: "Nueva licitación que coincide con su alerta", Tender: t, Rule: cfg.Name}
	if kind == entity.AlertKindDeadline {
		data.Heading = "La licitación cierra pronto"
	}
	if t.EstimatedAmount != nil {
		data.Amount = t.EstimatedAmount.StringFixed(2)
	}
	if t.DeadlineAt != nil {
		data.Deadline = t.DeadlineAt.Format("02/01/2006 15:04")
	}
	var buf bytes.Buffer
	if err := mailTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
