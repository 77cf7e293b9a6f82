package alerts_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/application/alerts"
	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/mocks"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

var ahora = time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC)

type smtpFijo struct{ s entity.SMTPSettings }

func (f smtpFijo) SMTPSettings(context.Context) (entity.SMTPSettings, error) { return f.s, nil }

var smtpOK = smtpFijo{s: entity.SMTPSettings{Host: "smtp.x.pe", Port: 587, From: "alertas@x.pe"}}

func regla() *entity.AlertConfig {
	return &entity.AlertConfig{
		ID: "a1", CompanyID: "c1", Name: "Cómputo", Keywords: []string{"computadoras"},
		NotifyEmail: "compras@empresa.pe", DaysBeforeDeadline: 3, Active: true,
	}
}

func licitacion(id string, publicada time.Time, cierre *time.Time) *entity.Tender {
	return &entity.Tender{
		ID: id, Source: "seace", ExternalID: id, Entity: "MINEDU",
		Title: "Adquisición de COMPUTADORAS portátiles", PublishedAt: publicada, DeadlineAt: cierre,
	}
}

func TestScanner_RegistraYNotificaCoincidenciaNueva(t *testing.T) {
	repo := new(mocks.AlertRepository)
	tenders := new(mocks.TenderRepository)
	mailer := new(mocks.Mailer)

	repo.On("ListActive", mock.Anything).Return([]*entity.AlertConfig{regla()}, nil)
	tenders.On("ListPublishedSince", mock.Anything, mock.Anything).
		Return([]*entity.Tender{licitacion("t1", ahora.Add(-24*time.Hour), nil)}, nil)
	repo.On("RecordMatch", mock.Anything, mock.MatchedBy(func(m *entity.AlertMatch) bool {
		return m.Kind == entity.AlertKindMatch && m.TenderID == "t1"
	})).Return(true, nil)
	mailer.On("Send", mock.Anything, smtpOK.s, mock.Anything).Return(nil)
	repo.On("MarkNotified", mock.Anything, mock.Anything, ahora).Return(nil)

	s := alerts.NewScanner(repo, tenders, mailer, smtpOK, alerts.ScannerConfig{}, nil)
	res, err := s.RunOnce(context.Background(), ahora)
	require.NoError(t, err)
	assert.Equal(t, 1, res.NewMatches)
	assert.Equal(t, 1, res.Notified)
	assert.Equal(t, 0, res.Errors)
	mailer.AssertNumberOfCalls(t, "Send", 1)
}

func TestScanner_CoincidenciaExistenteNoSeNotifica(t *testing.T) {
	repo := new(mocks.AlertRepository)
	tenders := new(mocks.TenderRepository)
	mailer := new(mocks.Mailer)

	repo.On("ListActive", mock.Anything).Return([]*entity.AlertConfig{regla()}, nil)
	tenders.On("ListPublishedSince", mock.Anything, mock.Anything).
		Return([]*entity.Tender{licitacion("t1", ahora.Add(-time.Hour), nil)}, nil)
	repo.On("RecordMatch", mock.Anything, mock.Anything).Return(false, nil)

	res, err := alerts.NewScanner(repo, tenders, mailer, smtpOK, alerts.ScannerConfig{}, nil).RunOnce(context.Background(), ahora)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewMatches)
	mailer.AssertNotCalled(t, "Send", mock.Anything, mock.Anything, mock.Anything)
}

func TestScanner_AvisoDeCierreParaLicitacionAntigua(t *testing.T) {
	repo := new(mocks.AlertRepository)
	tenders := new(mocks.TenderRepository)

	cierre := ahora.Add(48 * time.Hour)
	repo.On("ListActive", mock.Anything).Return([]*entity.AlertConfig{regla()}, nil)
	tenders.On("ListPublishedSince", mock.Anything, mock.Anything).
		Return([]*entity.Tender{licitacion("t1", ahora.AddDate(0, 0, -20), &cierre)}, nil)
	repo.On("RecordMatch", mock.Anything, mock.MatchedBy(func(m *entity.AlertMatch) bool {
		return m.Kind == entity.AlertKindDeadline
	})).Return(true, nil)

	res, err := alerts.NewScanner(repo, tenders, nil, nil, alerts.ScannerConfig{}, nil).RunOnce(context.Background(), ahora)
	require.NoError(t, err)
	assert.Equal(t, 0, res.NewMatches)
	assert.Equal(t, 1, res.Deadlines)
	assert.Equal(t, 0, res.Notified)
}

func TestScanner_FalloPorItemNoDetieneLaPasada(t *testing.T) {
	repo := new(mocks.AlertRepository)
	tenders := new(mocks.TenderRepository)

	repo.On("ListActive", mock.Anything).Return([]*entity.AlertConfig{regla()}, nil)
	tenders.On("ListPublishedSince", mock.Anything, mock.Anything).Return([]*entity.Tender{
		licitacion("t1", ahora.Add(-time.Hour), nil),
		licitacion("t2", ahora.Add(-time.Hour), nil),
	}, nil)
	repo.On("RecordMatch", mock.Anything, mock.MatchedBy(func(m *entity.AlertMatch) bool { return m.TenderID == "t1" })).
		Return(false, errors.New("conexión perdida"))
	repo.On("RecordMatch", mock.Anything, mock.MatchedBy(func(m *entity.AlertMatch) bool { return m.TenderID == "t2" })).
		Return(true, nil)

	res, err := alerts.NewScanner(repo, tenders, nil, nil, alerts.ScannerConfig{}, nil).RunOnce(context.Background(), ahora)
	require.NoError(t, err)
	assert.Equal(t, 1, res.Errors)
	assert.Equal(t, 1, res.NewMatches)
}

func TestScanner_StartSeDetieneAlCancelar(t *testing.T) {
	repo := new(mocks.AlertRepository)
	repo.On("ListActive", mock.Anything).Return([]*entity.AlertConfig{}, nil)
	tenders := new(mocks.TenderRepository)
	tenders.On("ListPublishedSince", mock.Anything, mock.Anything).Return([]*entity.Tender{}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		alerts.NewScanner(repo, tenders, nil, nil, alerts.ScannerConfig{}, nil).Start(ctx, 10*time.Millisecond)
		close(done)
	}()
	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start no terminó tras cancelar el contexto")
	}
}

func TestUseCase_CreateRechazaMontosInvertidos(t *testing.T) {
	uc := alerts.NewUseCase(new(mocks.AlertRepository), new(mocks.TenderRepository))
	minimo, maximo := decimal.NewFromInt(5000), decimal.NewFromInt(100)

	_, err := uc.Create(context.Background(), "c1", dto.AlertConfigRequest{Name: "x", MinAmount: &minimo, MaxAmount: &maximo})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUseCase_CreateLimpiaListas(t *testing.T) {
	repo := new(mocks.AlertRepository)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	uc := alerts.NewUseCase(repo, new(mocks.TenderRepository))

	out, err := uc.Create(context.Background(), "c1", dto.AlertConfigRequest{
		Name:     " Obras ",
		Keywords: []string{"puente", "Puente", " carretera "},
	})
	require.NoError(t, err)
	assert.Equal(t, "Obras", out.Name)
	assert.Equal(t, []string{"puente", "carretera"}, out.Keywords)
	assert.True(t, out.Active)
}

func TestUseCase_GetDeOtraEmpresa(t *testing.T) {
	repo := new(mocks.AlertRepository)
	repo.On("GetByID", mock.Anything, "c2", "a1").Return(nil, nil)

	_, err := alerts.NewUseCase(repo, nil).Get(context.Background(), "c2", "a1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUseCase_UpsertTendersNormaliza(t *testing.T) {
	tenders := new(mocks.TenderRepository)
	var got *entity.Tender
	tenders.On("Upsert", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) { got = args.Get(1).(*entity.Tender) }).
		Return(nil)

	out, err := alerts.NewUseCase(nil, tenders).UpsertTenders(context.Background(), dto.TenderBatchRequest{
		Tenders: []dto.TenderRequest{{
			Source: "SEACE", ExternalID: " 123 ", Entity: "MINSA", Title: "Servicio", PublishedAt: ahora,
		}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, out.Upserted)
	assert.Equal(t, "seace", got.Source)
	assert.Equal(t, "123", got.ExternalID)
	assert.Equal(t, "PEN", got.Currency)
}
