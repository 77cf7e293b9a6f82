package settings_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/mocks"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/application/settings"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

func TestMaskSecret(t *testing.T) {
	assert.Equal(t, "", settings.MaskSecret(""))
	assert.Equal(t, "••••••••", settings.MaskSecret("corto"))
	assert.Equal(t, "sk-a…wxyz", settings.MaskSecret("sk-ant-api03-abcdwxyz"))
}

func TestIsPlaceholder(t *testing.T) {
	stored := "sk-ant-api03-abcdwxyz"
	assert.True(t, settings.IsPlaceholder("", stored))
	assert.True(t, settings.IsPlaceholder("  ", stored))
	assert.True(t, settings.IsPlaceholder("sk-a…wxyz", stored))
	assert.True(t, settings.IsPlaceholder("********", stored))
	assert.True(t, settings.IsPlaceholder("••••••••", stored))
	assert.False(t, settings.IsPlaceholder("sk-nueva-clave-123456", stored))
}

func TestCache_ReleeTrasExpirarEInvalidar(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	repo.On("Get", mock.Anything, "ai").Return(json.RawMessage(`{"provider":"openai"}`), nil)
	c := settings.NewCache(repo, time.Minute)

	for i := 0; i < 3; i++ {
		v, err := c.Get(context.Background(), "ai")
		require.NoError(t, err)
		assert.JSONEq(t, `{"provider":"openai"}`, string(v))
	}
	repo.AssertNumberOfCalls(t, "Get", 1)

	c.Invalidate("ai")
	_, _ = c.Get(context.Background(), "ai")
	repo.AssertNumberOfCalls(t, "Get", 2)
}

func TestCache_PutInvalida(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	repo.On("Get", mock.Anything, "smtp").Return(json.RawMessage(`{"host":"a"}`), nil).Once()
	repo.On("Put", mock.Anything, "smtp", json.RawMessage(`{"host":"b"}`)).Return(nil)
	repo.On("Get", mock.Anything, "smtp").Return(json.RawMessage(`{"host":"b"}`), nil).Once()
	c := settings.NewCache(repo, 0)

	_, _ = c.Get(context.Background(), "smtp")
	require.NoError(t, c.Put(context.Background(), "smtp", json.RawMessage(`{"host":"b"}`)))
	v, err := c.Get(context.Background(), "smtp")
	require.NoError(t, err)
	assert.JSONEq(t, `{"host":"b"}`, string(v))
}

func newUseCase(repo *mocks.SettingsRepository, mailer ports.Mailer) *settings.UseCase {
	defaults := settings.Defaults{
		AI:   entity.AISettings{Provider: "anthropic", AnthropicModel: "claude-3-5-haiku"},
		SMTP: entity.SMTPSettings{Port: 587, TLSMode: "starttls"},
	}
	return settings.NewUseCase(settings.NewCache(repo, time.Minute), defaults, mailer, nil, new(mocks.ComprobanteRepository), nil)
}

func TestSaveAIConfig_ConservaSecretoConPlaceholder(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	repo.On("Get", mock.Anything, entity.SettingsKeyAI).
		Return(json.RawMessage(`{"provider":"anthropic","anthropic_api_key":"sk-ant-api03-abcdwxyz"}`), nil)
	var saved entity.AISettings
	repo.On("Put", mock.Anything, entity.SettingsKeyAI, mock.Anything).
		Run(func(args mock.Arguments) { require.NoError(t, json.Unmarshal(args.Get(2).(json.RawMessage), &saved)) }).
		Return(nil)

	out, err := newUseCase(repo, nil).SaveAIConfig(context.Background(), dto.AIConfigRequest{
		Provider:        "openai",
		AnthropicAPIKey: "sk-a…wxyz",
		OpenAIAPIKey:    "sk-proj-nuevo-0001",
	})
	require.NoError(t, err)
	assert.Equal(t, "sk-ant-api03-abcdwxyz", saved.AnthropicAPIKey)
	assert.Equal(t, "sk-proj-nuevo-0001", saved.OpenAIAPIKey)
	assert.Equal(t, "claude-3-5-haiku", saved.AnthropicModel)
	assert.Equal(t, "sk-p…0001", out.OpenAIAPIKey)
	assert.True(t, out.Configured)
}

func TestGetAIConfig_UsaDefaultsSinRegistro(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	repo.On("Get", mock.Anything, entity.SettingsKeyAI).Return(nil, nil)

	out, err := newUseCase(repo, nil).GetAIConfig(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "anthropic", out.Provider)
	assert.False(t, out.Configured)
}

func TestTestSMTP_FalloDevuelveSugerencias(t *testing.T) {
	repo := new(mocks.SettingsRepository)
	repo.On("Get", mock.Anything, entity.SettingsKeySMTP).
		Return(json.RawMessage(`{"host":"smtp.gmail.com","port":587,"user":"u","password":"p","from":"a@b.pe"}`), nil)
	mailer := new(mocks.Mailer)
	mailer.On("Send", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("535 5.7.8 Username and Password not accepted"))

	out, err := newUseCase(repo, mailer).TestSMTP(context.Background(), "x@y.pe")
	require.NoError(t, err)
	assert.False(t, out.Success)
	require.NotEmpty(t, out.Suggestions)
	assert.Contains(t, out.Suggestions[0], "contraseña")
}

func TestSMTPSuggestions(t *testing.T) {
	s := settings.SMTPSuggestions(errors.New("dial tcp 1.2.3.4:465: i/o timeout"))
	require.Len(t, s, 1)
	assert.Contains(t, s[0], "no respondió")

	s = settings.SMTPSuggestions(errors.New("x509: certificate is valid for mail.x.pe"))
	assert.Contains(t, s[0], "certificado")

	s = settings.SMTPSuggestions(errors.New("algo raro"))
	assert.Len(t, s, 1)
}

func TestStorageUsage_SinObjetosUsaBase(t *testing.T) {
	comp := new(mocks.ComprobanteRepository)
	comp.On("StorageBytes", mock.Anything, "c1").Return(int64(2048), 3, nil)
	uc := settings.NewUseCase(settings.NewCache(new(mocks.SettingsRepository), 0), settings.Defaults{}, nil, nil, comp, nil)

	out, err := uc.StorageUsage(context.Background(), "c1")
	require.NoError(t, err)
	assert.Equal(t, "database", out.Source)
	assert.Equal(t, int64(2048), out.Bytes)
	assert.Equal(t, 3, out.Documents)
}
