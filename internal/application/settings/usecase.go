package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/contaperu/contaperu-api/internal/application/dto"
	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
	"github.com/contaperu/contaperu-api/internal/domain/repository"
	"github.com/contaperu/contaperu-api/pkg/logger"
)

// Defaults valores de entorno usados cuando system_settings no tiene la clave.
type Defaults struct {
	AI   entity.AISettings
	SMTP entity.SMTPSettings
}

// UseCase lectura y escritura de los ajustes del panel de administración.
type UseCase struct {
	cache        *Cache
	defaults     Defaults
	mailer       ports.Mailer
	storage      ports.ObjectStorage // nil si el almacenamiento de objetos está deshabilitado
	comprobantes repository.ComprobanteRepository
	log          *logger.Logger
}

// NewUseCase construye el caso de uso. storage puede ser nil.
func NewUseCase(
	cache *Cache,
	defaults Defaults,
	mailer ports.Mailer,
	storage ports.ObjectStorage,
	comprobantes repository.ComprobanteRepository,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		cache:        cache,
		defaults:     defaults,
		mailer:       mailer,
		storage:      storage,
		comprobantes: comprobantes,
		log:          logger.OrNop(log).Component("settings"),
	}
}

// ── IA ────────────────────────────────────────────────────────────────────────

// AISettings configuración vigente (guardada o de entorno), con secretos en claro.
func (uc *UseCase) AISettings(ctx context.Context) (entity.AISettings, error) {
	out := uc.defaults.AI
	if err := uc.load(ctx, entity.SettingsKeyAI, &out); err != nil {
		return entity.AISettings{}, err
	}
	if out.Provider == "" {
		out.Provider = entity.AIProviderAnthropic
	}
	return out, nil
}

// GetAIConfig configuración con secretos enmascarados.
func (uc *UseCase) GetAIConfig(ctx context.Context) (*dto.AIConfigResponse, error) {
	s, err := uc.AISettings(ctx)
	if err != nil {
		return nil, err
	}
	return toAIResponse(s), nil
}

// SaveAIConfig guarda la configuración. Los secretos vacíos o enmascarados conservan el valor guardado.
func (uc *UseCase) SaveAIConfig(ctx context.Context, in dto.AIConfigRequest) (*dto.AIConfigResponse, error) {
	cur, err := uc.AISettings(ctx)
	if err != nil {
		return nil, err
	}
	next := entity.AISettings{
		Provider:         in.Provider,
		AnthropicAPIKey:  mergeSecret(in.AnthropicAPIKey, cur.AnthropicAPIKey),
		AnthropicModel:   orDefault(in.AnthropicModel, cur.AnthropicModel),
		OpenAIAPIKey:     mergeSecret(in.OpenAIAPIKey, cur.OpenAIAPIKey),
		OpenAIModel:      orDefault(in.OpenAIModel, cur.OpenAIModel),
		BedrockRegion:    orDefault(in.BedrockRegion, cur.BedrockRegion),
		BedrockModel:     orDefault(in.BedrockModel, cur.BedrockModel),
		BedrockAccessKey: mergeSecret(in.BedrockAccessKey, cur.BedrockAccessKey),
		BedrockSecretKey: mergeSecret(in.BedrockSecretKey, cur.BedrockSecretKey),
	}
	if err := uc.store(ctx, entity.SettingsKeyAI, next); err != nil {
		return nil, err
	}
	uc.log.Info().Str("provider", next.Provider).Msg("configuración de IA actualizada")
	return toAIResponse(next), nil
}

// ── SMTP ──────────────────────────────────────────────────────────────────────

// SMTPSettings configuración vigente con la contraseña en claro.
func (uc *UseCase) SMTPSettings(ctx context.Context) (entity.SMTPSettings, error) {
	out := uc.defaults.SMTP
	if err := uc.load(ctx, entity.SettingsKeySMTP, &out); err != nil {
		return entity.SMTPSettings{}, err
	}
	return out, nil
}

// GetSMTPConfig configuración con la contraseña enmascarada.
func (uc *UseCase) GetSMTPConfig(ctx context.Context) (*dto.SMTPConfigResponse, error) {
	s, err := uc.SMTPSettings(ctx)
	if err != nil {
		return nil, err
	}
	return toSMTPResponse(s), nil
}

// SaveSMTPConfig guarda la configuración; password vacía o enmascarada conserva la guardada.
func (uc *UseCase) SaveSMTPConfig(ctx context.Context, in dto.SMTPConfigRequest) (*dto.SMTPConfigResponse, error) {
	cur, err := uc.SMTPSettings(ctx)
	if err != nil {
		return nil, err
	}
	next := entity.SMTPSettings{
		Host:     strings.TrimSpace(in.Host),
		Port:     in.Port,
		User:     strings.TrimSpace(in.User),
		Password: mergeSecret(in.Password, cur.Password),
		From:     strings.TrimSpace(in.From),
		TLSMode:  orDefault(in.TLSMode, "starttls"),
	}
	if err := uc.store(ctx, entity.SettingsKeySMTP, next); err != nil {
		return nil, err
	}
	uc.log.Info().Str("host", next.Host).Int("port", next.Port).Msg("configuración SMTP actualizada")
	return toSMTPResponse(next), nil
}

// TestSMTP envía un correo de prueba con la configuración vigente. Un fallo de
// envío no es error del caso de uso: se devuelve con sugerencias.
func (uc *UseCase) TestSMTP(ctx context.Context, to string) (*dto.SMTPTestResponse, error) {
	s, err := uc.SMTPSettings(ctx)
	if err != nil {
		return nil, err
	}
	if !s.Configured() {
		return nil, fmt.Errorf("SMTP: %w", domain.ErrNotConfigured)
	}
	err = uc.mailer.Send(ctx, s, ports.MailMessage{
		To:       []string{to},
		Subject:  "Prueba de correo - Contaperú",
		HTMLBody: "<p>La configuración SMTP funciona correctamente.</p>",
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("host", s.Host).Int("port", s.Port).Msg("prueba SMTP fallida")
		return &dto.SMTPTestResponse{
			Success:     false,
			Message:     err.Error(),
			Suggestions: SMTPSuggestions(err),
		}, nil
	}
	return &dto.SMTPTestResponse{Success: true, Message: "Correo de prueba enviado a " + to}, nil
}

// ── Almacenamiento ────────────────────────────────────────────────────────────

// StorageUsage bytes usados por la empresa: suma en el bucket si hay
// almacenamiento de objetos, si no el tamaño de los XML registrados en la base.
func (uc *UseCase) StorageUsage(ctx context.Context, companyID string) (*dto.StorageUsage, error) {
	if uc.storage != nil {
		b, n, err := uc.storage.Usage(ctx, companyID+"/")
		if err != nil {
			return nil, fmt.Errorf("uso de almacenamiento: %w", err)
		}
		return &dto.StorageUsage{CompanyID: companyID, Source: "object_storage", Bytes: b, Documents: n}, nil
	}
	b, n, err := uc.comprobantes.StorageBytes(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return &dto.StorageUsage{CompanyID: companyID, Source: "database", Bytes: b, Documents: n}, nil
}

// ── helpers ───────────────────────────────────────────────────────────────────

// load superpone sobre out los campos guardados en key.
func (uc *UseCase) load(ctx context.Context, key string, out any) error {
	raw, err := uc.cache.Get(ctx, key)
	if err != nil {
		return fmt.Errorf("leer ajustes %s: %w", key, err)
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("ajustes %s corruptos: %w", key, err)
	}
	return nil
}

func (uc *UseCase) store(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("serializar ajustes %s: %w", key, err)
	}
	return uc.cache.Put(ctx, key, raw)
}

func orDefault(v, def string) string {
	if v = strings.TrimSpace(v); v != "" {
		return v
	}
	return def
}

func toAIResponse(s entity.AISettings) *dto.AIConfigResponse {
	configured := false
	switch s.Provider {
	case entity.AIProviderAnthropic:
		configured = s.AnthropicAPIKey != ""
	case entity.AIProviderOpenAI:
		configured = s.OpenAIAPIKey != ""
	case entity.AIProviderBedrock:
		configured = s.BedrockModel != "" && s.BedrockRegion != ""
	}
	return &dto.AIConfigResponse{
		Provider:         s.Provider,
		AnthropicAPIKey:  MaskSecret(s.AnthropicAPIKey),
		AnthropicModel:   s.AnthropicModel,
		OpenAIAPIKey:     MaskSecret(s.OpenAIAPIKey),
		OpenAIModel:      s.OpenAIModel,
		BedrockRegion:    s.BedrockRegion,
		BedrockModel:     s.BedrockModel,
		BedrockAccessKey: MaskSecret(s.BedrockAccessKey),
		BedrockSecretKey: MaskSecret(s.BedrockSecretKey),
		Configured:       configured,
	}
}

func toSMTPResponse(s entity.SMTPSettings) *dto.SMTPConfigResponse {
	return &dto.SMTPConfigResponse{
		Host:       s.Host,
		Port:       s.Port,
		User:       s.User,
		Password:   MaskSecret(s.Password),
		From:       s.From,
		TLSMode:    s.TLSMode,
		Configured: s.Configured(),
	}
}
