// Package ai orquesta el asistente contable sobre el proveedor LLM configurado.
package ai

import (
	"context"
	"fmt"
	"sync"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// SettingsSource origen de la configuración vigente (settings.UseCase).
type SettingsSource interface {
	AISettings(ctx context.Context) (entity.AISettings, error)
}

// ProviderFactory construye el adaptador para unos ajustes dados.
type ProviderFactory interface {
	New(ctx context.Context, s entity.AISettings) (ports.LLMService, error)
}

// Router elige el proveedor según los ajustes guardados (o los de entorno).
// Reutiliza el adaptador mientras los ajustes no cambien.
type Router struct {
	settings SettingsSource
	factory  ProviderFactory

	mu      sync.Mutex
	current ports.LLMService
	built   entity.AISettings
}

// NewRouter construye el router.
func NewRouter(settings SettingsSource, factory ProviderFactory) *Router {
	return &Router{settings: settings, factory: factory}
}

// Current devuelve el adaptador del proveedor configurado.
func (r *Router) Current(ctx context.Context) (ports.LLMService, error) {
	s, err := r.settings.AISettings(ctx)
	if err != nil {
		return nil, err
	}
	if !configured(s) {
		return nil, fmt.Errorf("AI: proveedor %s sin credenciales: %w", s.Provider, domain.ErrNotConfigured)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current != nil && r.built == s {
		return r.current, nil
	}
	svc, err := r.factory.New(ctx, s)
	if err != nil {
		return nil, err
	}
	r.current, r.built = svc, s
	return svc, nil
}

func configured(s entity.AISettings) bool {
	switch s.Provider {
	case entity.AIProviderAnthropic:
		return s.AnthropicAPIKey != ""
	case entity.AIProviderOpenAI:
		return s.OpenAIAPIKey != ""
	case entity.AIProviderBedrock:
		// Sin claves estáticas se usa la cadena de credenciales de AWS.
		return s.BedrockModel != "" && s.BedrockRegion != ""
	default:
		return false
	}
}
