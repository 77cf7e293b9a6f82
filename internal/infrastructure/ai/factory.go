package ai

import (
	"context"
	"fmt"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

// Factory construye adaptadores a partir de los ajustes vigentes.
type Factory struct {
	OpenAIBaseURL string
}

// New devuelve el adaptador del proveedor indicado en s.
func (f Factory) New(ctx context.Context, s entity.AISettings) (ports.LLMService, error) {
	switch s.Provider {
	case entity.AIProviderAnthropic, "":
		return NewAnthropicService(s.AnthropicAPIKey, s.AnthropicModel), nil
	case entity.AIProviderOpenAI:
		return NewOpenAIService(s.OpenAIAPIKey, s.OpenAIModel, f.OpenAIBaseURL), nil
	case entity.AIProviderBedrock:
		return NewBedrockService(ctx, s.BedrockRegion, s.BedrockModel, s.BedrockAccessKey, s.BedrockSecretKey)
	default:
		return nil, fmt.Errorf("AI: proveedor %q desconocido: %w", s.Provider, domain.ErrInvalidInput)
	}
}
