package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

var _ ports.LLMService = (*OpenAIService)(nil)

// OpenAIService adaptador para la API chat/completions de OpenAI (o compatibles vía baseURL).
type OpenAIService struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIService construye el adaptador. baseURL vacío usa https://api.openai.com/v1.
func NewOpenAIService(apiKey, model, baseURL string) *OpenAIService {
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	return &OpenAIService{
		apiKey:     apiKey,
		model:      model,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 45 * time.Second},
	}
}

type openAIRequest struct {
	Model     string              `json:"model"`
	Messages  []ports.ChatMessage `json:"messages"`
	MaxTokens int                 `json:"max_tokens,omitempty"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Provider nombre del proveedor.
func (s *OpenAIService) Provider() string { return entity.AIProviderOpenAI }

// Complete envía la conversación; el system prompt viaja como primer mensaje "system".
func (s *OpenAIService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	if s.apiKey == "" {
		return "", fmt.Errorf("AI: openai: %w", domain.ErrNotConfigured)
	}

	msgs := make([]ports.ChatMessage, 0, len(req.Messages)+1)
	if req.System != "" {
		msgs = append(msgs, ports.ChatMessage{Role: "system", Content: req.System})
	}
	msgs = append(msgs, req.Messages...)

	status, rawBody, err := postJSON(ctx, s.httpClient, s.baseURL+"/chat/completions",
		map[string]string{"Authorization": "Bearer " + s.apiKey},
		openAIRequest{Model: s.model, Messages: msgs, MaxTokens: maxTokens(req.MaxTokens)})
	if err != nil {
		return "", err
	}

	var out openAIResponse
	jsonErr := json.Unmarshal(rawBody, &out)
	if status != http.StatusOK {
		if jsonErr == nil && out.Error != nil {
			return "", fmt.Errorf("AI: OpenAI error (%s): %s", out.Error.Type, out.Error.Message)
		}
		return "", fmt.Errorf("AI: OpenAI HTTP %d: %s", status, truncate(string(rawBody), 300))
	}
	if jsonErr != nil {
		return "", fmt.Errorf("AI: deserializar respuesta OpenAI: %w", jsonErr)
	}
	if len(out.Choices) == 0 || strings.TrimSpace(out.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("AI: OpenAI devolvió respuesta vacía")
	}
	return strings.TrimSpace(out.Choices[0].Message.Content), nil
}
