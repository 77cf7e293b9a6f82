package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

var pregunta = ports.CompletionRequest{
	System:   "Eres un asistente contable.",
	Messages: []ports.ChatMessage{{Role: "user", Content: "¿Qué tasa tiene el IGV?"}},
}

func TestAnthropicService_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "k", r.Header.Get("x-api-key"))
		var body anthropicRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Eres un asistente contable.", body.System)
		assert.Equal(t, defaultMaxTokens, body.MaxTokens)
		_, _ = w.Write([]byte(`{"content":[{"type":"text","text":"18% "},{"type":"text","text":"(16% IGV + 2% IPM)"}]}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "claude")
	s.url = srv.URL
	out, err := s.Complete(context.Background(), pregunta)
	require.NoError(t, err)
	assert.Equal(t, "18% (16% IGV + 2% IPM)", out)
}

func TestAnthropicService_ErrorDeAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"type":"authentication_error","message":"invalid x-api-key"}}`))
	}))
	defer srv.Close()

	s := NewAnthropicService("k", "claude")
	s.url = srv.URL
	_, err := s.Complete(context.Background(), pregunta)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "authentication_error")
}

func TestAnthropicService_SinAPIKey(t *testing.T) {
	_, err := NewAnthropicService("", "claude").Complete(context.Background(), pregunta)
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestOpenAIService_Complete(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk", r.Header.Get("Authorization"))
		var body openAIRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "system", body.Messages[0].Role)
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":" 18% "}}]}`))
	}))
	defer srv.Close()

	out, err := NewOpenAIService("sk", "gpt", srv.URL+"/v1/").Complete(context.Background(), pregunta)
	require.NoError(t, err)
	assert.Equal(t, "18%", out)
}

type fakeConverse struct {
	in  *bedrockruntime.ConverseInput
	out *bedrockruntime.ConverseOutput
}

func (f *fakeConverse) Converse(_ context.Context, in *bedrockruntime.ConverseInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error) {
	f.in = in
	return f.out, nil
}

func TestBedrockService_Complete(t *testing.T) {
	fake := &fakeConverse{out: &bedrockruntime.ConverseOutput{
		Output: &types.ConverseOutputMemberMessage{Value: types.Message{
			Role:    types.ConversationRoleAssistant,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: "18%"}},
		}},
	}}
	s := &BedrockService{client: fake, model: "anthropic.claude-3-haiku"}

	out, err := s.Complete(context.Background(), pregunta)
	require.NoError(t, err)
	assert.Equal(t, "18%", out)
	require.Len(t, fake.in.System, 1)
	require.Len(t, fake.in.Messages, 1)
	assert.Equal(t, types.ConversationRoleUser, fake.in.Messages[0].Role)
}

func TestFactory_SeleccionaProveedor(t *testing.T) {
	f := Factory{OpenAIBaseURL: "http://localhost"}

	svc, err := f.New(context.Background(), entity.AISettings{Provider: "openai", OpenAIAPIKey: "k"})
	require.NoError(t, err)
	assert.Equal(t, "openai", svc.Provider())

	svc, err = f.New(context.Background(), entity.AISettings{})
	require.NoError(t, err)
	assert.Equal(t, "anthropic", svc.Provider())

	_, err = f.New(context.Background(), entity.AISettings{Provider: "gemini"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
