package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"

	"github.com/contaperu/contaperu-api/internal/application/ports"
	"github.com/contaperu/contaperu-api/internal/domain"
	"github.com/contaperu/contaperu-api/internal/domain/entity"
)

var _ ports.LLMService = (*BedrockService)(nil)

// converseAPI subconjunto del cliente bedrockruntime usado (inyectable en tests).
type converseAPI interface {
	Converse(ctx context.Context, in *bedrockruntime.ConverseInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.ConverseOutput, error)
}

// BedrockService adaptador para AWS Bedrock (Converse API).
type BedrockService struct {
	client converseAPI
	model  string
}

// NewBedrockService carga la configuración AWS. Con accessKey/secretKey usa credenciales
// estáticas; si no, la cadena por defecto (env, perfil, rol de instancia).
func NewBedrockService(ctx context.Context, region, model, accessKey, secretKey string) (*BedrockService, error) {
	if model == "" {
		return nil, fmt.Errorf("AI: bedrock: modelo vacío: %w", domain.ErrNotConfigured)
	}
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(region)}
	if accessKey != "" && secretKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")))
	}
	cfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("AI: bedrock: cargar configuración AWS: %w", err)
	}
	return &BedrockService{client: bedrockruntime.NewFromConfig(cfg), model: model}, nil
}

// Provider nombre del proveedor.
func (s *BedrockService) Provider() string { return entity.AIProviderBedrock }

// Complete invoca Converse y concatena los bloques de texto del mensaje de salida.
func (s *BedrockService) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	in := &bedrockruntime.ConverseInput{
		ModelId: aws.String(s.model),
		InferenceConfig: &types.InferenceConfiguration{
			MaxTokens: aws.Int32(int32(maxTokens(req.MaxTokens))),
		},
	}
	if req.System != "" {
		in.System = []types.SystemContentBlock{&types.SystemContentBlockMemberText{Value: req.System}}
	}
	for _, m := range req.Messages {
		role := types.ConversationRoleUser
		if m.Role == "assistant" {
			role = types.ConversationRoleAssistant
		}
		in.Messages = append(in.Messages, types.Message{
			Role:    role,
			Content: []types.ContentBlock{&types.ContentBlockMemberText{Value: m.Content}},
		})
	}

	out, err := s.client.Converse(ctx, in)
	if err != nil {
		if ctx.Err() != nil {
			return "", fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return "", fmt.Errorf("AI: Bedrock converse: %w", err)
	}

	msg, ok := out.Output.(*types.ConverseOutputMemberMessage)
	if !ok {
		return "", fmt.Errorf("AI: Bedrock devolvió una salida sin mensaje")
	}
	var b strings.Builder
	for _, block := range msg.Value.Content {
		if t, ok := block.(*types.ContentBlockMemberText); ok {
			b.WriteString(t.Value)
		}
	}
	if b.Len() == 0 {
		return "", fmt.Errorf("AI: Bedrock devolvió respuesta vacía")
	}
	return strings.TrimSpace(b.String()), nil
}
