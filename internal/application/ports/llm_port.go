package ports

import "context"

// ChatMessage turno de conversación ("user" | "assistant").
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CompletionRequest petición neutra respecto del proveedor.
type CompletionRequest struct {
	System    string
	Messages  []ChatMessage
	MaxTokens int
}

// LLMService define el puerto de salida para los proveedores de IA.
// Cualquier adaptador (Anthropic, OpenAI, Bedrock, mock) debe implementarlo.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type LLMService interface {
	// Complete devuelve el texto de la respuesta del modelo.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Provider nombre del proveedor (anthropic, openai, bedrock).
	Provider() string
}
