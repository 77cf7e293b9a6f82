package dto

// ChatMessageDTO turno previo de la conversación.
type ChatMessageDTO struct {
	Role    string `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"required,max=8000"`
}

// ChatRequest body para POST /api/ai/chat.
type ChatRequest struct {
	Message       string           `json:"message" validate:"required,min=1,max=4000"`
	History       []ChatMessageDTO `json:"history" validate:"max=20,dive"`
	ComprobanteID string           `json:"comprobante_id" validate:"omitempty,uuid"`
}

// ChatResponse respuesta del asistente.
type ChatResponse struct {
	Answer   string `json:"answer"`
	Provider string `json:"provider"`
}

// AITestResponse resultado de la prueba de proveedor.
type AITestResponse struct {
	Success  bool   `json:"success"`
	Provider string `json:"provider"`
	Message  string `json:"message"`
}
