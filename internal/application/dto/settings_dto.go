package dto

// AIConfigRequest entrada de PUT /api/admin/ai. Un secreto vacío o enmascarado conserva el guardado.
type AIConfigRequest struct {
	Provider         string `json:"provider" validate:"required,oneof=anthropic openai bedrock"`
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicModel   string `json:"anthropic_model" validate:"omitempty,max=100"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIModel      string `json:"openai_model" validate:"omitempty,max=100"`
	BedrockRegion    string `json:"bedrock_region" validate:"omitempty,max=30"`
	BedrockModel     string `json:"bedrock_model" validate:"omitempty,max=200"`
	BedrockAccessKey string `json:"bedrock_access_key"`
	BedrockSecretKey string `json:"bedrock_secret_key"`
}

// AIConfigResponse salida con secretos enmascarados.
type AIConfigResponse struct {
	Provider         string `json:"provider"`
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicModel   string `json:"anthropic_model"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIModel      string `json:"openai_model"`
	BedrockRegion    string `json:"bedrock_region"`
	BedrockModel     string `json:"bedrock_model"`
	BedrockAccessKey string `json:"bedrock_access_key"`
	BedrockSecretKey string `json:"bedrock_secret_key"`
	Configured       bool   `json:"configured"`
}

// SMTPConfigRequest entrada de PUT /api/admin/smtp.
type SMTPConfigRequest struct {
	Host     string `json:"host" validate:"required,hostname|ip"`
	Port     int    `json:"port" validate:"required,min=1,max=65535"`
	User     string `json:"user" validate:"omitempty,max=200"`
	Password string `json:"password"`
	From     string `json:"from" validate:"required,email"`
	TLSMode  string `json:"tls_mode" validate:"omitempty,oneof=starttls ssl none"`
}

// SMTPConfigResponse salida con la contraseña enmascarada.
type SMTPConfigResponse struct {
	Host       string `json:"host"`
	Port       int    `json:"port"`
	User       string `json:"user"`
	Password   string `json:"password"`
	From       string `json:"from"`
	TLSMode    string `json:"tls_mode"`
	Configured bool   `json:"configured"`
}

// SMTPTestRequest destinatario de la prueba.
type SMTPTestRequest struct {
	To string `json:"to" validate:"required,email"`
}

// SMTPTestResponse resultado de la prueba con sugerencias si falló.
type SMTPTestResponse struct {
	Success     bool     `json:"success"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// StorageUsage uso de almacenamiento de una empresa.
type StorageUsage struct {
	CompanyID string `json:"company_id"`
	Source    string `json:"source"` // object_storage | database
	Bytes     int64  `json:"bytes"`
	Documents int    `json:"documents"`
}
