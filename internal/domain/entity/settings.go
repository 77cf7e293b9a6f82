package entity

// Claves de la tabla system_settings.
const (
	SettingsKeyAI   = "ai"
	SettingsKeySMTP = "smtp"
)

// Proveedores de IA soportados.
const (
	AIProviderAnthropic = "anthropic"
	AIProviderOpenAI    = "openai"
	AIProviderBedrock   = "bedrock"
)

// AISettings configuración del asistente IA editable desde el panel admin.
type AISettings struct {
	Provider         string `json:"provider"`
	AnthropicAPIKey  string `json:"anthropic_api_key"`
	AnthropicModel   string `json:"anthropic_model"`
	OpenAIAPIKey     string `json:"openai_api_key"`
	OpenAIModel      string `json:"openai_model"`
	BedrockRegion    string `json:"bedrock_region"`
	BedrockModel     string `json:"bedrock_model"`
	BedrockAccessKey string `json:"bedrock_access_key"`
	BedrockSecretKey string `json:"bedrock_secret_key"`
}

// SMTPSettings servidor de correo editable desde el panel admin.
type SMTPSettings struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	From     string `json:"from"`
	TLSMode  string `json:"tls_mode"` // starttls | ssl | none
}

// Configured informa si hay datos mínimos para enviar correo.
func (s SMTPSettings) Configured() bool {
	return s.Host != "" && s.Port > 0 && s.From != ""
}
