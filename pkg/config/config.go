package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde env y opcionalmente archivo).
type Config struct {
	App     AppConfig
	DB      DBConfig
	JWT     JWTConfig
	HTTP    HTTPConfig
	AI      AIConfig
	SMTP    SMTPConfig
	Redis   RedisConfig
	Storage StorageConfig
	Lookup  LookupConfig
	Alerts  AlertsConfig
	Import  ImportConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo (ej. DATABASE_URL de Supabase).
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido, si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string para PostgreSQL con URL encoding para caracteres especiales.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// MigrationURL devuelve el DSN con el esquema pgx5:// que espera golang-migrate.
func (c DBConfig) MigrationURL() string {
	dsn := c.ConnectionString()
	for _, prefix := range []string{"postgresql://", "postgres://"} {
		if strings.HasPrefix(dsn, prefix) {
			return "pgx5://" + strings.TrimPrefix(dsn, prefix)
		}
	}
	return dsn
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// AIConfig valores por defecto del asistente IA. Los ajustes guardados desde el
// panel de administración (tabla system_settings) tienen prioridad sobre estos.
type AIConfig struct {
	Provider        string // anthropic | openai | bedrock
	AnthropicAPIKey string
	AnthropicModel  string
	OpenAIAPIKey    string
	OpenAIModel     string
	OpenAIBaseURL   string
	BedrockRegion   string
	BedrockModel    string
}

// SMTPConfig servidor de correo por defecto (alertas y pruebas).
type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
	TLSMode  string // starttls | ssl | none
}

// RedisConfig caché de consultas RUC/DNI. Si Enabled es false se usa caché en memoria.
type RedisConfig struct {
	Enabled  bool
	Addr     string
	Password string
	DB       int
}

// StorageConfig almacenamiento S3 compatible para los XML/ZIP originales.
type StorageConfig struct {
	Enabled   bool
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// LookupConfig proveedor de consultas RUC/DNI.
type LookupConfig struct {
	BaseURL  string
	Token    string
	CacheTTL time.Duration
}

// AlertsConfig job periódico de alertas de licitaciones.
type AlertsConfig struct {
	ScanInterval     time.Duration
	RecentWindowDays int
}

// ImportConfig límites de la importación de comprobantes.
type ImportConfig struct {
	MaxUploadBytes int
	Workers        int
	MaxZipBytes    int64 // total descomprimido por lote
	MaxZipEntries  int
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, SMTP_HOST, etc.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "contaperu-api"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "contaperu"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "contaperu"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		AI: AIConfig{
			Provider:        getString(v, "AI_PROVIDER", "anthropic"),
			AnthropicAPIKey: getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:  getString(v, "ANTHROPIC_MODEL", "claude-3-5-haiku-20241022"),
			OpenAIAPIKey:    getString(v, "OPENAI_API_KEY", ""),
			OpenAIModel:     getString(v, "OPENAI_MODEL", "gpt-4o-mini"),
			OpenAIBaseURL:   getString(v, "OPENAI_BASE_URL", "https://api.openai.com/v1"),
			BedrockRegion:   getString(v, "BEDROCK_REGION", "us-east-1"),
			BedrockModel:    getString(v, "BEDROCK_MODEL", "anthropic.claude-3-haiku-20240307-v1:0"),
		},
		SMTP: SMTPConfig{
			Host:     getString(v, "SMTP_HOST", ""),
			Port:     getInt(v, "SMTP_PORT", 587),
			User:     getString(v, "SMTP_USER", ""),
			Password: getString(v, "SMTP_PASSWORD", ""),
			From:     getString(v, "SMTP_FROM", ""),
			TLSMode:  getString(v, "SMTP_TLS_MODE", "starttls"),
		},
		Redis: RedisConfig{
			Enabled:  getBool(v, "REDIS_ENABLED", false),
			Addr:     getString(v, "REDIS_ADDR", "localhost:6379"),
			Password: getString(v, "REDIS_PASSWORD", ""),
			DB:       getInt(v, "REDIS_DB", 0),
		},
		Storage: StorageConfig{
			Enabled:   getBool(v, "STORAGE_ENABLED", false),
			Endpoint:  getString(v, "STORAGE_ENDPOINT", ""),
			Region:    getString(v, "STORAGE_REGION", "us-east-1"),
			Bucket:    getString(v, "STORAGE_BUCKET", "comprobantes"),
			AccessKey: getString(v, "STORAGE_ACCESS_KEY", ""),
			SecretKey: getString(v, "STORAGE_SECRET_KEY", ""),
			PathStyle: getBool(v, "STORAGE_PATH_STYLE", true),
		},
		Lookup: LookupConfig{
			BaseURL:  getString(v, "LOOKUP_BASE_URL", "https://api.apis.net.pe/v2"),
			Token:    getString(v, "LOOKUP_TOKEN", ""),
			CacheTTL: time.Duration(getInt(v, "LOOKUP_CACHE_HOURS", 24)) * time.Hour,
		},
		Alerts: AlertsConfig{
			ScanInterval:     time.Duration(getInt(v, "ALERTS_SCAN_MINUTES", 60)) * time.Minute,
			RecentWindowDays: getInt(v, "ALERTS_RECENT_DAYS", 7),
		},
		Import: ImportConfig{
			MaxUploadBytes: getInt(v, "IMPORT_MAX_UPLOAD_MB", 20) * 1024 * 1024,
			Workers:        getInt(v, "IMPORT_WORKERS", 4),
			MaxZipBytes:    int64(getInt(v, "IMPORT_MAX_ZIP_MB", 100)) * 1024 * 1024,
			MaxZipEntries:  getInt(v, "IMPORT_MAX_ZIP_ENTRIES", 5000),
		},
	}
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case string:
			n, err := strconv.Atoi(strings.TrimSpace(v.GetString(key)))
			if err != nil {
				return def
			}
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}

func getBool(v *viper.Viper, key string, def bool) bool {
	if v.IsSet(key) {
		return v.GetBool(key)
	}
	return def
}
