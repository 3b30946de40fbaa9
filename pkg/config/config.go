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
	App      AppConfig
	DB       DBConfig
	JWT      JWTConfig
	HTTP     HTTPConfig
	AI       AIConfig
	Redis    RedisConfig
	Identity IdentityConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env         string // development, staging, production
	Name        string
	LogLevel    string
	StoreDriver string // postgres | memory
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

	MaxConns    int
	MinConns    int
	ForceIPv4   bool   // Docker sin IPv6 frente a hosts que resuelven AAAA
	FallbackDNS string // resolver usado si el del contenedor no devuelve A; vacío = sin fallback
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

// JWTConfig configuración de JWT. Secret es el mismo con el que firma el proveedor de identidad.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos (solo cmd/devtoken)
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

// AIConfig selecciona el proveedor del modelo y sus credenciales.
type AIConfig struct {
	Provider string // azure | openai | anthropic | gemini | none

	AzureEndpoint   string
	AzureAPIKey     string
	AzureDeployment string
	AzureAPIVersion string

	OpenAIAPIKey string
	OpenAIModel  string

	AnthropicAPIKey string
	AnthropicModel  string

	GeminiAPIKey string
	GeminiModel  string

	TimeoutSeconds     int
	BreakerFailures    int
	BreakerOpenSeconds int
}

// Timeout límite de una llamada al modelo.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// BreakerOpenDuration tiempo que el circuito del modelo permanece abierto.
func (c AIConfig) BreakerOpenDuration() time.Duration {
	return time.Duration(c.BreakerOpenSeconds) * time.Second
}

// RedisConfig caché opcional de categorías. Addr vacío = sin caché.
type RedisConfig struct {
	Addr            string
	Password        string
	DB              int
	CategoryTTLSecs int
}

// CategoryTTL duración de la entrada de caché del listado de categorías.
func (c RedisConfig) CategoryTTL() time.Duration {
	return time.Duration(c.CategoryTTLSecs) * time.Second
}

// IdentityConfig proveedor de identidad externo (invitaciones de equipo).
type IdentityConfig struct {
	URL        string
	ServiceKey string
	PublicURL  string // base pública de la app, destino del enlace de invitación
}

// Load lee la configuración desde variables de entorno (y opcionalmente desde archivo).
// Las env vars tienen prioridad. Nombres esperados: APP_ENV, DB_HOST, JWT_SECRET, AI_PROVIDER, etc.
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

	cfg := &Config{
		App: AppConfig{
			Env:         getString(v, "APP_ENV", "development"),
			Name:        getString(v, "APP_NAME", "inventario-ai"),
			LogLevel:    getString(v, "LOG_LEVEL", "info"),
			StoreDriver: strings.ToLower(getString(v, "STORE_DRIVER", "postgres")),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "inventario_ai"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
			MaxConns:    getInt(v, "DB_MAX_CONNS", 25),
			MinConns:    getInt(v, "DB_MIN_CONNS", 2),
			ForceIPv4:   getString(v, "DB_FORCE_IPV4", "true") == "true",
			FallbackDNS: getString(v, "DB_FALLBACK_DNS", "8.8.8.8:53"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 60),
			Issuer:     getString(v, "JWT_ISSUER", "inventario-ai"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		AI: AIConfig{
			Provider:           strings.ToLower(getString(v, "AI_PROVIDER", "azure")),
			AzureEndpoint:      getString(v, "AZURE_OPENAI_ENDPOINT", ""),
			AzureAPIKey:        getString(v, "AZURE_OPENAI_API_KEY", ""),
			AzureDeployment:    getString(v, "AZURE_OPENAI_DEPLOYMENT", ""),
			AzureAPIVersion:    getString(v, "AZURE_OPENAI_API_VERSION", "2024-10-21"),
			OpenAIAPIKey:       getString(v, "OPENAI_API_KEY", ""),
			OpenAIModel:        getString(v, "OPENAI_MODEL", "gpt-4o-mini"),
			AnthropicAPIKey:    getString(v, "ANTHROPIC_API_KEY", ""),
			AnthropicModel:     getString(v, "ANTHROPIC_MODEL", "claude-3-haiku-20240307"),
			GeminiAPIKey:       getString(v, "GEMINI_API_KEY", ""),
			GeminiModel:        getString(v, "GEMINI_MODEL", "gemini-1.5-flash"),
			TimeoutSeconds:     getInt(v, "AI_TIMEOUT_SECONDS", 20),
			BreakerFailures:    getInt(v, "AI_BREAKER_FAILURES", 5),
			BreakerOpenSeconds: getInt(v, "AI_BREAKER_OPEN_SECONDS", 30),
		},
		Redis: RedisConfig{
			Addr:            getString(v, "REDIS_ADDR", ""),
			Password:        getString(v, "REDIS_PASSWORD", ""),
			DB:              getInt(v, "REDIS_DB", 0),
			CategoryTTLSecs: getInt(v, "CATEGORY_CACHE_TTL_SECONDS", 60),
		},
		Identity: IdentityConfig{
			URL:        strings.TrimRight(getString(v, "IDENTITY_URL", ""), "/"),
			ServiceKey: getString(v, "IDENTITY_SERVICE_KEY", ""),
			PublicURL:  strings.TrimRight(getString(v, "APP_PUBLIC_URL", "http://localhost:3000"), "/"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.App.StoreDriver {
	case "postgres", "memory":
	default:
		return fmt.Errorf("config: STORE_DRIVER inválido %q (postgres | memory)", c.App.StoreDriver)
	}
	switch c.AI.Provider {
	case "azure", "openai", "anthropic", "gemini", "none":
	default:
		return fmt.Errorf("config: AI_PROVIDER inválido %q", c.AI.Provider)
	}
	if c.AI.TimeoutSeconds <= 0 {
		c.AI.TimeoutSeconds = 20
	}
	return nil
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
		case int:
			return v.GetInt(key)
		case string:
			n, err := strconv.Atoi(v.GetString(key))
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
