// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig                  `mapstructure:"app"`
	Server        ServerConfig               `mapstructure:"server"`
	Database      DatabaseConfig             `mapstructure:"database"`
	APIs          APIsConfig                 `mapstructure:"apis"`
	Operations    map[string]OperationConfig `mapstructure:"operations"`
	Auth          AuthConfig                 `mapstructure:"auth"`
	Integrations  IntegrationConfig          `mapstructure:"integrations"`
	Observability ObservabilityConfig        `mapstructure:"observability"`
	Logging       LoggingConfig              `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address         string     `mapstructure:"address"`
	ReadTimeout     int        `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int        `mapstructure:"write_timeout"`    // milliseconds, 0 = none
	ShutdownTimeout int        `mapstructure:"shutdown_timeout"` // milliseconds
	CORS            CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigin  string `mapstructure:"allowed_origin"`
	AllowedHeaders string `mapstructure:"allowed_headers"`
	AllowedMethods string `mapstructure:"allowed_methods"`
}

type DatabaseConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

type PostgresConfig struct {
	URL            string `mapstructure:"url"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string. A full URL wins over the parts.
func (p PostgresConfig) GetDSN() string {
	if p.URL != "" {
		return p.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

// Enabled reports whether enough is set to attempt a connection.
func (p PostgresConfig) Enabled() bool {
	return p.URL != "" || p.Host != ""
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// APIsConfig holds settings for external API integrations.
type APIsConfig struct {
	GenAI GenAIConfig `mapstructure:"genai"`
}

// GenAIConfig points at the chat-completion gateway.
type GenAIConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	APIKey   string `mapstructure:"api_key"`
	Model    string `mapstructure:"model"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds, 0 = client default
}

// OperationConfig holds per-operation generation settings.
type OperationConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	Model       string  `mapstructure:"model"`
	Temperature float64 `mapstructure:"temperature"`
	MaxTokens   int     `mapstructure:"max_tokens"`
}

// --- Specific Configuration Sections ---

// AuthConfig holds settings for admin sessions.
type AuthConfig struct {
	Keycloak struct {
		URL          string `mapstructure:"url"`
		Realm        string `mapstructure:"realm"`
		ClientID     string `mapstructure:"client_id"`
		ClientSecret string `mapstructure:"client_secret"`
	} `mapstructure:"keycloak"`

	Session struct {
		TTL              int    `mapstructure:"ttl"` // seconds
		CookieName       string `mapstructure:"cookie_name"`
		CookieSecure     bool   `mapstructure:"cookie_secure"`
		LoginRedirectURL string `mapstructure:"login_redirect_url"`
	} `mapstructure:"session"`
}

// IntegrationConfig holds settings for CRM, Email, and other external services.
type IntegrationConfig struct {
	Zoho struct {
		Enabled   bool   `mapstructure:"enabled"`
		BaseURL   string `mapstructure:"base_url"`
		AuthToken string `mapstructure:"oauth_token"`
	} `mapstructure:"zoho"`

	AWS struct {
		Region string `mapstructure:"region"`
		SES    struct {
			Enabled   bool   `mapstructure:"enabled"`
			FromEmail string `mapstructure:"from_email"`
		} `mapstructure:"ses"`
		SNS struct {
			Enabled  bool   `mapstructure:"enabled"`
			TopicARN string `mapstructure:"topic_arn"`
		} `mapstructure:"sns"`
	} `mapstructure:"aws"`
}

// ObservabilityConfig holds tracing settings.
type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
