// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Operation names shared by config, metrics and the router.
const (
	OperationGenerateQuestions = "generate-clarification-questions"
	OperationGenerateRemedies  = "generate-remedies"
)

const (
	DefaultGenAIEndpoint = "https://api.openai.com/v1/chat/completions"
	DefaultGenAIModel    = "gpt-4o-mini"
)

func Load() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	// Enable ENV override like APIS_GENAI_MODEL
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	// 1. base config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	// 2. environment overlay
	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // ignore error if not found

	cfg, err := finish(v)
	if err != nil {
		return nil, err
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = env
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a specific file path
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finish(v)
}

func finish(v *viper.Viper) (*Config, error) {
	// 3. expand ${VAR} placeholders
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the first location that has one.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				fmt.Printf("Loaded .env from: %s\n", path)
				return
			}
		}
	}
}

// Find project root by looking for go.mod
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			v.Set(key, os.ExpandEnv(strVal))
		}
	}
}

// overrideEmptyConfig fills secrets from the environment when the files left them empty.
func overrideEmptyConfig(cfg *Config) {
	overrides := []struct {
		target *string
		env    string
	}{
		{&cfg.APIs.GenAI.APIKey, "GENAI_API_KEY"},
		{&cfg.Database.Postgres.URL, "DATABASE_URL"},
		{&cfg.Database.Postgres.User, "DB_USER"},
		{&cfg.Database.Postgres.Password, "DB_PASSWORD"},
		{&cfg.Database.Redis.Password, "REDIS_PASSWORD"},
		{&cfg.Auth.Keycloak.ClientSecret, "KEYCLOAK_CLIENT_SECRET"},
		{&cfg.Integrations.Zoho.AuthToken, "ZOHO_CRM_OAUTH_TOKEN"},
	}

	for _, o := range overrides {
		if *o.target != "" {
			continue
		}
		if val := os.Getenv(o.env); val != "" {
			*o.target = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "remedypedia"
	}

	// Server defaults
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 30000
	}
	if cfg.Server.CORS.AllowedOrigin == "" {
		cfg.Server.CORS.AllowedOrigin = "*"
	}
	if cfg.Server.CORS.AllowedHeaders == "" {
		cfg.Server.CORS.AllowedHeaders = "authorization, x-client-info, apikey, content-type"
	}
	if cfg.Server.CORS.AllowedMethods == "" {
		cfg.Server.CORS.AllowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}

	// GenAI defaults
	if cfg.APIs.GenAI.Endpoint == "" {
		cfg.APIs.GenAI.Endpoint = DefaultGenAIEndpoint
	}
	if cfg.APIs.GenAI.Model == "" {
		cfg.APIs.GenAI.Model = DefaultGenAIModel
	}

	// Operation defaults
	if cfg.Operations == nil {
		cfg.Operations = make(map[string]OperationConfig)
	}
	for name, def := range defaultOperations() {
		op, exists := cfg.Operations[name]
		if !exists {
			cfg.Operations[name] = def
			continue
		}
		if op.Temperature == 0 {
			op.Temperature = def.Temperature
		}
		if op.MaxTokens == 0 {
			op.MaxTokens = def.MaxTokens
		}
		cfg.Operations[name] = op
	}
	for name, op := range cfg.Operations {
		if op.Model == "" {
			op.Model = cfg.APIs.GenAI.Model
			cfg.Operations[name] = op
		}
	}

	// Session defaults
	if cfg.Auth.Session.TTL == 0 {
		cfg.Auth.Session.TTL = 8 * 60 * 60
	}
	if cfg.Auth.Session.CookieName == "" {
		cfg.Auth.Session.CookieName = "remedypedia_session"
	}
	if cfg.Auth.Session.LoginRedirectURL == "" {
		cfg.Auth.Session.LoginRedirectURL = "/auth"
	}

	if cfg.Integrations.AWS.Region == "" {
		cfg.Integrations.AWS.Region = "us-east-1"
	}

	if cfg.Observability.ServiceName == "" {
		cfg.Observability.ServiceName = cfg.App.Name
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}

func defaultOperations() map[string]OperationConfig {
	return map[string]OperationConfig{
		OperationGenerateQuestions: {Enabled: true, Temperature: 0.7, MaxTokens: 1000},
		OperationGenerateRemedies:  {Enabled: true, Temperature: 0.7, MaxTokens: 2000},
	}
}

// validateConfig validates critical configuration fields. The GenAI API key is not
// checked here: a missing key is reported per request.
func validateConfig(cfg *Config) error {
	if cfg.APIs.GenAI.Endpoint == "" {
		return fmt.Errorf("apis.genai.endpoint is required")
	}

	for name, op := range cfg.Operations {
		if op.Temperature < 0 || op.Temperature > 2 {
			return fmt.Errorf("operations.%s.temperature must be between 0 and 2", name)
		}
		if op.MaxTokens < 0 {
			return fmt.Errorf("operations.%s.max_tokens must not be negative", name)
		}
	}

	pg := cfg.Database.Postgres
	if pg.URL == "" && pg.Host != "" {
		if pg.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if pg.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	}

	if cfg.Auth.Keycloak.URL != "" && (cfg.Auth.Keycloak.Realm == "" || cfg.Auth.Keycloak.ClientID == "") {
		return fmt.Errorf("auth.keycloak.realm and client_id are required when url is set")
	}

	if cfg.Integrations.AWS.SES.Enabled && cfg.Integrations.AWS.SES.FromEmail == "" {
		return fmt.Errorf("integrations.aws.ses.from_email is required when ses is enabled")
	}
	if cfg.Integrations.AWS.SNS.Enabled && cfg.Integrations.AWS.SNS.TopicARN == "" {
		return fmt.Errorf("integrations.aws.sns.topic_arn is required when sns is enabled")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}

// GetOperationConfig retrieves operation settings with fallback to defaults
func GetOperationConfig(cfg *Config, name string) OperationConfig {
	if op, exists := cfg.Operations[name]; exists {
		return op
	}
	if def, ok := defaultOperations()[name]; ok {
		def.Model = cfg.APIs.GenAI.Model
		return def
	}
	return OperationConfig{Enabled: true, Model: cfg.APIs.GenAI.Model}
}

// IsOperationEnabled checks if a specific operation is enabled
func IsOperationEnabled(cfg *Config, name string) bool {
	if op, exists := cfg.Operations[name]; exists {
		return op.Enabled
	}
	return true
}
