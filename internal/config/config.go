package config

import "time"

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// ShutdownTimeout returns the graceful shutdown budget.
func (c ServerConfig) ShutdownTimeout() time.Duration {
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

// Supported database drivers.
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=0"`
}

// Supported generation providers.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// LLMConfig contains all LLM integration related settings.
// API keys are optional at load time; a gateway without its key fails every
// generation request with a configuration error instead. Temperature is
// always sent to the provider, so 0 requests the most deterministic output.
type LLMConfig struct {
	Provider           string  `mapstructure:"provider" validate:"required,oneof=gemini openai"`
	ModelName          string  `mapstructure:"model_name" validate:"required"`
	GeminiAPIKey       string  `mapstructure:"gemini_api_key"`
	OpenAIAPIKey       string  `mapstructure:"openai_api_key"`
	BaseURL            string  `mapstructure:"base_url" validate:"omitempty,url"`
	PromptTemplatePath string  `mapstructure:"prompt_template_path"`
	Temperature        float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
}
