package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "FLASHDECK"

// Load configuration from defaults, an optional YAML file and environment
// variables, in increasing order of precedence. An empty configFile looks for
// config.yaml in the working directory and skips it when absent.
// Returns a populated Config struct or an error if loading/validation fails.
func Load(configFile string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configFile, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Provider SDK conventions are honoured when the prefixed variable is unset.
	if err := v.BindEnv("llm.gemini_api_key", EnvPrefix+"_LLM_GEMINI_API_KEY", "GEMINI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind gemini api key: %w", err)
	}
	if err := v.BindEnv("llm.openai_api_key", EnvPrefix+"_LLM_OPENAI_API_KEY", "OPENAI_API_KEY"); err != nil {
		return nil, fmt.Errorf("failed to bind openai api key: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout_seconds", 10)

	v.SetDefault("database.driver", DriverSQLite)
	v.SetDefault("database.url", "file:flashdeck.db")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("llm.provider", ProviderGemini)
	v.SetDefault("llm.model_name", "gemini-2.0-flash")
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.prompt_template_path", "")
	v.SetDefault("llm.temperature", 0.3)
}
