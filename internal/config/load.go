package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	// Configure to read an optional config.yaml from the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; everything can come from the environment
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure to read from environment variables with RECALL_ prefix
	v.SetEnvPrefix("RECALL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "RECALL_SERVER_PORT"},
		{"server.log_level", "RECALL_SERVER_LOG_LEVEL"},
		{"database.url", "RECALL_DATABASE_URL"},
		{"llm.api_key", "RECALL_LLM_API_KEY"},
		{"llm.ocr_model", "RECALL_LLM_OCR_MODEL"},
		{"llm.min_document_chars", "RECALL_LLM_MIN_DOCUMENT_CHARS"},
		{"llm.max_document_chars", "RECALL_LLM_MAX_DOCUMENT_CHARS"},
		{"llm.enrichment_percent", "RECALL_LLM_ENRICHMENT_PERCENT"},
		{"llm.grounded_temperature", "RECALL_LLM_GROUNDED_TEMPERATURE"},
		{"llm.creative_temperature", "RECALL_LLM_CREATIVE_TEMPERATURE"},
		{"llm.request_timeout_seconds", "RECALL_LLM_REQUEST_TIMEOUT_SECONDS"},
	}

	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	// Unmarshal and validate
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
