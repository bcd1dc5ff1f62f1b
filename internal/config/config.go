package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	LLM      LLMConfig      `mapstructure:"llm" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// LLMConfig contains the generation pipeline tunables. Models are tried in
// order; the first successful response wins. MinDocumentChars and
// MaxDocumentChars bound the grounding decision and the prompt size,
// EnrichmentPercent caps the share of enrichment cards when suggestions
// are enabled.
type LLMConfig struct {
	// APIKey is a deployment-level fallback. A key stored in the
	// settings row always wins over this one.
	APIKey                string   `mapstructure:"api_key"`
	Models                []string `mapstructure:"models" validate:"omitempty,min=1,dive,required"`
	OCRModel              string   `mapstructure:"ocr_model"`
	MinDocumentChars      int      `mapstructure:"min_document_chars" validate:"omitempty,gt=0"`
	MaxDocumentChars      int      `mapstructure:"max_document_chars" validate:"omitempty,gt=0"`
	EnrichmentPercent     int      `mapstructure:"enrichment_percent" validate:"omitempty,gt=0,lte=100"`
	GroundedTemperature   float32  `mapstructure:"grounded_temperature" validate:"omitempty,gte=0,lte=2"`
	CreativeTemperature   float32  `mapstructure:"creative_temperature" validate:"omitempty,gte=0,lte=2"`
	RequestTimeoutSeconds int      `mapstructure:"request_timeout_seconds" validate:"omitempty,gt=0"`
}
