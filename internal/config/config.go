package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"  validate:"required"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"     validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// StorageConfig contains the durable storage settings.
type StorageConfig struct {
	// DataDir is the directory holding the flashcards and progress documents.
	DataDir string `mapstructure:"data_dir" validate:"required"`
}

// LLMConfig contains all LLM integration related settings.
type LLMConfig struct {
	GeminiAPIKey string `mapstructure:"gemini_api_key" validate:"required"`
	ModelName    string `mapstructure:"model_name"     validate:"required"`
	// TimeoutSeconds bounds a single generation call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" validate:"gte=0"`
	// MaxContextChars caps how much course context goes into a prompt.
	MaxContextChars int `mapstructure:"max_context_chars" validate:"gte=0"`
}
