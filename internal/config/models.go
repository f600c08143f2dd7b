package config

import (
	"fmt"
	"time"
)

// TriageConfig represents the triage pipeline configuration
type TriageConfig struct {
	SelfAddress string
	InputPath   string
}

// EnhancerConfig represents the enhancer provider configuration
type EnhancerConfig struct {
	Provider     string
	CacheEnabled bool
	CacheTTL     time.Duration
}

// BedrockConfig represents the AWS Bedrock configuration
type BedrockConfig struct {
	Region      string
	ModelID     string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// GeminiConfig represents the Google Gemini configuration
type GeminiConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// OpenAIConfig represents the OpenAI configuration
type OpenAIConfig struct {
	APIKey      string
	ModelName   string
	MaxTokens   int
	Temperature float64
	TopP        float64
	MaxBodySize int
}

// MemoryConfig represents the trait memory store configuration
type MemoryConfig struct {
	Type       string
	FilePath   string
	SQLitePath string
	MySQLDSN   string
}

// LoggingConfig represents the logging configuration
type LoggingConfig struct {
	Level  string
	Format string
}

// GetTriage returns the triage configuration
func (c *Config) GetTriage() TriageConfig {
	return TriageConfig{
		SelfAddress: c.GetString("triage.self_address"),
		InputPath:   c.GetString("triage.input_path"),
	}
}

// GetEnhancer returns the enhancer configuration
func (c *Config) GetEnhancer() (EnhancerConfig, error) {
	ttl, err := c.GetDuration("enhancer.cache_ttl")
	if err != nil {
		return EnhancerConfig{}, fmt.Errorf("invalid enhancer cache TTL: %w", err)
	}
	return EnhancerConfig{
		Provider:     c.GetString("enhancer.provider"),
		CacheEnabled: c.GetBool("enhancer.cache_enabled"),
		CacheTTL:     ttl,
	}, nil
}

// GetBedrock returns the Bedrock configuration
func (c *Config) GetBedrock() BedrockConfig {
	return BedrockConfig{
		Region:      c.GetString("bedrock.region"),
		ModelID:     c.GetString("bedrock.model_id"),
		MaxTokens:   c.GetInt("bedrock.max_tokens"),
		Temperature: c.GetFloat64("bedrock.temperature"),
		TopP:        c.GetFloat64("bedrock.top_p"),
		MaxBodySize: c.GetInt("bedrock.max_body_size"),
	}
}

// GetGemini returns the Gemini configuration
func (c *Config) GetGemini() GeminiConfig {
	return GeminiConfig{
		APIKey:      c.GetString("gemini.api_key"),
		ModelName:   c.GetString("gemini.model_name"),
		MaxTokens:   c.GetInt("gemini.max_tokens"),
		Temperature: c.GetFloat64("gemini.temperature"),
		TopP:        c.GetFloat64("gemini.top_p"),
		MaxBodySize: c.GetInt("gemini.max_body_size"),
	}
}

// GetOpenAI returns the OpenAI configuration
func (c *Config) GetOpenAI() OpenAIConfig {
	return OpenAIConfig{
		APIKey:      c.GetString("openai.api_key"),
		ModelName:   c.GetString("openai.model_name"),
		MaxTokens:   c.GetInt("openai.max_tokens"),
		Temperature: c.GetFloat64("openai.temperature"),
		TopP:        c.GetFloat64("openai.top_p"),
		MaxBodySize: c.GetInt("openai.max_body_size"),
	}
}

// GetMemory returns the memory store configuration
func (c *Config) GetMemory() MemoryConfig {
	return MemoryConfig{
		Type:       c.GetString("memory.type"),
		FilePath:   c.GetString("memory.file_path"),
		SQLitePath: c.GetString("memory.sqlite_path"),
		MySQLDSN:   c.GetString("memory.mysql_dsn"),
	}
}

// GetLogging returns the logging configuration
func (c *Config) GetLogging() LoggingConfig {
	return LoggingConfig{
		Level:  c.GetString("logging.level"),
		Format: c.GetString("logging.format"),
	}
}
