package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"github.com/iconidentify/blogsmith/internal/normalize"
)

// Supported model providers.
const (
	ProviderGemini    = "gemini"
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	LLM       LLMConfig       `yaml:"llm"`
	Normalize NormalizeConfig `yaml:"normalize"`
	Events    EventsConfig    `yaml:"events"`
	MCP       MCPConfig       `yaml:"mcp"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `yaml:"host" envconfig:"HOST" default:"0.0.0.0"`
	Port int    `yaml:"port" envconfig:"PORT" default:"8080"`
	// AccessKey protects /api/v1 and /mcp when set.
	AccessKey    string        `yaml:"access_key" envconfig:"ACCESS_KEY"`
	ReadTimeout  time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"3m"`
}

// LLMConfig holds hosted model configuration.
type LLMConfig struct {
	Provider string `yaml:"provider" envconfig:"LLM_PROVIDER" default:"gemini"`
	// APIKey is the model credential. It is optional: without it both
	// operations fail fast with a configuration error.
	APIKey        string `yaml:"api_key" envconfig:"API_KEY"`
	BaseURL       string `yaml:"base_url" envconfig:"LLM_BASE_URL"`
	ContentModel  string `yaml:"content_model" envconfig:"CONTENT_MODEL"`
	TrendingModel string `yaml:"trending_model" envconfig:"TRENDING_MODEL"`
	// Timeout bounds a single provider call. Zero means no limit.
	Timeout   time.Duration `yaml:"timeout" envconfig:"LLM_TIMEOUT" default:"0s"`
	MaxTokens int64         `yaml:"max_tokens" envconfig:"LLM_MAX_TOKENS" default:"4096"`
}

// defaultModels maps each provider to the model used when ContentModel or
// TrendingModel is unset.
var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.5-flash",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderAnthropic: "claude-sonnet-4-0",
}

// applyModelDefaults fills unset model names from the provider's default.
func (c *LLMConfig) applyModelDefaults() {
	def := defaultModels[c.Provider]
	if c.ContentModel == "" {
		c.ContentModel = def
	}
	if c.TrendingModel == "" {
		c.TrendingModel = def
	}
}

// HasCredential reports whether a model API key is configured.
func (c *LLMConfig) HasCredential() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// NormalizeConfig holds the response normalizer thresholds.
type NormalizeConfig struct {
	StrictMinLen int `yaml:"strict_min_len" envconfig:"NORMALIZE_STRICT_MIN_LEN" default:"5"`
	StrictMaxLen int `yaml:"strict_max_len" envconfig:"NORMALIZE_STRICT_MAX_LEN" default:"150"`
	MinLines     int `yaml:"min_lines" envconfig:"NORMALIZE_MIN_LINES" default:"1"`
	MaxLines     int `yaml:"max_lines" envconfig:"NORMALIZE_MAX_LINES" default:"7"`
	LooseMinLen  int `yaml:"loose_min_len" envconfig:"NORMALIZE_LOOSE_MIN_LEN" default:"3"`
	LooseMaxLen  int `yaml:"loose_max_len" envconfig:"NORMALIZE_LOOSE_MAX_LEN" default:"150"`
	MaxTopics    int `yaml:"max_topics" envconfig:"NORMALIZE_MAX_TOPICS" default:"5"`
}

// Limits converts the configuration into normalizer limits.
func (c NormalizeConfig) Limits() normalize.Limits {
	l := normalize.DefaultLimits()
	l.StrictMinLen = c.StrictMinLen
	l.StrictMaxLen = c.StrictMaxLen
	l.MinLines = c.MinLines
	l.MaxLines = c.MaxLines
	l.LooseMinLen = c.LooseMinLen
	l.LooseMaxLen = c.LooseMaxLen
	l.MaxTopics = c.MaxTopics
	return l
}

// EventsConfig holds activity log configuration.
type EventsConfig struct {
	BufferSize int `yaml:"buffer_size" envconfig:"EVENTS_BUFFER_SIZE" default:"1000"`
	// SQLitePath enables persistence when set.
	SQLitePath    string `yaml:"sqlite_path" envconfig:"EVENTS_SQLITE_PATH"`
	RetentionDays int    `yaml:"retention_days" envconfig:"EVENTS_RETENTION_DAYS" default:"30"`
}

// MCPConfig holds MCP endpoint configuration.
type MCPConfig struct {
	Enabled bool `yaml:"enabled" envconfig:"MCP_ENABLED" default:"true"`
}

// Load reads configuration from a .env file, a YAML file and environment
// variables. Environment variables override file values.
func Load(configPath string) (*Config, error) {
	// .env values never replace variables already set in the environment.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	// Defaults and environment first, so the file can replace defaults.
	fromEnv := &Config{}
	if err := envconfig.Process("", fromEnv); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	cfg := *fromEnv

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		// Variables present in the environment win over the file.
		overlayEnv(reflect.ValueOf(&cfg).Elem(), reflect.ValueOf(fromEnv).Elem())
	}

	cfg.LLM.applyModelDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// overlayEnv copies into dst every field of src whose envconfig variable is
// set in the environment.
func overlayEnv(dst, src reflect.Value) {
	t := dst.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		key := field.Tag.Get("envconfig")
		if key == "" {
			if field.Type.Kind() == reflect.Struct {
				overlayEnv(dst.Field(i), src.Field(i))
			}
			continue
		}
		if _, ok := os.LookupEnv(key); ok {
			dst.Field(i).Set(src.Field(i))
		}
	}
}

// Validate checks structural configuration values. A missing model
// credential is not an error here.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI, ProviderAnthropic:
	default:
		return fmt.Errorf("LLM_PROVIDER must be one of %s, %s, %s; got %q",
			ProviderGemini, ProviderOpenAI, ProviderAnthropic, c.LLM.Provider)
	}
	if c.LLM.ContentModel == "" {
		return fmt.Errorf("CONTENT_MODEL is required")
	}
	if c.LLM.TrendingModel == "" {
		return fmt.Errorf("TRENDING_MODEL is required")
	}
	if c.LLM.Timeout < 0 {
		return fmt.Errorf("LLM_TIMEOUT must not be negative")
	}
	if err := c.Normalize.Limits().Validate(); err != nil {
		return fmt.Errorf("normalize: %w", err)
	}
	if c.Events.BufferSize < 1 {
		return fmt.Errorf("EVENTS_BUFFER_SIZE must be positive")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
