package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// Config holds application configuration. It is constructed once in main
// and passed explicitly into every component that needs it.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Auth       AuthConfig       `koanf:"auth"`
	LLM        LLMConfig        `koanf:"llm"`
	Generation GenerationConfig `koanf:"generation"`
	Email      EmailConfig      `koanf:"email"`
	Ingest     IngestConfig     `koanf:"ingest"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port string `koanf:"port" validate:"required"`
}

// DatabaseConfig selects and configures the database backend
type DatabaseConfig struct {
	Type string `koanf:"type" validate:"oneof=sqlite sqlite3 postgres postgresql mysql"`
	Path string `koanf:"path"`
	URL  string `koanf:"url"`
}

// AuthConfig holds settings for verifying bearer tokens issued by the
// external identity provider
type AuthConfig struct {
	JWTSecret string `koanf:"jwt_secret" validate:"required"`
}

// LLMConfig configures the text-generation collaborator
type LLMConfig struct {
	// Provider selects the client implementation: "openai", "azure" or "mock"
	Provider    string  `koanf:"provider" validate:"oneof=openai azure mock"`
	APIKey      string  `koanf:"api_key"`
	Model       string  `koanf:"model"`
	BaseURL     string  `koanf:"base_url"`
	Endpoint    string  `koanf:"endpoint"`
	APIVersion  string  `koanf:"api_version"`
	Temperature float64 `koanf:"temperature"`
}

// GenerationConfig bounds the content-generation pipeline
type GenerationConfig struct {
	Attempts       int           `koanf:"attempts" validate:"min=1"`
	Flashcards     int           `koanf:"flashcards" validate:"min=1"`
	AttemptTimeout time.Duration `koanf:"attempt_timeout"`
}

// EmailConfig configures the optional SES welcome email. Leaving FromEmail
// empty disables email entirely.
type EmailConfig struct {
	Region    string `koanf:"region"`
	FromEmail string `koanf:"from_email"`
	FromName  string `koanf:"from_name"`
}

// IngestConfig configures the ESPN reference-data ingest
type IngestConfig struct {
	BaseURL string `koanf:"base_url"`
}

// Load reads configuration in increasing order of precedence: flag
// defaults, an optional YAML config file, then SPORTIQ_* environment
// variables (e.g. SPORTIQ_AUTH__JWT_SECRET maps to auth.jwt_secret).
func Load(args []string) (*Config, error) {
	f := pflag.NewFlagSet("sportiq", pflag.ContinueOnError)
	f.String("config", "", "path to a YAML config file")
	f.String("server.port", "8080", "HTTP listen port")
	f.String("database.type", "sqlite", "database backend: sqlite, postgres or mysql")
	f.String("database.path", "./sportiq.db", "SQLite database path")
	f.String("database.url", "", "PostgreSQL/MySQL connection URL")
	f.String("auth.jwt_secret", "", "HMAC secret for verifying bearer tokens")
	f.String("llm.provider", "openai", "text-generation provider: openai, azure or mock")
	f.String("llm.api_key", "", "text-generation API key")
	f.String("llm.model", "gpt-4o-mini", "model or Azure deployment name")
	f.String("llm.base_url", "", "override base URL for OpenAI-compatible APIs")
	f.String("llm.endpoint", "", "Azure OpenAI endpoint")
	f.String("llm.api_version", "", "Azure OpenAI API version")
	f.Float64("llm.temperature", 0.7, "sampling temperature")
	f.Int("generation.attempts", 3, "generation attempts before giving up")
	f.Int("generation.flashcards", 5, "flashcards (and questions) per module")
	f.Duration("generation.attempt_timeout", 30*time.Second, "timeout per generation attempt")
	f.String("email.region", "us-east-1", "AWS region for SES")
	f.String("email.from_email", "", "SES sender address (empty disables email)")
	f.String("email.from_name", "SportIQ", "SES sender display name")
	f.String("ingest.base_url", "http://site.api.espn.com/apis/site/v2/sports/baseball/mlb", "ESPN API base URL")
	if err := f.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(posflag.Provider(f, ".", k), nil); err != nil {
		return nil, fmt.Errorf("failed to load flags: %w", err)
	}

	if path := k.String("config"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("SPORTIQ_", ".", func(s string) string {
		s = strings.ToLower(strings.TrimPrefix(s, "SPORTIQ_"))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks structural constraints and cross-field requirements
func (c *Config) Validate() error {
	v := validator.New()
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	switch strings.ToLower(c.Database.Type) {
	case "postgres", "postgresql", "mysql":
		if c.Database.URL == "" {
			return fmt.Errorf("database.url is required for %s", c.Database.Type)
		}
	}

	if c.LLM.Provider != "mock" && c.LLM.APIKey == "" {
		return fmt.Errorf("llm.api_key is required for the %s provider", c.LLM.Provider)
	}
	if c.LLM.Provider == "azure" && c.LLM.Endpoint == "" {
		return fmt.Errorf("llm.endpoint is required for the azure provider")
	}

	return nil
}
