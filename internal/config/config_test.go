package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SPORTIQ_AUTH__JWT_SECRET", "secret")
	t.Setenv("SPORTIQ_LLM__API_KEY", "key")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("server.port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Type != "sqlite" {
		t.Errorf("database.type = %q, want sqlite", cfg.Database.Type)
	}
	if cfg.Generation.Attempts != 3 {
		t.Errorf("generation.attempts = %d, want 3", cfg.Generation.Attempts)
	}
	if cfg.Generation.Flashcards != 5 {
		t.Errorf("generation.flashcards = %d, want 5", cfg.Generation.Flashcards)
	}
	if cfg.Generation.AttemptTimeout != 30*time.Second {
		t.Errorf("generation.attempt_timeout = %v, want 30s", cfg.Generation.AttemptTimeout)
	}
	if cfg.LLM.Model != "gpt-4o-mini" {
		t.Errorf("llm.model = %q", cfg.LLM.Model)
	}
}

func TestLoadEnvOverridesFlags(t *testing.T) {
	t.Setenv("SPORTIQ_AUTH__JWT_SECRET", "secret")
	t.Setenv("SPORTIQ_LLM__API_KEY", "key")
	t.Setenv("SPORTIQ_SERVER__PORT", "9999")

	cfg, err := Load([]string{"--server.port", "7777"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != "9999" {
		t.Errorf("server.port = %q, want env value 9999", cfg.Server.Port)
	}
}

func TestLoadFlagOverridesDefault(t *testing.T) {
	t.Setenv("SPORTIQ_AUTH__JWT_SECRET", "secret")
	t.Setenv("SPORTIQ_LLM__API_KEY", "key")

	cfg, err := Load([]string{"--generation.attempts", "7", "--llm.provider", "openai"})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Generation.Attempts != 7 {
		t.Errorf("generation.attempts = %d, want 7", cfg.Generation.Attempts)
	}
}

func TestValidateRejections(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing jwt secret",
			env:     map[string]string{"SPORTIQ_LLM__API_KEY": "key"},
			wantErr: "invalid configuration",
		},
		{
			name:    "missing api key for openai",
			env:     map[string]string{"SPORTIQ_AUTH__JWT_SECRET": "secret"},
			wantErr: "llm.api_key is required",
		},
		{
			name: "mock provider needs no api key",
			args: []string{"--llm.provider", "mock"},
			env:  map[string]string{"SPORTIQ_AUTH__JWT_SECRET": "secret"},
		},
		{
			name: "postgres requires url",
			args: []string{"--database.type", "postgres"},
			env: map[string]string{
				"SPORTIQ_AUTH__JWT_SECRET": "secret",
				"SPORTIQ_LLM__API_KEY":     "key",
			},
			wantErr: "database.url is required",
		},
		{
			name: "azure requires endpoint",
			args: []string{"--llm.provider", "azure"},
			env: map[string]string{
				"SPORTIQ_AUTH__JWT_SECRET": "secret",
				"SPORTIQ_LLM__API_KEY":     "key",
			},
			wantErr: "llm.endpoint is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(tt.args)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Load() error = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Load() error = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want substring %q", err, tt.wantErr)
			}
		})
	}
}
