package config

import "testing"

func TestNewConfigDefaults(t *testing.T) {
	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8000" {
		t.Errorf("unexpected default port: %q", cfg.Port)
	}
	if cfg.LogLevel != "INFO" {
		t.Errorf("unexpected default log level: %q", cfg.LogLevel)
	}
	if cfg.LLMMaxTokens != 2048 {
		t.Errorf("unexpected default max tokens: %d", cfg.LLMMaxTokens)
	}
}

func TestNewConfigEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LLM_MODEL", "claude-test-model")

	cfg, err := NewConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("expected PORT override, got %q", cfg.Port)
	}
	if cfg.LogLevel != "DEBUG" {
		t.Errorf("expected LOG_LEVEL override, got %q", cfg.LogLevel)
	}
	if cfg.LLMModel != "claude-test-model" {
		t.Errorf("expected LLM_MODEL override, got %q", cfg.LLMModel)
	}
}
