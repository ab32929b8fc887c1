package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestAIConfig_APIKeyRequiredUnlessMock(t *testing.T) {
	cfg := AIConfig{Model: "gemini-2.0-flash"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing api key should fail")
	}

	cfg.Mock = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("mock mode should not need an api key: %v", err)
	}

	cfg.Mock = false
	cfg.APIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("api key should satisfy validation: %v", err)
	}
}

func TestAIConfig_ModelRequired(t *testing.T) {
	cfg := AIConfig{Mock: true}
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing model should fail")
	}
}

func TestVaultConfig_AllDirsRequired(t *testing.T) {
	cfg := NewDefaultConfig().Vault
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default vault config should pass: %v", err)
	}

	cfg.BookmarkDir = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("missing bookmark dir should fail")
	}
}

func TestArticleConfig_TimeoutBounds(t *testing.T) {
	cfg := ArticleConfig{TimeoutSeconds: 0}
	if err := cfg.Validate(); err == nil {
		t.Fatal("zero timeout should fail")
	}
	cfg.TimeoutSeconds = 700
	if err := cfg.Validate(); err == nil {
		t.Fatal("oversized timeout should fail")
	}
	cfg.TimeoutSeconds = 30
	if err := cfg.Validate(); err != nil {
		t.Errorf("timeout 30 should pass: %v", err)
	}
}

func TestDefaultConfig_FailsWithoutAPIKey(t *testing.T) {
	// Defaults leave the API key unset, so validation forces an explicit
	// key or mock mode.
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("default config without api key should fail")
	}

	cfg.AI.Mock = true
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config with mock ai should pass: %v", err)
	}
}
