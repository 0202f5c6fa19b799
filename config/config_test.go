package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func mapEnv(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestApplyEnv(t *testing.T) {
	cfg := Default()
	err := applyEnv(&cfg, mapEnv(map[string]string{
		"LLM_PROVIDER":    "OpenAI",
		"GOOGLE_API_KEY":  " key ",
		"LLM_API_TIMEOUT": "5s",
		"CORS_ORIGINS":    "http://a, ,http://b",
		"DB_DRIVER":       "sqlite",
	}))
	if err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Provider != ProviderOpenAI {
		t.Errorf("provider: got %q", cfg.Provider)
	}
	if cfg.GoogleAPIKey != "key" {
		t.Errorf("api key: got %q", cfg.GoogleAPIKey)
	}
	if cfg.LLMTimeout != 5*time.Second {
		t.Errorf("timeout: got %v", cfg.LLMTimeout)
	}
	if !reflect.DeepEqual(cfg.CORSOrigins, []string{"http://a", "http://b"}) {
		t.Errorf("cors: got %v", cfg.CORSOrigins)
	}
	if !cfg.DatabaseEnabled() {
		t.Error("database should be enabled")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("default addr lost: got %q", cfg.HTTPAddr)
	}
}

func TestApplyEnv_BadTimeout(t *testing.T) {
	cfg := Default()
	if err := applyEnv(&cfg, mapEnv(map[string]string{"LLM_API_TIMEOUT": "soon"})); err == nil {
		t.Fatal("expected error for bad duration")
	}
}

func TestValidate(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("missing key: got %v, want ErrMissingAPIKey", err)
	}
	cfg.GoogleAPIKey = "k"
	if err := cfg.Validate(); err != nil {
		t.Errorf("with key: %v", err)
	}
	cfg.Provider = "nope"
	if err := cfg.Validate(); err == nil || errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("unknown provider: got %v", err)
	}
	cfg.Provider = ProviderOpenAI
	if err := cfg.Validate(); err != nil {
		t.Errorf("openai with default url: %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecoprompt.yaml")
	data := []byte("provider: openai\nllm_model: qwen\ncors_origins: [\"http://x\"]\nadmin_email: a@b.c\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := Default()
	if err := loadFile(path, &cfg); err != nil {
		t.Fatalf("loadFile: %v", err)
	}
	if cfg.Provider != "openai" || cfg.LLMModel != "qwen" || cfg.AdminEmail != "a@b.c" {
		t.Errorf("loaded: %+v", cfg)
	}
	if cfg.GeminiModel != Default().GeminiModel {
		t.Errorf("defaults must survive: got %q", cfg.GeminiModel)
	}
	if err := loadFile(filepath.Join(t.TempDir(), "missing.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ecoprompt.yaml")
	if err := os.WriteFile(path, []byte("gemini_model: from-file\nhttp_addr: \":9000\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ECOPROMPT_CONFIG", path)
	t.Setenv("GEMINI_MODEL", "from-env")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.GeminiModel != "from-env" {
		t.Errorf("model: got %q, want from-env", cfg.GeminiModel)
	}
	if cfg.HTTPAddr != ":9000" {
		t.Errorf("addr: got %q, want :9000", cfg.HTTPAddr)
	}
}

func TestAdminEnabled(t *testing.T) {
	cfg := Default()
	if cfg.AdminEnabled() {
		t.Error("admin must be disabled by default")
	}
	cfg.AdminEmail, cfg.AdminPasswordHash, cfg.JWTSecret = "a@b.c", "hash", "secret"
	if !cfg.AdminEnabled() {
		t.Error("admin should be enabled")
	}
}
