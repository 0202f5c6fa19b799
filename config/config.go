// Package config собирает настройки из .env, необязательного YAML-файла и
// переменных окружения (переменные окружения важнее файла).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// ErrMissingAPIKey — без ключа внешней модели приложение не принимает вопросы.
var ErrMissingAPIKey = errors.New("API key is not configured")

// Config — все настройки приложения.
type Config struct {
	Provider     string        `yaml:"provider"`
	GoogleAPIKey string        `yaml:"google_api_key"`
	GeminiModel  string        `yaml:"gemini_model"`
	GeminiAPIURL string        `yaml:"gemini_api_url"`
	LLMAPIURL    string        `yaml:"llm_api_url"`
	LLMModel     string        `yaml:"llm_model"`
	LLMAPIKey    string        `yaml:"llm_api_key"`
	LLMTimeout   time.Duration `yaml:"llm_timeout"`

	HTTPAddr    string   `yaml:"http_addr"`
	CORSOrigins []string `yaml:"cors_origins"`

	DBDriver string `yaml:"db_driver"`
	DBDSN    string `yaml:"db_dsn"`

	JWTSecret         string `yaml:"jwt_secret"`
	AdminEmail        string `yaml:"admin_email"`
	AdminPasswordHash string `yaml:"admin_password_hash"`

	TelegramToken string `yaml:"telegram_bot_token"`
	LogLevel      string `yaml:"log_level"`
}

// Default возвращает настройки по умолчанию.
func Default() Config {
	return Config{
		Provider:     ProviderGemini,
		GeminiModel:  "gemini-2.0-flash",
		GeminiAPIURL: "https://generativelanguage.googleapis.com/v1beta",
		LLMAPIURL:    "http://localhost:1234/v1",
		LLMModel:     "gemma",
		LLMTimeout:   30 * time.Second,
		HTTPAddr:     ":8080",
		CORSOrigins:  []string{"http://localhost:3000"},
		LogLevel:     "info",
	}
}

// Load читает .env (если есть), YAML-файл из ECOPROMPT_CONFIG (если задан)
// и переменные окружения.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Не удалось прочитать .env: %v", err)
	}

	cfg := Default()
	if path := os.Getenv("ECOPROMPT_CONFIG"); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv перекрывает поля непустыми переменными окружения.
func applyEnv(cfg *Config, getenv func(string) string) error {
	env := func(k string, dst *string) {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			*dst = v
		}
	}

	env("LLM_PROVIDER", &cfg.Provider)
	env("GOOGLE_API_KEY", &cfg.GoogleAPIKey)
	env("GEMINI_MODEL", &cfg.GeminiModel)
	env("GEMINI_API_URL", &cfg.GeminiAPIURL)
	env("LLM_API_URL", &cfg.LLMAPIURL)
	env("LLM_MODEL", &cfg.LLMModel)
	env("LLM_API_KEY", &cfg.LLMAPIKey)
	env("HTTP_ADDR", &cfg.HTTPAddr)
	env("DB_DRIVER", &cfg.DBDriver)
	env("DB_DSN", &cfg.DBDSN)
	env("JWT_SECRET_KEY", &cfg.JWTSecret)
	env("ADMIN_EMAIL", &cfg.AdminEmail)
	env("ADMIN_PASSWORD_HASH", &cfg.AdminPasswordHash)
	env("TELEGRAM_BOT_TOKEN", &cfg.TelegramToken)
	env("LOG_LEVEL", &cfg.LogLevel)

	if v := strings.TrimSpace(getenv("CORS_ORIGINS")); v != "" {
		cfg.CORSOrigins = splitList(v)
	}
	if v := strings.TrimSpace(getenv("LLM_API_TIMEOUT")); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("LLM_API_TIMEOUT=%q: %w", v, err)
		}
		cfg.LLMTimeout = d
	}
	cfg.Provider = strings.ToLower(cfg.Provider)
	return nil
}

// Validate проверяет, что у выбранного провайдера есть всё для запроса.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GoogleAPIKey == "" {
			return fmt.Errorf("GOOGLE_API_KEY: %w", ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if c.LLMAPIURL == "" {
			return fmt.Errorf("LLM_API_URL: %w", ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("unknown LLM_PROVIDER %q (use gemini|openai)", c.Provider)
	}
	return nil
}

// DatabaseEnabled — журнал вопросов включается только явным DB_DRIVER.
func (c Config) DatabaseEnabled() bool { return c.DBDriver != "" }

// AdminEnabled — вход администратора возможен только при заданных учётных данных.
func (c Config) AdminEnabled() bool {
	return c.AdminEmail != "" && c.AdminPasswordHash != "" && c.JWTSecret != ""
}

// SetupLogging выставляет уровень логирования.
func (c Config) SetupLogging() {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		log.Printf("Неизвестный LOG_LEVEL=%q, используем info", c.LogLevel)
		level = log.InfoLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
