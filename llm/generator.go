package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/egor/ecoprompt/config"
)

// ErrEmptyResponse — модель ответила, но текста в ответе нет.
var ErrEmptyResponse = errors.New("model returned no text")

// Generator — внешний генератор ответа. Получает уже очищенный вопрос.
type Generator interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// NewGenerator выбирает клиента по LLM_PROVIDER.
func NewGenerator(cfg config.Config) (Generator, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		if cfg.GoogleAPIKey == "" {
			return nil, fmt.Errorf("GOOGLE_API_KEY: %w", config.ErrMissingAPIKey)
		}
		return NewGeminiClient(cfg.GeminiAPIURL, cfg.GoogleAPIKey, cfg.GeminiModel, cfg.LLMTimeout), nil
	case config.ProviderOpenAI:
		return NewLLMClient(cfg.LLMAPIURL, cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMTimeout), nil
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
}
