package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/simplify"
)

// Тексты, которые видит пользователь.
const (
	MsgQuestionTooShort = "⚠️ 질문이 너무 짧아졌어요!"
	MsgNoneRemoved      = "없어요!"
	MsgMissingAPIKey    = "❌ API 키가 설정되지 않았어요. 환경 변수나 .env 파일에 GOOGLE_API_KEY를 추가해 주세요."
)

// Answer — всё, что показывается пользователю после одного вопроса.
// Поля упрощения валидны независимо от успеха вызова модели.
type Answer struct {
	ID     uuid.UUID `json:"id"`
	Source string    `json:"source"`
	simplify.Result
	Model    string    `json:"model,omitempty"`
	Reply    string    `json:"reply,omitempty"`
	Warning  string    `json:"warning,omitempty"`
	Error    string    `json:"error,omitempty"`
	AskedAt  time.Time `json:"askedAt"`
	Duration string    `json:"duration,omitempty"`
}

// Replied — модель вернула непустой ответ.
func (a Answer) Replied() bool { return a.Reply != "" }

// RemovedText — найденные фразы через запятую или «없어요!».
func (a Answer) RemovedText() string {
	if len(a.Removed) == 0 {
		return MsgNoneRemoved
	}
	return strings.Join(a.Removed, ", ")
}

// QuestionText — очищенный вопрос или предупреждение, если он пуст.
func (a Answer) QuestionText() string {
	if a.Empty() {
		return MsgQuestionTooShort
	}
	return a.Question
}

// Observer получает каждый обработанный вопрос (журнал, live-лента).
type Observer interface {
	QuestionProcessed(ctx context.Context, a Answer)
}

// AssistantConfig содержит настройки ассистента
type AssistantConfig struct {
	// Timeout ограничивает один вызов модели поверх таймаута HTTP-клиента.
	Timeout time.Duration
}

// GetDefaultConfig возвращает настройки по умолчанию
func GetDefaultConfig() AssistantConfig {
	return AssistantConfig{Timeout: 60 * time.Second}
}

// Assistant связывает упроститель и внешний генератор.
type Assistant struct {
	simplifier *simplify.Simplifier
	client     Generator
	config     AssistantConfig
	observers  []Observer
}

// NewAssistant создаёт ассистента. client может быть nil, тогда вопрос
// только очищается.
func NewAssistant(s *simplify.Simplifier, client Generator, cfg AssistantConfig, observers ...Observer) *Assistant {
	if s == nil {
		s = simplify.Default()
	}
	return &Assistant{simplifier: s, client: client, config: cfg, observers: observers}
}

// Simplify только очищает и оценивает вопрос, без вызова модели.
func (a *Assistant) Simplify(raw string) simplify.Result {
	return a.simplifier.Process(raw)
}

// Ask очищает вопрос и, если от него что-то осталось, отправляет его модели.
// Ошибка модели не фатальна: она попадает в Answer.Error.
func (a *Assistant) Ask(ctx context.Context, source, raw string) Answer {
	started := time.Now()
	ans := Answer{
		ID:      uuid.New(),
		Source:  source,
		Result:  a.simplifier.Process(raw),
		AskedAt: started.UTC(),
	}

	logger := log.WithFields(log.Fields{
		"id":      ans.ID,
		"source":  source,
		"chars":   ans.CharCount,
		"score":   ans.Score,
		"removed": len(ans.Removed),
	})

	switch {
	case ans.Empty():
		ans.Warning = MsgQuestionTooShort
		logger.Info("Вопрос пуст после очистки, модель не вызываем")
	case a.client == nil:
		logger.Debug("Генератор не настроен, только очистка")
	default:
		ans.Model = a.client.Name()
		a.generate(ctx, &ans)
		if ans.Error != "" {
			logger.WithField("error", ans.Error).Warn("Ошибка при генерации ответа")
		} else {
			logger.Info("Ответ модели получен")
		}
	}

	ans.Duration = time.Since(started).Round(time.Millisecond).String()
	for _, o := range a.observers {
		o.QuestionProcessed(ctx, ans)
	}
	return ans
}

func (a *Assistant) generate(ctx context.Context, ans *Answer) {
	if a.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.config.Timeout)
		defer cancel()
	}

	reply, err := a.client.Generate(ctx, ans.Question)
	switch {
	case errors.Is(err, ErrEmptyResponse):
		ans.Warning = fmt.Sprintf("%s가 유효한 응답을 반환하지 않았어요.", a.client.Name())
	case err != nil:
		ans.Error = fmt.Sprintf("⚠️ %s API 오류: %v", a.client.Name(), err)
	case strings.TrimSpace(reply) == "":
		ans.Warning = fmt.Sprintf("%s가 유효한 응답을 반환하지 않았어요.", a.client.Name())
	default:
		ans.Reply = strings.TrimSpace(reply)
	}
}
