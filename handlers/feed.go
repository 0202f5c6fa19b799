package handlers

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/database"
	"github.com/egor/ecoprompt/llm"
	"github.com/egor/ecoprompt/models"
	"github.com/egor/ecoprompt/websocket"
)

// QuestionFeed пишет обработанные вопросы в журнал и рассылает их в live-ленту.
// Сбой записи только логируется: ответ пользователю уже посчитан.
type QuestionFeed struct {
	Store *database.Store
	Hub   *websocket.Hub
}

// QuestionProcessed реализует llm.Observer.
func (f *QuestionFeed) QuestionProcessed(ctx context.Context, a llm.Answer) {
	rec := Record(a)

	if f.Store != nil {
		// запрос мог уже завершиться, запись всё равно нужна
		if err := f.Store.InsertQuestion(context.WithoutCancel(ctx), rec); err != nil {
			log.WithField("id", a.ID).Errorf("Ошибка записи в журнал: %v", err)
		}
	}

	if f.Hub != nil {
		msg, err := websocket.NewQuestionProcessedMessage(rec)
		if err != nil {
			log.Printf("Ошибка при создании WebSocket сообщения: %v", err)
			return
		}
		f.Hub.Broadcast(msg)
	}
}

// Record переводит ответ в запись журнала (без исходного текста).
func Record(a llm.Answer) models.QuestionRecord {
	removed := a.Removed
	if removed == nil {
		removed = []string{}
	}
	return models.QuestionRecord{
		ID:        a.ID,
		CreatedAt: a.AskedAt,
		Source:    a.Source,
		CharCount: a.CharCount,
		Removed:   removed,
		Score:     a.Score,
		Question:  a.Question,
		Model:     a.Model,
		Replied:   a.Replied(),
		Error:     a.Error,
	}
}
