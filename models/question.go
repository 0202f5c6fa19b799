package models

import (
	"time"

	"github.com/google/uuid"
)

// QuestionRecord — запись журнала обработанных вопросов.
// Исходный текст вопроса не хранится, только очищенный.
type QuestionRecord struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Source    string    `json:"source"` // "web", "api", "telegram", "cli"
	CharCount int       `json:"charCount"`
	Removed   []string  `json:"removed"`
	Score     int       `json:"score"`
	Question  string    `json:"question"`
	Model     string    `json:"model,omitempty"`
	Replied   bool      `json:"replied"`
	Error     string    `json:"error,omitempty"`
}

// PhraseCount — сколько раз фраза была удалена.
type PhraseCount struct {
	Phrase string `json:"phrase"`
	Count  int    `json:"count"`
}

// QuestionStats — сводка по журналу для админки.
type QuestionStats struct {
	Total        int           `json:"total"`
	AverageScore float64       `json:"averageScore"`
	Replied      int           `json:"replied"`
	Failed       int           `json:"failed"`
	TopPhrases   []PhraseCount `json:"topPhrases"`
}
