package websocket

import (
	"encoding/json"
)

// WebSocketMessage представляет сообщение для WebSocket
type WebSocketMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// NewMessage создает новое сообщение с указанным типом и данными
func NewMessage(messageType string, payload interface{}) ([]byte, error) {
	payloadJSON, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return json.Marshal(WebSocketMessage{Type: messageType, Payload: payloadJSON})
}

// NewQuestionProcessedMessage — событие об обработанном вопросе
func NewQuestionProcessedMessage(payload interface{}) ([]byte, error) {
	return NewMessage("question_processed", payload)
}
