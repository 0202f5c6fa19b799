// Package telegram — бот, который принимает вопросы через long polling.
package telegram

import (
	"context"
	"fmt"
	"strings"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/llm"
)

const pollTimeout = 30

// Asker обрабатывает один вопрос.
type Asker interface {
	Ask(ctx context.Context, source, raw string) llm.Answer
}

// Sender отправляет сообщение в Telegram; *tgbotapi.BotAPI подходит.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Bot отвечает на каждое текстовое сообщение отчётом по вопросу.
type Bot struct {
	api    *tgbotapi.BotAPI
	sender Sender
	asker  Asker
	wg     sync.WaitGroup
}

// New подключается к Bot API по токену.
func New(token string, asker Asker) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram: create bot: %w", err)
	}
	log.Printf("Telegram-бот авторизован как @%s", api.Self.UserName)
	return &Bot{api: api, sender: api, asker: asker}, nil
}

// Run читает обновления, пока ctx не отменён, и ждёт незавершённые ответы.
func (b *Bot) Run(ctx context.Context) {
	cfg := tgbotapi.NewUpdate(0)
	cfg.Timeout = pollTimeout
	updates := b.api.GetUpdatesChan(cfg)

	defer b.wg.Wait()
	for {
		select {
		case <-ctx.Done():
			log.Println("Telegram-бот остановлен")
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				log.Println("Канал обновлений Telegram закрыт")
				return
			}
			b.wg.Add(1)
			go func() {
				defer b.wg.Done()
				b.HandleUpdate(ctx, update)
			}()
		}
	}
}

// HandleUpdate отвечает на одно обновление. Нетекстовые обновления пропускаются.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil {
		return
	}
	text := strings.TrimSpace(msg.Text)
	if text == "" {
		return
	}

	logger := log.WithFields(log.Fields{"chat": msg.Chat.ID, "message": msg.MessageID})

	var reply string
	if msg.IsCommand() {
		logger.Debugf("Команда /%s", msg.Command())
		reply = Intro
	} else {
		reply = FormatReport(b.asker.Ask(ctx, "telegram", msg.Text))
	}

	out := tgbotapi.NewMessage(msg.Chat.ID, reply)
	out.ReplyToMessageID = msg.MessageID
	if _, err := b.sender.Send(out); err != nil {
		logger.Errorf("Ошибка отправки ответа в Telegram: %v", err)
	}
}
