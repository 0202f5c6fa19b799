package telegram

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/llm"
	"github.com/egor/ecoprompt/simplify"
)

func init() {
	log.SetOutput(io.Discard)
}

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (s *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		s.sent = append(s.sent, m)
	}
	return tgbotapi.Message{}, s.err
}

type fakeGenerator struct{ reply string }

func (g fakeGenerator) Name() string { return "Gemini" }

func (g fakeGenerator) Generate(context.Context, string) (string, error) { return g.reply, nil }

func newTestBot(reply string) (*Bot, *fakeSender) {
	s := &fakeSender{}
	a := llm.NewAssistant(nil, fakeGenerator{reply: reply}, llm.GetDefaultConfig())
	return &Bot{sender: s, asker: a}, s
}

func textUpdate(text string) tgbotapi.Update {
	return tgbotapi.Update{Message: &tgbotapi.Message{
		MessageID: 7,
		Chat:      &tgbotapi.Chat{ID: 42},
		Text:      text,
	}}
}

func TestHandleUpdate_Question(t *testing.T) {
	bot, sender := newTestBot("서울은 맑아요")
	bot.HandleUpdate(context.Background(), textUpdate("혹시 서울 날씨 좀 알려줄래?"))

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages", len(sender.sent))
	}
	m := sender.sent[0]
	if m.ChatID != 42 || m.ReplyToMessageID != 7 {
		t.Errorf("wrong target: chat %d reply %d", m.ChatID, m.ReplyToMessageID)
	}
	for _, want := range []string{"혹시, 좀", "서울 날씨  알려줘", "🤖 Gemini 응답\n서울은 맑아요"} {
		if !strings.Contains(m.Text, want) {
			t.Errorf("reply lacks %q:\n%s", want, m.Text)
		}
	}
}

func TestHandleUpdate_Start(t *testing.T) {
	bot, sender := newTestBot("unused")
	u := textUpdate("/start")
	u.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}
	bot.HandleUpdate(context.Background(), u)

	if len(sender.sent) != 1 || sender.sent[0].Text != Intro {
		t.Fatalf("expected intro, got %+v", sender.sent)
	}
}

func TestHandleUpdate_Ignored(t *testing.T) {
	bot, sender := newTestBot("unused")
	bot.HandleUpdate(context.Background(), tgbotapi.Update{})
	bot.HandleUpdate(context.Background(), textUpdate("   "))
	if len(sender.sent) != 0 {
		t.Errorf("sent %d messages", len(sender.sent))
	}
}

func TestHandleUpdate_SendError(t *testing.T) {
	bot, sender := newTestBot("ok")
	sender.err = errors.New("network down")
	bot.HandleUpdate(context.Background(), textUpdate("질문"))
	if len(sender.sent) != 1 {
		t.Errorf("send must be attempted once")
	}
}

func TestFormatReport_EmptyQuestion(t *testing.T) {
	a := llm.Answer{Result: simplify.Process("안녕하세요 감사합니다"), Warning: llm.MsgQuestionTooShort}
	got := FormatReport(a)
	if !strings.Contains(got, llm.MsgQuestionTooShort) || strings.Contains(got, "🤖") {
		t.Errorf("unexpected report:\n%s", got)
	}
	if !strings.Contains(got, "90 / 100점") {
		t.Errorf("score missing:\n%s", got)
	}
}

func TestFormatReport_Error(t *testing.T) {
	a := llm.Answer{Result: simplify.Process("서울 날씨"), Error: "⚠️ Gemini API 오류: boom"}
	got := FormatReport(a)
	if !strings.Contains(got, "제거된 표현: 없어요!") || !strings.HasSuffix(got, "boom") {
		t.Errorf("unexpected report:\n%s", got)
	}
}

func TestFormatReport_Truncates(t *testing.T) {
	a := llm.Answer{Result: simplify.Process("질문"), Reply: strings.Repeat("가", 5000)}
	got := FormatReport(a)
	if n := len([]rune(got)); n != maxMessageRunes {
		t.Errorf("got %d runes", n)
	}
}
