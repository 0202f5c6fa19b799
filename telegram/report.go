package telegram

import (
	"fmt"
	"strings"

	"github.com/egor/ecoprompt/llm"
)

// Intro отправляется на /start и /help.
const Intro = "🌿 AI 친환경 질문 도우미\n" +
	"AI에게 질문할 때, 짧고 간결한 표현으로 물 사용을 줄여보세요 💧\n\n" +
	"✍️ AI에게 할 질문을 보내보세요."

// maxMessageRunes — лимит длины сообщения в Telegram.
const maxMessageRunes = 4096

// FormatReport собирает отчёт в том же порядке, что и веб-страница.
func FormatReport(a llm.Answer) string {
	var b strings.Builder
	b.WriteString("🧹 불필요한 표현 제거 결과\n")
	fmt.Fprintf(&b, "✏️ 글자 수: %d자\n", a.CharCount)
	fmt.Fprintf(&b, "🗑️ 제거된 표현: %s\n", a.RemovedText())
	fmt.Fprintf(&b, "🌱 친환경 점수: %d / 100점\n\n", a.Score)

	b.WriteString("✅ 정제된 질문\n")
	b.WriteString(a.QuestionText())

	if !a.Empty() {
		switch {
		case a.Reply != "":
			fmt.Fprintf(&b, "\n\n🤖 %s 응답\n%s", modelName(a), a.Reply)
		case a.Error != "":
			b.WriteString("\n\n" + a.Error)
		case a.Warning != "":
			b.WriteString("\n\n" + a.Warning)
		}
	}
	return truncate(b.String(), maxMessageRunes)
}

func modelName(a llm.Answer) string {
	if a.Model == "" {
		return "AI"
	}
	return a.Model
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit-1]) + "…"
}
