package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/fatih/color"
	log "github.com/sirupsen/logrus"

	"github.com/egor/ecoprompt/config"
	"github.com/egor/ecoprompt/llm"
)

func init() {
	color.NoColor = true
	log.SetOutput(io.Discard)
}

type fakeGenerator struct {
	reply string
	err   error
}

func (g fakeGenerator) Name() string { return "Gemini" }

func (g fakeGenerator) Generate(context.Context, string) (string, error) { return g.reply, g.err }

func newTestApp(cfg config.Config, gen llm.Generator) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		out:        &out,
		loadConfig: func() (config.Config, error) { return cfg, nil },
		newGenerator: func(config.Config) (llm.Generator, error) {
			return gen, nil
		},
	}, &out
}

func configured() config.Config {
	cfg := config.Default()
	cfg.GoogleAPIKey = "key"
	return cfg
}

func TestRun_Help(t *testing.T) {
	app, out := newTestApp(configured(), nil)
	if code := app.Run(context.Background(), nil); code != ExitOK {
		t.Errorf("code: got %d", code)
	}
	if !strings.Contains(out.String(), "Usage:") {
		t.Errorf("help not printed:\n%s", out)
	}
}

func TestRun_UnknownCommand(t *testing.T) {
	app, out := newTestApp(configured(), nil)
	if code := app.Run(context.Background(), []string{"frobnicate"}); code != ExitUsage {
		t.Errorf("code: got %d", code)
	}
	if !strings.Contains(out.String(), `unknown command "frobnicate"`) {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_Ask(t *testing.T) {
	app, out := newTestApp(configured(), fakeGenerator{reply: "책부터 시작하세요"})
	code := app.Run(context.Background(), []string{"ask", "혹시 파이썬 배우는 법", "추천해주실 수 있을까요?"})
	if code != ExitOK {
		t.Fatalf("code: got %d\n%s", code, out)
	}
	for _, want := range []string{"26자", "제거된 표현: 혹시", "94 / 100점", "파이썬 배우는 법 추천해줘", "🤖 Gemini 응답", "책부터 시작하세요"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestRun_AskModelError(t *testing.T) {
	app, out := newTestApp(configured(), fakeGenerator{err: errors.New("quota")})
	if code := app.Run(context.Background(), []string{"ask", "파이썬 알려줘"}); code != ExitError {
		t.Errorf("code: got %d", code)
	}
	if !strings.Contains(out.String(), "⚠️ Gemini API 오류: quota") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_AskMissingKey(t *testing.T) {
	app, out := newTestApp(config.Default(), fakeGenerator{})
	if code := app.Run(context.Background(), []string{"ask", "질문"}); code != ExitUsage {
		t.Errorf("code: got %d", code)
	}
	if !strings.Contains(out.String(), llm.MsgMissingAPIKey) {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_AskOnlyFillers(t *testing.T) {
	app, out := newTestApp(configured(), fakeGenerator{reply: "unused"})
	if code := app.Run(context.Background(), []string{"ask", "안녕하세요 감사합니다"}); code != ExitOK {
		t.Errorf("code: got %d", code)
	}
	if !strings.Contains(out.String(), llm.MsgQuestionTooShort) || strings.Contains(out.String(), "🤖") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_Simplify(t *testing.T) {
	// без ключа simplify тоже работает
	app, out := newTestApp(config.Default(), nil)
	if code := app.Run(context.Background(), []string{"simplify", "좀 알려줄래?"}); code != ExitOK {
		t.Fatalf("code: got %d", code)
	}
	if !strings.Contains(out.String(), "알려줘") || !strings.Contains(out.String(), "95 / 100점") {
		t.Errorf("output:\n%s", out)
	}
}

func TestRun_Usage(t *testing.T) {
	app, _ := newTestApp(configured(), nil)
	for _, cmd := range []string{"ask", "simplify"} {
		if code := app.Run(context.Background(), []string{cmd, "  "}); code != ExitUsage {
			t.Errorf("%s: got %d", cmd, code)
		}
	}
}

func TestRun_Phrases(t *testing.T) {
	app, out := newTestApp(configured(), nil)
	if code := app.Run(context.Background(), []string{"phrases"}); code != ExitOK {
		t.Fatalf("code: got %d", code)
	}
	if !strings.Contains(out.String(), "8. 주시겠어요") || !strings.Contains(out.String(), "  - 또") {
		t.Errorf("output:\n%s", out)
	}
}

func TestScoreBar(t *testing.T) {
	cases := map[int]string{
		100: "[" + strings.Repeat("█", 20) + "]",
		0:   "[" + strings.Repeat("·", 20) + "]",
		50:  "[" + strings.Repeat("█", 10) + strings.Repeat("·", 10) + "]",
	}
	for score, want := range cases {
		if got := scoreBar(score); got != want {
			t.Errorf("scoreBar(%d) = %q, want %q", score, got, want)
		}
	}
}
