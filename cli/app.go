// Package cli — консольный вариант помощника: те же очистка, оценка и
// вызов модели, что и у веб-страницы.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/egor/ecoprompt/config"
	"github.com/egor/ecoprompt/llm"
	"github.com/egor/ecoprompt/simplify"
)

// Коды выхода.
const (
	ExitOK    = 0
	ExitError = 1
	ExitUsage = 2
)

// App разбирает аргументы и печатает отчёты.
type App struct {
	out io.Writer

	loadConfig   func() (config.Config, error)
	newGenerator func(config.Config) (llm.Generator, error)
}

func NewApp() *App {
	return &App{
		out:          os.Stdout,
		loadConfig:   config.Load,
		newGenerator: llm.NewGenerator,
	}
}

func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) == 0 {
		a.printHelp()
		return ExitOK
	}

	switch strings.ToLower(strings.TrimSpace(args[0])) {
	case "help", "-h", "--help":
		a.printHelp()
		return ExitOK
	case "ask":
		return a.runAsk(ctx, args[1:])
	case "simplify":
		return a.runSimplify(args[1:])
	case "phrases":
		return a.runPhrases()
	default:
		errorStyle.Fprintf(a.out, "unknown command %q\n", args[0])
		a.printHelp()
		return ExitUsage
	}
}

func (a *App) printHelp() {
	headerStyle.Fprintln(a.out, "ecoprompt: AI 친환경 질문 도우미")
	fmt.Fprintln(a.out, "AI에게 질문할 때, 짧고 간결한 표현으로 물 사용을 줄여보세요 💧")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Usage:")
	fmt.Fprintln(a.out, "  ecoprompt <command> [question]")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Commands:")
	fmt.Fprintln(a.out, "  ask \"<question>\"       Clean the question, score it and send it to the model")
	fmt.Fprintln(a.out, "  simplify \"<question>\"  Clean and score only, no model call")
	fmt.Fprintln(a.out, "  phrases                Show rewrite rules and filler phrases")
	fmt.Fprintln(a.out, "  help                   Show this help")
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Examples:")
	fmt.Fprintln(a.out, "  ecoprompt ask \"혹시 파이썬 배우는 법 추천해주실 수 있을까요?\"")
	fmt.Fprintln(a.out, "  ecoprompt simplify \"안녕하세요 좀 알려줄래?\"")
}

func (a *App) runAsk(ctx context.Context, args []string) int {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		errorStyle.Fprintln(a.out, "Usage: ecoprompt ask \"<question>\"")
		return ExitUsage
	}

	cfg, err := a.loadConfig()
	if err != nil {
		errorStyle.Fprintf(a.out, "failed to load config: %v\n", err)
		return ExitError
	}
	if err := cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrMissingAPIKey) {
			errorStyle.Fprintln(a.out, llm.MsgMissingAPIKey)
			return ExitUsage
		}
		errorStyle.Fprintf(a.out, "invalid config: %v\n", err)
		return ExitError
	}

	client, err := a.newGenerator(cfg)
	if err != nil {
		errorStyle.Fprintf(a.out, "failed to initialize model client: %v\n", err)
		return ExitError
	}
	assistant := llm.NewAssistant(nil, client, llm.AssistantConfig{Timeout: cfg.LLMTimeout})

	thinking := a.startSpinner(client.Name() + " is thinking")
	ans := assistant.Ask(ctx, "cli", question)
	thinking.stop()

	a.printResult(ans.Result)
	a.printModelSection(ans)
	if ans.Error != "" {
		return ExitError
	}
	return ExitOK
}

func (a *App) runSimplify(args []string) int {
	question := strings.Join(args, " ")
	if strings.TrimSpace(question) == "" {
		errorStyle.Fprintln(a.out, "Usage: ecoprompt simplify \"<question>\"")
		return ExitUsage
	}
	a.printResult(simplify.Process(question))
	return ExitOK
}

func (a *App) runPhrases() int {
	s := simplify.Default()

	headerStyle.Fprintln(a.out, "Rewrite rules (applied in order):")
	for i, r := range s.Rules() {
		fmt.Fprintf(a.out, "  %d. %s %s %s\n", i+1, r.Pattern.String(), mutedStyle.Sprint("→"), r.Replacement)
	}
	fmt.Fprintln(a.out)

	headerStyle.Fprintln(a.out, "Filler phrases:")
	for _, f := range s.Fillers() {
		fmt.Fprintf(a.out, "  - %s\n", f)
	}
	fmt.Fprintln(a.out)
	mutedStyle.Fprintf(a.out, "score = %d - chars/%d - %d × phrases (min 0)\n",
		simplify.MaxScore, simplify.LengthStep, simplify.FillerPenalty)
	return ExitOK
}

func (a *App) printResult(res simplify.Result) {
	ans := llm.Answer{Result: res}

	headerStyle.Fprintln(a.out, "🧹 불필요한 표현 제거 결과")
	fmt.Fprintf(a.out, "✏️ 글자 수: %d자\n", res.CharCount)
	fmt.Fprintf(a.out, "🗑️ 제거된 표현: %s\n", ans.RemovedText())
	fmt.Fprintf(a.out, "🌱 친환경 점수: %s %s\n",
		scoreStyle.Sprintf("%d / 100점", res.Score), mutedStyle.Sprint(scoreBar(res.Score)))
	fmt.Fprintln(a.out)

	headerStyle.Fprintln(a.out, "✅ 정제된 질문")
	if res.Empty() {
		warnStyle.Fprintln(a.out, llm.MsgQuestionTooShort)
		return
	}
	successStyle.Fprintln(a.out, res.Question)
}

func (a *App) printModelSection(ans llm.Answer) {
	if ans.Empty() {
		return
	}
	fmt.Fprintln(a.out)
	headerStyle.Fprintf(a.out, "🤖 %s 응답\n", ans.Model)
	switch {
	case ans.Reply != "":
		infoStyle.Fprintln(a.out, ans.Reply)
	case ans.Error != "":
		errorStyle.Fprintln(a.out, ans.Error)
	case ans.Warning != "":
		warnStyle.Fprintln(a.out, ans.Warning)
	}
}

// scoreBar рисует балл полосой из 20 делений.
func scoreBar(score int) string {
	const width = 20
	filled := score * width / simplify.MaxScore
	if filled < 0 {
		filled = 0
	}
	if filled > width {
		filled = width
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("·", width-filled) + "]"
}

type spinner struct {
	out    io.Writer
	done   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func (a *App) startSpinner(message string) *spinner {
	s := &spinner{out: a.out, done: make(chan struct{}), exited: make(chan struct{})}

	go func() {
		defer close(s.exited)
		frames := []string{"|", "/", "-", "\\"}
		ticker := time.NewTicker(120 * time.Millisecond)
		defer ticker.Stop()

		index := 0
		for {
			select {
			case <-s.done:
				return
			case <-ticker.C:
				spinnerStyle.Fprintf(s.out, "\r%s %s", frames[index%len(frames)], message)
				index++
			}
		}
	}()

	return s
}

func (s *spinner) stop() {
	s.once.Do(func() {
		close(s.done)
		<-s.exited
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", 60))
	})
}
