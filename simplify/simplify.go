// Package simplify убирает из вопроса вежливые «лишние» обороты и считает
// эко-балл краткости.
//
// Порядок обработки фиксирован: переписывание по таблице правил, поиск
// лишних фраз в переписанном тексте, подсчёт балла, удаление найденных фраз.
package simplify

import (
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	MaxScore = 100
	// LengthStep — сколько символов исходного текста стоят одного балла.
	LengthStep = 25
	// FillerPenalty — штраф за каждую найденную лишнюю фразу.
	FillerPenalty = 5
)

// Result — итог обработки одного вопроса.
type Result struct {
	Original   string   `json:"original"`
	Simplified string   `json:"simplified"` // после правил, до удаления фраз
	Question   string   `json:"question"`   // то, что уходит в модель
	Removed    []string `json:"removed"`    // в порядке удаления
	CharCount  int      `json:"charCount"`
	Score      int      `json:"score"`
}

// Empty сообщает, что после очистки от вопроса ничего не осталось.
func (r Result) Empty() bool { return r.Question == "" }

// Simplifier хранит неизменяемые таблицы правил и лишних фраз.
// Безопасен для одновременного использования.
type Simplifier struct {
	rules   []Rule
	fillers []string
}

var std = &Simplifier{rules: defaultRules, fillers: defaultFillers}

// Default возвращает упроститель со встроенными таблицами.
func Default() *Simplifier { return std }

// New создаёт упроститель со своими таблицами. Срезы копируются,
// повторяющиеся и пустые фразы отбрасываются.
func New(rules []Rule, fillers []string) *Simplifier {
	s := &Simplifier{rules: append([]Rule(nil), rules...)}
	seen := make(map[string]struct{}, len(fillers))
	for _, f := range fillers {
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		s.fillers = append(s.fillers, f)
	}
	return s
}

// Process обрабатывает вопрос встроенными таблицами.
func Process(raw string) Result { return std.Process(raw) }

// Process прогоняет вопрос через все четыре шага.
func (s *Simplifier) Process(raw string) Result {
	simplified := s.Rewrite(raw)
	found := s.Detect(simplified)
	return Result{
		Original:   raw,
		Simplified: simplified,
		Question:   Strip(simplified, found),
		Removed:    found,
		CharCount:  utf8.RuneCountInString(raw),
		Score:      Score(raw, len(found)),
	}
}

// Rewrite применяет правила по порядку, каждое к результату предыдущего.
// Совпадения ищутся в NFC-форме, но текст вне совпадений остаётся байт в байт.
func (s *Simplifier) Rewrite(text string) string {
	for _, r := range s.rules {
		v := newView(text)
		text = v.splice(r.Pattern.FindAllStringIndex(v.nfc, -1), r.Replacement)
	}
	return text
}

// Detect возвращает различные лишние фразы, встречающиеся в тексте,
// отсортированные в порядке удаления: длинные первыми, при равной длине по алфавиту.
func (s *Simplifier) Detect(text string) []string {
	nfc := newView(text).nfc
	var found []string
	for _, f := range s.fillers {
		if strings.Contains(nfc, f) {
			found = append(found, f)
		}
	}
	sortForRemoval(found)
	return found
}

// Strip удаляет все вхождения каждой фразы и обрезает пробелы по краям.
// Фразы удаляются от длинных к коротким, чтобы короткая фраза не
// разрезала длинную, в которую она входит.
func Strip(text string, phrases []string) string {
	ordered := append([]string(nil), phrases...)
	sortForRemoval(ordered)
	for _, p := range ordered {
		if p == "" {
			continue
		}
		v := newView(text)
		text = v.splice(indexAll(v.nfc, p), "")
	}
	return strings.TrimSpace(text)
}

// Score: 100 - floor(символы/25) - 5*фразы, но не ниже 0.
func Score(raw string, fillers int) int {
	score := MaxScore - utf8.RuneCountInString(raw)/LengthStep - FillerPenalty*fillers
	if score < 0 {
		return 0
	}
	if score > MaxScore {
		return MaxScore
	}
	return score
}

// Rules возвращает копию таблицы правил.
func (s *Simplifier) Rules() []Rule { return append([]Rule(nil), s.rules...) }

// Fillers возвращает копию списка лишних фраз.
func (s *Simplifier) Fillers() []string { return append([]string(nil), s.fillers...) }

func sortForRemoval(phrases []string) {
	sort.SliceStable(phrases, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(phrases[i]), utf8.RuneCountInString(phrases[j])
		if li != lj {
			return li > lj
		}
		return phrases[i] < phrases[j]
	})
}
