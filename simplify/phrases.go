package simplify

import "regexp"

// Rule — одно правило упрощения: всё совпадение Pattern заменяется на Replacement.
type Rule struct {
	Pattern     *regexp.Regexp
	Replacement string
}

// NewRule компилирует шаблон правила. Паникует на неверном выражении,
// так как таблицы правил задаются в коде.
func NewRule(pattern, replacement string) Rule {
	return Rule{Pattern: regexp.MustCompile(pattern), Replacement: replacement}
}

// LiteralRule — правило для точной подстроки.
func LiteralRule(literal, replacement string) Rule {
	return NewRule(regexp.QuoteMeta(literal), replacement)
}

// q — необязательный вопросительный знак (обычный или полноширинный).
const q = `[?？]?`

// defaultRules — вежливые просьбы сворачиваются в короткую повелительную форму.
// Порядок важен: «해주실 수 있을까요» входит в «추천해주실 수 있을까요»,
// поэтому более длинные формы стоят раньше.
var defaultRules = []Rule{
	NewRule(`알려\s*주실\s*수\s*있(?:을까요|나요)`+q, "알려줘"),
	NewRule(`알려\s*줄\s*수\s*있(?:나요|니)`+q, "알려줘"),
	NewRule(`알려\s*주겠(?:니|어(?:요)?)`+q, "알려줘"),
	NewRule(`알려\s*줄래(?:요)?`+q, "알려줘"),
	NewRule(`추천\s*해\s*주실\s*수\s*있을까요`+q, "추천해줘"),
	NewRule(`도와\s*주실\s*수\s*있을까요`+q, "도와줘"),
	NewRule(`해\s*주실\s*수\s*있을까요`+q, "해줘"),
	NewRule(`주시겠어요`+q, "줘"),
}

// defaultFillers — вежливые и неуверенные обороты, которые удаляются из вопроса.
var defaultFillers = []string{
	"안녕하세요", "부탁드려요", "감사합니다", "좋은 하루 되세요", "혹시", "좀", "실 수 있을까요",
	"해주실 수 있나요?", "고맙습니다", "고마워", "맞을까요?", "항상 수고 많으세요", "잘 부탁 드립니다",
	"해주시면 감사하겠습니다", "확인 부탁드립니다", "왠지", "웬만하면", "왠지 모르게", "괜찮을까요?",
	"틀린 건 아니죠?", "제가 이해한 게 맞나요?", "대충", "뭐랄까", "그냥요", "그런 거 같아요",
	"느낌상", "그런 식으로요", "이 정도면 될까요?", "너무 길었네요", "괜히 질문 드려 죄송합니다",
	"일단", "또",
}
