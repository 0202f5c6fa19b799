package simplify

import (
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// boundary связывает границу сегмента в NFC-тексте с позицией в исходном.
type boundary struct {
	raw, nfc int
}

// nfcView — NFC-представление текста для поиска совпадений. Найденные
// совпадения вклеиваются обратно в исходный текст, остальное не меняется.
type nfcView struct {
	raw    string
	nfc    string
	bounds []boundary // nil: текст уже в NFC, смещения совпадают
}

func newView(raw string) nfcView {
	if norm.NFC.IsNormalString(raw) {
		return nfcView{raw: raw, nfc: raw}
	}

	// режем перед каждым символом, который не склеивается с предыдущими:
	// куски нормализуются независимо, границы слогов сохраняются
	v := nfcView{raw: raw, bounds: []boundary{{0, 0}}}
	var b strings.Builder
	start := 0
	for i := 0; i < len(raw); {
		_, size := utf8.DecodeRuneInString(raw[i:])
		if i > start && norm.NFC.PropertiesString(raw[i:]).BoundaryBefore() {
			b.WriteString(norm.NFC.String(raw[start:i]))
			v.bounds = append(v.bounds, boundary{raw: i, nfc: b.Len()})
			start = i
		}
		i += size
	}
	b.WriteString(norm.NFC.String(raw[start:]))
	v.bounds = append(v.bounds, boundary{raw: len(raw), nfc: b.Len()})
	v.nfc = b.String()
	return v
}

// rawStart — начало сегмента, содержащего смещение off в NFC-тексте.
func (v nfcView) rawStart(off int) int {
	if v.bounds == nil {
		return off
	}
	i := sort.Search(len(v.bounds), func(i int) bool { return v.bounds[i].nfc > off })
	return v.bounds[i-1].raw
}

// rawEnd — конец сегмента, содержащего смещение off в NFC-тексте.
func (v nfcView) rawEnd(off int) int {
	if v.bounds == nil {
		return off
	}
	i := sort.Search(len(v.bounds), func(i int) bool { return v.bounds[i].nfc >= off })
	return v.bounds[i].raw
}

// splice заменяет в исходном тексте участки, соответствующие locs
// (непересекающиеся, по возрастанию, смещения в NFC-тексте).
func (v nfcView) splice(locs [][]int, repl string) string {
	if len(locs) == 0 {
		return v.raw
	}
	var b strings.Builder
	last := 0
	for _, loc := range locs {
		start, end := v.rawStart(loc[0]), v.rawEnd(loc[1])
		if start < last {
			start = last
		}
		b.WriteString(v.raw[last:start])
		b.WriteString(repl)
		last = end
	}
	b.WriteString(v.raw[last:])
	return b.String()
}

// indexAll — непересекающиеся вхождения sub слева направо, как у strings.ReplaceAll.
func indexAll(s, sub string) [][]int {
	var locs [][]int
	for off := 0; ; {
		i := strings.Index(s[off:], sub)
		if i < 0 {
			return locs
		}
		start := off + i
		locs = append(locs, []int{start, start + len(sub)})
		off = start + len(sub)
	}
}
