package keywords

import (
	"regexp"
	"sort"
	"strings"
)

// Extractor ranks 1-2 word phrases by frequency, with Spanish stopwords
// filtered out. It is deterministic: ties are broken by first occurrence in
// the text.
type Extractor struct {
	tokenPattern *regexp.Regexp
	stopwords    map[string]struct{}
}

func NewExtractor() *Extractor {
	return &Extractor{
		tokenPattern: regexp.MustCompile(`\p{L}+`),
		stopwords:    spanishStopwords(),
	}
}

type candidate struct {
	phrase string
	count  int
	first  int
}

// Extract returns up to max keyword phrases from text, most frequent first.
func (e *Extractor) Extract(text string, max int) []string {
	if max <= 0 {
		max = 15
	}
	tokens := e.tokenPattern.FindAllString(strings.ToLower(text), -1)
	counts := make(map[string]*candidate)
	pos := 0
	add := func(phrase string) {
		if c, ok := counts[phrase]; ok {
			c.count++
			return
		}
		counts[phrase] = &candidate{phrase: phrase, count: 1, first: pos}
	}
	for i, tok := range tokens {
		pos = i
		if e.isStopword(tok) || len([]rune(tok)) < 3 {
			continue
		}
		add(tok)
		if i+1 < len(tokens) {
			next := tokens[i+1]
			if !e.isStopword(next) && len([]rune(next)) >= 3 {
				// Bigrams count once per occurrence and a bit extra, so
				// recurring two-word phrases beat their own unigrams.
				c := tok + " " + next
				add(c)
				counts[c].count++
			}
		}
	}
	ranked := make([]*candidate, 0, len(counts))
	for _, c := range counts {
		ranked = append(ranked, c)
	}
	sort.Slice(ranked, func(a, b int) bool {
		if ranked[a].count != ranked[b].count {
			return ranked[a].count > ranked[b].count
		}
		return ranked[a].first < ranked[b].first
	})
	if max > len(ranked) {
		max = len(ranked)
	}
	out := make([]string, 0, max)
	for _, c := range ranked[:max] {
		out = append(out, c.phrase)
	}
	return out
}

func (e *Extractor) isStopword(tok string) bool {
	_, ok := e.stopwords[tok]
	return ok
}

func spanishStopwords() map[string]struct{} {
	words := []string{
		"a", "al", "algo", "ante", "como", "con", "contra", "cual", "cuando",
		"de", "del", "desde", "donde", "durante", "e", "el", "ella", "ellas",
		"ellos", "en", "entre", "era", "es", "esa", "ese", "eso", "esta",
		"este", "esto", "fue", "ha", "han", "hay", "la", "las", "le", "les",
		"lo", "los", "más", "me", "mi", "muy", "no", "nos", "o", "otra",
		"otro", "para", "pero", "por", "porque", "que", "qué", "se", "ser",
		"si", "sí", "sin", "sobre", "son", "su", "sus", "también", "te",
		"tiene", "tienen", "todo", "un", "una", "uno", "y", "ya",
	}
	m := make(map[string]struct{}, len(words))
	for _, w := range words {
		m[w] = struct{}{}
	}
	return m
}
