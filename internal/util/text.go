package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	newlineRun = regexp.MustCompile(`\n+`)
	spaceRun   = regexp.MustCompile(`\s{2,}`)
)

// NormalizeText canonicalizes raw extracted text before chunking: NFKC,
// spacing acute accents folded into combining accents, newline runs and
// whitespace runs collapsed to single spaces. Idempotent.
func NormalizeText(raw string) string {
	s := norm.NFKC.String(raw)
	s = strings.ReplaceAll(s, "´", "́")
	s = newlineRun.ReplaceAllString(s, " ")
	s = spaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// SanitizeText removes NUL bytes and non-printing control characters that
// some PDF extractors leak into page text. Common whitespace is kept.
func SanitizeText(s string) string {
	if s == "" {
		return s
	}
	s = strings.ReplaceAll(s, "\x00", "")
	r := make([]rune, 0, len(s))
	for _, ch := range s {
		if ch == '\n' || ch == '\r' || ch == '\t' {
			r = append(r, ch)
			continue
		}
		if ch < 0x20 {
			continue
		}
		r = append(r, ch)
	}
	return strings.TrimSpace(string(r))
}
