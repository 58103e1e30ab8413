// Package sanitizer cleans raw chat message text before it is sent to
// extraction: it cuts channel signatures and drops characters that carry no
// meaning for the extractor.
package sanitizer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// DefaultMarkers maps a source channel to the boilerplate signature that
// starts its footer.
var DefaultMarkers = map[string]string{
	"UstozShogird":   "@UstozShogird",
	"uzdev_jobs":     "Подписаться на канал @UzDev_Jobs",
	"kasbim_uz":      "@kasbim_uz",
	"data_ish":       "@data_ish",
	"rizqimuz":       "@rizqimuz",
	"upjobsuz":       "E'lon joylash",
	"ayti_jobs":      "Rasmiy kanal",
	"freelance_link": "@freelance_link",
	"click_jobs":     "@click_jobs",
}

// DefaultPrefixes maps a source to the prefix every vacancy post of that
// source starts with. Posts without it are not vacancies.
var DefaultPrefixes = map[string]string{
	"UstozShogird": "Xodim kerak:",
}

const allowedPunct = ".,!?()[]{}:;'\"–-$€¥₴₽@"

// strip removes every rune outside the allow-list. runes.Remove keeps no
// state, so one transformer is shared by all goroutines.
var strip = runes.Remove(runes.Predicate(func(r rune) bool { return !allowed(r) }))

func allowed(r rune) bool {
	if unicode.Is(unicode.Cf, r) {
		return false
	}
	switch {
	case unicode.IsLetter(r), unicode.IsNumber(r), unicode.IsMark(r), r == '_':
		return true
	case unicode.IsSpace(r):
		return true
	}
	return strings.ContainsRune(allowedPunct, r)
}

// Sanitizer holds per-source markers and gate prefixes.
type Sanitizer struct {
	markers  map[string]string
	prefixes map[string]string
}

// New creates a Sanitizer. Nil maps select the defaults. Markers are cleaned
// with the same allow-list as message text so that they can still match
// after stripping.
func New(markers, prefixes map[string]string) *Sanitizer {
	if markers == nil {
		markers = DefaultMarkers
	}
	if prefixes == nil {
		prefixes = DefaultPrefixes
	}

	s := &Sanitizer{
		markers:  make(map[string]string, len(markers)),
		prefixes: make(map[string]string, len(prefixes)),
	}
	for src, m := range markers {
		if m = Clean(m); m != "" {
			s.markers[src] = m
		}
	}
	for src, p := range prefixes {
		if p = Clean(p); p != "" {
			s.prefixes[src] = p
		}
	}
	return s
}

// Sanitize returns text with disallowed runes removed, cut at the source's
// boilerplate marker and trimmed. It is idempotent and never lengthens text.
func (s *Sanitizer) Sanitize(text, source string) string {
	text = Clean(text)
	if marker, ok := s.markers[source]; ok {
		if i := strings.Index(text, marker); i >= 0 {
			text = text[:i]
		}
	}
	return strings.TrimSpace(text)
}

// Admit reports whether sanitized text passes the source gate.
func (s *Sanitizer) Admit(text, source string) bool {
	prefix, ok := s.prefixes[source]
	if !ok {
		return true
	}
	return strings.HasPrefix(text, prefix)
}

// Clean removes disallowed runes without touching source markers or
// surrounding whitespace.
func Clean(text string) string {
	out, _, err := transform.String(strip, text)
	if err != nil {
		// Remove only fails on invalid input it cannot advance over; fall back
		// to a rune loop, which treats invalid bytes as U+FFFD (a symbol, dropped).
		return strings.Map(func(r rune) rune {
			if allowed(r) {
				return r
			}
			return -1
		}, text)
	}
	return out
}
