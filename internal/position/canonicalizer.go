package position

import (
	"strings"

	"github.com/heartmarshall/vacancy-normalizer/internal/domain"
)

// maxPasses bounds how often the cascade is re-applied while looking for a
// fixed point.
const maxPasses = 8

// Canonicalizer maps raw titles to canonical ones. It is safe for
// concurrent use.
type Canonicalizer struct {
	cascade *Cascade
	bare    map[string]struct{}
}

// New creates a Canonicalizer from rules and the bare-title set.
func New(rules []Rule, bare []string) (*Canonicalizer, error) {
	c, err := NewCascade(rules)
	if err != nil {
		return nil, err
	}
	set := make(map[string]struct{}, len(bare))
	for _, b := range bare {
		set[b] = struct{}{}
	}
	return &Canonicalizer{cascade: c, bare: set}, nil
}

// Default returns the production canonicalizer.
func Default() *Canonicalizer {
	c, err := New(DefaultRules(), BareTitles)
	if err != nil {
		panic("position: default rules: " + err.Error())
	}
	return c
}

// Canonicalize rewrites raw until the cascade no longer changes it, then
// restores a readable title for bare language or role names. An empty result
// is reported as the Empty sentinel. Canonicalize(Canonicalize(s)) equals
// Canonicalize(s).
func (c *Canonicalizer) Canonicalize(raw string) string {
	s := c.fixedPoint(strings.TrimSpace(raw))
	if s == "" {
		return domain.Empty
	}
	if _, ok := c.bare[s]; ok {
		return s + " Developer"
	}
	return s
}

func (c *Canonicalizer) fixedPoint(s string) string {
	for range maxPasses {
		next := strings.TrimSpace(c.cascade.Apply(s))
		if next == s {
			break
		}
		s = next
	}
	return s
}

// Explain returns the canonical form together with every rule that fired
// on the first pass, for diagnostics.
func (c *Canonicalizer) Explain(raw string) (string, []string) {
	var fired []string
	c.cascade.Trace(strings.TrimSpace(raw), func(r Rule, before, after string) {
		fired = append(fired, r.Family.String()+"/"+r.Name+": "+before+" -> "+after)
	})
	return c.Canonicalize(raw), fired
}
