// Package position canonicalizes free-form job titles into a small closed
// taxonomy of {language} x {role} combinations using an ordered cascade of
// rewrite rules.
package position

import (
	"fmt"
	"regexp"
)

// Family groups rules. Rules must appear in non-decreasing family order:
// later families see the output of earlier ones.
type Family int

const (
	FamilySpelling Family = iota + 1
	FamilyQualifier
	FamilyLanguage
	FamilySuffix
	FamilyDedup
)

func (f Family) String() string {
	switch f {
	case FamilySpelling:
		return "spelling"
	case FamilyQualifier:
		return "qualifier"
	case FamilyLanguage:
		return "language"
	case FamilySuffix:
		return "suffix"
	case FamilyDedup:
		return "dedup"
	}
	return fmt.Sprintf("family(%d)", int(f))
}

// Rule is one (matcher, rewrite) step of the cascade.
type Rule struct {
	Name    string
	Family  Family
	Rewrite func(string) string
}

// Replace builds a rule that replaces every match of pattern with repl.
// It panics if pattern does not compile, like regexp.MustCompile.
func Replace(family Family, name, pattern, repl string) Rule {
	re := regexp.MustCompile(pattern)
	return Rule{
		Name:    name,
		Family:  family,
		Rewrite: func(s string) string { return re.ReplaceAllString(s, repl) },
	}
}

// Func builds a rule from an arbitrary rewrite function.
func Func(family Family, name string, fn func(string) string) Rule {
	return Rule{Name: name, Family: family, Rewrite: fn}
}

// Cascade is an ordered, immutable list of rules.
type Cascade struct {
	rules []Rule
}

// NewCascade validates rule order and returns the cascade.
func NewCascade(rules []Rule) (*Cascade, error) {
	prev := Family(0)
	for i, r := range rules {
		if r.Rewrite == nil {
			return nil, fmt.Errorf("rule %d (%s): nil rewrite", i, r.Name)
		}
		if r.Family < prev {
			return nil, fmt.Errorf("rule %d (%s): family %s after %s", i, r.Name, r.Family, prev)
		}
		prev = r.Family
	}
	return &Cascade{rules: append([]Rule(nil), rules...)}, nil
}

// Apply runs every rule once, in order, each on the previous output.
func (c *Cascade) Apply(s string) string {
	for _, r := range c.rules {
		s = r.Rewrite(s)
	}
	return s
}

// Trace runs the cascade and reports every rule that changed the string.
func (c *Cascade) Trace(s string, fn func(rule Rule, before, after string)) string {
	for _, r := range c.rules {
		next := r.Rewrite(s)
		if next != s {
			fn(r, s, next)
		}
		s = next
	}
	return s
}

// Len returns the number of rules.
func (c *Cascade) Len() int { return len(c.rules) }
