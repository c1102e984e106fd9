// Package cssb represents CSS selector groups for selector definitions.
//
// CSS-format selectors mostly pass caller-written selectors through, so this
// stays deliberately small: a group of alternatives plus attribute narrowing
// applied across the whole group. Rendered text parses under cascadia.
package cssb

import (
	"strings"

	"github.com/domsel/domsel/expression"
)

// Selector is a CSS selector group (comma-joined alternatives).
type Selector struct {
	groups []string
}

// Raw builds a selector from already-written CSS alternatives.
func Raw(groups ...string) *Selector {
	return &Selector{groups: groups}
}

// WithAttribute narrows every alternative with an exact attribute match.
func (s *Selector) WithAttribute(name, value string) *Selector {
	suffix := "[" + name + "=" + quote(value) + "]"
	groups := make([]string, len(s.groups))
	for i, g := range s.groups {
		groups[i] = g + suffix
	}
	return &Selector{groups: groups}
}

// Format implements expression.Expression.
func (s *Selector) Format() expression.Format { return expression.CSS }

// Render implements expression.Expression.
func (s *Selector) Render() string { return strings.Join(s.groups, ", ") }

func (s *Selector) String() string { return s.Render() }

func quote(v string) string {
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}
