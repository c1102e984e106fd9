package selector

import (
	"fmt"
	"log/slog"
	"regexp"

	"github.com/domsel/domsel/expression"
	"github.com/domsel/domsel/filter"
)

// BuilderFunc builds the compiled expression for a locator and options.
type BuilderFunc func(locator string, opts filter.Options) expression.Expression

// MatchFunc decides whether a raw locator looks like this selector's kind of
// locator; used for auto-detection.
type MatchFunc func(locator string) bool

// Selector is a named rule combining an expression builder, an owned filter
// set, and matching metadata. Selectors are constructed and mutated only
// through a Registry.
type Selector struct {
	name       string
	format     expression.Format
	builder    BuilderFunc
	filters    *filter.Set
	match      MatchFunc
	label      string
	visibility Visibility
	logger     *slog.Logger
}

// Name returns the selector's registry key.
func (s *Selector) Name() string { return s.name }

// Format returns the expression format, or "" when none is configured.
func (s *Selector) Format() expression.Format { return s.format }

// Label returns the human-readable label, falling back to the name.
func (s *Selector) Label() string {
	if s.label != "" {
		return s.label
	}
	return s.name
}

// Filters returns the selector's filter set.
func (s *Selector) Filters() *filter.Set { return s.filters }

// Call builds the compiled expression for a locator and options. A selector
// with no expression builder configured cannot search: it logs a warning and
// returns nil, which callers must treat as "selector misconfigured".
func (s *Selector) Call(locator string, opts filter.Options) expression.Expression {
	if s.builder == nil {
		s.logger.Warn("selector has no expression defined", slog.String("selector", s.name))
		return nil
	}
	return s.builder(locator, opts)
}

// Match evaluates the auto-detection predicate. Selectors without one never
// match.
func (s *Selector) Match(locator string) bool {
	return s.match != nil && s.match(locator)
}

// Description produces the diagnostic string for the given options: the
// label followed by the filter set's description callbacks and filter
// fragments.
func (s *Selector) Description(opts filter.Options) string {
	return s.Label() + s.filters.Description(opts)
}

// DefaultVisibility returns the selector's explicitly configured mode, else
// the supplied process-wide fallback. An unset fallback resolves to all.
func (s *Selector) DefaultVisibility(fallback Visibility) Visibility {
	if s.visibility != VisibilityUnset {
		return s.visibility
	}
	if fallback == VisibilityUnset {
		return VisibilityAll
	}
	return fallback
}

// Definition is the builder object handed to selector definition functions.
// Its methods configure the selector being defined or amended.
type Definition struct {
	sel  *Selector
	sets *filter.SetRegistry
}

// XPath installs an xpath-format expression builder.
func (d *Definition) XPath(fn BuilderFunc) {
	d.sel.format = expression.XPath
	d.sel.builder = fn
}

// CSS installs a css-format expression builder.
func (d *Definition) CSS(fn BuilderFunc) {
	d.sel.format = expression.CSS
	d.sel.builder = fn
}

// Match installs the auto-detection predicate.
func (d *Definition) Match(fn MatchFunc) { d.sel.match = fn }

// Label sets the human-readable name used in failure messages.
func (d *Definition) Label(label string) { d.sel.label = label }

// Visible overrides the default visibility mode for this selector.
func (d *Definition) Visible(v Visibility) { d.sel.visibility = v }

// Describe appends a description callback to the selector's filter set.
func (d *Definition) Describe(fn filter.DescribeFunc) {
	d.sel.filters.AddDescription(fn)
}

// ExpressionFilter declares an expression filter governed by a fixed option
// name. A nil body declares the option as recognized without rewriting.
func (d *Definition) ExpressionFilter(name string, body filter.ExprFunc, opts ...filter.Option) {
	d.sel.filters.AddExpressionFilter(filter.NewExpression(name, body, opts...))
}

// ExpressionFilterMatching declares an expression filter applied to every
// option whose key matches re.
func (d *Definition) ExpressionFilterMatching(re *regexp.Regexp, body filter.ExprPatternFunc, opts ...filter.Option) {
	d.sel.filters.AddExpressionFilter(filter.NewExpressionPattern(re, body, opts...))
}

// NodeFilter declares a node filter governed by a fixed option name.
func (d *Definition) NodeFilter(name string, body filter.NodeFunc, opts ...filter.Option) {
	d.sel.filters.AddNodeFilter(filter.NewNode(name, body, opts...))
}

// NodeFilterMatching declares a node filter applied to every option whose
// key matches re.
func (d *Definition) NodeFilterMatching(re *regexp.Regexp, body filter.NodePatternFunc, opts ...filter.Option) {
	d.sel.filters.AddNodeFilter(filter.NewNodePattern(re, body, opts...))
}

// UseFilterSet borrows filters from a named set, optionally restricted to
// the listed filter names. The source set must already be registered;
// borrowing from a missing set is a definition-ordering bug and panics.
func (d *Definition) UseFilterSet(name string, only ...string) {
	src, ok := d.sets.Get(name)
	if !ok {
		panic(fmt.Sprintf("selector %q borrows from unregistered filter set %q", d.sel.name, name))
	}
	var names []string
	if len(only) > 0 {
		names = only
	}
	d.sel.filters.Import(src, names)
}
