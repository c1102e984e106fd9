package filter

import (
	"fmt"
	"reflect"
	"regexp"

	"github.com/domsel/domsel/dom"
	"github.com/domsel/domsel/expression"
)

// Options is the options bag callers pass alongside a locator.
type Options map[string]any

// Kind distinguishes expression filters from node filters.
type Kind int

const (
	// KindExpression filters rewrite the query expression before execution.
	KindExpression Kind = iota
	// KindNode filters test a concrete matched candidate.
	KindNode
)

func (k Kind) String() string {
	if k == KindNode {
		return "node"
	}
	return "expression"
}

// Key identifies which option(s) a filter governs: either a fixed option
// name or a pattern matched against every option key.
type Key struct {
	name    string
	pattern *regexp.Regexp
}

// FixedKey governs exactly one option name.
func FixedKey(name string) Key { return Key{name: name} }

// PatternKey governs every option whose key matches the pattern.
func PatternKey(re *regexp.Regexp) Key { return Key{pattern: re} }

// IsPattern reports whether the key is pattern-based.
func (k Key) IsPattern() bool { return k.pattern != nil }

// Matches reports whether the key governs the given option name.
func (k Key) Matches(option string) bool {
	if k.pattern != nil {
		return k.pattern.MatchString(option)
	}
	return k.name == option
}

func (k Key) String() string {
	if k.pattern != nil {
		return k.pattern.String()
	}
	return k.name
}

// ExprFunc rewrites an expression given the governed option's value.
type ExprFunc func(e expression.Expression, value any) expression.Expression

// ExprPatternFunc rewrites an expression given a matched option name and its
// value; used with pattern keys.
type ExprPatternFunc func(e expression.Expression, option string, value any) expression.Expression

// NodeFunc tests a candidate against the governed option's value.
type NodeFunc func(el *dom.Element, value any) bool

// NodePatternFunc tests a candidate given a matched option name and value.
type NodePatternFunc func(el *dom.Element, option string, value any) bool

// Filter is a single named filtering rule. Filters are immutable after
// construction and safe to share across sets.
type Filter struct {
	key  Key
	kind Kind

	hasDefault bool
	defValue   any
	hasSkipIf  bool
	skipIf     any
	valid      []any

	exprBody        ExprFunc
	exprPatternBody ExprPatternFunc
	nodeBody        NodeFunc
	nodePatternBody NodePatternFunc
}

// Option configures validation metadata on a filter.
type Option func(*Filter)

// Default substitutes v when the governed option is absent.
func Default(v any) Option {
	return func(f *Filter) {
		f.hasDefault = true
		f.defValue = v
	}
}

// SkipIf disables the filter when the resolved value equals v.
func SkipIf(v any) Option {
	return func(f *Filter) {
		f.hasSkipIf = true
		f.skipIf = v
	}
}

// ValidValues restricts acceptable option values; anything else is a usage
// error raised at evaluation time.
func ValidValues(vs ...any) Option {
	return func(f *Filter) { f.valid = vs }
}

// NewExpression builds an expression filter for a fixed option name. A nil
// body yields an identity filter: it validates and resolves the option but
// leaves the expression unchanged, declaring the option as recognized.
func NewExpression(name string, body ExprFunc, opts ...Option) *Filter {
	f := &Filter{key: FixedKey(name), kind: KindExpression, exprBody: body}
	return f.configure(opts)
}

// NewExpressionPattern builds an expression filter applied to every option
// whose key matches re.
func NewExpressionPattern(re *regexp.Regexp, body ExprPatternFunc, opts ...Option) *Filter {
	f := &Filter{key: PatternKey(re), kind: KindExpression, exprPatternBody: body}
	return f.configure(opts)
}

// NewNode builds a node filter for a fixed option name.
func NewNode(name string, body NodeFunc, opts ...Option) *Filter {
	f := &Filter{key: FixedKey(name), kind: KindNode, nodeBody: body}
	return f.configure(opts)
}

// NewNodePattern builds a node filter applied to every option whose key
// matches re.
func NewNodePattern(re *regexp.Regexp, body NodePatternFunc, opts ...Option) *Filter {
	f := &Filter{key: PatternKey(re), kind: KindNode, nodePatternBody: body}
	return f.configure(opts)
}

func (f *Filter) configure(opts []Option) *Filter {
	for _, o := range opts {
		o(f)
	}
	return f
}

// Key returns the filter's governing key.
func (f *Filter) Key() Key { return f.key }

// Kind returns whether this is an expression or node filter.
func (f *Filter) Kind() Kind { return f.kind }

// HasDefault reports whether a default value is configured.
func (f *Filter) HasDefault() bool { return f.hasDefault }

// Resolve looks up the governed option value, substituting the default when
// the option is absent. The second result is false when neither is present.
func (f *Filter) Resolve(opts Options, option string) (any, bool) {
	if v, ok := opts[option]; ok {
		return v, true
	}
	if f.hasDefault {
		return f.defValue, true
	}
	return nil, false
}

// InvalidValueError reports an option value outside a filter's declared
/// valid set. This is a caller-configuration bug: it aborts the current
// expression build or match attempt.
type InvalidValueError struct {
	Filter string
	Kind   Kind
	Option string
	Value  any
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid value %#v for option %q of %s filter %q", e.Value, e.Option, e.Kind, e.Filter)
}

func (f *Filter) validate(option string, value any) error {
	if len(f.valid) == 0 {
		return nil
	}
	for _, v := range f.valid {
		if equal(v, value) {
			return nil
		}
	}
	return &InvalidValueError{Filter: f.key.String(), Kind: f.kind, Option: option, Value: value}
}

func (f *Filter) skip(value any) bool {
	return f.hasSkipIf && equal(f.skipIf, value)
}

// equal compares option values. Values are untyped, so this falls back to
// DeepEqual rather than requiring comparability.
func equal(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// ApplyExpression applies an expression filter for one governed option,
// following the resolution steps: default substitution, absence no-op,
// valid-value check, skip sentinel, then the body.
func (f *Filter) ApplyExpression(e expression.Expression, option string, opts Options) (expression.Expression, error) {
	value, ok := f.Resolve(opts, option)
	if !ok {
		return e, nil
	}
	if err := f.validate(option, value); err != nil {
		return nil, err
	}
	if f.skip(value) {
		return e, nil
	}
	switch {
	case f.exprPatternBody != nil:
		return f.exprPatternBody(e, option, value), nil
	case f.exprBody != nil:
		return f.exprBody(e, value), nil
	default:
		// Identity filter: the bookkeeping above is its whole job.
		return e, nil
	}
}

// MatchesNode evaluates a node filter for one governed option against a
// candidate. An absent ungoverned option accepts the candidate.
func (f *Filter) MatchesNode(el *dom.Element, option string, opts Options) (bool, error) {
	value, ok := f.Resolve(opts, option)
	if !ok {
		return true, nil
	}
	if err := f.validate(option, value); err != nil {
		return false, err
	}
	if f.skip(value) {
		return true, nil
	}
	switch {
	case f.nodePatternBody != nil:
		return f.nodePatternBody(el, option, value), nil
	case f.nodeBody != nil:
		return f.nodeBody(el, value), nil
	default:
		return true, nil
	}
}
