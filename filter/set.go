package filter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/domsel/domsel/dom"
	"github.com/domsel/domsel/expression"
)

// DescribeFunc contributes a fragment to a selector's description.
type DescribeFunc func(opts Options) string

// Set is a named bundle of expression and node filters plus description
// callbacks. Filters are kept in registration order: node filters run in
// that order, and expression filters are applied to the accumulating
// expression in that order.
type Set struct {
	name string

	exprOrder   []string
	exprFilters map[string]*Filter
	nodeOrder   []string
	nodeFilters map[string]*Filter

	descriptions []DescribeFunc
}

// NewSet creates an empty filter set.
func NewSet(name string) *Set {
	return &Set{
		name:        name,
		exprFilters: make(map[string]*Filter),
		nodeFilters: make(map[string]*Filter),
	}
}

// Name returns the set's registry key.
func (s *Set) Name() string { return s.name }

// AddExpressionFilter registers an expression filter. A same-named filter is
// replaced in place, keeping its original position.
func (s *Set) AddExpressionFilter(f *Filter) {
	key := f.Key().String()
	if _, ok := s.exprFilters[key]; !ok {
		s.exprOrder = append(s.exprOrder, key)
	}
	s.exprFilters[key] = f
}

// AddNodeFilter registers a node filter. A same-named filter is replaced in
// place, keeping its original position.
func (s *Set) AddNodeFilter(f *Filter) {
	key := f.Key().String()
	if _, ok := s.nodeFilters[key]; !ok {
		s.nodeOrder = append(s.nodeOrder, key)
	}
	s.nodeFilters[key] = f
}

// AddDescription appends a description callback.
func (s *Set) AddDescription(fn DescribeFunc) {
	s.descriptions = append(s.descriptions, fn)
}

// ExpressionFilters returns the expression filters in registration order.
func (s *Set) ExpressionFilters() []*Filter {
	return s.ordered(s.exprOrder, s.exprFilters)
}

// NodeFilters returns the node filters in registration order.
func (s *Set) NodeFilters() []*Filter {
	return s.ordered(s.nodeOrder, s.nodeFilters)
}

func (s *Set) ordered(order []string, m map[string]*Filter) []*Filter {
	out := make([]*Filter, 0, len(order))
	for _, k := range order {
		out = append(out, m[k])
	}
	return out
}

// ExpressionFilter looks up an expression filter by key string.
func (s *Set) ExpressionFilter(name string) (*Filter, bool) {
	f, ok := s.exprFilters[name]
	return f, ok
}

// NodeFilter looks up a node filter by key string.
func (s *Set) NodeFilter(name string) (*Filter, bool) {
	f, ok := s.nodeFilters[name]
	return f, ok
}

// Import copies filters from another set, sharing the immutable Filter
// values. With a nil allow-list everything is copied; otherwise only the
// named filters are. Same-named local filters are overwritten, and the
// source's description callbacks are appended after the importer's own.
func (s *Set) Import(src *Set, only []string) {
	allowed := func(key string) bool {
		if only == nil {
			return true
		}
		for _, n := range only {
			if n == key {
				return true
			}
		}
		return false
	}
	for _, key := range src.exprOrder {
		if allowed(key) {
			s.AddExpressionFilter(src.exprFilters[key])
		}
	}
	for _, key := range src.nodeOrder {
		if allowed(key) {
			s.AddNodeFilter(src.nodeFilters[key])
		}
	}
	s.descriptions = append(s.descriptions, src.descriptions...)
}

// ApplyExpressionFilters folds every expression filter over the expression
// in registration order. Pattern filters are applied once per present
// matching option, in sorted option order for determinism. The first
// invalid-value error aborts the whole build.
func (s *Set) ApplyExpressionFilters(e expression.Expression, opts Options) (expression.Expression, error) {
	var err error
	for _, key := range s.exprOrder {
		f := s.exprFilters[key]
		if f.Key().IsPattern() {
			for _, option := range sortedMatching(f.Key(), opts) {
				if e, err = f.ApplyExpression(e, option, opts); err != nil {
					return nil, err
				}
			}
			continue
		}
		if e, err = f.ApplyExpression(e, f.Key().String(), opts); err != nil {
			return nil, err
		}
	}
	return e, nil
}

// MatchesNode runs every node filter in registration order against the
// candidate. All invoked filters must pass; the first rejection
// short-circuits. An invalid option value aborts with an error.
func (s *Set) MatchesNode(el *dom.Element, opts Options) (bool, error) {
	for _, key := range s.nodeOrder {
		f := s.nodeFilters[key]
		if f.Key().IsPattern() {
			for _, option := range sortedMatching(f.Key(), opts) {
				ok, err := f.MatchesNode(el, option, opts)
				if err != nil || !ok {
					return false, err
				}
			}
			continue
		}
		ok, err := f.MatchesNode(el, f.Key().String(), opts)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func sortedMatching(k Key, opts Options) []string {
	var names []string
	for name := range opts {
		if k.Matches(name) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// reservedKeys are query-control options the calling query layer describes
// itself; they never produce "with ..." fragments.
var reservedKeys = map[string]bool{
	"count": true, "minimum": true, "maximum": true, "between": true,
	"text": true, "visible": true, "exact": true, "exact_text": true,
	"normalize_ws": true, "match": true, "wait": true,
}

// IsReservedKey reports whether the option name is a query-control key
// handled by the query layer rather than by selector filters.
func IsReservedKey(name string) bool { return reservedKeys[name] }

// Description synthesizes the human-readable summary for the supplied
// options: each description callback's non-empty result, then one fragment
// per expression filter whose governing option was actually supplied.
func (s *Set) Description(opts Options) string {
	var b strings.Builder
	for _, fn := range s.descriptions {
		b.WriteString(fn(opts))
	}
	for _, key := range s.exprOrder {
		f := s.exprFilters[key]
		if f.Key().IsPattern() {
			for _, option := range sortedMatching(f.Key(), opts) {
				if !reservedKeys[option] {
					fmt.Fprintf(&b, " with %s[%s=>%v]", key, option, opts[option])
				}
			}
			continue
		}
		name := f.Key().String()
		if v, ok := opts[name]; ok && !reservedKeys[name] {
			fmt.Fprintf(&b, " with %s %v", name, v)
		}
	}
	return b.String()
}
