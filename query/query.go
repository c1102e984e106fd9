// Package query resolves a selector, locator, and options against a parsed
// HTML document: it builds the compiled expression, folds in expression
// filters, executes the query text, then applies visibility and node
// filters to the candidates.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/domsel/domsel/dom"
	"github.com/domsel/domsel/expression"
	"github.com/domsel/domsel/filter"
	"github.com/domsel/domsel/selector"
)

// ErrNoExpression is returned when the selector has no expression builder
// configured and therefore cannot search.
var ErrNoExpression = errors.New("selector produced no expression")

// Query is one locate-and-match request.
type Query struct {
	sel     *selector.Selector
	locator string
	opts    filter.Options
}

// New builds a query. A nil options bag is treated as empty.
func New(sel *selector.Selector, locator string, opts filter.Options) *Query {
	if opts == nil {
		opts = filter.Options{}
	}
	return &Query{sel: sel, locator: locator, opts: opts}
}

// Selector returns the query's selector.
func (q *Query) Selector() *selector.Selector { return q.sel }

// Expression builds the compiled expression with all expression filters
// applied. Filter validation errors abort the whole build.
func (q *Query) Expression() (expression.Expression, error) {
	e := q.sel.Call(q.locator, q.opts)
	if e == nil {
		return nil, fmt.Errorf("selector %q: %w", q.sel.Name(), ErrNoExpression)
	}
	return q.sel.Filters().ApplyExpressionFilters(e, q.opts)
}

// Visibility resolves the effective visibility mode: an explicit "visible"
// option wins, then the selector's own default, then the fallback.
func (q *Query) Visibility(fallback selector.Visibility) selector.Visibility {
	switch v := q.opts["visible"].(type) {
	case selector.Visibility:
		return v
	case string:
		if mode := selector.ParseVisibility(v); mode != selector.VisibilityUnset {
			return mode
		}
	}
	return q.sel.DefaultVisibility(fallback)
}

// Resolve executes the query against a parsed document and returns the
// candidates that survive visibility filtering, the text option, and the
// selector's node filters.
func (q *Query) Resolve(doc *html.Node, fallback selector.Visibility) ([]*dom.Element, error) {
	e, err := q.Expression()
	if err != nil {
		return nil, err
	}

	nodes, err := execute(doc, e)
	if err != nil {
		return nil, fmt.Errorf("selector %q: %w", q.sel.Name(), err)
	}

	mode := q.Visibility(fallback)
	text, _ := q.opts["text"].(string)

	var matched []*dom.Element
	for _, n := range nodes {
		el := dom.FromNode(n)
		if el == nil {
			continue
		}
		if !visibilityAllows(mode, el) {
			continue
		}
		if text != "" && !strings.Contains(el.Text(), text) {
			continue
		}
		ok, err := q.sel.Filters().MatchesNode(el, q.opts)
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, el)
		}
	}
	return matched, nil
}

func execute(doc *html.Node, e expression.Expression) ([]*html.Node, error) {
	switch e.Format() {
	case expression.XPath:
		compiled, err := xpath.Compile(e.Render())
		if err != nil {
			return nil, fmt.Errorf("compile xpath %q: %w", e.Render(), err)
		}
		return htmlquery.QuerySelectorAll(doc, compiled), nil
	case expression.CSS:
		compiled, err := cascadia.Compile(e.Render())
		if err != nil {
			return nil, fmt.Errorf("compile css %q: %w", e.Render(), err)
		}
		return compiled.MatchAll(doc), nil
	default:
		return nil, fmt.Errorf("unsupported expression format %q", e.Format())
	}
}

func visibilityAllows(mode selector.Visibility, el *dom.Element) bool {
	switch mode {
	case selector.VisibilityVisible:
		return el.Visible()
	case selector.VisibilityHidden:
		return !el.Visible()
	default:
		return true
	}
}

// Description renders the diagnostic form of the query, e.g.
// `field "Email" that is disabled`.
func (q *Query) Description() string {
	return fmt.Sprintf("%s %q%s", q.sel.Label(), q.locator, q.sel.Filters().Description(q.opts))
}

// FailureMessage renders the zero-or-wrong-count failure line for this
// query.
func (q *Query) FailureMessage(found int) string {
	return fmt.Sprintf("expected to find %s but found %d", q.Description(), found)
}
