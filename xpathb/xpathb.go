// Package xpathb builds XPath 1.0 expressions for selector definitions.
//
// It covers the small surface the built-in selectors need: descendant and
// document-wide axes, attribute and text predicates, logical combination,
// union of result sets, and structural nesting. Rendered text is plain
// XPath 1.0 and evaluates under any conforming engine.
package xpathb

import (
	"strings"

	"github.com/domsel/domsel/expression"
)

// Expression is an XPath location path, possibly a union of several paths.
type Expression struct {
	path  string
	union bool
}

// Raw wraps already-written XPath text as an expression.
func Raw(xp string) *Expression {
	return &Expression{path: xp}
}

// Descendant selects descendants of the context node with one of the given
// tag names. With no tags it selects any element.
func Descendant(tags ...string) *Expression {
	return &Expression{path: ".//" + nodeTest(tags)}
}

// Anywhere selects matching elements anywhere in the document.
func Anywhere(tags ...string) *Expression {
	return &Expression{path: "//" + nodeTest(tags)}
}

func nodeTest(tags []string) string {
	switch len(tags) {
	case 0:
		return "*"
	case 1:
		return tags[0]
	default:
		alts := make([]string, len(tags))
		for i, t := range tags {
			alts[i] = "self::" + t
		}
		return "*[" + strings.Join(alts, " or ") + "]"
	}
}

// Where narrows the expression with predicates, ANDed together.
// Nil conditions are ignored; with none left the expression is unchanged.
func (e *Expression) Where(conds ...*Condition) *Expression {
	preds := make([]string, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			preds = append(preds, c.expr)
		}
	}
	if len(preds) == 0 {
		return e
	}
	base := e.path
	if e.union {
		base = "(" + base + ")"
	}
	return &Expression{path: base + "[" + strings.Join(preds, " and ") + "]"}
}

// Union combines two expressions into one candidate set.
func (e *Expression) Union(other *Expression) *Expression {
	return &Expression{path: e.path + " | " + other.path, union: true}
}

// Nested places a relative expression (built with Descendant) beneath this
// one, e.g. label[...]//input.
func (e *Expression) Nested(inner *Expression) *Expression {
	base := e.path
	if e.union {
		base = "(" + base + ")"
	}
	return &Expression{path: base + strings.TrimPrefix(inner.path, ".")}
}

// Format implements expression.Expression.
func (e *Expression) Format() expression.Format { return expression.XPath }

// Render implements expression.Expression.
func (e *Expression) Render() string { return e.path }

func (e *Expression) String() string { return e.path }

// Condition is a boolean predicate usable inside Where.
type Condition struct {
	expr string
}

// AttrEquals tests an attribute for exact equality with a string value.
func AttrEquals(name, value string) *Condition {
	return &Condition{expr: "@" + name + " = " + lit(value)}
}

// HasAttr tests for the presence of an attribute.
func HasAttr(name string) *Condition {
	return &Condition{expr: "@" + name}
}

// AttrOneOf tests whether an attribute equals any of the given values.
func AttrOneOf(name string, values ...string) *Condition {
	alts := make([]string, len(values))
	for i, v := range values {
		alts[i] = "@" + name + " = " + lit(v)
	}
	return &Condition{expr: "(" + strings.Join(alts, " or ") + ")"}
}

// AttrEqualsAttrOf tests an attribute against an attribute of the elements
// selected by another expression, e.g. @id = //label[...]/@for.
func AttrEqualsAttrOf(name string, other *Expression, otherAttr string) *Condition {
	return &Condition{expr: "@" + name + " = " + other.path + "/@" + otherAttr}
}

// TextEquals tests the whitespace-normalized string value of the element.
func TextEquals(value string) *Condition {
	return &Condition{expr: "normalize-space(string(.)) = " + lit(value)}
}

// TextContains tests for a substring of the normalized string value.
func TextContains(value string) *Condition {
	return &Condition{expr: "contains(normalize-space(string(.)), " + lit(value) + ")"}
}

// LocalNameEquals tests the element's local name, for tag names supplied at
// call time rather than definition time.
func LocalNameEquals(name string) *Condition {
	return &Condition{expr: "local-name(.) = " + lit(name)}
}

// Exists tests whether a relative expression selects at least one node,
// e.g. the presence of a nested img with a given alt.
func Exists(e *Expression) *Condition {
	return &Condition{expr: e.path}
}

// Or combines conditions with logical or. Nil conditions are ignored.
func Or(conds ...*Condition) *Condition {
	return join(" or ", conds)
}

// And combines conditions with logical and. Nil conditions are ignored.
func And(conds ...*Condition) *Condition {
	return join(" and ", conds)
}

// Not negates a condition.
func Not(c *Condition) *Condition {
	return &Condition{expr: "not(" + c.expr + ")"}
}

func join(op string, conds []*Condition) *Condition {
	exprs := make([]string, 0, len(conds))
	for _, c := range conds {
		if c != nil {
			exprs = append(exprs, c.expr)
		}
	}
	if len(exprs) == 1 {
		return &Condition{expr: exprs[0]}
	}
	return &Condition{expr: "(" + strings.Join(exprs, op) + ")"}
}

// lit renders s as an XPath string literal. XPath 1.0 has no escape
// sequences, so values containing both quote kinds use concat().
func lit(s string) string {
	if !strings.Contains(s, "'") {
		return "'" + s + "'"
	}
	if !strings.Contains(s, `"`) {
		return `"` + s + `"`
	}
	var parts []string
	for i, seg := range strings.Split(s, "'") {
		if i > 0 {
			parts = append(parts, `"'"`)
		}
		if seg != "" {
			parts = append(parts, "'"+seg+"'")
		}
	}
	return "concat(" + strings.Join(parts, ", ") + ")"
}
