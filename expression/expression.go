// Package expression defines the common shape of compiled query expressions.
//
// Selector definitions build expressions through a format-specific builder
// (xpathb or cssb); everything downstream treats them as opaque values that
// know their format and how to render themselves as query text.
package expression

// Format identifies the query language an expression renders to.
type Format string

const (
	// XPath expressions render to XPath 1.0 text.
	XPath Format = "xpath"
	// CSS expressions render to a CSS selector group.
	CSS Format = "css"
)

// Expression is a compiled query expression.
type Expression interface {
	// Format returns the query language of the rendered text.
	Format() Format

	// Render returns the query text to hand to an execution engine.
	Render() string
}
