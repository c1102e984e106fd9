// Package selector implements named selectors and their registry.
//
// A selector translates a locator string and an options bag into a compiled
// query expression and carries the filter set the query layer runs against
// candidates. Selectors are defined once at startup through a Registry:
//
//	reg := selector.NewRegistry()
//	reg.Add("button", func(d *selector.Definition) {
//		d.XPath(func(locator string, opts filter.Options) expression.Expression {
//			return xpathb.Descendant("button").Where(xpathb.TextEquals(locator))
//		})
//	})
//
// and looked up by name — or auto-detected from a raw locator — many times
// during matching.
package selector
