package builtin

import "github.com/domsel/domsel/xpathb"

// Config toggles the optional identification strategies the field-locate
// heuristic may use. Values normally come from the process configuration.
type Config struct {
	// EnableAriaLabel adds aria-label equality as an accepted strategy.
	EnableAriaLabel bool

	// TestIDAttribute, when non-empty, adds equality on that attribute as
	// an accepted strategy (e.g. "data-testid").
	TestIDAttribute string
}

// LocateField resolves a locator against the conventional form-field
// identification strategies. The result is a union of two independent
// expressions derived from the same base element-type expression:
//
//   - the base narrowed to elements whose id, name, or placeholder equals
//     the locator, or whose id equals the for attribute of a label whose
//     text equals the locator (plus aria-label / test-id when enabled);
//   - the base nested inside a label whose text equals the locator,
//     covering wrapped field markup.
//
// An empty locator returns the base unchanged.
func LocateField(base *xpathb.Expression, locator string, cfg Config) *xpathb.Expression {
	if locator == "" {
		return base
	}

	labeled := xpathb.Anywhere("label").Where(xpathb.TextEquals(locator))
	var aria, testID *xpathb.Condition
	if cfg.EnableAriaLabel {
		aria = xpathb.AttrEquals("aria-label", locator)
	}
	if cfg.TestIDAttribute != "" {
		testID = xpathb.AttrEquals(cfg.TestIDAttribute, locator)
	}

	attrMatch := base.Where(xpathb.Or(
		xpathb.AttrEquals("id", locator),
		xpathb.AttrEquals("name", locator),
		xpathb.AttrEquals("placeholder", locator),
		xpathb.AttrEqualsAttrOf("id", labeled, "for"),
		aria,
		testID,
	))
	wrapped := xpathb.Descendant("label").Where(xpathb.TextEquals(locator)).Nested(base)

	return attrMatch.Union(wrapped)
}
