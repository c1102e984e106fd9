// Package builtin registers the built-in selector vocabulary: raw xpath and
// css passthroughs plus the form-field, link, button, label, and generic
// element selectors, sharing one field filter set between them.
package builtin

import (
	"regexp"
	"strings"

	"github.com/domsel/domsel/cssb"
	"github.com/domsel/domsel/dom"
	"github.com/domsel/domsel/expression"
	"github.com/domsel/domsel/filter"
	"github.com/domsel/domsel/selector"
	"github.com/domsel/domsel/xpathb"
)

var (
	xpathLocator = regexp.MustCompile(`^(//|\./|\()`)
	idLocator    = regexp.MustCompile(`^#[^\s,]+$`)
	anyOption    = regexp.MustCompile(`.+`)
)

// Register installs the built-in selectors into the registry. The shared
// field filter set is registered first so the selectors can borrow it.
// Registration order matters for auto-detection: xpath and id match raw
// locators, everything else is looked up by name.
func Register(reg *selector.Registry, cfg Config) {
	registerFieldSet(reg.FilterSets())

	reg.Add("xpath", func(d *selector.Definition) {
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return xpathb.Raw(locator)
		})
		d.Match(xpathLocator.MatchString)
	})

	reg.Add("css", func(d *selector.Definition) {
		d.CSS(func(locator string, _ filter.Options) expression.Expression {
			return cssb.Raw(locator)
		})
	})

	reg.Add("id", func(d *selector.Definition) {
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return xpathb.Descendant().Where(xpathb.AttrEquals("id", strings.TrimPrefix(locator, "#")))
		})
		d.Match(idLocator.MatchString)
	})

	reg.Add("field", func(d *selector.Definition) {
		d.XPath(func(locator string, opts filter.Options) expression.Expression {
			invalid := []string{"checkbox", "radio", "file"}
			if t, _ := opts["type"].(string); t != "hidden" {
				invalid = append(invalid, "hidden")
			}
			base := xpathb.Descendant("input", "textarea", "select").
				Where(xpathb.Not(xpathb.AttrOneOf("type", invalid...)))
			return LocateField(base, locator, cfg)
		})
		d.ExpressionFilter("type", fieldTypeFilter)
		d.NodeFilter("with", withValueFilter)
		d.UseFilterSet(FieldSetName)
	})

	reg.Add("fillable_field", func(d *selector.Definition) {
		d.Label("field")
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			base := xpathb.Descendant("input", "textarea").
				Where(xpathb.Not(xpathb.AttrOneOf("type",
					"checkbox", "radio", "file", "submit", "image", "reset", "button", "hidden")))
			return LocateField(base, locator, cfg)
		})
		d.ExpressionFilter("type", fieldTypeFilter)
		d.NodeFilter("with", withValueFilter)
		d.UseFilterSet(FieldSetName)
	})

	reg.Add("checkbox", func(d *selector.Definition) {
		d.XPath(typedInputBuilder("checkbox", cfg))
		d.NodeFilter("option", optionValueFilter)
		d.UseFilterSet(FieldSetName)
	})

	reg.Add("radio_button", func(d *selector.Definition) {
		d.Label("radio button")
		d.XPath(typedInputBuilder("radio", cfg))
		d.NodeFilter("option", optionValueFilter)
		d.UseFilterSet(FieldSetName)
	})

	reg.Add("select", func(d *selector.Definition) {
		d.Label("select box")
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return LocateField(xpathb.Descendant("select"), locator, cfg)
		})
		d.NodeFilter("options", func(el *dom.Element, v any) bool {
			return sameStrings(optionTexts(el.Options()), toStrings(v))
		})
		d.NodeFilter("with_options", func(el *dom.Element, v any) bool {
			return containsAll(optionTexts(el.Options()), toStrings(v))
		})
		d.NodeFilter("selected", func(el *dom.Element, v any) bool {
			return sameStrings(optionTexts(el.SelectedOptions()), toStrings(v))
		})
		d.UseFilterSet(FieldSetName)
	})

	reg.Add("file_field", func(d *selector.Definition) {
		d.Label("file field")
		d.XPath(typedInputBuilder("file", cfg))
		d.UseFilterSet(FieldSetName)
	})

	reg.Add("link", func(d *selector.Definition) {
		d.Label("link")
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return linkExpression(locator, cfg)
		})
		d.ExpressionFilter("href", attrFilter("href"))
	})

	reg.Add("button", func(d *selector.Definition) {
		d.Label("button")
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return buttonExpression(locator, cfg)
		})
		d.UseFilterSet(FieldSetName, "disabled", "name")
	})

	reg.Add("link_or_button", func(d *selector.Definition) {
		d.Label("link or button")
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return linkExpression(locator, cfg).Union(buttonExpression(locator, cfg))
		})
		d.UseFilterSet(FieldSetName, "disabled")
	})

	reg.Add("label", func(d *selector.Definition) {
		d.Label("label")
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			e := xpathb.Descendant("label")
			if locator == "" {
				return e
			}
			return e.Where(xpathb.Or(
				xpathb.TextEquals(locator),
				xpathb.AttrEquals("id", locator),
			))
		})
		d.NodeFilter("for", func(el *dom.Element, v any) bool {
			return el.AttrOr("for", "") == str(v)
		})
	})

	reg.Add("element", func(d *selector.Definition) {
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			if locator == "" {
				return xpathb.Descendant()
			}
			return xpathb.Descendant().Where(xpathb.LocalNameEquals(locator))
		})
		// Any non-reserved option narrows on the same-named attribute.
		d.ExpressionFilterMatching(anyOption, func(e expression.Expression, option string, v any) expression.Expression {
			if filter.IsReservedKey(option) {
				return e
			}
			return e.(*xpathb.Expression).Where(xpathb.AttrEquals(option, str(v)))
		})
	})
}

// fieldTypeFilter narrows a field expression by input type; textarea and
// select are element names, not type attributes.
func fieldTypeFilter(e expression.Expression, v any) expression.Expression {
	x := e.(*xpathb.Expression)
	t := str(v)
	if t == "textarea" || t == "select" {
		return x.Where(xpathb.LocalNameEquals(t))
	}
	return x.Where(xpathb.AttrEquals("type", t))
}

func withValueFilter(el *dom.Element, v any) bool {
	return el.Value() == str(v)
}

func optionValueFilter(el *dom.Element, v any) bool {
	return el.AttrOr("value", "") == str(v)
}

func typedInputBuilder(inputType string, cfg Config) selector.BuilderFunc {
	return func(locator string, _ filter.Options) expression.Expression {
		base := xpathb.Descendant("input").Where(xpathb.AttrEquals("type", inputType))
		return LocateField(base, locator, cfg)
	}
}

func linkExpression(locator string, cfg Config) *xpathb.Expression {
	e := xpathb.Descendant("a").Where(xpathb.HasAttr("href"))
	if locator == "" {
		return e
	}
	var aria *xpathb.Condition
	if cfg.EnableAriaLabel {
		aria = xpathb.AttrEquals("aria-label", locator)
	}
	return e.Where(xpathb.Or(
		xpathb.AttrEquals("id", locator),
		xpathb.AttrEquals("title", locator),
		xpathb.TextEquals(locator),
		xpathb.Exists(xpathb.Descendant("img").Where(xpathb.AttrEquals("alt", locator))),
		aria,
	))
}

func buttonExpression(locator string, cfg Config) *xpathb.Expression {
	btn := xpathb.Descendant("button")
	input := xpathb.Descendant("input").
		Where(xpathb.AttrOneOf("type", "submit", "reset", "image", "button"))
	if locator == "" {
		return btn.Union(input)
	}
	var aria *xpathb.Condition
	if cfg.EnableAriaLabel {
		aria = xpathb.AttrEquals("aria-label", locator)
	}
	btn = btn.Where(xpathb.Or(
		xpathb.AttrEquals("id", locator),
		xpathb.AttrEquals("name", locator),
		xpathb.AttrEquals("value", locator),
		xpathb.AttrEquals("title", locator),
		xpathb.TextEquals(locator),
		aria,
	))
	input = input.Where(xpathb.Or(
		xpathb.AttrEquals("id", locator),
		xpathb.AttrEquals("name", locator),
		xpathb.AttrEquals("value", locator),
		xpathb.AttrEquals("title", locator),
		xpathb.Exists(xpathb.Descendant("img").Where(xpathb.AttrEquals("alt", locator))),
		aria,
	))
	return btn.Union(input)
}

func optionTexts(els []*dom.Element) []string {
	out := make([]string, len(els))
	for i, el := range els {
		out[i] = el.Text()
	}
	return out
}

func toStrings(v any) []string {
	switch t := v.(type) {
	case string:
		return []string{t}
	case []string:
		return t
	case []any:
		out := make([]string, len(t))
		for i, e := range t {
			out[i] = str(e)
		}
		return out
	default:
		return []string{str(v)}
	}
}

func sameStrings(have, want []string) bool {
	if len(have) != len(want) {
		return false
	}
	for i := range have {
		if have[i] != want[i] {
			return false
		}
	}
	return true
}

func containsAll(have, want []string) bool {
	for _, w := range want {
		found := false
		for _, h := range have {
			if h == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
