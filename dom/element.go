// Package dom wraps parsed HTML nodes as match candidates for node filters.
package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Element is a single candidate element in a parsed document.
type Element struct {
	node *html.Node
}

// FromNode wraps an element node. It returns nil for non-element nodes.
func FromNode(n *html.Node) *Element {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &Element{node: n}
}

// Node returns the underlying parse-tree node.
func (e *Element) Node() *html.Node { return e.node }

// TagName returns the lowercase tag name.
func (e *Element) TagName() string { return strings.ToLower(e.node.Data) }

// Attr returns the value of an attribute and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

// AttrOr returns the attribute value, or def when absent.
func (e *Element) AttrOr(name, def string) string {
	if v, ok := e.Attr(name); ok {
		return v
	}
	return def
}

// HasAttr reports whether the attribute is present.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.Attr(name)
	return ok
}

// Text returns the whitespace-normalized text content of the element.
func (e *Element) Text() string {
	var b strings.Builder
	collectText(e.node, &b)
	return strings.Join(strings.Fields(b.String()), " ")
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}

// Value returns the form value of the element: the value attribute for
// inputs, the text content for textareas, and the value of the first
// selected option for selects.
func (e *Element) Value() string {
	switch e.TagName() {
	case "textarea":
		var b strings.Builder
		collectText(e.node, &b)
		return strings.TrimSuffix(b.String(), " ")
	case "select":
		opts := e.SelectedOptions()
		if len(opts) == 0 {
			return ""
		}
		return opts[0].OptionValue()
	default:
		return e.AttrOr("value", "")
	}
}

// Options returns every option element of a select, in document order.
func (e *Element) Options() []*Element {
	if e.TagName() != "select" {
		return nil
	}
	var opts []*Element
	walk(e.node, func(n *html.Node) {
		if n.Data == "option" {
			opts = append(opts, &Element{node: n})
		}
	})
	return opts
}

// SelectedOptions returns the selected option elements of a select. When
// none carry the selected attribute on a single select, the first option is
// the browser-implied selection.
func (e *Element) SelectedOptions() []*Element {
	if e.TagName() != "select" {
		return nil
	}
	var all, selected []*Element
	walk(e.node, func(n *html.Node) {
		if n.Data == "option" {
			opt := &Element{node: n}
			all = append(all, opt)
			if opt.HasAttr("selected") {
				selected = append(selected, opt)
			}
		}
	})
	if len(selected) == 0 && !e.Multiple() && len(all) > 0 {
		return all[:1]
	}
	return selected
}

// OptionValue returns the value of an option element, falling back to its
// text when the value attribute is absent.
func (e *Element) OptionValue() string {
	if v, ok := e.Attr("value"); ok {
		return v
	}
	return e.Text()
}

func walk(n *html.Node, fn func(*html.Node)) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			fn(c)
		}
		walk(c, fn)
	}
}

// Visible reports whether the element would be rendered. It checks the
// element and its ancestors for hidden input types, the hidden attribute,
// and inline display:none / visibility:hidden styles. This is a static
// approximation; a live driver would consult computed styles.
func (e *Element) Visible() bool {
	for n := e.node; n != nil && n.Type == html.ElementNode; n = n.Parent {
		el := Element{node: n}
		if el.TagName() == "input" && el.AttrOr("type", "") == "hidden" {
			return false
		}
		if el.HasAttr("hidden") {
			return false
		}
		style := strings.ReplaceAll(el.AttrOr("style", ""), " ", "")
		if strings.Contains(style, "display:none") || strings.Contains(style, "visibility:hidden") {
			return false
		}
	}
	return true
}

// Disabled reports whether the element is disabled, directly or through an
// enclosing disabled fieldset.
func (e *Element) Disabled() bool {
	if e.HasAttr("disabled") {
		return true
	}
	for n := e.node.Parent; n != nil && n.Type == html.ElementNode; n = n.Parent {
		if n.Data == "fieldset" && (&Element{node: n}).HasAttr("disabled") {
			return true
		}
	}
	return false
}

// Checked reports whether a checkbox or radio input is checked.
func (e *Element) Checked() bool { return e.HasAttr("checked") }

// Selected reports whether an option is selected.
func (e *Element) Selected() bool { return e.HasAttr("selected") }

// Multiple reports whether the element accepts multiple values.
func (e *Element) Multiple() bool { return e.HasAttr("multiple") }

// ReadOnly reports whether the element is read-only.
func (e *Element) ReadOnly() bool { return e.HasAttr("readonly") }
