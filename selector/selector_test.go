package selector

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/domsel/domsel/expression"
	"github.com/domsel/domsel/filter"
	"github.com/domsel/domsel/xpathb"
)

func TestCallWithoutExpressionWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	reg := NewRegistry(WithLogger(logger))

	sel := reg.Add("empty", func(d *Definition) {
		d.Label("nothing")
	})

	e := sel.Call("anything", filter.Options{})
	assert.Nil(t, e, "a misconfigured selector must not produce an expression")
	assert.Contains(t, buf.String(), "no expression defined")
	assert.Contains(t, buf.String(), "empty")
}

func TestCallDelegatesToBuilder(t *testing.T) {
	reg := NewRegistry()
	sel := reg.Add("para", func(d *Definition) {
		d.XPath(func(locator string, _ filter.Options) expression.Expression {
			return xpathb.Descendant("p").Where(xpathb.AttrEquals("id", locator))
		})
	})

	e := sel.Call("intro", nil)
	require.NotNil(t, e)
	assert.Equal(t, expression.XPath, e.Format())
	assert.Equal(t, ".//p[@id = 'intro']", e.Render())
	assert.Equal(t, expression.XPath, sel.Format())
}

func TestMatch(t *testing.T) {
	reg := NewRegistry()
	sel := reg.Add("hash", func(d *Definition) {
		d.Match(func(locator string) bool { return locator != "" && locator[0] == '#' })
	})

	assert.True(t, sel.Match("#main"))
	assert.False(t, sel.Match("main"))

	plain := reg.Add("plain", nil)
	assert.False(t, plain.Match("#main"), "selector without predicate never matches")
}

func TestLabel(t *testing.T) {
	reg := NewRegistry()
	labeled := reg.Add("radio_button", func(d *Definition) { d.Label("radio button") })
	unlabeled := reg.Add("thing", nil)

	assert.Equal(t, "radio button", labeled.Label())
	assert.Equal(t, "thing", unlabeled.Label(), "label falls back to the name")
}

func TestDescription(t *testing.T) {
	reg := NewRegistry()
	sel := reg.Add("button", func(d *Definition) {
		d.Label("button")
		d.ExpressionFilter("name", nil)
		d.Describe(func(opts filter.Options) string {
			if v, ok := opts["pressed"].(bool); ok && v {
				return " that is pressed"
			}
			return ""
		})
	})

	t.Run("label only with no options", func(t *testing.T) {
		assert.Equal(t, "button", sel.Description(filter.Options{}))
	})

	t.Run("callbacks and fragments", func(t *testing.T) {
		got := sel.Description(filter.Options{"pressed": true, "name": "save"})
		assert.Equal(t, "button that is pressed with name save", got)
	})
}

func TestDefaultVisibility(t *testing.T) {
	reg := NewRegistry()
	plain := reg.Add("plain", nil)
	hidden := reg.Add("hid", func(d *Definition) { d.Visible(VisibilityHidden) })

	assert.Equal(t, VisibilityVisible, plain.DefaultVisibility(VisibilityVisible))
	assert.Equal(t, VisibilityAll, plain.DefaultVisibility(VisibilityAll))
	assert.Equal(t, VisibilityAll, plain.DefaultVisibility(VisibilityUnset))

	// Explicit setting wins regardless of fallback.
	assert.Equal(t, VisibilityHidden, hidden.DefaultVisibility(VisibilityVisible))
	assert.Equal(t, VisibilityHidden, hidden.DefaultVisibility(VisibilityAll))
}

func TestUseFilterSet(t *testing.T) {
	reg := NewRegistry()
	reg.FilterSets().GetOrCreate("shared", func(s *filter.Set) {
		s.AddExpressionFilter(filter.NewExpression("name", nil))
		s.AddNodeFilter(filter.NewNode("checked", nil))
	})

	sel := reg.Add("borrower", func(d *Definition) {
		d.UseFilterSet("shared")
	})
	assert.Len(t, sel.Filters().ExpressionFilters(), 1)
	assert.Len(t, sel.Filters().NodeFilters(), 1)

	restricted := reg.Add("partial", func(d *Definition) {
		d.UseFilterSet("shared", "checked")
	})
	assert.Empty(t, restricted.Filters().ExpressionFilters())
	assert.Len(t, restricted.Filters().NodeFilters(), 1)
}

func TestUseFilterSetMissingPanics(t *testing.T) {
	reg := NewRegistry()
	assert.Panics(t, func() {
		reg.Add("broken", func(d *Definition) {
			d.UseFilterSet("no-such-set")
		})
	})
}

func TestParseVisibility(t *testing.T) {
	tests := []struct {
		in   string
		want Visibility
	}{
		{"all", VisibilityAll},
		{"hidden", VisibilityHidden},
		{"visible", VisibilityVisible},
		{"bogus", VisibilityUnset},
		{"", VisibilityUnset},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseVisibility(tt.in))
			if tt.want != VisibilityUnset {
				assert.Equal(t, tt.in, tt.want.String())
			}
		})
	}
}
