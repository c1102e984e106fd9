package filter

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"golang.org/x/net/html"

	"github.com/domsel/domsel/dom"
	"github.com/domsel/domsel/expression"
	"github.com/domsel/domsel/xpathb"
)

func testElement(t *testing.T, fragment string) *dom.Element {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		t.Fatal(err)
	}
	// html.Parse wraps fragments in html/head/body; the element under test
	// is the first child of body.
	body := doc.FirstChild.FirstChild.NextSibling
	return dom.FromNode(body.FirstChild)
}

func TestKey(t *testing.T) {
	t.Run("fixed", func(t *testing.T) {
		k := FixedKey("checked")
		assert.False(t, k.IsPattern())
		assert.True(t, k.Matches("checked"))
		assert.False(t, k.Matches("checke"))
		assert.Equal(t, "checked", k.String())
	})

	t.Run("pattern", func(t *testing.T) {
		k := PatternKey(regexp.MustCompile(`^data-`))
		assert.True(t, k.IsPattern())
		assert.True(t, k.Matches("data-role"))
		assert.False(t, k.Matches("role"))
		assert.Equal(t, "^data-", k.String())
	})
}

func TestExpressionFilterDefault(t *testing.T) {
	var got any
	f := NewExpression("state", func(e expression.Expression, v any) expression.Expression {
		got = v
		return e
	}, Default("on"))

	e := xpathb.Descendant("div")
	out, err := f.ApplyExpression(e, "state", Options{})
	require.NoError(t, err)
	assert.Equal(t, "on", got, "body must see the default exactly as if supplied")
	assert.Same(t, e, out)
}

func TestExpressionFilterAbsentIsNoop(t *testing.T) {
	called := false
	f := NewExpression("state", func(e expression.Expression, v any) expression.Expression {
		called = true
		return nil
	})

	e := xpathb.Descendant("div")
	out, err := f.ApplyExpression(e, "state", Options{})
	require.NoError(t, err)
	assert.False(t, called)
	assert.Same(t, e, out)
}

func TestExpressionFilterSkipIf(t *testing.T) {
	called := false
	f := NewExpression("visible", func(e expression.Expression, v any) expression.Expression {
		called = true
		return nil
	}, SkipIf("all"))

	e := xpathb.Descendant("div")
	out, err := f.ApplyExpression(e, "visible", Options{"visible": "all"})
	require.NoError(t, err)
	assert.False(t, called, "body must never run for the skip sentinel")
	assert.Same(t, e, out)
}

func TestExpressionFilterValidValues(t *testing.T) {
	f := NewExpression("state", nil, ValidValues("on", "off"))

	e := xpathb.Descendant("div")
	_, err := f.ApplyExpression(e, "state", Options{"state": "sideways"})
	require.Error(t, err)

	var invalid *InvalidValueError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "state", invalid.Filter)
	assert.Equal(t, "sideways", invalid.Value)
	assert.Equal(t, KindExpression, invalid.Kind)
	assert.Contains(t, err.Error(), "state")
	assert.Contains(t, err.Error(), "sideways")
}

func TestIdentityExpressionFilter(t *testing.T) {
	// nil body: validation bookkeeping only, expression passes through.
	f := NewExpression("order", nil, ValidValues("asc", "desc"))

	e := xpathb.Descendant("div")
	out, err := f.ApplyExpression(e, "order", Options{"order": "asc"})
	require.NoError(t, err)
	assert.Same(t, e, out)
}

func TestExpressionPatternFilter(t *testing.T) {
	f := NewExpressionPattern(regexp.MustCompile(`^data-`), func(e expression.Expression, option string, v any) expression.Expression {
		return e.(*xpathb.Expression).Where(xpathb.AttrEquals(option, v.(string)))
	})

	out, err := f.ApplyExpression(xpathb.Descendant("div"), "data-role", Options{"data-role": "nav"})
	require.NoError(t, err)
	assert.Equal(t, ".//div[@data-role = 'nav']", out.Render())
}

func TestNodeFilter(t *testing.T) {
	el := testElement(t, `<input type="checkbox" checked>`)
	f := NewNode("checked", func(el *dom.Element, v any) bool {
		return v.(bool) == el.Checked()
	})

	t.Run("passes", func(t *testing.T) {
		ok, err := f.MatchesNode(el, "checked", Options{"checked": true})
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("rejects", func(t *testing.T) {
		ok, err := f.MatchesNode(el, "checked", Options{"checked": false})
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("absent option accepts", func(t *testing.T) {
		ok, err := f.MatchesNode(el, "checked", Options{})
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestNodeFilterInvalidValue(t *testing.T) {
	el := testElement(t, `<input disabled>`)
	f := NewNode("disabled", func(el *dom.Element, v any) bool { return true },
		ValidValues(true, false, "all"))

	ok, err := f.MatchesNode(el, "disabled", Options{"disabled": "maybe"})
	require.Error(t, err)
	assert.False(t, ok)
}
