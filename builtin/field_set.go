package builtin

import (
	"fmt"
	"strings"

	"github.com/domsel/domsel/dom"
	"github.com/domsel/domsel/expression"
	"github.com/domsel/domsel/filter"
	"github.com/domsel/domsel/xpathb"
)

// FieldSetName is the shared filter vocabulary the form-field selectors
// borrow from. The leading underscore keeps it clear of selector-owned set
// names.
const FieldSetName = "_field"

func registerFieldSet(sets *filter.SetRegistry) {
	sets.GetOrCreate(FieldSetName, func(s *filter.Set) {
		s.AddNodeFilter(filter.NewNode("checked", func(el *dom.Element, v any) bool {
			return asBool(v) == el.Checked()
		}))
		s.AddNodeFilter(filter.NewNode("unchecked", func(el *dom.Element, v any) bool {
			return asBool(v) != el.Checked()
		}))
		s.AddNodeFilter(filter.NewNode("disabled", func(el *dom.Element, v any) bool {
			return asBool(v) == el.Disabled()
		}, filter.Default(false), filter.SkipIf("all"), filter.ValidValues(true, false, "all")))
		s.AddNodeFilter(filter.NewNode("readonly", func(el *dom.Element, v any) bool {
			return asBool(v) == el.ReadOnly()
		}))
		s.AddNodeFilter(filter.NewNode("multiple", func(el *dom.Element, v any) bool {
			return asBool(v) == el.Multiple()
		}))
		s.AddExpressionFilter(filter.NewExpression("name", attrFilter("name")))
		s.AddExpressionFilter(filter.NewExpression("placeholder", attrFilter("placeholder")))
		s.AddDescription(fieldDescription)
	})
}

func fieldDescription(opts filter.Options) string {
	var b strings.Builder
	if v, ok := opts["checked"].(bool); ok && v {
		b.WriteString(" that is checked")
	}
	if v, ok := opts["unchecked"].(bool); ok && v {
		b.WriteString(" that is not checked")
	}
	if v, ok := opts["disabled"].(bool); ok && v {
		b.WriteString(" that is disabled")
	}
	if v, ok := opts["readonly"].(bool); ok && v {
		b.WriteString(" that is read-only")
	}
	if v, ok := opts["multiple"].(bool); ok && v {
		b.WriteString(" that allows multiple values")
	}
	return b.String()
}

// attrFilter builds the common expression-filter body narrowing the working
// expression with an exact attribute match.
func attrFilter(name string) filter.ExprFunc {
	return func(e expression.Expression, v any) expression.Expression {
		return e.(*xpathb.Expression).Where(xpathb.AttrEquals(name, str(v)))
	}
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func str(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
