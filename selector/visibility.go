package selector

// Visibility is the element-visibility mode a query applies to candidates.
type Visibility int

const (
	// VisibilityUnset defers to the process-wide fallback.
	VisibilityUnset Visibility = iota
	// VisibilityAll accepts visible and invisible elements.
	VisibilityAll
	// VisibilityHidden accepts invisible elements only.
	VisibilityHidden
	// VisibilityVisible accepts visible elements only.
	VisibilityVisible
)

func (v Visibility) String() string {
	switch v {
	case VisibilityAll:
		return "all"
	case VisibilityHidden:
		return "hidden"
	case VisibilityVisible:
		return "visible"
	default:
		return "unset"
	}
}

// ParseVisibility maps a mode name to a Visibility. Unknown names map to
// VisibilityUnset.
func ParseVisibility(s string) Visibility {
	switch s {
	case "all":
		return VisibilityAll
	case "hidden":
		return VisibilityHidden
	case "visible":
		return VisibilityVisible
	default:
		return VisibilityUnset
	}
}
