// Package filter implements the filter vocabulary of selector definitions.
//
// A Filter is a single named rule: either an expression filter, which
// rewrites a query expression before execution, or a node filter, which
// accepts or rejects an already-matched candidate. Filters carry validation
// metadata (default value, skip sentinel, allowed values) and are immutable
// once built, so they can be shared between filter sets.
//
// A Set bundles a selector's filters together with description callbacks and
// is the unit of reuse: selectors borrow filters from other named sets
// through the SetRegistry.
package filter
