package query

// Filter keeps list items for which Expr evaluates to true (false when Negate is set).
type Filter struct {
	Expr   string
	Negate bool
}

// Match reports whether item passes the filter. An empty filter matches everything.
// An expression that errors or yields a non-boolean rejects the item, so Negate keeps it.
func (f Filter) Match(item any) bool {
	if f.Expr == "" {
		return true
	}
	match, err := EvalAny(f.Expr, item)
	if err != nil {
		return f.Negate
	}
	matched, ok := match.(bool)
	if !ok {
		return f.Negate
	}
	if f.Negate {
		return !matched
	}
	return matched
}

// Apply returns the items that pass the filter, keeping their order.
func (f Filter) Apply(items []any) []any {
	out := make([]any, 0, len(items))
	for _, it := range items {
		if f.Match(it) {
			out = append(out, it)
		}
	}
	return out
}
