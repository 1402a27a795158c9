// Package query evaluates JMESPath expressions against decoded JSON payloads.
package query

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/jmespath/go-jmespath"
)

// EvalAny returns the raw value selected by the JMESPath expression.
// Any decoded JSON (map[string]any, []any, etc.) is accepted.
// A non-matching expression yields nil and no error, the same as evaluating to `null`.
func EvalAny(expression string, data any) (any, error) {
	v, err := jmespath.Search(expression, data)
	if err != nil {
		return nil, fmt.Errorf("jmespath: %w", err)
	}
	return v, nil
}

// Generic turns a typed value into the map/slice shape JMESPath walks, using the
// value's JSON field names.
func Generic(v any) (any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
