package main

import (
	"fmt"
	"io"

	"islandtracker/internal/query"

	json "github.com/goccy/go-json"
)

type outputOpts struct {
	query  string
	filter query.Filter
}

// render prints v as indented JSON after the optional filter and projection.
func render(w io.Writer, v any, o outputOpts) error {
	g, err := query.Generic(v)
	if err != nil {
		return err
	}
	if items, ok := g.([]any); ok && o.filter.Expr != "" {
		g = o.filter.Apply(items)
	}
	if o.query != "" {
		if g, err = query.EvalAny(o.query, g); err != nil {
			return err
		}
	}
	b, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(b))
	return err
}
