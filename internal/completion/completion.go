// Package completion cycles through the folder labels matching a request.
//
// The Engine asks its Source for the labels completing a request and hands
// them out one at a time. Triggering again with the value it last returned
// moves the cursor instead of querying again; any other input starts over.
package completion

import (
	"context"
	"strings"

	"github.com/firefly-engineering/create-new/internal/logging"
)

// Direction is the way the cursor moves.
type Direction int

const (
	Next Direction = iota
	Previous
)

func (d Direction) String() string {
	if d == Previous {
		return "previous"
	}
	return "next"
}

// Source returns the labels completing a request that starts with "/".
type Source interface {
	Complete(ctx context.Context, request string) ([]string, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, request string) ([]string, error)

func (f SourceFunc) Complete(ctx context.Context, request string) ([]string, error) {
	return f(ctx, request)
}

// Result is the value to put in the input.
type Result struct {
	Value string
	// Terminal is set when there is nothing to cycle through: the request
	// had a single match, returned with a trailing "/", or none at all. The
	// next trigger queries again.
	Terminal bool
}

type cache struct {
	request string
	results []string
	index   int
	last    string
}

// Engine holds the result set and cursor of the current request.
type Engine struct {
	source Source
	cache  *cache
}

// New creates an Engine querying source.
func New(source Source) *Engine {
	return &Engine{source: source}
}

// Normalize returns input as a request: "/" for an empty input, otherwise
// input with a leading "/".
func Normalize(input string) string {
	if !strings.HasPrefix(input, "/") {
		return "/" + input
	}
	return input
}

// Complete returns the completion of input in direction d.
func (e *Engine) Complete(ctx context.Context, input string, d Direction) (Result, error) {
	if c := e.cache; c != nil && input == c.last {
		c.index = step(c.index, len(c.results), d)
		c.last = c.results[c.index]
		logging.Debug("cycling completion", "request", c.request, "index", c.index, "direction", d)
		return Result{Value: c.last}, nil
	}

	e.cache = nil
	request := Normalize(input)

	results, err := e.source.Complete(ctx, request)
	if err != nil {
		return Result{}, err
	}
	results = dedupe(results)
	logging.Debug("completion query", "request", request, "results", len(results))

	switch len(results) {
	case 0:
		return Result{Value: request, Terminal: true}, nil
	case 1:
		return Result{Value: strings.TrimSuffix(results[0], "/") + "/", Terminal: true}, nil
	}

	index := 0
	if d == Previous {
		index = len(results) - 1
	}
	e.cache = &cache{request: request, results: results, index: index, last: results[index]}
	return Result{Value: results[index]}, nil
}

// Invalidate forgets the current result set. Call it on user edits.
func (e *Engine) Invalidate() {
	e.cache = nil
}

// Cached reports whether a result set is being cycled.
func (e *Engine) Cached() bool {
	return e.cache != nil
}

func step(index, n int, d Direction) int {
	if d == Previous {
		return (index - 1 + n) % n
	}
	return (index + 1) % n
}

func dedupe(values []string) []string {
	seen := make(map[string]bool, len(values))
	out := values[:0:0]
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
