package completion

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSource answers from a fixed table and counts queries.
type fakeSource struct {
	answers map[string][]string
	queries []string
	err     error
}

func (f *fakeSource) Complete(_ context.Context, request string) ([]string, error) {
	f.queries = append(f.queries, request)
	if f.err != nil {
		return nil, f.err
	}
	return f.answers[request], nil
}

// trigger feeds the previous value back in, as the picker does.
func trigger(t *testing.T, e *Engine, input string, d Direction) string {
	t.Helper()
	res, err := e.Complete(context.Background(), input, d)
	require.NoError(t, err)
	return res.Value
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "/", Normalize(""))
	assert.Equal(t, "/abc", Normalize("abc"))
	assert.Equal(t, "/abc/", Normalize("/abc/"))
}

func TestComplete_MultiRootFromEmpty(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{"/": {"/folder-1", "/folder-2"}}}
	e := New(src)

	value := ""
	var got []string
	for i := 0; i < 3; i++ {
		value = trigger(t, e, value, Next)
		got = append(got, value)
	}

	assert.Equal(t, []string{"/folder-1", "/folder-2", "/folder-1"}, got)
	assert.Equal(t, []string{"/"}, src.queries, "cycling must not query again")
}

func TestComplete_PreviousStartsAtEnd(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{"/s": {"/scripts", "/src", "/static"}}}
	e := New(src)

	value := trigger(t, e, "/s", Previous)
	assert.Equal(t, "/static", value)
	value = trigger(t, e, value, Previous)
	assert.Equal(t, "/src", value)
	value = trigger(t, e, value, Next)
	value = trigger(t, e, value, Next)
	assert.Equal(t, "/scripts", value, "next wraps to the first entry")
}

func TestComplete_Rotation(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{"/": {"/a", "/b", "/c"}}}

	for k := 1; k <= 7; k++ {
		e := New(src)
		start := trigger(t, e, "", Next)

		value := start
		for i := 0; i < k; i++ {
			value = trigger(t, e, value, Next)
		}
		for i := 0; i < k; i++ {
			value = trigger(t, e, value, Previous)
		}
		assert.Equal(t, start, value, "k=%d", k)
	}
}

func TestComplete_SingleMatchIsTerminal(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{
		"/fo":        {"/folder-2"},
		"/folder-2/": {"/folder-2/a", "/folder-2/b"},
	}}
	e := New(src)

	res, err := e.Complete(context.Background(), "/fo", Next)
	require.NoError(t, err)
	assert.Equal(t, Result{Value: "/folder-2/", Terminal: true}, res)
	assert.False(t, e.Cached())

	assert.Equal(t, "/folder-2/a", trigger(t, e, res.Value, Next))
	assert.Equal(t, []string{"/fo", "/folder-2/"}, src.queries)
}

func TestComplete_NoMatch(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{}}
	e := New(src)

	res, err := e.Complete(context.Background(), "abc", Next)
	require.NoError(t, err)
	assert.Equal(t, Result{Value: "/abc", Terminal: true}, res)

	again := trigger(t, e, res.Value, Next)
	assert.Equal(t, "/abc", again, "unmatched input is left alone")

	assert.Equal(t, "/", trigger(t, New(src), "", Next), "empty workspace keeps the implicit request")
}

func TestComplete_EditRestarts(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{
		"/":   {"/a", "/b"},
		"/ab": {"/abc", "/abd"},
	}}
	e := New(src)

	value := trigger(t, e, "", Next)
	require.Equal(t, "/a", value)

	// The user typed on: the input is no longer the engine's own value.
	assert.Equal(t, "/abc", trigger(t, e, "/ab", Next))
	assert.Equal(t, []string{"/", "/ab"}, src.queries)
}

func TestComplete_Invalidate(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{
		"/":  {"/a", "/b"},
		"/a": {"/a", "/ab"},
	}}
	e := New(src)

	value := trigger(t, e, "", Next)
	require.True(t, e.Cached())

	e.Invalidate()
	assert.False(t, e.Cached())
	assert.Equal(t, "/a", trigger(t, e, value, Next))
	assert.Equal(t, []string{"/", "/a"}, src.queries)
}

func TestComplete_Dedupes(t *testing.T) {
	src := &fakeSource{answers: map[string][]string{"/": {"/a", "/a", "/b"}}}
	e := New(src)

	value := trigger(t, e, "", Next)
	value = trigger(t, e, value, Next)
	value = trigger(t, e, value, Next)
	assert.Equal(t, "/a", value)
}

func TestComplete_SourceError(t *testing.T) {
	src := &fakeSource{err: errors.New("index failed")}
	e := New(src)

	_, err := e.Complete(context.Background(), "/x", Next)
	assert.EqualError(t, err, "index failed")
	assert.False(t, e.Cached())
}

func TestSourceFunc(t *testing.T) {
	src := SourceFunc(func(_ context.Context, request string) ([]string, error) {
		return []string{request + "x"}, nil
	})
	assert.Equal(t, "/ax/", trigger(t, New(src), "/a", Next))
}
