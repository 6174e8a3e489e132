package picker

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/firefly-engineering/create-new/internal/completion"
	"github.com/firefly-engineering/create-new/internal/menu"
	"github.com/firefly-engineering/create-new/internal/picker/pickertest"
)

var singleRootMenu = []menu.Item{
	menu.Folder("/", "/ws/project", menu.DescriptionRoot),
	menu.Separator(),
	menu.Folder("/docs", "/ws/project/docs", ""),
	menu.Folder("/src", "/ws/project/src", ""),
}

var multiRootMenu = []menu.Item{
	menu.Folder("/folder-1", "/ws/folder-1", menu.DescriptionRoot),
	menu.Folder("/folder-2", "/ws/folder-2", menu.DescriptionRoot),
	menu.Separator(),
	menu.Folder("/folder-2/folder-2-1", "/ws/folder-2/folder-2-1", ""),
}

type harness struct {
	selector  *pickertest.Selector
	textField *pickertest.TextField
	scheduler *pickertest.Scheduler
	queries   []string
	answers   map[string][]string
	sourceErr error

	picks     []Pick
	errs      []error
	disposed  int
	available []bool
}

func newHarness(answers map[string][]string) *harness {
	return &harness{
		selector:  pickertest.NewSelector(),
		textField: pickertest.NewTextField(),
		scheduler: &pickertest.Scheduler{},
		answers:   answers,
	}
}

func (h *harness) config() Config {
	return Config{
		Selector:  h.selector,
		TextField: h.textField,
		Engine: completion.New(completion.SourceFunc(func(_ context.Context, request string) ([]string, error) {
			h.queries = append(h.queries, request)
			if h.sourceErr != nil {
				return nil, h.sourceErr
			}
			return h.answers[request], nil
		})),
		Hooks: Hooks{
			OnPick:                     func(p Pick) { h.picks = append(h.picks, p) },
			OnDispose:                  func() { h.disposed++ },
			OnError:                    func(err error) { h.errs = append(h.errs, err) },
			SetAutoCompletionAvailable: func(a bool) { h.available = append(h.available, a) },
			Async:                      h.scheduler.Async,
		},
	}
}

func (h *harness) start(t *testing.T, items []menu.Item) *Picker {
	t.Helper()
	p := New(context.Background(), h.config(), func(context.Context) ([]menu.Item, error) {
		return items, nil
	})
	return p
}

func (h *harness) startLoaded(t *testing.T, items []menu.Item) *Picker {
	t.Helper()
	p := h.start(t, items)
	h.scheduler.RunAll()
	return p
}

func (h *harness) complete(p *Picker, d completion.Direction) string {
	p.AutoComplete(context.Background(), d)
	h.textField.Flush()
	return h.textField.Value()
}

func TestNew_ShowsBusyMenu(t *testing.T) {
	h := newHarness(nil)
	p := h.start(t, singleRootMenu)

	assert.Equal(t, MenuSelecting, p.Mode())
	assert.True(t, h.selector.Visible)
	assert.True(t, h.selector.Busy)
	assert.Equal(t, []bool{true}, h.available)
	assert.Equal(t, 1, h.scheduler.Pending())
	assert.NotEmpty(t, p.ID)

	h.scheduler.RunAll()
	assert.False(t, h.selector.Busy)
	assert.Equal(t, singleRootMenu, h.selector.Items())
}

func TestAcceptFolderThenValue(t *testing.T) {
	h := newHarness(nil)
	p := h.startLoaded(t, singleRootMenu)

	require.True(t, h.selector.Highlight("/src"))
	h.selector.Accept()

	assert.Equal(t, FreeText, p.Mode(), "hiding the selector must not dismiss")
	folder, ok := p.SelectedFolder()
	require.True(t, ok)
	assert.Equal(t, "/ws/project/src", folder.Path)
	assert.False(t, h.selector.Visible)
	assert.True(t, h.textField.Visible)
	assert.Equal(t, "/src", h.textField.Prompt)
	assert.Empty(t, h.textField.Value())
	assert.Equal(t, []bool{true, false}, h.available)

	h.textField.Type("api/handler.go")
	h.textField.Accept()

	assert.Equal(t, Accepted, p.Mode())
	assert.Equal(t, []Pick{{Base: "/ws/project/src", Value: "api/handler.go"}}, h.picks)
	assert.True(t, p.Disposed())
	assert.Equal(t, 1, h.disposed)
	assert.True(t, h.selector.Disposed)
	assert.True(t, h.textField.Disposed)
	assert.Equal(t, []bool{true, false, false}, h.available)
}

func TestFreeText_EmptyAcceptIsNoop(t *testing.T) {
	h := newHarness(nil)
	p := h.startLoaded(t, singleRootMenu)
	h.selector.Accept()

	h.textField.Accept()

	assert.Equal(t, FreeText, p.Mode())
	assert.Empty(t, h.picks)
	assert.False(t, p.Disposed())
}

func TestMenuAccept_NothingSelectedDismisses(t *testing.T) {
	h := newHarness(nil)
	p := h.start(t, nil)

	h.selector.Accept()

	assert.Equal(t, Dismissed, p.Mode())
	assert.Empty(t, h.picks)
	assert.Equal(t, 1, h.disposed)
	assert.Equal(t, []bool{true, false}, h.available)
}

func TestDismissal(t *testing.T) {
	tests := []struct {
		name          string
		act           func(h *harness, p *Picker)
		wantAvailable []bool
	}{
		{
			name:          "selector closed",
			act:           func(h *harness, p *Picker) { h.selector.Close() },
			wantAvailable: []bool{true, false},
		},
		{
			name: "text field closed after folder",
			act: func(h *harness, p *Picker) {
				h.selector.Accept()
				h.textField.Close()
			},
			wantAvailable: []bool{true, false, false},
		},
		{
			name: "text field closed while completing",
			act: func(h *harness, p *Picker) {
				p.AutoComplete(context.Background(), completion.Next)
				h.textField.Close()
			},
			wantAvailable: []bool{true, false},
		},
		{
			name:          "dismissed by owner",
			act:           func(h *harness, p *Picker) { p.Dismiss() },
			wantAvailable: []bool{true, false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(map[string][]string{"/": {"/docs", "/src"}})
			p := h.startLoaded(t, singleRootMenu)

			tt.act(h, p)

			assert.Equal(t, Dismissed, p.Mode())
			assert.Equal(t, 1, h.disposed)
			assert.Empty(t, h.picks)
			assert.Equal(t, tt.wantAvailable, h.available)
			assert.False(t, p.AutoCompletionAvailable())

			p.Dismiss()
			assert.Equal(t, 1, h.disposed, "dispose runs once")
		})
	}
}

func TestStaleMenuIsDiscarded(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/docs", "/src"}})
	p := h.start(t, singleRootMenu)

	assert.Equal(t, "/docs", h.complete(p, completion.Next))
	h.scheduler.RunAll()

	assert.Empty(t, h.selector.Items(), "late menu must not repopulate the selector")
	assert.False(t, h.selector.Busy)
	assert.Equal(t, FreeText, p.Mode())
}

func TestStaleMenuAfterDismiss(t *testing.T) {
	h := newHarness(nil)
	p := h.start(t, singleRootMenu)
	p.Dismiss()

	h.scheduler.RunAll()
	assert.Empty(t, h.selector.Items())
}

func TestMenuLoadError(t *testing.T) {
	h := newHarness(nil)
	p := New(context.Background(), h.config(), func(context.Context) ([]menu.Item, error) {
		return nil, errors.New("walk failed")
	})
	h.scheduler.RunAll()

	require.Len(t, h.errs, 1)
	assert.EqualError(t, h.errs[0], "walk failed")
	assert.Equal(t, Dismissed, p.Mode())
}

func TestAutoComplete_SeedsHighlightedFolder(t *testing.T) {
	h := newHarness(map[string][]string{"/src": {"/src"}})
	p := h.startLoaded(t, singleRootMenu)
	require.True(t, h.selector.Highlight("/src"))

	assert.Equal(t, "/src", h.complete(p, completion.Next))
	assert.Empty(t, h.queries, "seeding must not complete")
	assert.True(t, p.AutoCompleting())
	_, ok := p.SelectedFolder()
	assert.False(t, ok)

	assert.Equal(t, "/src/", h.complete(p, completion.Next))
	assert.Equal(t, []string{"/src"}, h.queries)
}

func TestAutoComplete_RootShortcutCompletesImmediately(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/docs", "/src"}})
	p := h.startLoaded(t, singleRootMenu)

	assert.Equal(t, "/docs", h.complete(p, completion.Next))
	assert.Equal(t, []string{"/"}, h.queries)
}

func TestAutoComplete_KeepsTypedFilter(t *testing.T) {
	h := newHarness(map[string][]string{"/s": {"/scripts", "/src"}})
	p := h.startLoaded(t, singleRootMenu)
	require.True(t, h.selector.Highlight("/docs"))
	h.selector.Type("s")

	assert.Equal(t, "/scripts", h.complete(p, completion.Next))
	assert.Equal(t, "/src", h.complete(p, completion.Next))
	assert.Equal(t, []string{"/s"}, h.queries)
}

func TestAutoComplete_MultiRootFromEmpty(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/folder-1", "/folder-2"}})
	p := h.startLoaded(t, multiRootMenu)

	var got []string
	for i := 0; i < 3; i++ {
		got = append(got, h.complete(p, completion.Next))
	}

	assert.Equal(t, []string{"/folder-1", "/folder-2", "/folder-1"}, got)
	assert.Equal(t, []string{"/"}, h.queries)
}

func TestAutoComplete_EmptyWorkspace(t *testing.T) {
	h := newHarness(nil)
	p := h.startLoaded(t, []menu.Item{menu.Folder("/", "/ws/empty", menu.DescriptionRoot)})

	assert.Equal(t, "/", h.complete(p, completion.Next))
}

func TestAutoComplete_CounterSurvivesConsecutiveWrites(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/a", "/b", "/c"}})
	p := h.startLoaded(t, multiRootMenu)

	// Two engine writes before the host gets to notify.
	p.AutoComplete(context.Background(), completion.Next)
	p.AutoComplete(context.Background(), completion.Next)
	assert.Equal(t, 2, h.textField.Pending())
	assert.Equal(t, 2, p.suppressed)

	h.textField.Flush()
	assert.Equal(t, 0, p.suppressed)

	assert.Equal(t, "/c", h.complete(p, completion.Next))
	assert.Equal(t, []string{"/"}, h.queries, "programmatic writes keep the cycle")
}

func TestAutoComplete_UserEditRestartsCycle(t *testing.T) {
	h := newHarness(map[string][]string{
		"/":   {"/a", "/b"},
		"/a/": {"/a/x", "/a/y"},
	})
	p := h.startLoaded(t, multiRootMenu)

	require.Equal(t, "/a", h.complete(p, completion.Next))
	h.textField.Type("/a/")

	assert.Equal(t, "/a/x", h.complete(p, completion.Next))
	assert.Equal(t, []string{"/", "/a/"}, h.queries)
}

func TestAutoComplete_RootedPick(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/folder-1", "/folder-2"}})
	p := h.startLoaded(t, multiRootMenu)

	h.complete(p, completion.Next)
	h.complete(p, completion.Next)
	h.textField.Type("/folder-2/new-file.ts")
	h.textField.Accept()

	assert.Equal(t, []Pick{{Value: "/folder-2/new-file.ts"}}, h.picks)
	assert.Equal(t, []bool{true, false}, h.available)
}

func TestAutoComplete_Previous(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/folder-1", "/folder-2"}})
	p := h.startLoaded(t, multiRootMenu)

	assert.Equal(t, "/folder-2", h.complete(p, completion.Previous))
	assert.Equal(t, "/folder-1", h.complete(p, completion.Previous))
}

func TestAutoComplete_Error(t *testing.T) {
	h := newHarness(nil)
	h.sourceErr = errors.New("index failed")
	p := h.startLoaded(t, singleRootMenu)

	p.AutoComplete(context.Background(), completion.Next)

	require.Len(t, h.errs, 1)
	assert.Equal(t, FreeText, p.Mode())
	assert.False(t, p.Disposed())
}

func TestAutoComplete_Unavailable(t *testing.T) {
	h := newHarness(map[string][]string{"/": {"/docs"}})
	p := h.startLoaded(t, singleRootMenu)
	h.selector.Accept()

	p.AutoComplete(context.Background(), completion.Next)
	assert.Empty(t, h.queries, "no completion after a folder was accepted")

	p.Dismiss()
	p.AutoComplete(context.Background(), completion.Next)
	assert.Empty(t, h.queries)
}

func TestNewWithSelectedFolder(t *testing.T) {
	h := newHarness(nil)
	folder := menu.Folder("/src", "/ws/project/src", "")
	p := NewWithSelectedFolder(context.Background(), h.config(), folder)

	assert.Equal(t, FreeText, p.Mode())
	assert.Equal(t, "/src", h.textField.Prompt)
	assert.True(t, h.textField.Visible)
	assert.False(t, h.selector.Visible)
	assert.Equal(t, 0, h.scheduler.Pending())
	assert.Equal(t, []bool{true, false}, h.available)

	h.textField.Type("{a,b}.ts")
	h.textField.Accept()
	assert.Equal(t, []Pick{{Base: "/ws/project/src", Value: "{a,b}.ts"}}, h.picks)
}

func TestModeString(t *testing.T) {
	assert.Equal(t, "menu-selecting", MenuSelecting.String())
	assert.Equal(t, "dismissed", Dismissed.String())
	assert.True(t, Accepted.Terminal())
	assert.False(t, FreeText.Terminal())
}
