package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/renvik/clipvault/internal/store"
)

func newTestStore(t *testing.T, texts ...string) *store.Store {
	t.Helper()
	st := store.New(nil)
	for _, s := range texts {
		st.IngestText(s)
	}
	return st
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(Model)
	}
	return m
}

func TestCursorMovement(t *testing.T) {
	st := newTestStore(t, "one", "two", "three")
	m := NewModel(st, nil)

	if m.cursor != 0 {
		t.Fatalf("initial cursor = %d, want 0", m.cursor)
	}

	m = press(t, m, "j", "j")
	if m.cursor != 2 {
		t.Errorf("cursor after two downs = %d, want 2", m.cursor)
	}

	// Does not run off the end.
	m = press(t, m, "j")
	if m.cursor != 2 {
		t.Errorf("cursor past end = %d, want 2", m.cursor)
	}

	m = press(t, m, "k", "k", "k")
	if m.cursor != 0 {
		t.Errorf("cursor past start = %d, want 0", m.cursor)
	}
}

func TestTabCycling(t *testing.T) {
	st := newTestStore(t, "hello")
	m := NewModel(st, nil)

	m = press(t, m, "tab")
	if m.tab != TabImages {
		t.Errorf("tab after one cycle = %v, want TabImages", m.tab)
	}

	m = press(t, m, "tab", "tab", "tab")
	if m.tab != TabText {
		t.Errorf("tab after full cycle = %v, want TabText", m.tab)
	}
}

func TestSearchFiltersItems(t *testing.T) {
	st := newTestStore(t, "alpha", "beta", "alphabet")
	m := NewModel(st, nil)

	m = press(t, m, "/")
	if m.mode != ModeSearch {
		t.Fatal("expected search mode after /")
	}

	m = press(t, m, "a", "l", "p", "h")
	if len(m.items) != 2 {
		t.Fatalf("filtered items = %d, want 2", len(m.items))
	}

	// Esc clears the filter.
	m = press(t, m, "esc")
	if m.mode != ModeNormal {
		t.Error("expected normal mode after esc")
	}
	if len(m.items) != 3 {
		t.Errorf("items after clearing search = %d, want 3", len(m.items))
	}
}

func TestSearchBackspace(t *testing.T) {
	st := newTestStore(t, "alpha", "beta")
	m := NewModel(st, nil)

	m = press(t, m, "/", "x", "y")
	if len(m.items) != 0 {
		t.Fatalf("items matching xy = %d, want 0", len(m.items))
	}

	m = press(t, m, "backspace", "backspace")
	if len(m.items) != 2 {
		t.Errorf("items after erasing query = %d, want 2", len(m.items))
	}
}

func TestStarToggleFromBrowser(t *testing.T) {
	st := newTestStore(t, "keep me")
	m := NewModel(st, nil)

	m = press(t, m, "s")
	if !st.Texts()[0].Starred {
		t.Error("item not starred after s")
	}
	if !m.items[0].Starred {
		t.Error("browser view not refreshed after starring")
	}

	m = press(t, m, "s")
	if st.Texts()[0].Starred {
		t.Error("item still starred after second s")
	}
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	st := newTestStore(t, "doomed", "survivor")
	m := NewModel(st, nil)

	m = press(t, m, "d")
	if m.mode != ModeConfirmDelete {
		t.Fatal("expected confirm mode after d")
	}

	// Anything but y cancels.
	m = press(t, m, "n")
	if m.mode != ModeNormal {
		t.Error("expected normal mode after cancel")
	}
	if len(st.Texts()) != 2 {
		t.Errorf("items after cancelled delete = %d, want 2", len(st.Texts()))
	}

	m = press(t, m, "d", "y")
	if len(st.Texts()) != 1 {
		t.Fatalf("items after confirmed delete = %d, want 1", len(st.Texts()))
	}
	if st.Texts()[0].Content != "doomed" {
		t.Errorf("wrong item deleted, remaining = %q", st.Texts()[0].Content)
	}
}

func TestImmediateDelete(t *testing.T) {
	st := newTestStore(t, "doomed", "survivor")
	m := NewModel(st, nil)

	m = press(t, m, "x")
	if m.mode != ModeNormal {
		t.Error("x should not enter confirm mode")
	}
	if len(st.Texts()) != 1 {
		t.Fatalf("items after x = %d, want 1", len(st.Texts()))
	}
	if st.Texts()[0].Content != "doomed" {
		t.Errorf("wrong item deleted, remaining = %q", st.Texts()[0].Content)
	}
}

func TestEnterInvokesCopy(t *testing.T) {
	st := newTestStore(t, "copy me")
	var copied []store.ClipItem
	m := NewModel(st, func(item store.ClipItem) error {
		copied = append(copied, item)
		return nil
	})

	m = press(t, m, "enter")
	if len(copied) != 1 {
		t.Fatalf("copy calls = %d, want 1", len(copied))
	}
	if copied[0].Content != "copy me" {
		t.Errorf("copied content = %q", copied[0].Content)
	}
	if m.flash == "" {
		t.Error("expected a flash message after copy")
	}
}

func TestStoreChangedRefreshesList(t *testing.T) {
	st := newTestStore(t, "first")
	m := NewModel(st, nil)

	st.IngestText("second")
	next, _ := m.Update(StoreChangedMsg{})
	m = next.(Model)

	if len(m.items) != 2 {
		t.Fatalf("items after store change = %d, want 2", len(m.items))
	}
	if m.items[0].Content != "second" {
		t.Errorf("newest item = %q, want %q", m.items[0].Content, "second")
	}
}

func TestViewRendersWithoutItems(t *testing.T) {
	st := store.New(nil)
	m := NewModel(st, nil)

	view := m.View()
	if !strings.Contains(view, "Nothing here yet") {
		t.Error("empty view missing placeholder")
	}
}

func TestGroupsTabShowsMembers(t *testing.T) {
	st := newTestStore(t, "grouped")
	group := st.CreateGroup("Work", "", "")
	if err := st.AddToGroup(group.ID, st.Texts()[0].Hash); err != nil {
		t.Fatalf("AddToGroup: %v", err)
	}

	m := NewModel(st, nil)
	m = press(t, m, "tab", "tab", "tab") // Text -> Images -> Starred -> Groups

	if m.tab != TabGroups {
		t.Fatalf("tab = %v, want TabGroups", m.tab)
	}
	view := m.View()
	if !strings.Contains(view, "Work") {
		t.Error("groups view missing group name")
	}
	if !strings.Contains(view, "grouped") {
		t.Error("expanded group missing member preview")
	}
}
