// Package tui implements the interactive history browser. It consumes the
// content store only through its query and mutation methods and re-renders
// whenever the store reports a change.
package tui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/renvik/clipvault/internal/store"
)

// Tab identifies the visible collection.
type Tab int

const (
	TabText Tab = iota
	TabImages
	TabStarred
	TabGroups
)

var tabNames = []string{"Text", "Images", "Starred", "Groups"}

// Mode is the modal state of the browser.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeConfirmDelete
)

// StoreChangedMsg is sent by the embedding process when the store mutates
// (e.g. the watcher ingested a new capture).
type StoreChangedMsg struct{}

type flashExpiredMsg struct{}

// CopyFunc writes an item back to the system clipboard. The embedding
// process wires self-write suppression into it.
type CopyFunc func(store.ClipItem) error

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(lipgloss.Color("245"))
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).Foreground(lipgloss.Color("213"))
	cursorStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("213"))
	starStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	dimStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	previewStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	flashStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("114"))
	dangerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203"))
)

// Model is the bubbletea model for the browser.
type Model struct {
	store  *store.Store
	copyFn CopyFunc

	tab    Tab
	mode   Mode
	cursor int
	query  string

	items  []store.ClipItem
	groups []store.Group

	width  int
	height int
	flash  string
}

// NewModel creates the browser model over the given store.
func NewModel(st *store.Store, copyFn CopyFunc) Model {
	m := Model{
		store:  st,
		copyFn: copyFn,
		width:  100,
		height: 30,
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case StoreChangedMsg:
		m.refresh()
		return m, nil

	case flashExpiredMsg:
		m.flash = ""
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if key == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeSearch:
		return m.handleSearchKey(msg)
	case ModeConfirmDelete:
		return m.handleConfirmKey(key)
	}

	switch key {
	case "q", "esc":
		return m, tea.Quit

	case "tab", "right", "l":
		m.tab = (m.tab + 1) % Tab(len(tabNames))
		m.cursor = 0
		m.refresh()
		return m, nil

	case "shift+tab", "left", "h":
		m.tab = (m.tab + Tab(len(tabNames)) - 1) % Tab(len(tabNames))
		m.cursor = 0
		m.refresh()
		return m, nil

	case "down", "j":
		if m.cursor < m.listLen()-1 {
			m.cursor++
		}
		return m, nil

	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil

	case "g":
		m.cursor = 0
		return m, nil

	case "G":
		if n := m.listLen(); n > 0 {
			m.cursor = n - 1
		}
		return m, nil

	case "/":
		if m.tab == TabText {
			m.mode = ModeSearch
		}
		return m, nil

	case "s":
		if item, ok := m.selectedItem(); ok {
			m.store.ToggleStar(item.Hash)
			m.refresh()
		}
		return m, nil

	case "enter":
		return m.copySelected()

	case "d":
		if _, ok := m.selectedItem(); ok {
			m.mode = ModeConfirmDelete
		}
		return m, nil

	case "x":
		// Immediate delete, no confirmation.
		if item, ok := m.selectedItem(); ok {
			m.store.DeleteMany([]string{item.Hash})
			m.refresh()
			if m.cursor >= m.listLen() && m.cursor > 0 {
				m.cursor--
			}
			return m.withFlash("Deleted")
		}
		return m, nil
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.mode = ModeNormal
	case "esc":
		m.mode = ModeNormal
		m.query = ""
		m.refresh()
	case "backspace":
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			m.cursor = 0
			m.refresh()
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.cursor = 0
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "y", "enter":
		if item, ok := m.selectedItem(); ok {
			m.store.DeleteMany([]string{item.Hash})
			m.refresh()
			if m.cursor >= m.listLen() && m.cursor > 0 {
				m.cursor--
			}
		}
		m.mode = ModeNormal
		return m.withFlash("Deleted")
	default:
		m.mode = ModeNormal
		return m, nil
	}
}

func (m Model) copySelected() (tea.Model, tea.Cmd) {
	item, ok := m.selectedItem()
	if !ok || m.copyFn == nil {
		return m, nil
	}
	if err := m.copyFn(item); err != nil {
		return m.withFlash("Copy failed: " + err.Error())
	}
	return m.withFlash("Copied to clipboard")
}

func (m Model) withFlash(text string) (tea.Model, tea.Cmd) {
	m.flash = text
	return m, tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return flashExpiredMsg{}
	})
}

// refresh re-reads the visible collection from the store and clamps the
// cursor.
func (m *Model) refresh() {
	switch m.tab {
	case TabText:
		m.items = m.store.SearchText(m.query)
	case TabImages:
		m.items = m.store.Images()
	case TabStarred:
		m.items = m.store.Starred()
	case TabGroups:
		m.groups = m.store.Groups()
		m.items = nil
	}
	if n := m.listLen(); m.cursor >= n {
		if n == 0 {
			m.cursor = 0
		} else {
			m.cursor = n - 1
		}
	}
}

func (m Model) listLen() int {
	if m.tab == TabGroups {
		return len(m.groups)
	}
	return len(m.items)
}

func (m Model) selectedItem() (store.ClipItem, bool) {
	if m.tab == TabGroups || m.cursor >= len(m.items) {
		return store.ClipItem{}, false
	}
	return m.items[m.cursor], true
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	if m.tab == TabGroups {
		b.WriteString(m.renderGroups())
	} else {
		b.WriteString(m.renderItems())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	return b.String()
}

func (m Model) renderTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		if Tab(i) == m.tab {
			parts[i] = activeTabStyle.Render("[" + name + "]")
		} else {
			parts[i] = tabStyle.Render(name)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) renderItems() string {
	if len(m.items) == 0 {
		if m.tab == TabText && m.query != "" {
			return dimStyle.Render("  No items match your search")
		}
		return dimStyle.Render("  Nothing here yet. Copy something!")
	}

	listWidth := m.width/2 - 2
	if listWidth < 24 {
		listWidth = 24
	}

	var rows []string
	for i, item := range m.items {
		line := itemLine(item, listWidth)
		if i == m.cursor {
			line = cursorStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
	}

	list := strings.Join(rows, "\n")
	preview := m.renderPreview()
	return lipgloss.JoinHorizontal(lipgloss.Top, list, "  ", preview)
}

func itemLine(item store.ClipItem, width int) string {
	star := "  "
	if item.Starred {
		star = starStyle.Render("★ ")
	}
	label := item.Preview
	if item.Kind == store.KindText {
		label = strings.ReplaceAll(item.Preview, "\n", " ")
	}
	line := star + label
	if len([]rune(line)) > width {
		line = string([]rune(line)[:width-1]) + "…"
	}
	return line
}

func (m Model) renderPreview() string {
	item, ok := m.selectedItem()
	if !ok {
		return ""
	}

	var body string
	switch item.Kind {
	case store.KindText:
		body = item.Content
		stats := item.TextStats
		if stats != nil {
			body += dimStyle.Render(fmt.Sprintf(
				"\n\n%d chars · %d words · %d lines · %d bytes",
				stats.CharCount, stats.WordCount, stats.LineCount, stats.SizeBytes))
		}
	case store.KindImage:
		stats := item.ImageStats
		if stats != nil {
			body = fmt.Sprintf("%s image\noriginal %d×%d\nstored %d×%d",
				stats.Format,
				stats.OriginalWidth, stats.OriginalHeight,
				stats.StoredWidth, stats.StoredHeight)
		} else {
			body = item.Preview
		}
	}
	body += dimStyle.Render("\n\n" + item.Timestamp.Format("2006-01-02 15:04:05") + "\n" + item.Hash)

	width := m.width/2 - 4
	if width < 20 {
		width = 20
	}
	return previewStyle.Width(width).Render(body)
}

func (m Model) renderGroups() string {
	if len(m.groups) == 0 {
		return dimStyle.Render("  No groups yet. Create one with 'clipvault group create'")
	}

	var rows []string
	for i, g := range m.groups {
		line := fmt.Sprintf("%s %s (%d items)", g.Icon, g.Name, len(g.MemberHashes))
		if i == m.cursor {
			line = cursorStyle.Render("› " + line)
		} else {
			line = "  " + line
		}
		rows = append(rows, line)
		if g.Expanded {
			for _, member := range m.store.GroupItems(g.ID) {
				rows = append(rows, dimStyle.Render("      "+itemLine(member, m.width-8)))
			}
		}
	}
	return strings.Join(rows, "\n")
}

func (m Model) renderStatus() string {
	switch {
	case m.mode == ModeSearch:
		return "/" + m.query + "▌"
	case m.mode == ModeConfirmDelete:
		return dangerStyle.Render("Delete selected item? (y/n)")
	case m.flash != "":
		return flashStyle.Render(m.flash)
	}

	help := "↑/↓ move · tab switch · enter copy · s star · d delete · q quit"
	if m.tab == TabText {
		help = "/ search · " + help
	}
	return dimStyle.Render(help)
}
