package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bunchhieng/linkvault/internal/linkstore"
	"github.com/bunchhieng/linkvault/internal/model"
	tea "github.com/charmbracelet/bubbletea"
)

type inputMode int

const (
	modeNormal inputMode = iota
	modeSearch
	modeTag
	modeConfirmDelete
)

type appModel struct {
	ctx          context.Context
	store        *linkstore.Store
	open         func(url string) error
	links        []*model.Link
	selected     int
	mode         inputMode
	input        string
	deleteLinkID string
	width        int
	height       int
	statusMsg    string
	statusSeq    int
}

type statusMsg struct {
	message string
}

// clearStatusMsg clears the status line if no newer status replaced it.
type clearStatusMsg struct {
	seq int
}

func initialModel(ctx context.Context, s *linkstore.Store, open func(string) error) appModel {
	m := appModel{
		ctx:    ctx,
		store:  s,
		open:   open,
		width:  80,
		height: 24,
	}
	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd {
	return tea.EnterAltScreen
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch m.mode {
		case modeConfirmDelete:
			return m.handleDeleteConfirmation(msg)
		case modeSearch:
			return m.handleSearchInput(msg)
		case modeTag:
			return m.handleTagInput(msg)
		}
		return m.handleKey(msg)

	case statusMsg:
		m.statusSeq++
		m.statusMsg = msg.message
		if msg.message == "" {
			return m, nil
		}
		seq := m.statusSeq
		return m, tea.Tick(3*time.Second, func(time.Time) tea.Msg {
			return clearStatusMsg{seq}
		})

	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit

	case "j", "down":
		if m.selected < len(m.links)-1 {
			m.selected++
		}

	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}

	case "g":
		m.selected = 0

	case "G":
		m.selected = max(len(m.links)-1, 0)

	case "o", "enter":
		return m, m.openLink()

	case "f":
		if link := m.current(); link != nil {
			m.store.ToggleFavorite(m.ctx, link.ID)
			m.refresh()
			return m, m.persistStatus("Toggled favorite")
		}

	case "J":
		cmd := m.moveDown()
		return m, cmd

	case "K":
		cmd := m.moveUp()
		return m, cmd

	case "r":
		if link := m.current(); link != nil {
			m.mode = modeConfirmDelete
			m.deleteLinkID = link.ID
		}

	case "/":
		m.mode = modeSearch
		m.input = m.store.Filters().Query

	case "#":
		m.mode = modeTag
		m.input = ""

	case "c", "esc":
		m.store.ClearFilters()
		m.refresh()

	case "s":
		m.store.SetSortBy(m.store.Filters().SortBy.Next())
		m.refresh()

	case "S":
		m.store.SetSortOrder(m.store.Filters().SortOrder.Flip())
		m.refresh()

	case "ctrl+l":
		m.refresh()

	case "?":
		return m, status("q=quit j/k=nav o=open f=fav J/K=move r=remove /=search #=tag s/S=sort c=clear")
	}
	return m, nil
}

func (m appModel) handleSearchInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input = ""
		m.store.SetSearchQuery("")

	case "enter":
		m.mode = modeNormal

	case "backspace":
		if len(m.input) > 0 {
			m.input = trimLastRune(m.input)
			m.store.SetSearchQuery(m.input)
		}

	default:
		if len(msg.Runes) == 0 {
			return m, nil
		}
		m.input += string(msg.Runes)
		m.store.SetSearchQuery(m.input)
	}
	m.refresh()
	return m, nil
}

func (m appModel) handleTagInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.input = ""
		return m, nil

	case "enter":
		m.mode = modeNormal
		name := strings.TrimSpace(m.input)
		m.input = ""
		if name == "" {
			return m, nil
		}
		m.store.ToggleTagSelection(name)
		m.refresh()
		return m, nil

	case "backspace":
		m.input = trimLastRune(m.input)
		return m, nil

	default:
		m.input += string(msg.Runes)
		return m, nil
	}
}

func (m appModel) handleDeleteConfirmation(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeNormal
		m.store.Delete(m.ctx, m.deleteLinkID)
		m.deleteLinkID = ""
		m.refresh()
		return m, m.persistStatus("Deleted link")

	case "n", "N", "esc":
		m.mode = modeNormal
		m.deleteLinkID = ""
	}
	return m, nil
}

// moveUp places the selected link before the one above it and switches to
// ascending custom order so the list reads in the new order.
func (m *appModel) moveUp() tea.Cmd {
	link := m.current()
	if link == nil || m.selected == 0 {
		return nil
	}
	m.store.Reorder(m.ctx, link.ID, m.links[m.selected-1].ID)
	m.store.SetSortOrder(model.SortAsc)
	m.refresh()
	m.selectID(link.ID)
	return m.persistStatus("Moved up")
}

func (m *appModel) moveDown() tea.Cmd {
	link := m.current()
	if link == nil || m.selected >= len(m.links)-1 {
		return nil
	}
	m.store.Reorder(m.ctx, m.links[m.selected+1].ID, link.ID)
	m.store.SetSortOrder(model.SortAsc)
	m.refresh()
	m.selectID(link.ID)
	return m.persistStatus("Moved down")
}

func (m appModel) openLink() tea.Cmd {
	link := m.current()
	if link == nil || m.open == nil {
		return nil
	}
	url := link.URL
	open := m.open
	return func() tea.Msg {
		if err := open(url); err != nil {
			return statusMsg{fmt.Sprintf("Error: %v", err)}
		}
		return statusMsg{fmt.Sprintf("Opened: %s", url)}
	}
}

// refresh recomputes the visible links and keeps the selection in range.
func (m *appModel) refresh() {
	m.links = m.store.View()
	if m.selected >= len(m.links) {
		m.selected = len(m.links) - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

func (m *appModel) selectID(id string) {
	for i, link := range m.links {
		if link.ID == id {
			m.selected = i
			return
		}
	}
}

func (m appModel) current() *model.Link {
	if m.selected < 0 || m.selected >= len(m.links) {
		return nil
	}
	return m.links[m.selected]
}

func (m appModel) persistStatus(ok string) tea.Cmd {
	if err := m.store.LastPersistError(); err != nil {
		return status(fmt.Sprintf("Not saved: %v", err))
	}
	return status(ok)
}

func status(message string) tea.Cmd {
	return func() tea.Msg {
		return statusMsg{message}
	}
}

func trimLastRune(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(r[:len(r)-1])
}

// Run starts the TUI application. open is used to launch links in a browser.
func Run(ctx context.Context, s *linkstore.Store, open func(url string) error) error {
	p := tea.NewProgram(initialModel(ctx, s, open), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
