package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/bunchhieng/linkvault/internal/model"
	"github.com/charmbracelet/lipgloss"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")).
			Padding(0, 1)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	favoriteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	searchStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)
)

func (m appModel) View() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")

	switch m.mode {
	case modeSearch:
		b.WriteString(searchStyle.Width(m.width - 2).Render("/" + m.input))
		b.WriteString("\n")
	case modeTag:
		b.WriteString(searchStyle.Width(m.width - 2).Render("#" + m.input))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderList())
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	return b.String()
}

func (m appModel) renderHeader() string {
	f := m.store.Filters()
	header := fmt.Sprintf("linkvault  [sort: %s %s]  [%d links]", f.SortBy, f.SortOrder, len(m.links))
	if f.Query != "" {
		header += fmt.Sprintf("  [search: %s]", f.Query)
	}
	if len(f.SelectedTags) > 0 {
		header += fmt.Sprintf("  [tags: %s]", strings.Join(f.SelectedTags, ", "))
	}
	return headerStyle.Render(header)
}

func (m appModel) renderList() string {
	if m.mode == modeConfirmDelete {
		return m.renderDeleteConfirmation()
	}

	if len(m.links) == 0 {
		return "No links found. Add one with 'lv add <url>' or press 'c' to clear filters."
	}

	var b strings.Builder
	listHeight := m.height - 6

	// Scroll so the selection stays visible.
	start := 0
	if listHeight > 0 && m.selected >= listHeight {
		start = m.selected - listHeight + 1
	}

	for i := start; i < len(m.links); i++ {
		if listHeight > 0 && i-start >= listHeight {
			break
		}
		b.WriteString(m.renderLink(m.links[i], i == m.selected))
		b.WriteString("\n")
	}

	return b.String()
}

func (m appModel) renderLink(link *model.Link, selected bool) string {
	icon := dimStyle.Render("·")
	if link.IsFavorite {
		icon = favoriteStyle.Render("★")
	}

	title := truncate(link.Title, 60)
	domain := ""
	if link.Domain != "" {
		domain = " " + dimStyle.Render(link.Domain)
	}

	line := fmt.Sprintf("%s %s%s %s%s",
		icon,
		titleStyle.Render(title),
		domain,
		dimStyle.Render(formatTime(link.CreatedAt)),
		m.renderTags(link.Tags),
	)

	if selected {
		return selectedStyle.Render(line)
	}
	return " " + line
}

// renderTags draws each tag name in its stored colour.
func (m appModel) renderTags(names []string) string {
	if len(names) == 0 {
		return ""
	}
	chips := make([]string, 0, len(names))
	for _, name := range names {
		style := dimStyle
		if tag, ok := m.store.TagByName(name); ok {
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color))
		}
		chips = append(chips, style.Render("#"+name))
	}
	return " " + strings.Join(chips, " ")
}

func (m appModel) renderStatusBar() string {
	var parts []string

	if m.statusMsg != "" {
		parts = append(parts, m.statusMsg)
	} else if len(m.links) > 0 {
		parts = append(parts, fmt.Sprintf("%d/%d", m.selected+1, len(m.links)))
	} else {
		parts = append(parts, "0/0")
	}

	parts = append(parts, "[o]pen [f]av [J/K]move [r]emove [/]search [#]tag [s/S]ort [c]lear [q]uit")

	return statusBarStyle.Width(m.width).Render(strings.Join(parts, "  |  "))
}

func (m appModel) renderDeleteConfirmation() string {
	title := m.deleteLinkID
	if link, ok := m.store.Link(m.deleteLinkID); ok {
		title = truncate(link.Title, 50)
	}
	confirmText := fmt.Sprintf("Delete link: %s?\n\n[y]es / [n]o", title)
	return selectedStyle.Width(m.width-4).Padding(1, 2).Render(confirmText)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
