package cli

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/bunchhieng/linkvault/internal/model"
	"github.com/charmbracelet/lipgloss"
)

const (
	shortIDLen  = 8
	maxURLLen   = 50
	maxTitleLen = 40
	maxTagsLen  = 30
	ellipsisLen = 3
)

func printLinksTable(w io.Writer, links []*model.Link) error {
	// Column widths start at header width and grow with content, up to limits
	colIDLen := len("ID")
	colTitleLen := len("TITLE")
	colURLLen := len("URL")
	colTagsLen := len("TAGS")
	colCreatedLen := len("CREATED")

	for _, link := range links {
		colIDLen = max(colIDLen, runeLen(shortID(link.ID)))
		colTitleLen = max(colTitleLen, truncateLen(runeLen(displayTitle(link)), maxTitleLen))
		colURLLen = max(colURLLen, truncateLen(runeLen(link.URL), maxURLLen))
		colTagsLen = max(colTagsLen, truncateLen(runeLen(joinTags(link.Tags)), maxTagsLen))
		colCreatedLen = max(colCreatedLen, runeLen(formatTime(link.CreatedAt)))
	}

	// one space of padding either side
	colIDLen += 2
	colTitleLen += 2
	colURLLen += 2
	colTagsLen += 2
	colCreatedLen += 2

	totalWidth := colIDLen + colTitleLen + colURLLen + colTagsLen + colCreatedLen + 4

	header := fmt.Sprintf("%s│%s %s%-*s%s │ %s%-*s%s │ %s%-*s%s │ %s%-*s%s │ %s%-*s%s %s│%s",
		colorDim, colorReset,
		colorBold, colIDLen-2, "ID", colorReset,
		colorBold, colTitleLen-2, "TITLE", colorReset,
		colorBold, colURLLen-2, "URL", colorReset,
		colorBold, colTagsLen-2, "TAGS", colorReset,
		colorBold, colCreatedLen-2, "CREATED", colorReset,
		colorDim, colorReset)

	separator := fmt.Sprintf("%s├%s┼%s┼%s┼%s┼%s┤%s",
		colorDim,
		strings.Repeat("─", colIDLen),
		strings.Repeat("─", colTitleLen),
		strings.Repeat("─", colURLLen),
		strings.Repeat("─", colTagsLen),
		strings.Repeat("─", colCreatedLen),
		colorReset)

	topBorder := fmt.Sprintf("%s┌%s┐%s", colorDim, strings.Repeat("─", totalWidth), colorReset)
	bottomBorder := fmt.Sprintf("%s└%s┘%s", colorDim, strings.Repeat("─", totalWidth), colorReset)

	fmt.Fprintln(w, topBorder)
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, separator)

	for _, link := range links {
		title := truncateString(displayTitle(link), colTitleLen-2)
		url := truncateString(link.URL, colURLLen-2)
		tags := truncateString(joinTags(link.Tags), colTagsLen-2)
		created := formatTime(link.CreatedAt)

		row := fmt.Sprintf("%s│%s %s%-*s%s │ %-*s │ %s%-*s%s │ %s%-*s%s │ %s%-*s%s %s│%s",
			colorDim, colorReset,
			colorBold+colorCyan, colIDLen-2, shortID(link.ID), colorReset,
			colTitleLen-2, title,
			colorCyan, colURLLen-2, url, colorReset,
			colorYellow, colTagsLen-2, tags, colorReset,
			colorDim, colCreatedLen-2, created, colorReset,
			colorDim, colorReset)
		fmt.Fprintln(w, row)
	}

	fmt.Fprintln(w, bottomBorder)
	return nil
}

func printTagsTable(w io.Writer, tags []model.TagCount) error {
	nameLen := len("TAG")
	for _, tag := range tags {
		nameLen = max(nameLen, runeLen(tag.Name))
	}

	fmt.Fprintf(w, "%s  %-*s  %5s  %s%s\n", colorBold, nameLen, "TAG", "LINKS", "COLOR", colorReset)
	for _, tag := range tags {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(tag.Color)).Render("●")
		fmt.Fprintf(w, "%s %-*s  %5d  %s%s%s\n", swatch, nameLen+1, tag.Name, tag.Count, colorDim, tag.Color, colorReset)
	}
	return nil
}

// displayTitle is the title as shown in the table, starred for favorites.
func displayTitle(link *model.Link) string {
	if link.IsFavorite {
		return "★ " + link.Title
	}
	return link.Title
}

// runeLen counts characters, which is what fmt's width padding counts.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

func shortID(id string) string {
	if len(id) <= shortIDLen {
		return id
	}
	return id[:shortIDLen]
}

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func truncateLen(n, max int) int {
	if n > max {
		return max
	}
	return n
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-ellipsisLen]) + "..."
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
