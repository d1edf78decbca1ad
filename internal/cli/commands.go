package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bunchhieng/linkvault/internal/linkstore"
	"github.com/bunchhieng/linkvault/internal/model"
)

const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

// Commands handles all CLI command execution.
type Commands struct {
	store *linkstore.Store
	out   io.Writer
}

// NewCommands creates a new Commands instance writing to out.
func NewCommands(s *linkstore.Store, out io.Writer) *Commands {
	if out == nil {
		out = os.Stdout
	}
	return &Commands{store: s, out: out}
}

// EditInput holds the fields to change on a link; nil fields keep their value.
type EditInput struct {
	URL         *string
	Title       *string
	Description *string
	Tags        *string
}

// ListOptions specifies the filters applied by List.
type ListOptions struct {
	Query     string
	Tags      []string
	SortBy    model.SortBy
	SortOrder model.SortOrder
	Limit     int
}

// Add adds a new link.
func (c *Commands) Add(ctx context.Context, url, title, description, tags string) error {
	form := model.LinkForm{
		Title:       strings.TrimSpace(title),
		URL:         url,
		Tags:        model.ParseTags(tags),
		Description: description,
	}
	if err := form.Validate(); err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}

	created := c.store.Add(ctx, form)
	fmt.Fprintf(c.out, "%sAdded%s link %s%s%s: %s%s%s\n", colorGreen, colorReset, colorBold, created.ID, colorReset, colorCyan, created.URL, colorReset)
	return c.persisted()
}

// Edit changes the given fields of a link.
func (c *Commands) Edit(ctx context.Context, id string, in EditInput) error {
	id, err := c.resolve(id)
	if err != nil {
		return err
	}
	link, _ := c.store.Link(id)

	form := model.LinkForm{
		Title:       link.Title,
		URL:         link.URL,
		Tags:        link.Tags,
		Description: link.Description,
	}
	if in.URL != nil {
		form.URL = *in.URL
	}
	if in.Title != nil {
		form.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		form.Description = *in.Description
	}
	if in.Tags != nil {
		form.Tags = model.ParseTags(*in.Tags)
	}
	if err := form.Validate(); err != nil {
		return fmt.Errorf("invalid link: %w", err)
	}

	c.store.Update(ctx, id, form)
	fmt.Fprintf(c.out, "%sUpdated%s link %s%s%s.\n", colorYellow, colorReset, colorBold, id, colorReset)
	return c.persisted()
}

// List prints the links matching opts.
func (c *Commands) List(ctx context.Context, opts ListOptions) error {
	c.store.ClearFilters()
	c.store.SetSearchQuery(opts.Query)
	for _, tag := range opts.Tags {
		if !containsString(c.store.Filters().SelectedTags, tag) {
			c.store.ToggleTagSelection(tag)
		}
	}
	if opts.SortBy != "" {
		c.store.SetSortBy(opts.SortBy)
	}
	if opts.SortOrder != "" {
		c.store.SetSortOrder(opts.SortOrder)
	}

	links := c.store.View()
	if opts.Limit > 0 && len(links) > opts.Limit {
		links = links[:opts.Limit]
	}

	if len(links) == 0 {
		fmt.Fprintln(c.out, "No links found.")
		return nil
	}

	return printLinksTable(c.out, links)
}

// Remove deletes one or more links.
func (c *Commands) Remove(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return fmt.Errorf("at least one ID required")
	}

	var deleted []string
	var failed []string

	for _, raw := range ids {
		id, err := c.resolve(raw)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%s (%v)", raw, err))
			continue
		}
		c.store.Delete(ctx, id)
		deleted = append(deleted, id)
	}

	if len(deleted) > 0 {
		if len(deleted) == 1 {
			fmt.Fprintf(c.out, "%sDeleted%s link %s%s%s.\n", colorRed, colorReset, colorBold, deleted[0], colorReset)
		} else {
			ids := strings.Join(deleted, ", ")
			fmt.Fprintf(c.out, "%sDeleted%s %d link(s): %s%s%s\n", colorRed, colorReset, len(deleted), colorBold, ids, colorReset)
		}
	}

	if len(failed) > 0 {
		return fmt.Errorf("failed to delete: %s", strings.Join(failed, ", "))
	}

	return c.persisted()
}

// Favorite toggles the favorite flag of a link.
func (c *Commands) Favorite(ctx context.Context, id string) error {
	id, err := c.resolve(id)
	if err != nil {
		return err
	}
	c.store.ToggleFavorite(ctx, id)

	link, _ := c.store.Link(id)
	if link.IsFavorite {
		fmt.Fprintf(c.out, "%sStarred%s link %s%s%s.\n", colorYellow, colorReset, colorBold, id, colorReset)
	} else {
		fmt.Fprintf(c.out, "%sUnstarred%s link %s%s%s.\n", colorDim, colorReset, colorBold, id, colorReset)
	}
	return c.persisted()
}

// Move places a link immediately before another one in the custom order.
func (c *Commands) Move(ctx context.Context, id, beforeID string) error {
	id, err := c.resolve(id)
	if err != nil {
		return err
	}
	beforeID, err = c.resolve(beforeID)
	if err != nil {
		return err
	}
	if id == beforeID {
		return fmt.Errorf("cannot move a link before itself")
	}

	c.store.Reorder(ctx, id, beforeID)
	fmt.Fprintf(c.out, "%sMoved%s link %s%s%s before %s%s%s.\n", colorGreen, colorReset, colorBold, id, colorReset, colorBold, beforeID, colorReset)
	return c.persisted()
}

// Tags prints every tag with the number of links using it.
func (c *Commands) Tags(ctx context.Context) error {
	tags := c.store.TagsWithCounts()
	if len(tags) == 0 {
		fmt.Fprintln(c.out, "No tags found.")
		return nil
	}
	return printTagsTable(c.out, tags)
}

// RemoveTag deletes a tag, given by name or id, from the tag list and from every link.
func (c *Commands) RemoveTag(ctx context.Context, nameOrID string) error {
	tag, ok := c.store.TagByName(nameOrID)
	if !ok {
		for _, t := range c.store.Tags() {
			if t.ID == nameOrID {
				tag, ok = t, true
				break
			}
		}
	}
	if !ok {
		return fmt.Errorf("tag %s%s%s: %w", colorBold, nameOrID, colorReset, model.ErrNotFound)
	}

	c.store.DeleteTag(ctx, tag.ID)
	fmt.Fprintf(c.out, "%sDeleted%s tag %s%s%s.\n", colorRed, colorReset, colorBold, tag.Name, colorReset)
	return c.persisted()
}

// Open opens a link in the default browser.
func (c *Commands) Open(ctx context.Context, id string) error {
	id, err := c.resolve(id)
	if err != nil {
		return err
	}
	link, _ := c.store.Link(id)

	if err := OpenBrowser(link.URL); err != nil {
		return err
	}

	fmt.Fprintf(c.out, "%sOpened:%s %s%s%s\n", colorGreen, colorReset, colorCyan, link.URL, colorReset)
	return nil
}

// Export writes all links and tags as JSON.
func (c *Commands) Export(w io.Writer) error {
	text, err := c.store.Export()
	if err != nil {
		return fmt.Errorf("export links: %w", err)
	}
	if _, err := io.WriteString(w, text+"\n"); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// ExportFile writes the export to filename.
func (c *Commands) ExportFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	if err := c.Export(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	fmt.Fprintf(c.out, "%sExported%s to %s%s%s.\n", colorGreen, colorReset, colorBold, filename, colorReset)
	return nil
}

// Import replaces all links and tags with the contents of a JSON export file.
func (c *Commands) Import(ctx context.Context, filename string) error {
	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}

	result, err := c.store.Import(ctx, string(data))
	if err != nil {
		return fmt.Errorf("import %s: %w", filename, err)
	}

	fmt.Fprintf(c.out, "%sImported%s %s%d%s link(s) and %s%d%s tag(s).\n",
		colorGreen, colorReset, colorBold, result.Links, colorReset, colorBold, result.Tags, colorReset)
	return c.persisted()
}

// Reset deletes every link and tag. confirmed must be true.
func (c *Commands) Reset(ctx context.Context, confirmed bool) error {
	if !confirmed {
		return fmt.Errorf("refusing to delete all data without --yes")
	}
	c.store.Reset(ctx)
	fmt.Fprintf(c.out, "%sDeleted%s all links and tags.\n", colorRed, colorReset)
	return c.persisted()
}

// resolve turns a full id or unique prefix into a link id.
func (c *Commands) resolve(raw string) (string, error) {
	if _, err := ParseID(raw); err != nil {
		return "", err
	}
	if id, ok := c.store.ResolveID(raw); ok {
		return id, nil
	}
	return "", c.notFound(raw)
}

func (c *Commands) notFound(id string) error {
	msg := fmt.Sprintf("link %s%s%s", colorBold, id, colorReset)
	if suggestion := c.suggestID(id); suggestion != "" {
		msg += fmt.Sprintf(" (%sdid you mean%s %s%s%s?)", colorYellow, colorReset, colorBold, suggestion, colorReset)
	}
	return fmt.Errorf("%s: %w", msg, model.ErrNotFound)
}

func (c *Commands) persisted() error {
	if err := c.store.LastPersistError(); err != nil {
		return fmt.Errorf("change was not saved: %w", err)
	}
	return nil
}

// suggestID suggests a similar ID if the given ID is not found.
func (c *Commands) suggestID(id string) string {
	bestMatch := ""
	minDistance := len(id) + 1

	for _, link := range c.store.Links() {
		candidate := link.ID
		if len(candidate) > len(id) {
			candidate = candidate[:len(id)]
		}
		distance := levenshteinDistance(id, candidate)
		if distance < minDistance && distance <= 3 {
			minDistance = distance
			bestMatch = link.ID
		}
	}

	return bestMatch
}

func levenshteinDistance(s1, s2 string) int {
	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	matrix := make([][]int, len(s1)+1)
	for i := range matrix {
		matrix[i] = make([]int, len(s2)+1)
		matrix[i][0] = i
	}
	for j := 0; j <= len(s2); j++ {
		matrix[0][j] = j
	}

	for i := 1; i <= len(s1); i++ {
		for j := 1; j <= len(s2); j++ {
			cost := 0
			if s1[i-1] != s2[j-1] {
				cost = 1
			}
			matrix[i][j] = min(
				matrix[i-1][j]+1,      // deletion
				matrix[i][j-1]+1,      // insertion
				matrix[i-1][j-1]+cost, // substitution
			)
		}
	}

	return matrix[len(s1)][len(s2)]
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// OpenBrowser opens url with the platform's default handler.
func OpenBrowser(url string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", url)
	default:
		return fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	return nil
}

// ParseID validates an ID string format.
func ParseID(s string) (string, error) {
	if !model.ValidateID(s) {
		return "", fmt.Errorf("%w: %s", model.ErrInvalidID, s)
	}
	return s, nil
}
