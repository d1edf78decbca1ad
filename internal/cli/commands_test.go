package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bunchhieng/linkvault/internal/linkstore"
	"github.com/bunchhieng/linkvault/internal/model"
	"github.com/bunchhieng/linkvault/internal/storage"
	"go.uber.org/zap"
)

func setupCommands(t *testing.T) (*Commands, *linkstore.Store, *bytes.Buffer) {
	t.Helper()
	kv, err := storage.NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	s := linkstore.Open(context.Background(), storage.NewGateway(kv, zap.NewNop()))
	out := &bytes.Buffer{}
	return NewCommands(s, out), s, out
}

func TestAddCommand(t *testing.T) {
	c, s, out := setupCommands(t)
	ctx := context.Background()

	if err := c.Add(ctx, "example.com", "Example", "", "ref, docs"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	links := s.Links()
	if len(links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(links))
	}
	if links[0].URL != "https://example.com" {
		t.Errorf("Expected normalized URL, got %s", links[0].URL)
	}
	if strings.Join(links[0].Tags, ",") != "ref,docs" {
		t.Errorf("Expected tags ref,docs, got %v", links[0].Tags)
	}
	if !strings.Contains(out.String(), "Added") {
		t.Errorf("Expected confirmation, got %q", out.String())
	}
}

func TestAddCommandRejectsInvalidURL(t *testing.T) {
	c, s, _ := setupCommands(t)

	err := c.Add(context.Background(), "not a url", "", "", "")
	if !errors.Is(err, model.ErrInvalidURL) {
		t.Errorf("Expected ErrInvalidURL, got %v", err)
	}
	if len(s.Links()) != 0 {
		t.Error("Expected no link to be added")
	}
}

func TestEditCommand(t *testing.T) {
	c, s, _ := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "example.com", "Example", "note", "a")
	id := s.Links()[0].ID

	title := "Renamed"
	tags := "b,c"
	if err := c.Edit(ctx, id[:6], EditInput{Title: &title, Tags: &tags}); err != nil {
		t.Fatalf("Edit failed: %v", err)
	}

	link, _ := s.Link(id)
	if link.Title != "Renamed" || link.Description != "note" || link.URL != "https://example.com" {
		t.Errorf("Unexpected link after edit: %+v", link)
	}
	if strings.Join(link.Tags, ",") != "b,c" {
		t.Errorf("Expected tags b,c, got %v", link.Tags)
	}
}

func TestListCommand(t *testing.T) {
	c, _, out := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "go.dev", "Go", "", "lang")
	c.Add(ctx, "rust-lang.org", "Rust", "", "lang,systems")
	c.Add(ctx, "example.com", "Example", "", "")
	out.Reset()

	if err := c.List(ctx, ListOptions{Tags: []string{"lang", "systems"}}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "Rust") || strings.Contains(out.String(), "Go ") {
		t.Errorf("Expected only Rust in output, got:\n%s", out.String())
	}

	out.Reset()
	if err := c.List(ctx, ListOptions{Query: "nothing matches"}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "No links found.") {
		t.Errorf("Expected empty message, got %q", out.String())
	}

	out.Reset()
	if err := c.List(ctx, ListOptions{SortBy: model.SortByTitle, SortOrder: model.SortAsc, Limit: 1}); err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if !strings.Contains(out.String(), "Example") || strings.Contains(out.String(), "Rust") {
		t.Errorf("Expected only Example with limit 1, got:\n%s", out.String())
	}
}

func TestRemoveCommand(t *testing.T) {
	c, s, _ := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "a.example", "A", "", "")
	c.Add(ctx, "b.example", "B", "", "")
	links := s.Links()

	if err := c.Remove(ctx, links[0].ID, links[1].ID); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if len(s.Links()) != 0 {
		t.Errorf("Expected all links removed, got %d", len(s.Links()))
	}
}

func TestRemoveCommandNotFound(t *testing.T) {
	c, s, _ := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "a.example", "A", "", "")
	id := s.Links()[0].ID

	typo := "0" + id[1:10] // "0" is outside the base32 alphabet
	err := c.Remove(ctx, typo)
	if err == nil {
		t.Fatal("Expected error for unknown id")
	}
	if !strings.Contains(err.Error(), "did you mean") {
		t.Errorf("Expected suggestion in %q", err.Error())
	}

	if err := c.Remove(ctx, "bad id!"); err == nil {
		t.Error("Expected error for invalid id format")
	}
	if len(s.Links()) != 1 {
		t.Error("Expected link to remain")
	}
}

func TestFavoriteAndMoveCommands(t *testing.T) {
	c, s, _ := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "a.example", "A", "", "")
	c.Add(ctx, "b.example", "B", "", "")
	c.Add(ctx, "c.example", "C", "", "")
	links := s.Links() // C, B, A

	if err := c.Favorite(ctx, links[2].ID); err != nil {
		t.Fatalf("Favorite failed: %v", err)
	}
	if a, _ := s.Link(links[2].ID); !a.IsFavorite {
		t.Error("Expected A to be a favorite")
	}

	if err := c.Move(ctx, links[2].ID, links[0].ID); err != nil {
		t.Fatalf("Move failed: %v", err)
	}
	got := s.Links()
	if got[0].Title != "A" || got[1].Title != "C" || got[2].Title != "B" {
		t.Errorf("Expected order A,C,B, got %s,%s,%s", got[0].Title, got[1].Title, got[2].Title)
	}
	if s.Filters().SortBy != model.SortByCustom {
		t.Errorf("Expected custom sort after move, got %s", s.Filters().SortBy)
	}

	if err := c.Move(ctx, links[0].ID, links[0].ID); err == nil {
		t.Error("Expected error moving a link before itself")
	}
}

func TestTagsCommands(t *testing.T) {
	c, s, out := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "a.example", "A", "", "go,web")
	c.Add(ctx, "b.example", "B", "", "go")
	out.Reset()

	if err := c.Tags(ctx); err != nil {
		t.Fatalf("Tags failed: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.Contains(lines[1], "go") || !strings.Contains(lines[1], "2") {
		t.Errorf("Unexpected tags output:\n%s", out.String())
	}

	if err := c.RemoveTag(ctx, "go"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	for _, link := range s.Links() {
		for _, tag := range link.Tags {
			if tag == "go" {
				t.Errorf("Expected go removed from %s", link.Title)
			}
		}
	}

	if err := c.RemoveTag(ctx, "missing"); !errors.Is(err, model.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestExportImportCommands(t *testing.T) {
	c, _, _ := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "a.example", "A", "", "x")
	c.Add(ctx, "b.example", "B", "", "y")

	file := filepath.Join(t.TempDir(), "backup.json")
	if err := c.ExportFile(file); err != nil {
		t.Fatalf("ExportFile failed: %v", err)
	}

	c2, s2, out2 := setupCommands(t)
	if err := c2.Import(ctx, file); err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if len(s2.Links()) != 2 || len(s2.Tags()) != 2 {
		t.Errorf("Expected 2 links and 2 tags, got %d and %d", len(s2.Links()), len(s2.Tags()))
	}
	if !strings.Contains(out2.String(), "link(s)") {
		t.Errorf("Expected import summary, got %q", out2.String())
	}

	bad := filepath.Join(t.TempDir(), "bad.json")
	os.WriteFile(bad, []byte("not json"), 0644)
	if err := c2.Import(ctx, bad); !errors.Is(err, model.ErrMalformedImport) {
		t.Errorf("Expected ErrMalformedImport, got %v", err)
	}
	if len(s2.Links()) != 2 {
		t.Error("Expected links unchanged after failed import")
	}
}

func TestExportToWriter(t *testing.T) {
	c, _, _ := setupCommands(t)
	var buf bytes.Buffer

	if err := c.Export(&buf); err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	if buf.String() != "{\n  \"links\": [],\n  \"tags\": []\n}\n" {
		t.Errorf("Unexpected empty export: %q", buf.String())
	}
}

func TestResetCommand(t *testing.T) {
	c, s, _ := setupCommands(t)
	ctx := context.Background()
	c.Add(ctx, "a.example", "A", "", "x")

	if err := c.Reset(ctx, false); err == nil {
		t.Error("Expected reset without confirmation to fail")
	}
	if len(s.Links()) != 1 {
		t.Error("Expected data kept without confirmation")
	}

	if err := c.Reset(ctx, true); err != nil {
		t.Fatalf("Reset failed: %v", err)
	}
	if len(s.Links()) != 0 || len(s.Tags()) != 0 {
		t.Error("Expected all data removed")
	}
}

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "abc", 3},
		{"abc", "abc", 0},
		{"abc", "abd", 1},
		{"kitten", "sitting", 3},
	}
	for _, tt := range tests {
		if got := levenshteinDistance(tt.a, tt.b); got != tt.want {
			t.Errorf("levenshteinDistance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
	}
}
