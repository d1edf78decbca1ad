package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func setupTestDB(t *testing.T) *SQLiteKV {
	kv, err := NewSQLiteKV(":memory:")
	if err != nil {
		t.Fatalf("Failed to create test storage: %v", err)
	}
	return kv
}

func TestSQLiteSetGet(t *testing.T) {
	kv := setupTestDB(t)
	defer kv.Close()

	ctx := context.Background()
	if err := kv.Set(ctx, LinksKey, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	value, ok, err := kv.Get(ctx, LinksKey)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected key to be present")
	}
	if value != `[{"id":"a"}]` {
		t.Errorf("Expected stored value, got %s", value)
	}
}

func TestSQLiteGetMissing(t *testing.T) {
	kv := setupTestDB(t)
	defer kv.Close()

	value, ok, err := kv.Get(context.Background(), "missing")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok || value != "" {
		t.Errorf("Expected absent key, got ok=%v value=%q", ok, value)
	}
}

func TestSQLiteOverwrite(t *testing.T) {
	kv := setupTestDB(t)
	defer kv.Close()

	ctx := context.Background()
	kv.Set(ctx, TagsKey, "[]")
	if err := kv.Set(ctx, TagsKey, `[{"name":"go"}]`); err != nil {
		t.Fatalf("Second Set failed: %v", err)
	}

	value, _, _ := kv.Get(ctx, TagsKey)
	if value != `[{"name":"go"}]` {
		t.Errorf("Expected overwritten value, got %s", value)
	}

	keys, err := kv.Keys(ctx)
	if err != nil {
		t.Fatalf("Keys failed: %v", err)
	}
	if len(keys) != 1 {
		t.Errorf("Expected 1 key, got %d", len(keys))
	}

	updated, err := kv.UpdatedAt(ctx, TagsKey)
	if err != nil {
		t.Fatalf("UpdatedAt failed: %v", err)
	}
	if updated.IsZero() {
		t.Error("Expected non-zero updated_at")
	}
}

func TestSQLiteRemove(t *testing.T) {
	kv := setupTestDB(t)
	defer kv.Close()

	ctx := context.Background()
	kv.Set(ctx, LinksKey, "[]")

	if err := kv.Remove(ctx, LinksKey); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, LinksKey); ok {
		t.Error("Expected key to be removed")
	}
	if err := kv.Remove(ctx, LinksKey); err != nil {
		t.Errorf("Removing absent key should not fail, got %v", err)
	}
}

func TestSQLiteReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "linkvault.db")

	kv, err := NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	ctx := context.Background()
	if err := kv.Set(ctx, LinksKey, "[]"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	kv.Close()

	// migrations must be idempotent across opens
	kv, err = NewSQLiteKV(dbPath)
	if err != nil {
		t.Fatalf("Failed to reopen storage: %v", err)
	}
	defer kv.Close()

	value, ok, err := kv.Get(ctx, LinksKey)
	if err != nil || !ok || value != "[]" {
		t.Errorf("Expected persisted value, got %q ok=%v err=%v", value, ok, err)
	}
}
