package store

import (
	"context"
	"testing"
)

func setupMemoryStore(t *testing.T) Store {
	t.Helper()
	s := NewMemoryStore()
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return s
}

func TestMemoryStore_Suite(t *testing.T) {
	runStoreSuite(t, setupMemoryStore)
}

// TestMemoryStore_NotInitialized は未初期化ストアがエラーを返すことをテスト
func TestMemoryStore_NotInitialized(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	if err := s.Add(ctx, newTestNote("id-1", "t", "x")); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
	if _, err := s.List(ctx); err != ErrNotInitialized {
		t.Errorf("expected ErrNotInitialized, got %v", err)
	}
}

// TestMemoryStore_DuplicateID は重複IDの追加が拒否されることをテスト
func TestMemoryStore_DuplicateID(t *testing.T) {
	s := setupMemoryStore(t)
	ctx := context.Background()

	if err := s.Add(ctx, newTestNote("id-1", "t", "x")); err != nil {
		t.Fatalf("Failed to add note: %v", err)
	}
	if err := s.Add(ctx, newTestNote("id-1", "other", "y")); err != ErrDuplicateID {
		t.Errorf("expected ErrDuplicateID, got %v", err)
	}
}

// TestMemoryStore_ListReturnsCopies はListの結果変更がストアに影響しないことをテスト
func TestMemoryStore_ListReturnsCopies(t *testing.T) {
	s := setupMemoryStore(t)
	ctx := context.Background()

	s.Add(ctx, newTestNote("id-1", "original", "text"))

	notes, _ := s.List(ctx)
	notes[0].Title = "mutated"

	got, _ := s.Get(ctx, "id-1")
	if got.Title != "original" {
		t.Errorf("expected stored title to stay %q, got %q", "original", got.Title)
	}
}
