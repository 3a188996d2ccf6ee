package store

import (
	"context"
	"testing"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// Helper functions for test data

// newTestNote は基本的なテスト用Noteを生成
func newTestNote(id, title, text string) *model.Note {
	return &model.Note{
		ID:        id,
		Title:     title,
		Text:      text,
		CreatedAt: "2024-01-15T10:30:00Z",
		UpdatedAt: "2024-01-15T10:30:00Z",
	}
}

// runStoreSuite はStore実装共通の動作を検証する
// memory/sqlite両実装が同一のセマンティクスを持つことを保証する
func runStoreSuite(t *testing.T, setup func(t *testing.T) Store) {
	ctx := context.Background()

	t.Run("AddPrependsNewest", func(t *testing.T) {
		s := setup(t)

		if err := s.Add(ctx, newTestNote("id-1", "first", "a")); err != nil {
			t.Fatalf("Failed to add note: %v", err)
		}
		if err := s.Add(ctx, newTestNote("id-2", "second", "b")); err != nil {
			t.Fatalf("Failed to add note: %v", err)
		}

		notes, err := s.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list notes: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(notes))
		}
		if notes[0].ID != "id-2" || notes[1].ID != "id-1" {
			t.Errorf("expected newest-first order [id-2, id-1], got [%s, %s]", notes[0].ID, notes[1].ID)
		}
	})

	t.Run("AddRejectsEmptyID", func(t *testing.T) {
		s := setup(t)

		if err := s.Add(ctx, newTestNote("", "no id", "a")); err == nil {
			t.Error("expected error for empty id, got nil")
		}

		notes, err := s.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list notes: %v", err)
		}
		if len(notes) != 0 {
			t.Errorf("expected store unchanged, got %d notes", len(notes))
		}
	})

	t.Run("GetNotFound", func(t *testing.T) {
		s := setup(t)

		if _, err := s.Get(ctx, "missing"); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("UpdateKeepsPosition", func(t *testing.T) {
		s := setup(t)

		for _, id := range []string{"id-1", "id-2", "id-3"} {
			if err := s.Add(ctx, newTestNote(id, "title "+id, "text")); err != nil {
				t.Fatalf("Failed to add note: %v", err)
			}
		}

		updated := newTestNote("id-2", "changed", "changed text")
		updated.UpdatedAt = "2024-01-16T10:30:00Z"
		if err := s.Update(ctx, updated); err != nil {
			t.Fatalf("Failed to update note: %v", err)
		}

		notes, err := s.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list notes: %v", err)
		}
		if notes[1].ID != "id-2" {
			t.Errorf("expected id-2 to keep position 1, got %s", notes[1].ID)
		}
		if notes[1].Title != "changed" {
			t.Errorf("expected updated title, got %q", notes[1].Title)
		}
	})

	t.Run("UpdateNotFound", func(t *testing.T) {
		s := setup(t)

		if err := s.Update(ctx, newTestNote("missing", "t", "x")); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteRemovesExactlyOne", func(t *testing.T) {
		s := setup(t)

		for _, id := range []string{"id-1", "id-2", "id-3"} {
			if err := s.Add(ctx, newTestNote(id, "title", "text")); err != nil {
				t.Fatalf("Failed to add note: %v", err)
			}
		}

		if err := s.Delete(ctx, "id-2"); err != nil {
			t.Fatalf("Failed to delete note: %v", err)
		}

		notes, err := s.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list notes: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes after delete, got %d", len(notes))
		}
		if notes[0].ID != "id-3" || notes[1].ID != "id-1" {
			t.Errorf("expected remaining order [id-3, id-1], got [%s, %s]", notes[0].ID, notes[1].ID)
		}
	})

	t.Run("DeleteNotFound", func(t *testing.T) {
		s := setup(t)

		if err := s.Delete(ctx, "missing"); err != ErrNotFound {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("SearchCaseInsensitivePreservesOrder", func(t *testing.T) {
		s := setup(t)

		s.Add(ctx, newTestNote("id-1", "Shopping list", "buy FOO and milk"))
		s.Add(ctx, newTestNote("id-2", "unrelated", "nothing here"))
		s.Add(ctx, newTestNote("id-3", "Foo ideas", "brainstorm"))

		results, err := s.Search(ctx, "foo")
		if err != nil {
			t.Fatalf("Failed to search: %v", err)
		}
		if len(results) != 2 {
			t.Fatalf("expected 2 results, got %d", len(results))
		}
		// 元の並び（新しいものが先頭）が保持される
		if results[0].ID != "id-3" || results[1].ID != "id-1" {
			t.Errorf("expected order [id-3, id-1], got [%s, %s]", results[0].ID, results[1].ID)
		}
	})

	t.Run("SearchNoMatch", func(t *testing.T) {
		s := setup(t)

		s.Add(ctx, newTestNote("id-1", "title", "text"))

		results, err := s.Search(ctx, "zzz")
		if err != nil {
			t.Fatalf("Failed to search: %v", err)
		}
		if len(results) != 0 {
			t.Errorf("expected no results, got %d", len(results))
		}
	})

	t.Run("ReplaceAllOverwrites", func(t *testing.T) {
		s := setup(t)

		s.Add(ctx, newTestNote("old-1", "old", "old"))

		replacement := []*model.Note{
			newTestNote("new-1", "newest", "a"),
			newTestNote("new-2", "older", "b"),
		}
		count, err := s.ReplaceAll(ctx, replacement)
		if err != nil {
			t.Fatalf("Failed to replace notes: %v", err)
		}
		if count != 2 {
			t.Errorf("expected count 2, got %d", count)
		}

		notes, err := s.List(ctx)
		if err != nil {
			t.Fatalf("Failed to list notes: %v", err)
		}
		if len(notes) != 2 {
			t.Fatalf("expected 2 notes, got %d", len(notes))
		}
		if notes[0].ID != "new-1" || notes[1].ID != "new-2" {
			t.Errorf("expected order [new-1, new-2], got [%s, %s]", notes[0].ID, notes[1].ID)
		}
	})

	t.Run("ReplaceAllEmpty", func(t *testing.T) {
		s := setup(t)

		s.Add(ctx, newTestNote("old-1", "old", "old"))

		count, err := s.ReplaceAll(ctx, nil)
		if err != nil {
			t.Fatalf("Failed to replace notes: %v", err)
		}
		if count != 0 {
			t.Errorf("expected count 0, got %d", count)
		}

		notes, _ := s.List(ctx)
		if len(notes) != 0 {
			t.Errorf("expected empty store, got %d notes", len(notes))
		}
	})
}
