package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
	"github.com/brbranch/sticky_notes_mcp/internal/store"
	"github.com/google/uuid"
)

// noteService はNoteServiceの実装
type noteService struct {
	store store.Store
}

// NewNoteService はNoteServiceの新しいインスタンスを作成
func NewNoteService(s store.Store) NoteService {
	return &noteService{store: s}
}

// List は全ノートを取得する（新しいものが先頭）
func (s *noteService) List(ctx context.Context) ([]*model.Note, error) {
	notes, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	return notes, nil
}

// Create はノートを作成して先頭に追加する
func (s *noteService) Create(ctx context.Context, req *CreateNoteRequest) (*model.Note, error) {
	// バリデーション
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.Text == "" {
		return nil, ErrTextRequired
	}

	now := model.Timestamp(time.Now())
	note := &model.Note{
		ID:        uuid.New().String(),
		Title:     req.Title,
		Text:      req.Text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.store.Add(ctx, note); err != nil {
		return nil, fmt.Errorf("failed to add note to store: %w", err)
	}

	return note, nil
}

// Update は指定フィールドのみをマージしてノートを更新する
// updatedAtは必ず更新される
func (s *noteService) Update(ctx context.Context, req *UpdateNoteRequest) (*model.Note, error) {
	if req.ID == "" {
		return nil, ErrIDRequired
	}

	note, err := s.store.Get(ctx, req.ID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	// パッチ適用（nilは変更なし）
	if req.Patch.Title != nil {
		note.Title = *req.Patch.Title
	}
	if req.Patch.Text != nil {
		note.Text = *req.Patch.Text
	}
	note.UpdatedAt = model.Timestamp(time.Now())

	if err := s.store.Update(ctx, note); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrNoteNotFound
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	return note, nil
}

// Delete はノートを削除する
func (s *noteService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}

	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrNoteNotFound
		}
		return fmt.Errorf("failed to delete note: %w", err)
	}

	return nil
}

// Search は検索クエリに基づいてノートを検索する
// 空のクエリは受け付けない
func (s *noteService) Search(ctx context.Context, query string) ([]*model.Note, error) {
	if query == "" {
		return nil, ErrQueryRequired
	}

	notes, err := s.store.Search(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to search notes: %w", err)
	}
	return notes, nil
}

// ReplaceAll は全ノートを入れ替える（外部同期用）
// id・タイムスタンプが欠けたノートはサーバー側で補完する
func (s *noteService) ReplaceAll(ctx context.Context, notes []*model.Note) (int, error) {
	now := model.Timestamp(time.Now())
	for _, note := range notes {
		if note.ID == "" {
			note.ID = uuid.New().String()
		}
		if note.CreatedAt == "" {
			note.CreatedAt = now
		}
		if note.UpdatedAt == "" {
			note.UpdatedAt = note.CreatedAt
		}
	}

	count, err := s.store.ReplaceAll(ctx, notes)
	if err != nil {
		return 0, fmt.Errorf("failed to replace notes: %w", err)
	}
	return count, nil
}
