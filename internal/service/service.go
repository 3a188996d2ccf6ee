// Package service implements note operations over a store.
package service

import (
	"context"
	"errors"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// NoteService はノートのCRUD + 検索 + 外部同期を提供
type NoteService interface {
	List(ctx context.Context) ([]*model.Note, error)
	Create(ctx context.Context, req *CreateNoteRequest) (*model.Note, error)
	Update(ctx context.Context, req *UpdateNoteRequest) (*model.Note, error)
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]*model.Note, error)
	ReplaceAll(ctx context.Context, notes []*model.Note) (int, error)
}

// エラー定義
var (
	ErrNoteNotFound  = errors.New("note not found")
	ErrTitleRequired = errors.New("title is required")
	ErrTextRequired  = errors.New("text is required")
	ErrIDRequired    = errors.New("id is required")
	ErrQueryRequired = errors.New("query is required")
)
