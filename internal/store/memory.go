package store

import (
	"context"
	"sync"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// MemoryStore はインメモリのStore実装（デフォルト）
// プロセス終了でデータは消える
type MemoryStore struct {
	mu          sync.RWMutex
	notes       []*model.Note // 新しいものが先頭
	initialized bool
}

// NewMemoryStore はMemoryStoreを作成する
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Initialize はストアを初期化する
func (s *MemoryStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = nil
	s.initialized = true
	return nil
}

// Close はストアをクローズする
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.notes = nil
	s.initialized = false
	return nil
}

// Add はノートを先頭に追加する
func (s *MemoryStore) Add(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	if err := note.Validate(); err != nil {
		return err
	}

	if s.indexOf(note.ID) >= 0 {
		return ErrDuplicateID
	}

	s.notes = append([]*model.Note{copyNote(note)}, s.notes...)
	return nil
}

// Get はIDでノートを取得する
func (s *MemoryStore) Get(ctx context.Context, id string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	return copyNote(s.notes[i]), nil
}

// Update はノートを位置を保ったまま置き換える
func (s *MemoryStore) Update(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	i := s.indexOf(note.ID)
	if i < 0 {
		return ErrNotFound
	}

	s.notes[i] = copyNote(note)
	return nil
}

// Delete はノートを削除する
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}

	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return nil
}

// List は全ノートを取得する（新しいものが先頭）
func (s *MemoryStore) List(ctx context.Context) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	return copyNotes(s.notes), nil
}

// Search はtitle/textにqueryを含むノートを元の順序で返す
func (s *MemoryStore) Search(ctx context.Context, query string) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	var results []*model.Note
	for _, note := range s.notes {
		if matchesQuery(note, query) {
			results = append(results, copyNote(note))
		}
	}

	return results, nil
}

// ReplaceAll は全ノートを入れ替える
func (s *MemoryStore) ReplaceAll(ctx context.Context, notes []*model.Note) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, ErrNotInitialized
	}

	s.notes = copyNotes(notes)
	return len(s.notes), nil
}

// indexOf はIDのノートの位置を返す（存在しなければ-1）
// 呼び出し側でロックを取得していること
func (s *MemoryStore) indexOf(id string) int {
	for i, note := range s.notes {
		if note.ID == id {
			return i
		}
	}
	return -1
}
