package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
	_ "modernc.org/sqlite"
)

const (
	// noteCountWarningThreshold は警告を出すノート件数の閾値
	noteCountWarningThreshold = 10000
)

// SQLiteStore はSQLiteを使用したStore実装
// 並び順はseq列（降順）で表現し、新規追加ほど大きいseqを持つ
type SQLiteStore struct {
	mu          sync.RWMutex
	db          *sql.DB
	dbPath      string
	initialized bool
}

// NewSQLiteStore はSQLiteStoreを作成する
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// WALモードを有効化
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}

	return &SQLiteStore{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Initialize はストアを初期化する
func (s *SQLiteStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	notesSQL := `
	CREATE TABLE IF NOT EXISTS notes (
		id TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		text TEXT NOT NULL,
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL,
		seq INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_notes_seq ON notes(seq);
	`

	if _, err := s.db.ExecContext(ctx, notesSQL); err != nil {
		return fmt.Errorf("failed to create notes table: %w", err)
	}

	s.initialized = true
	return nil
}

// Close はストアをクローズする
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = false
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Add はノートを先頭（最大seq）に追加する
func (s *SQLiteStore) Add(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	if err := note.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO notes (id, title, text, created_at, updated_at, seq)
		VALUES (?, ?, ?, ?, ?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM notes))
	`, note.ID, note.Title, note.Text, note.CreatedAt, note.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert note: %w", err)
	}

	// 件数チェックと警告
	count, _ := s.countNotes(ctx)
	if count >= noteCountWarningThreshold {
		slog.Warn("note count exceeded threshold",
			"count", count,
			"threshold", noteCountWarningThreshold,
			"recommendation", "consider pruning old notes")
	}

	return nil
}

// Get はIDでノートを取得する
func (s *SQLiteStore) Get(ctx context.Context, id string) (*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	row := s.db.QueryRowContext(ctx, `
		SELECT id, title, text, created_at, updated_at
		FROM notes
		WHERE id = ?
	`, id)

	note, err := scanNote(row)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}

	return note, nil
}

// Update はノートを更新する（seqは変えない）
func (s *SQLiteStore) Update(ctx context.Context, note *model.Note) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE notes
		SET title = ?, text = ?, created_at = ?, updated_at = ?
		WHERE id = ?
	`, note.Title, note.Text, note.CreatedAt, note.UpdatedAt, note.ID)
	if err != nil {
		return fmt.Errorf("failed to update note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete はノートを削除する
func (s *SQLiteStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return ErrNotInitialized
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// List は全ノートを取得する（新しいものが先頭）
func (s *SQLiteStore) List(ctx context.Context) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	return s.listAll(ctx)
}

// Search はtitle/textにqueryを含むノートを元の順序で返す
// 件数が小さい前提なので全件取得してGo側でフィルタする
// （LIKEのエスケープ規則に依存せず、MemoryStoreと同一の判定になる）
func (s *SQLiteStore) Search(ctx context.Context, query string) ([]*model.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, ErrNotInitialized
	}

	notes, err := s.listAll(ctx)
	if err != nil {
		return nil, err
	}

	var results []*model.Note
	for _, note := range notes {
		if matchesQuery(note, query) {
			results = append(results, note)
		}
	}

	return results, nil
}

// ReplaceAll は全ノートを入れ替える
// 渡された順序が保持されるよう、先頭のノートほど大きいseqを割り当てる
func (s *SQLiteStore) ReplaceAll(ctx context.Context, notes []*model.Note) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return 0, ErrNotInitialized
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notes`); err != nil {
		return 0, fmt.Errorf("failed to clear notes: %w", err)
	}

	for i, note := range notes {
		seq := len(notes) - i
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notes (id, title, text, created_at, updated_at, seq)
			VALUES (?, ?, ?, ?, ?, ?)
		`, note.ID, note.Title, note.Text, note.CreatedAt, note.UpdatedAt, seq)
		if err != nil {
			return 0, fmt.Errorf("failed to insert note %s: %w", note.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return len(notes), nil
}

// Helper methods

// listAll は全ノートをseq降順で取得する
// 呼び出し側でロックを取得していること
func (s *SQLiteStore) listAll(ctx context.Context) ([]*model.Note, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, title, text, created_at, updated_at
		FROM notes
		ORDER BY seq DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	defer rows.Close()

	var notes []*model.Note
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan note: %w", err)
		}
		notes = append(notes, note)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate notes: %w", err)
	}

	return notes, nil
}

// countNotes はノート件数を取得する
func (s *SQLiteStore) countNotes(ctx context.Context) (int, error) {
	var count int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM notes`).Scan(&count)
	return count, err
}

// scanner はsql.Rowとsql.Rowsの共通インターフェース
type scanner interface {
	Scan(dest ...any) error
}

// scanNote は1行をNoteに変換する
func scanNote(row scanner) (*model.Note, error) {
	var note model.Note
	if err := row.Scan(&note.ID, &note.Title, &note.Text, &note.CreatedAt, &note.UpdatedAt); err != nil {
		return nil, err
	}
	return &note, nil
}
