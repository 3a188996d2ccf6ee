// Package store provides note storage interfaces and implementations.
package store

import (
	"context"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// Store はノートストアの抽象インターフェース
// ノートは挿入順（新しいものが先頭）で保持される
type Store interface {
	// Note操作
	Add(ctx context.Context, note *model.Note) error // 先頭に追加
	Get(ctx context.Context, id string) (*model.Note, error)
	Update(ctx context.Context, note *model.Note) error // 位置を保ったまま置換
	Delete(ctx context.Context, id string) error

	// 一覧取得（新しいものが先頭）
	List(ctx context.Context) ([]*model.Note, error)

	// 検索（title/textの大小無視部分一致、元の順序を保持）
	Search(ctx context.Context, query string) ([]*model.Note, error)

	// 全入れ替え（外部同期用）、格納した件数を返す
	ReplaceAll(ctx context.Context, notes []*model.Note) (int, error)

	// 初期化・終了
	Initialize(ctx context.Context) error
	Close() error
}
