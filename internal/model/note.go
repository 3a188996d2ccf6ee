package model

import (
	"fmt"
	"time"
)

// Note は付箋ノートを表す（内部データモデル）
// 注: ストア内の並び順は「新しいものが先頭」で、モデル自体は順序を持たない
type Note struct {
	ID        string `json:"id"`        // UUID形式、作成後は不変
	Title     string `json:"title"`     // 自由形式テキスト
	Text      string `json:"text"`      // 自由形式テキスト
	CreatedAt string `json:"createdAt"` // RFC3339Nano UTC形式
	UpdatedAt string `json:"updatedAt"` // RFC3339Nano UTC形式、更新のたびに進む
}

// Validate はNoteのバリデーションを実行する
func (n *Note) Validate() error {
	if n.ID == "" {
		return fmt.Errorf("ID must not be empty")
	}
	return nil
}

// Timestamp は時刻をノート用タイムスタンプ文字列に変換する
// RFC3339Nanoはナノ秒精度なので、作成直後の更新でもupdatedAtが厳密に進む
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}
