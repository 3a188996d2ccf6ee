package store

import (
	"strings"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// copyNote はノートのコピーを返す
// 呼び出し側の変更がストア内部に漏れないようにする
func copyNote(note *model.Note) *model.Note {
	noteCopy := *note
	return &noteCopy
}

// copyNotes はノートスライスのコピーを返す
func copyNotes(notes []*model.Note) []*model.Note {
	result := make([]*model.Note, len(notes))
	for i, n := range notes {
		result[i] = copyNote(n)
	}
	return result
}

// matchesQuery はtitleまたはtextがqueryを含むかを判定する（大小無視）
func matchesQuery(note *model.Note, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(note.Title), q) ||
		strings.Contains(strings.ToLower(note.Text), q)
}
