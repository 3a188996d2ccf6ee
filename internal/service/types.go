package service

// CreateNoteRequest はノート作成リクエスト
type CreateNoteRequest struct {
	Title string
	Text  string
}

// UpdateNoteRequest はノート更新リクエスト
type UpdateNoteRequest struct {
	ID    string
	Patch NotePatch
}

// NotePatch はノート更新パッチ
// nilのフィールドは変更しない
type NotePatch struct {
	Title *string
	Text  *string
}
