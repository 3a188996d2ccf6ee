package store

import "errors"

// エラー定義
var (
	ErrNotFound         = errors.New("resource not found")
	ErrNotInitialized   = errors.New("store not initialized")
	ErrDuplicateID      = errors.New("duplicate note id")
	ErrConnectionFailed = errors.New("failed to connect to store")
)
