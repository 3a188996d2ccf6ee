package config

import (
	"os"
	"strconv"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// 環境変数名の定数
const (
	EnvPort   = "STICKY_NOTES_PORT"
	EnvDBPath = "STICKY_NOTES_DB"
)

// ApplyEnvOverrides は環境変数による設定上書きを適用する
// config を直接変更する
func ApplyEnvOverrides(config *model.Config) {
	// ポートの環境変数上書き
	if portStr := os.Getenv(EnvPort); portStr != "" {
		if port, err := strconv.Atoi(portStr); err == nil && port > 0 && port < 65536 {
			config.HTTP.Port = port
		}
	}

	// DBパスの環境変数上書き（指定時はSQLiteストアに切り替え）
	if dbPath := os.Getenv(EnvDBPath); dbPath != "" {
		config.Store.Type = model.StoreTypeSQLite
		config.Store.Path = &dbPath
	}
}
