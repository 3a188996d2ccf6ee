// Package bootstrap provides common initialization logic for sticky-notes-mcp.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/brbranch/sticky_notes_mcp/internal/config"
	"github.com/brbranch/sticky_notes_mcp/internal/model"
	"github.com/brbranch/sticky_notes_mcp/internal/service"
	"github.com/brbranch/sticky_notes_mcp/internal/store"
)

// Services は初期化されたサービス群を保持
type Services struct {
	NoteService service.NoteService
	Config      *model.Config
}

// Initialize は設定を読み込み、必要なサービスを初期化する
func Initialize(ctx context.Context, configPath string) (*Services, func(), error) {
	// 設定マネージャーの作成
	configManager, err := config.NewManager(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create config manager: %w", err)
	}

	// 設定ファイルの読み込み
	if err := configManager.Load(); err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	cfg := configManager.GetConfig()

	// 初回起動時はデフォルト設定ファイルを書き出す（環境変数の上書き前）
	if _, err := os.Stat(configManager.GetConfigPath()); os.IsNotExist(err) {
		if err := configManager.Save(); err != nil {
			return nil, nil, fmt.Errorf("failed to write default config: %w", err)
		}
	}

	// 環境変数による上書き
	config.ApplyEnvOverrides(cfg)

	// Store初期化
	var st store.Store
	switch cfg.Store.Type {
	case model.StoreTypeSQLite:
		// SQLiteのDBパスを決定（設定値 > dataDir配下 > デフォルトパス）
		dbPath, err := resolveDBPath(cfg)
		if err != nil {
			return nil, nil, err
		}
		// DBファイルの親ディレクトリを作成
		if err := config.EnsureDir(filepath.Dir(dbPath)); err != nil {
			return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
		}
		st, err = store.NewSQLiteStore(dbPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create sqlite store: %w", err)
		}
	default:
		st = store.NewMemoryStore()
	}

	if err := st.Initialize(ctx); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	noteService := service.NewNoteService(st)

	cleanup := func() {
		st.Close()
	}

	return &Services{
		NoteService: noteService,
		Config:      cfg,
	}, cleanup, nil
}

// resolveDBPath はSQLiteのDBファイルパスを決定する
func resolveDBPath(cfg *model.Config) (string, error) {
	if cfg.Store.Path != nil && *cfg.Store.Path != "" {
		// "~" 始まりの設定値を展開
		dbPath, err := config.ExpandTilde(*cfg.Store.Path)
		if err != nil {
			return "", fmt.Errorf("failed to resolve store path: %w", err)
		}
		return dbPath, nil
	}

	if cfg.Paths.DataDir != "" {
		return filepath.Join(cfg.Paths.DataDir, config.DefaultDBFile), nil
	}

	dbPath, err := config.GetDefaultDBPath()
	if err != nil {
		return "", fmt.Errorf("failed to resolve default db path: %w", err)
	}
	return dbPath, nil
}
