package jsonrpc

import (
	"context"
	"encoding/json"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
	"github.com/brbranch/sticky_notes_mcp/internal/tools"
)

// サーバー識別定数
// クライアント互換性のため initialize ではこの値をそのまま返すこと
const (
	// ServerName はMCPサーバー名
	ServerName = "sticky-notes-mcp"
	// MCPProtocolVersion はサポートするプロトコルバージョン（これ1つのみ）
	MCPProtocolVersion = "2024-11-05"
)

// ServerVersion はサーバーのバージョン（ビルド時に設定可能）
var ServerVersion = "1.0.0"

// handleInitialize は initialize メソッドを処理
// 純粋関数で副作用なし
func (h *Handler) handleInitialize(params json.RawMessage) (any, error) {
	// パラメータをパース（検証は最小限）
	var p model.InitializeParams
	if err := mapParams(params, &p); err != nil {
		return nil, err
	}

	return &model.InitializeResult{
		ProtocolVersion: MCPProtocolVersion,
		ServerInfo: model.ServerInfo{
			Name:    ServerName,
			Version: ServerVersion,
		},
		Capabilities: model.Capabilities{
			Tools: &model.ToolsCapability{},
		},
	}, nil
}

// handleToolsList は tools/list メソッドを処理
func (h *Handler) handleToolsList() (any, error) {
	return &model.ToolsListResult{
		Tools: tools.List(),
	}, nil
}

// handleToolsCall は tools/call メソッドを処理
// ディスパッチャーの失敗はそのまま返し、Handler側でエラーレスポンスに変換される
func (h *Handler) handleToolsCall(ctx context.Context, params json.RawMessage) (any, error) {
	var p model.ToolsCallParams
	if err := mapParams(params, &p); err != nil {
		return nil, err
	}

	return h.dispatcher.Call(ctx, p.Name, p.Arguments)
}
