// Package jsonrpc implements JSON-RPC 2.0 handlers for sticky-notes-mcp.
package jsonrpc

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
)

// ToolDispatcher はツール呼び出しを処理するインターフェース
type ToolDispatcher interface {
	Call(ctx context.Context, name string, args map[string]any) (*model.ToolsCallResult, error)
}

// Handler はJSON-RPCリクエストを処理する
type Handler struct {
	dispatcher ToolDispatcher
}

// New は新しいHandlerを生成
func New(dispatcher ToolDispatcher) *Handler {
	return &Handler{dispatcher: dispatcher}
}

// Outcome は1エンベロープ処理の結果
// Replyとnotification成否の2状態で応答形状の不変条件を機械的に表現する:
// IDありのエンベロープにはReplyがちょうど1つ、IDなしにはReplyなし
type Outcome struct {
	Reply  []byte // JSON-RPCレスポンスのJSON bytes、notificationならnil
	Failed bool   // notification処理中の失敗（トランスポートは本文なしの失敗応答を返す）
}

// MalformedRequestError はエンベロープとして解釈できないリクエスト
// JSON-RPCエラーレスポンスではなくトランスポートレベルの失敗として扱う
type MalformedRequestError struct {
	Reason string
}

func (e *MalformedRequestError) Error() string {
	return "malformed request: " + e.Reason
}

// Handle はJSON-RPCエンベロープをパースしてディスパッチする
// 戻り値のerrorはMalformedRequestErrorのみ（methodを持たない/JSONでないリクエスト）
// メソッド処理中の失敗はここで捕捉され、IDがあればエラーレスポンスに変換される
func (h *Handler) Handle(ctx context.Context, requestBytes []byte) (*Outcome, error) {
	// 1. パース
	var req model.Request
	if err := json.Unmarshal(requestBytes, &req); err != nil {
		return nil, &MalformedRequestError{Reason: "invalid JSON: " + err.Error()}
	}

	// 2. method確認
	if req.Method == "" {
		return nil, &MalformedRequestError{Reason: "method is required"}
	}

	// 3. ディスパッチ
	result, err := h.dispatch(ctx, req.Method, req.Params)

	// 4. notificationはエンベロープを返さない（失敗してもログのみ）
	if !req.HasID() {
		if err != nil {
			slog.Error("notification handling failed", "method", req.Method, "error", err)
			return &Outcome{Failed: true}, nil
		}
		return &Outcome{}, nil
	}

	// 5. requestはエンベロープをちょうど1つ返す
	if err != nil {
		return &Outcome{Reply: encode(model.NewInternalError(req.ID, err.Error()))}, nil
	}
	return &Outcome{Reply: encode(model.NewResponse(req.ID, result))}, nil
}

// dispatch はメソッドに応じて適切なハンドラーを呼び出す
func (h *Handler) dispatch(ctx context.Context, method string, params json.RawMessage) (any, error) {
	switch method {
	case "initialize":
		return h.handleInitialize(params)
	case "notifications/initialized":
		// ハンドシェイク完了通知、結果なし
		return nil, nil
	case "tools/list":
		return h.handleToolsList()
	case "tools/call":
		return h.handleToolsCall(ctx, params)
	default:
		// 未知メソッドはエラーにせず無視する（ping等を送るクライアントへの耐性）
		return nil, nil
	}
}

func encode(resp any) []byte {
	b, _ := json.Marshal(resp)
	return b
}

// mapParams はparamsをターゲット構造体にマッピング
func mapParams(params json.RawMessage, target any) error {
	if len(params) == 0 {
		return nil
	}
	return json.Unmarshal(params, target)
}
