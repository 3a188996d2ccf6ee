// Package http implements HTTP transport for sticky-notes-mcp.
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/brbranch/sticky_notes_mcp/internal/jsonrpc"
	"github.com/brbranch/sticky_notes_mcp/internal/model"
	"github.com/brbranch/sticky_notes_mcp/internal/service"
)

const (
	ssePath      = "/sse"
	messagesPath = "/messages"

	// DefaultKeepAliveInterval はSSEのkeep-alive送信間隔
	DefaultKeepAliveInterval = 15 * time.Second
)

// Handler はJSON-RPCリクエストを処理するインターフェース
type Handler interface {
	Handle(ctx context.Context, requestBytes []byte) (*jsonrpc.Outcome, error)
}

// Config はHTTPサーバー設定
type Config struct {
	Addr              string        // listen address (例: "127.0.0.1:3456")
	CORSOrigins       []string      // 許可するオリジンリスト、"*"で全許可、空ならCORS無効
	KeepAliveInterval time.Duration // 0ならDefaultKeepAliveInterval
}

// Server はMCP over SSE + HTTPサーバー
type Server struct {
	handler Handler
	notes   service.NoteService
	config  Config
	srv     *http.Server
}

// New は新しいServerを生成
func New(handler Handler, notes service.NoteService, config Config) *Server {
	s := &Server{
		handler: handler,
		notes:   notes,
		config:  config,
	}

	mux := http.NewServeMux()
	mux.HandleFunc(ssePath, s.handleSSE)
	mux.HandleFunc(messagesPath, s.handleMessages)
	mux.HandleFunc("/sync", s.handleSync)
	mux.HandleFunc("/notes", s.handleNotes)
	mux.HandleFunc("/", s.handleRoot)

	s.srv = &http.Server{
		Addr:    config.Addr,
		Handler: mux,
	}

	return s
}

// Run はサーバーを起動し、contextがキャンセルされるまで実行
func (s *Server) Run(ctx context.Context) error {
	// contextキャンセル時にShutdownを呼ぶ
	go func() {
		<-ctx.Done()
		s.srv.Shutdown(context.Background())
	}()

	err := s.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		// Graceful shutdownはエラーではない
		return nil
	}
	return err
}

// handleSSE はセッション確立用のイベントストリームを処理
// 接続直後にコマンド送信先を1回通知し、以後は切断までkeep-aliveのみ流す
// JSON-RPCトラフィック自体はここを通らない
func (s *Server) handleSSE(w http.ResponseWriter, r *http.Request) {
	s.handleCORS(w, r)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: endpoint\ndata: %s\n\n", messagesPath)
	flusher.Flush()

	interval := s.config.KeepAliveInterval
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}

	// タイマーは接続のライフタイムに紐づけ、全ての終了経路で停止する
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			// クライアント切断またはサーバーシャットダウン
			return
		case <-ticker.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		}
	}
}

// handleMessages はJSON-RPCコマンドエンドポイントを処理
// IDありのエンベロープにはレスポンスをちょうど1つ、notificationにはボディなしで応答する
func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	s.handleCORS(w, r)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	contentType := r.Header.Get("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		http.Error(w, "Unsupported Media Type", http.StatusUnsupportedMediaType)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "Bad Request", http.StatusBadRequest)
		return
	}

	outcome, err := s.handler.Handle(r.Context(), body)
	if err != nil {
		// エンベロープとして解釈できない場合はJSON-RPCではなくplainな400
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if outcome.Reply == nil {
		if outcome.Failed {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(outcome.Reply)
}

// handleSync は外部同期エンドポイントを処理（ブラウザ拡張からの一括同期）
func (s *Server) handleSync(w http.ResponseWriter, r *http.Request) {
	s.handleCORS(w, r)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "failed to read body"})
		return
	}

	var body struct {
		Notes json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON body"})
		return
	}

	// notesは配列であること（null/オブジェクト/欠落は拒否）
	trimmed := bytes.TrimSpace(body.Notes)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "notes must be an array"})
		return
	}

	var notes []*model.Note
	if err := json.Unmarshal(trimmed, &notes); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid notes: " + err.Error()})
		return
	}

	count, err := s.notes.ReplaceAll(r.Context(), notes)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "count": count})
}

// handleNotes はノート一覧スナップショットを返す
func (s *Server) handleNotes(w http.ResponseWriter, r *http.Request) {
	s.handleCORS(w, r)

	if r.Method == http.MethodOptions {
		w.WriteHeader(http.StatusOK)
		return
	}

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	notes, err := s.notes.List(r.Context())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": err.Error()})
		return
	}
	if notes == nil {
		notes = []*model.Note{}
	}

	writeJSON(w, http.StatusOK, map[string]any{"notes": notes})
}

// handleRoot はヘルスチェック用のステータステキストを返す
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.handleCORS(w, r)

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintf(w, "%s %s is running\n", jsonrpc.ServerName, jsonrpc.ServerVersion)
}

// handleCORS はCORSヘッダーを設定
func (s *Server) handleCORS(w http.ResponseWriter, r *http.Request) {
	// CORS無効ならスキップ
	if len(s.config.CORSOrigins) == 0 {
		return
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return
	}

	// 許可オリジンをチェック（"*"は全許可）
	allowed := false
	for _, allowedOrigin := range s.config.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			allowed = true
			break
		}
	}

	if !allowed {
		return
	}

	w.Header().Set("Access-Control-Allow-Origin", origin)
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Vary", "Origin")
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
