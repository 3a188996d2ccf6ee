package model

import (
	"encoding/json"
	"testing"
	"time"
)

// TestNote_Validate_Valid は有効なNoteがバリデーションを通過することをテスト
func TestNote_Validate_Valid(t *testing.T) {
	note := &Note{
		ID:        "550e8400-e29b-41d4-a716-446655440000",
		Title:     "Test Note",
		Text:      "This is a test note",
		CreatedAt: "2024-01-15T10:30:00Z",
		UpdatedAt: "2024-01-15T10:30:00Z",
	}

	if err := note.Validate(); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

// TestNote_Validate_EmptyID は空のIDでエラーになることをテスト
func TestNote_Validate_EmptyID(t *testing.T) {
	note := &Note{
		Title: "Test Note",
		Text:  "This is a test note",
	}

	if err := note.Validate(); err == nil {
		t.Error("expected error for empty ID, got nil")
	}
}

// TestTimestamp_Monotonic は連続生成したタイムスタンプが厳密に進むことをテスト
func TestTimestamp_Monotonic(t *testing.T) {
	a := Timestamp(time.Now())
	b := Timestamp(time.Now())

	ta, err := time.Parse(time.RFC3339Nano, a)
	if err != nil {
		t.Fatalf("failed to parse timestamp %q: %v", a, err)
	}
	tb, err := time.Parse(time.RFC3339Nano, b)
	if err != nil {
		t.Fatalf("failed to parse timestamp %q: %v", b, err)
	}

	if !tb.After(ta) {
		t.Errorf("expected %q to be after %q", b, a)
	}
}

// TestRequest_HasID はIDの有無判定をテスト
func TestRequest_HasID(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{"number id", `{"jsonrpc":"2.0","id":7,"method":"x"}`, true},
		{"string id", `{"jsonrpc":"2.0","id":"abc","method":"x"}`, true},
		{"zero id", `{"jsonrpc":"2.0","id":0,"method":"x"}`, true},
		{"no id", `{"jsonrpc":"2.0","method":"x"}`, false},
		{"null id", `{"jsonrpc":"2.0","id":null,"method":"x"}`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req Request
			if err := json.Unmarshal([]byte(tt.body), &req); err != nil {
				t.Fatalf("failed to parse request: %v", err)
			}
			if got := req.HasID(); got != tt.want {
				t.Errorf("HasID() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestNewResponse_EchoesRawID はレスポンスがリクエストIDをそのまま返すことをテスト
func TestNewResponse_EchoesRawID(t *testing.T) {
	var req Request
	if err := json.Unmarshal([]byte(`{"jsonrpc":"2.0","id":7,"method":"x"}`), &req); err != nil {
		t.Fatalf("failed to parse request: %v", err)
	}

	resp := NewResponse(req.ID, map[string]any{"ok": true})
	b, err := json.Marshal(resp)
	if err != nil {
		t.Fatalf("failed to marshal response: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("failed to parse response: %v", err)
	}
	if decoded["id"] != float64(7) {
		t.Errorf("expected id 7, got %v", decoded["id"])
	}
	if decoded["jsonrpc"] != "2.0" {
		t.Errorf("expected jsonrpc 2.0, got %v", decoded["jsonrpc"])
	}
}
