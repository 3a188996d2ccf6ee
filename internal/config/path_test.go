package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestExpandTilde はチルダ展開をテスト
func TestExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("failed to get home directory: %v", err)
	}

	tests := []struct {
		name string
		path string
		want string
	}{
		{"tilde only", "~", home},
		{"tilde slash", "~/notes", filepath.Join(home, "notes")},
		{"absolute path", "/tmp/notes", "/tmp/notes"},
		{"relative path", "notes", "notes"},
		{"tilde user", "~other/notes", "~other/notes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandTilde(tt.path)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

// TestGetDefaultConfigPath はデフォルト設定ファイルパスをテスト
func TestGetDefaultConfigPath(t *testing.T) {
	path, err := GetDefaultConfigPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasSuffix(path, filepath.Join(DefaultConfigDir, DefaultConfigFile)) {
		t.Errorf("expected path to end with %q, got %q", filepath.Join(DefaultConfigDir, DefaultConfigFile), path)
	}
}

// TestGetDefaultDBPath はデフォルトDBパスをテスト
func TestGetDefaultDBPath(t *testing.T) {
	path, err := GetDefaultDBPath()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := filepath.Join(DefaultConfigDir, DefaultDataSubDir, DefaultDBFile)
	if !strings.HasSuffix(path, want) {
		t.Errorf("expected path to end with %q, got %q", want, path)
	}
}

// TestEnsureDir はディレクトリ作成をテスト
func TestEnsureDir(t *testing.T) {
	tmpDir := t.TempDir()
	target := filepath.Join(tmpDir, "a", "b", "c")

	if err := EnsureDir(target); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(target)
	if err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
	if !info.IsDir() {
		t.Error("expected a directory")
	}

	// 既存ディレクトリでもエラーにならないこと
	if err := EnsureDir(target); err != nil {
		t.Errorf("unexpected error for existing dir: %v", err)
	}
}
