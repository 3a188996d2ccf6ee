package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/brbranch/sticky_notes_mcp/internal/model"
	"github.com/brbranch/sticky_notes_mcp/internal/service"
)

// UnknownToolError は未登録ツール名エラー
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return "unknown tool: " + e.Name
}

// InvalidArgumentError はツール引数のスキーマ違反エラー
type InvalidArgumentError struct {
	Field  string
	Reason string
}

func (e *InvalidArgumentError) Error() string {
	return fmt.Sprintf("invalid argument %q: %s", e.Field, e.Reason)
}

// Dispatcher はツール名+引数をNoteService操作にマッピングする
// 自身は状態を持たない
type Dispatcher struct {
	notes service.NoteService
}

// New は新しいDispatcherを生成
func New(notes service.NoteService) *Dispatcher {
	return &Dispatcher{notes: notes}
}

// Call はツールを実行し、単一テキストコンテンツの結果を返す
// 引数はディスパッチ前にツールのスキーマで検証する
func (d *Dispatcher) Call(ctx context.Context, name string, args map[string]any) (*model.ToolsCallResult, error) {
	tool, ok := lookup(name)
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}

	if err := validateArgs(tool, args); err != nil {
		return nil, err
	}

	switch name {
	case "list_notes":
		return d.listNotes(ctx)
	case "create_note":
		return d.createNote(ctx, args)
	case "update_note":
		return d.updateNote(ctx, args)
	case "delete_note":
		return d.deleteNote(ctx, args)
	case "search_notes":
		return d.searchNotes(ctx, args)
	default:
		// カタログにあるのにハンドラーがない場合は実装漏れ
		return nil, &UnknownToolError{Name: name}
	}
}

func (d *Dispatcher) listNotes(ctx context.Context) (*model.ToolsCallResult, error) {
	notes, err := d.notes.List(ctx)
	if err != nil {
		return nil, err
	}
	return model.NewTextResult(serializeNotes(notes)), nil
}

func (d *Dispatcher) createNote(ctx context.Context, args map[string]any) (*model.ToolsCallResult, error) {
	note, err := d.notes.Create(ctx, &service.CreateNoteRequest{
		Title: stringArg(args, "title"),
		Text:  stringArg(args, "text"),
	})
	if err != nil {
		return nil, err
	}
	return model.NewTextResult(fmt.Sprintf("Created note %q (id: %s)", note.Title, note.ID)), nil
}

func (d *Dispatcher) updateNote(ctx context.Context, args map[string]any) (*model.ToolsCallResult, error) {
	note, err := d.notes.Update(ctx, &service.UpdateNoteRequest{
		ID: stringArg(args, "id"),
		Patch: service.NotePatch{
			Title: optionalStringArg(args, "title"),
			Text:  optionalStringArg(args, "text"),
		},
	})
	if err != nil {
		return nil, err
	}
	return model.NewTextResult(fmt.Sprintf("Updated note %q", note.Title)), nil
}

func (d *Dispatcher) deleteNote(ctx context.Context, args map[string]any) (*model.ToolsCallResult, error) {
	if err := d.notes.Delete(ctx, stringArg(args, "id")); err != nil {
		return nil, err
	}
	return model.NewTextResult("Note deleted"), nil
}

func (d *Dispatcher) searchNotes(ctx context.Context, args map[string]any) (*model.ToolsCallResult, error) {
	results, err := d.notes.Search(ctx, stringArg(args, "query"))
	if err != nil {
		return nil, err
	}
	text := fmt.Sprintf("Found %d note(s):\n%s", len(results), serializeNotes(results))
	return model.NewTextResult(text), nil
}

// validateArgs は引数をツールのスキーマで検証する
// 必須フィールドは空でない文字列であること、型付きフィールドは型が一致すること
func validateArgs(tool *model.Tool, args map[string]any) error {
	for _, required := range tool.InputSchema.Required {
		v, ok := args[required]
		if !ok {
			return &InvalidArgumentError{Field: required, Reason: "required"}
		}
		s, ok := v.(string)
		if !ok {
			return &InvalidArgumentError{Field: required, Reason: "must be a string"}
		}
		if s == "" {
			return &InvalidArgumentError{Field: required, Reason: "must not be empty"}
		}
	}

	for key, value := range args {
		prop, ok := tool.InputSchema.Properties[key]
		if !ok {
			// 未知の引数は無視する（クライアント側の拡張に寛容）
			continue
		}
		if prop.Type == "string" {
			if _, ok := value.(string); !ok {
				return &InvalidArgumentError{Field: key, Reason: "must be a string"}
			}
		}
	}

	return nil
}

// stringArg は文字列引数を取得する（検証済み前提）
func stringArg(args map[string]any, key string) string {
	s, _ := args[key].(string)
	return s
}

// optionalStringArg は省略可能な文字列引数を取得する
// 未指定ならnil
func optionalStringArg(args map[string]any, key string) *string {
	v, ok := args[key]
	if !ok {
		return nil
	}
	s, ok := v.(string)
	if !ok {
		return nil
	}
	return &s
}

// serializeNotes はノート列をテキストコンテンツ用にJSON整形する
func serializeNotes(notes []*model.Note) string {
	if notes == nil {
		notes = []*model.Note{}
	}
	b, err := json.MarshalIndent(notes, "", "  ")
	if err != nil {
		return fmt.Sprintf("failed to serialize notes: %v", err)
	}
	return string(b)
}
