// Package tools defines the MCP tool catalog and dispatch for sticky-notes-mcp.
package tools

import "github.com/brbranch/sticky_notes_mcp/internal/model"

// catalog は公開する全ツールの定義（定義順がtools/listの公開順）
// 起動時定数であり実行中に変化しない
var catalog = []model.Tool{
	{
		Name:        "list_notes",
		Description: "List all sticky notes, newest first",
		InputSchema: model.JSONSchema{
			Type:       "object",
			Properties: map[string]model.JSONSchema{},
		},
	},
	{
		Name:        "create_note",
		Description: "Create a new sticky note",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"title": {Type: "string", Description: "Note title"},
				"text":  {Type: "string", Description: "Note body text"},
			},
			Required: []string{"title", "text"},
		},
	},
	{
		Name:        "update_note",
		Description: "Update an existing sticky note (only provided fields change)",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"id":    {Type: "string", Description: "Note id"},
				"title": {Type: "string", Description: "New title"},
				"text":  {Type: "string", Description: "New body text"},
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        "delete_note",
		Description: "Delete a sticky note by id",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"id": {Type: "string", Description: "Note id"},
			},
			Required: []string{"id"},
		},
	},
	{
		Name:        "search_notes",
		Description: "Search sticky notes by case-insensitive substring of title or text",
		InputSchema: model.JSONSchema{
			Type: "object",
			Properties: map[string]model.JSONSchema{
				"query": {Type: "string", Description: "Search query"},
			},
			Required: []string{"query"},
		},
	},
}

// List は全ツール定義を公開順で返す
func List() []model.Tool {
	return catalog
}

// lookup はツール名から定義を取得する
func lookup(name string) (*model.Tool, bool) {
	for i := range catalog {
		if catalog[i].Name == name {
			return &catalog[i], true
		}
	}
	return nil, false
}
