// Package model defines data structures for sticky-notes-mcp.
//
// This package contains:
//   - Note: sticky note data model
//   - JSON-RPC 2.0 envelopes and MCP protocol types
//   - Config: server configuration
package model
