// Package mcp exposes the Hot Potato server to MCP clients.
//
// The package is a thin proxy: every tool call translates into a GET
// against the REST API, so the MCP surface can run in-process next to
// the HTTP server or as a stdio server pointed at a remote one. All
// tools are read-only; playing the game remains WebSocket-only.
package mcp
