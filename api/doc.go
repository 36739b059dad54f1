// Package api provides the HTTP surface of the Hot Potato server.
//
// The api package implements:
//   - Read-only REST endpoints for observing rooms
//   - WebSocket upgrade handling
//   - Static file serving
//
// Endpoints:
//
//   - GET /api/health - liveness and uptime
//   - GET /api/stats - room/player/connection counts
//   - GET /api/rooms - list all room snapshots
//   - GET /api/rooms/{id} - one room snapshot
//   - GET /ws - WebSocket upgrade; all game mutations flow over this
//
// All endpoints return JSON. Errors are returned as JSON with an
// appropriate HTTP status code:
//
//	{"error": "room not found"}
//
// The REST surface is deliberately read-only: joining, starting, passing
// and resetting are WebSocket messages so that every mutation shares the
// same serialized path and broadcast semantics.
package api
