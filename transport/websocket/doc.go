// Package websocket provides the WebSocket transport for the Hot Potato
// server.
//
// The websocket package implements:
//   - Connection upgrade and lifecycle management
//   - Read/write pumps with ping/pong keepalive
//   - Per-client buffered outbound queues with non-blocking sends
//
// Architecture:
//
// The Hub tracks open connections; each connection runs a read pump and
// a write pump in their own goroutines. Game semantics stay out of this
// package: inbound payloads are handed to a Handler (the service) one
// message at a time, and the service addresses outbound traffic through
// the service.Conn interface that Client implements.
//
// Connection Lifecycle:
//
//  1. Client connects to /ws and is registered, unbound
//  2. Client sends JOIN_ROOM; the service binds it to a room
//  3. Messages flow both ways, one JSON document per frame
//  4. On connection loss the handler is told once, which starts the
//     disconnect grace period; the client's send queue is closed
package websocket
