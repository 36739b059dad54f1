// Package service implements the Hot Potato session/room engine.
//
// The service package implements:
//   - Message routing from connections to room operations
//   - The room lifecycle (join, leave, start, reset) and its validation
//   - The potato turn protocol
//   - The elimination timer (periodic deadline sweep)
//   - Disconnect reconciliation with a cancellable grace period
//   - The connection registry and room-scoped broadcast fanout
//
// Concurrency:
//
// Connections read in their own goroutines and grace timers fire from the
// runtime's timer goroutines, but all of them funnel into one service
// mutex. Every handler, sweep iteration, and grace callback runs to
// completion under that lock, which makes each state transition atomic
// with respect to the broadcast that announces it. Broadcasting inside
// the lock stays cheap because Conn.Send only queues into a per-client
// buffer and never blocks.
//
// The service deliberately owns no transport details: it talks to
// connections through the Conn interface, and transports hand inbound
// traffic to HandleMessage and connection losses to Disconnected.
package service
