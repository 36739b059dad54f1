package service

import (
	"context"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/room"
)

// Conn is one client connection as the engine sees it. Send queues a
// serialized message and reports false when the connection is closed or
// cannot accept writes; fanout treats false as "skip", never as an error.
type Conn interface {
	Send(payload []byte) bool
}

// Binding associates a live connection with the player and room it joined
// as. A connection holds at most one binding at a time.
type Binding struct {
	PlayerID string
	RoomID   string
}

// Stats summarizes the engine for the observability endpoints.
type Stats struct {
	Rooms        int `json:"rooms"`
	PlayingRooms int `json:"playing_rooms"`
	Players      int `json:"players"`
	Connections  int `json:"connections"`
}

// Directory is the read-only view of the engine consumed by the REST API
// and, through it, the MCP tools.
type Directory interface {
	ListRooms(ctx context.Context) []room.Snapshot
	GetRoom(ctx context.Context, roomID string) (room.Snapshot, error)
	Stats(ctx context.Context) Stats
}
