package protocol

import "github.com/Jarrettsmao/Hot-Potato-Online/game/room"

// Inbound message types (client → server).
const (
	TypeJoinRoom   = "JOIN_ROOM"
	TypeLeaveRoom  = "LEAVE_ROOM"
	TypeStartGame  = "START_GAME"
	TypePassPotato = "PASS_POTATO"
	TypePlayAgain  = "PLAY_AGAIN"
)

// Outbound message types (server → client).
const (
	TypeJoinSuccess     = "JOIN_SUCCESS"
	TypeLeaveSuccess    = "LEAVE_SUCCESS"
	TypeRoomUpdate      = "ROOM_UPDATE"
	TypeHostTransferred = "HOST_TRANSFERRED"
	TypeGameStarted     = "GAME_STARTED"
	TypePotatoPassed    = "POTATO_PASSED"
	TypeGameEnded       = "GAME_ENDED"
	TypeError           = "ERROR"
)

// Inbound is the envelope for every client → server message. Fields
// beyond Type are populated per message type; unknown fields are ignored.
type Inbound struct {
	Type           string `json:"type"`
	RoomID         string `json:"roomId,omitempty"`
	PlayerName     string `json:"playerName,omitempty"`
	TargetPlayerID string `json:"targetPlayerId,omitempty"`
}

// JoinSuccess is sent privately to a joining connection with its assigned
// player id and the full room snapshot.
type JoinSuccess struct {
	Type     string        `json:"type"`
	PlayerID string        `json:"playerId"`
	Room     room.Snapshot `json:"room"`
}

// LeaveSuccess confirms an explicit leave to the leaving connection.
type LeaveSuccess struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// RoomUpdate carries a fresh room snapshot to the whole room together
// with a human-readable note about what changed.
type RoomUpdate struct {
	Type    string        `json:"type"`
	Room    room.Snapshot `json:"room"`
	Message string        `json:"message"`
}

// HostTransferred announces host succession to the whole room.
type HostTransferred struct {
	Type      string        `json:"type"`
	NewHostID string        `json:"newHostId"`
	Room      room.Snapshot `json:"room"`
	Message   string        `json:"message"`
}

// GameStarted announces a new round and names the initial potato holder.
type GameStarted struct {
	Type    string        `json:"type"`
	Room    room.Snapshot `json:"room"`
	Message string        `json:"message"`
}

// PotatoPassed announces a hand-off and names the new holder.
type PotatoPassed struct {
	Type    string        `json:"type"`
	Room    room.Snapshot `json:"room"`
	Message string        `json:"message"`
}

// GameEnded announces the end of a round. Loser is omitted when the
// holder left before the deadline fired.
type GameEnded struct {
	Type    string        `json:"type"`
	Room    room.Snapshot `json:"room"`
	Loser   *room.Player  `json:"loser,omitempty"`
	Message string        `json:"message"`
}

// Error is sent privately to the connection whose request failed. The
// room state is unchanged and the connection stays open.
type Error struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

func NewJoinSuccess(playerID string, snap room.Snapshot) JoinSuccess {
	return JoinSuccess{Type: TypeJoinSuccess, PlayerID: playerID, Room: snap}
}

func NewLeaveSuccess(message string) LeaveSuccess {
	return LeaveSuccess{Type: TypeLeaveSuccess, Message: message}
}

func NewRoomUpdate(snap room.Snapshot, message string) RoomUpdate {
	return RoomUpdate{Type: TypeRoomUpdate, Room: snap, Message: message}
}

func NewHostTransferred(newHostID string, snap room.Snapshot, message string) HostTransferred {
	return HostTransferred{Type: TypeHostTransferred, NewHostID: newHostID, Room: snap, Message: message}
}

func NewGameStarted(snap room.Snapshot, message string) GameStarted {
	return GameStarted{Type: TypeGameStarted, Room: snap, Message: message}
}

func NewPotatoPassed(snap room.Snapshot, message string) PotatoPassed {
	return PotatoPassed{Type: TypePotatoPassed, Room: snap, Message: message}
}

func NewGameEnded(snap room.Snapshot, loser *room.Player, message string) GameEnded {
	return GameEnded{Type: TypeGameEnded, Room: snap, Loser: loser, Message: message}
}

func NewError(message string) Error {
	return Error{Type: TypeError, Message: message}
}
