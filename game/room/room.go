package room

import (
	"errors"
	"math/rand/v2"
	"time"
)

// Phase identifies where a room is in its round lifecycle.
//
// Rooms start in the lobby, move to playing when the host starts a round,
// and end when the round deadline elapses. The only way back to the lobby
// is an explicit reset by the host.
type Phase string

const (
	PhaseLobby   Phase = "lobby"
	PhasePlaying Phase = "playing"
	PhaseEnded   Phase = "ended"
)

var (
	ErrNotFound         = errors.New("room not found")
	ErrRoomFull         = errors.New("room is full")
	ErrGameInProgress   = errors.New("game in progress")
	ErrNameTaken        = errors.New("player name already taken")
	ErrNotHost          = errors.New("requester is not the host")
	ErrNotEnoughPlayers = errors.New("not enough players")
	ErrNotInLobby       = errors.New("room is not in the lobby phase")
	ErrGameNotActive    = errors.New("game is not active")
	ErrNotHolder        = errors.New("requester does not hold the potato")
	ErrPlayerNotFound   = errors.New("player not in room")
	ErrSelfPass         = errors.New("cannot pass the potato to yourself")
	ErrRoundNotOver     = errors.New("round is not over")
)

// Player is one seat in a room.
type Player struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Connected bool   `json:"connected"`
	IsHost    bool   `json:"isHost"`
}

// Room is the authoritative state for a single game room.
//
// Players keeps insertion order; the order is visible on the wire and is
// the tie-break for host succession. Room methods do no locking of their
// own — callers must serialize access (the service holds one lock across
// every mutation and the broadcast that reports it).
type Room struct {
	ID             string
	Players        []*Player
	Phase          Phase
	PotatoHolderID string    // empty when no holder is assigned
	EndTime        time.Time // zero unless Phase is PhasePlaying
	MaxPlayers     int
	HostID         string // empty only while the room has no players
}

// New creates an empty room in the lobby phase.
func New(id string, maxPlayers int) *Room {
	return &Room{
		ID:         id,
		Players:    []*Player{},
		Phase:      PhaseLobby,
		MaxPlayers: maxPlayers,
	}
}

// Player returns the member with the given id, or nil.
func (r *Room) Player(id string) *Player {
	for _, p := range r.Players {
		if p.ID == id {
			return p
		}
	}
	return nil
}

// Holder returns the current potato holder, or nil if the holder is not
// assigned or has already left the room.
func (r *Room) Holder() *Player {
	if r.PotatoHolderID == "" {
		return nil
	}
	return r.Player(r.PotatoHolderID)
}

func (r *Room) playerByName(name string) *Player {
	for _, p := range r.Players {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// AddPlayer appends a new player to the room. The first player to join
// becomes the host. Name comparison is case-sensitive exact match.
func (r *Room) AddPlayer(id, name string) (*Player, error) {
	if len(r.Players) >= r.MaxPlayers {
		return nil, ErrRoomFull
	}
	if r.Phase == PhasePlaying {
		return nil, ErrGameInProgress
	}
	if r.playerByName(name) != nil {
		return nil, ErrNameTaken
	}

	p := &Player{ID: id, Name: name, Connected: true}
	if len(r.Players) == 0 {
		p.IsHost = true
		r.HostID = id
	}
	r.Players = append(r.Players, p)
	return p, nil
}

// RemovePlayer removes the member with the given id, preserving the order
// of the remaining players. When the host leaves and players remain, the
// earliest-joined remaining player is promoted and returned as promoted.
// Removing an unknown id is a no-op.
func (r *Room) RemovePlayer(id string) (removed, promoted *Player) {
	idx := -1
	for i, p := range r.Players {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, nil
	}

	removed = r.Players[idx]
	r.Players = append(r.Players[:idx], r.Players[idx+1:]...)

	if len(r.Players) == 0 {
		r.HostID = ""
		return removed, nil
	}
	if removed.IsHost {
		promoted = r.Players[0]
		promoted.IsHost = true
		r.HostID = promoted.ID
	}
	return removed, promoted
}

// Start begins a round. Only the host may start, the room must hold at
// least minPlayers, and the room must be in the lobby phase — a finished
// round has to be reset before it can be started again.
//
// The potato holder is drawn uniformly from the current players and the
// deadline uniformly from [minTimer, maxTimer), once, at start.
func (r *Room) Start(requesterID string, minPlayers int, minTimer, maxTimer time.Duration) error {
	if r.HostID != requesterID {
		return ErrNotHost
	}
	if len(r.Players) < minPlayers {
		return ErrNotEnoughPlayers
	}
	if r.Phase != PhaseLobby {
		return ErrNotInLobby
	}

	r.Phase = PhasePlaying
	r.PotatoHolderID = r.Players[rand.IntN(len(r.Players))].ID
	r.EndTime = time.Now().Add(minTimer + rand.N(maxTimer-minTimer))
	return nil
}

// Pass hands the potato to target. Only the current holder may pass, only
// while a round is running, and only to a current member of the room.
// Passing to oneself is allowed unless allowSelf is false.
func (r *Room) Pass(requesterID, targetID string, allowSelf bool) (*Player, error) {
	if r.Phase != PhasePlaying {
		return nil, ErrGameNotActive
	}
	if r.PotatoHolderID != requesterID {
		return nil, ErrNotHolder
	}
	target := r.Player(targetID)
	if target == nil {
		return nil, ErrPlayerNotFound
	}
	if !allowSelf && targetID == requesterID {
		return nil, ErrSelfPass
	}

	r.PotatoHolderID = targetID
	return target, nil
}

// EndRound flips the room to ended if the round deadline has elapsed.
// The deadline is cleared together with the phase flip, so a room ends at
// most once per start regardless of how often the sweep runs. The loser
// is nil when the holder already left the room.
func (r *Room) EndRound(now time.Time) (loser *Player, ended bool) {
	if r.Phase != PhasePlaying || r.EndTime.IsZero() || now.Before(r.EndTime) {
		return nil, false
	}

	loser = r.Holder()
	r.Phase = PhaseEnded
	r.EndTime = time.Time{}
	return loser, true
}

// Reset returns an ended room to the lobby. Host only; rejected while a
// round is still running or when the room never left the lobby.
func (r *Room) Reset(requesterID string) error {
	if r.HostID != requesterID {
		return ErrNotHost
	}
	if r.Phase != PhaseEnded {
		return ErrRoundNotOver
	}

	r.Phase = PhaseLobby
	r.PotatoHolderID = ""
	r.EndTime = time.Time{}
	return nil
}
