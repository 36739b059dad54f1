package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/config"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/protocol"
	"github.com/Jarrettsmao/Hot-Potato-Online/game/room"
)

// Service is the session/room engine: it owns the room lifecycle, the
// potato turn protocol, the elimination timer, and disconnect
// reconciliation.
//
// A single mutex serializes every message handler, every sweep iteration,
// and every grace-timer callback. Each of those units runs to completion
// — mutation and the broadcast reporting it — before the next one starts,
// so clients never observe a broadcast built from stale state.
type Service struct {
	cfg      *config.Config
	store    *room.Store
	registry *Registry

	mu    sync.Mutex
	grace map[string]*time.Timer // pending disconnect grace timers by player id
}

// New creates the engine around the given stores.
func New(cfg *config.Config, store *room.Store, registry *Registry) *Service {
	return &Service{
		cfg:      cfg,
		store:    store,
		registry: registry,
		grace:    make(map[string]*time.Timer),
	}
}

// HandleMessage dispatches one parsed client message. Unparseable
// payloads get a generic error; messages with an unknown or missing type
// are dropped. Neither touches room state or closes the connection.
func (s *Service) HandleMessage(c Conn, payload []byte) {
	var msg protocol.Inbound
	if err := json.Unmarshal(payload, &msg); err != nil {
		s.sendError(c, "Invalid message format")
		return
	}

	switch msg.Type {
	case protocol.TypeJoinRoom:
		s.Join(c, msg.RoomID, msg.PlayerName)
	case protocol.TypeLeaveRoom:
		s.Leave(c)
	case protocol.TypeStartGame:
		s.Start(c)
	case protocol.TypePassPotato:
		s.Pass(c, msg.TargetPlayerID)
	case protocol.TypePlayAgain:
		s.PlayAgain(c)
	}
}

// Join adds the connection to a room as a new player, creating the room
// if the id is unknown. On success the whole room gets a ROOM_UPDATE and
// the joiner additionally gets a private JOIN_SUCCESS with its player id.
func (s *Service) Join(c Conn, roomID, playerName string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, bound := s.registry.Lookup(c); bound {
		s.sendError(c, "You are already in a room")
		return
	}
	if roomID == "" || playerName == "" {
		s.sendError(c, "Room ID and player name required")
		return
	}
	if n := utf8.RuneCountInString(playerName); n < s.cfg.MinNameLength || n > s.cfg.MaxNameLength {
		s.sendError(c, fmt.Sprintf("Player name must be between %d and %d characters",
			s.cfg.MinNameLength, s.cfg.MaxNameLength))
		return
	}

	rm, ok := s.store.Get(roomID)
	if !ok {
		rm = room.New(roomID, s.cfg.MaxPlayers)
		s.store.Put(rm)
		log.Printf("room %s created", roomID)
	}

	p, err := rm.AddPlayer(uuid.NewString(), playerName)
	if err != nil {
		s.sendError(c, joinErrorText(err, rm))
		return
	}

	s.registry.Bind(c, p.ID, roomID)
	snap := rm.Snapshot()
	s.broadcast(roomID, protocol.NewRoomUpdate(snap, fmt.Sprintf("%s joined the room!", p.Name)))
	s.sendTo(c, protocol.NewJoinSuccess(p.ID, snap))
	log.Printf("room %s: %s joined (%d/%d players)", roomID, p.Name, len(rm.Players), rm.MaxPlayers)
}

// Leave removes the connection's player from its room, cancelling any
// pending grace timer for that player. The leaver is unbound before the
// room broadcast, so it only receives the private LEAVE_SUCCESS.
func (s *Service) Leave(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, ok := s.registry.Unbind(c)
	if !ok {
		s.sendError(c, "You are not in a room")
		return
	}

	s.cancelGrace(binding.PlayerID)
	s.removePlayer(binding.RoomID, binding.PlayerID, false)
	s.sendTo(c, protocol.NewLeaveSuccess("You have left the room"))
}

// Start begins a round in the connection's room. Host only, at least the
// configured minimum of players, lobby phase only.
func (s *Service) Start(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, rm, ok := s.boundRoom(c)
	if !ok {
		return
	}

	if err := rm.Start(binding.PlayerID, s.cfg.MinPlayers, s.cfg.MinTimer(), s.cfg.MaxTimer()); err != nil {
		s.sendError(c, startErrorText(err, s.cfg))
		return
	}

	holderName := "Someone"
	if h := rm.Holder(); h != nil {
		holderName = h.Name
	}
	s.broadcast(binding.RoomID, protocol.NewGameStarted(rm.Snapshot(),
		fmt.Sprintf("Game started! %s has the potato!", holderName)))
	log.Printf("room %s: game started, round ends in %s", binding.RoomID,
		time.Until(rm.EndTime).Round(time.Millisecond))
}

// Pass hands the potato to the given target player.
func (s *Service) Pass(c Conn, targetPlayerID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, rm, ok := s.boundRoom(c)
	if !ok {
		return
	}

	target, err := rm.Pass(binding.PlayerID, targetPlayerID, s.cfg.AllowSelfPass)
	if err != nil {
		s.sendError(c, passErrorText(err))
		return
	}

	s.broadcast(binding.RoomID, protocol.NewPotatoPassed(rm.Snapshot(),
		fmt.Sprintf("Potato passed to %s!", target.Name)))
	log.Printf("room %s: potato passed to %s", binding.RoomID, target.Name)
}

// PlayAgain resets an ended room back to the lobby. Host only.
func (s *Service) PlayAgain(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, rm, ok := s.boundRoom(c)
	if !ok {
		return
	}

	if err := rm.Reset(binding.PlayerID); err != nil {
		s.sendError(c, resetErrorText(err))
		return
	}

	s.broadcast(binding.RoomID, protocol.NewRoomUpdate(rm.Snapshot(),
		"Room reset! Ready for another round?"))
	log.Printf("room %s: reset for a new round", binding.RoomID)
}

// removePlayer takes a player out of a room and broadcasts the result:
// HOST_TRANSFERRED when succession happened, otherwise a plain
// ROOM_UPDATE whose note depends on whether the player left or timed out.
// An emptied room is destroyed instead of broadcast. Callers hold s.mu.
func (s *Service) removePlayer(roomID, playerID string, disconnected bool) {
	rm, ok := s.store.Get(roomID)
	if !ok {
		return
	}
	removed, promoted := rm.RemovePlayer(playerID)
	if removed == nil {
		return
	}

	if len(rm.Players) == 0 {
		s.store.Delete(roomID)
		log.Printf("room %s deleted (empty)", roomID)
		return
	}

	snap := rm.Snapshot()
	if promoted != nil {
		s.broadcast(roomID, protocol.NewHostTransferred(promoted.ID, snap,
			fmt.Sprintf("%s has left. %s is now the host", removed.Name, promoted.Name)))
		log.Printf("room %s: host transferred to %s", roomID, promoted.Name)
		return
	}

	note := fmt.Sprintf("%s has left the room", removed.Name)
	if disconnected {
		note = fmt.Sprintf("%s has disconnected", removed.Name)
	}
	s.broadcast(roomID, protocol.NewRoomUpdate(snap, note))
}

// boundRoom resolves the connection's binding and room, reporting the
// failure to the client itself. Callers hold s.mu.
func (s *Service) boundRoom(c Conn) (Binding, *room.Room, bool) {
	binding, ok := s.registry.Lookup(c)
	if !ok {
		s.sendError(c, "You are not in a room")
		return Binding{}, nil, false
	}
	rm, ok := s.store.Get(binding.RoomID)
	if !ok {
		s.sendError(c, "Room no longer exists")
		return binding, nil, false
	}
	return binding, rm, true
}

// broadcast fans a message out to every connection bound to the room.
// Unwritable connections are skipped; one bad connection never blocks
// delivery to the rest of the room.
func (s *Service) broadcast(roomID string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("marshal broadcast for room %s: %v", roomID, err)
		return
	}
	for _, c := range s.registry.Connections(roomID) {
		c.Send(data)
	}
}

// sendTo delivers a message to a single connection.
func (s *Service) sendTo(c Conn, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		log.Printf("marshal outbound message: %v", err)
		return
	}
	c.Send(data)
}

func (s *Service) sendError(c Conn, text string) {
	s.sendTo(c, protocol.NewError(text))
}

func joinErrorText(err error, rm *room.Room) string {
	switch {
	case errors.Is(err, room.ErrRoomFull):
		return fmt.Sprintf("Room is full (max %d players)", rm.MaxPlayers)
	case errors.Is(err, room.ErrGameInProgress):
		return "Game in progress! Please wait for the next round."
	case errors.Is(err, room.ErrNameTaken):
		return "Player name already taken in this room. Please change it and try again."
	}
	return "Could not join the room"
}

func startErrorText(err error, cfg *config.Config) string {
	switch {
	case errors.Is(err, room.ErrNotHost):
		return "Only the host can start the game"
	case errors.Is(err, room.ErrNotEnoughPlayers):
		return fmt.Sprintf("Need at least %d players to start", cfg.MinPlayers)
	case errors.Is(err, room.ErrNotInLobby):
		return "Game can only be started from the lobby"
	}
	return "Could not start the game"
}

func passErrorText(err error) string {
	switch {
	case errors.Is(err, room.ErrGameNotActive):
		return "Game is not active"
	case errors.Is(err, room.ErrNotHolder):
		return "You do not have the potato"
	case errors.Is(err, room.ErrPlayerNotFound):
		return "Invalid target player"
	case errors.Is(err, room.ErrSelfPass):
		return "You cannot pass the potato to yourself"
	}
	return "Could not pass the potato"
}

func resetErrorText(err error) string {
	switch {
	case errors.Is(err, room.ErrNotHost):
		return "Only the host can reset the game"
	case errors.Is(err, room.ErrRoundNotOver):
		return "Game is still in progress"
	}
	return "Could not reset the game"
}
