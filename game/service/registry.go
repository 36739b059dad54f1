package service

import "sync"

// Registry tracks which connection is bound to which (player, room). It
// keeps a room → connection-set index so fanout costs O(room size)
// instead of O(total connections).
type Registry struct {
	mu       sync.RWMutex
	bindings map[Conn]Binding
	byRoom   map[string]map[Conn]struct{}
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		bindings: make(map[Conn]Binding),
		byRoom:   make(map[string]map[Conn]struct{}),
	}
}

// Bind associates a connection with a player and room, replacing any
// previous binding for the same connection.
func (g *Registry) Bind(c Conn, playerID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if old, ok := g.bindings[c]; ok {
		g.removeFromRoom(c, old.RoomID)
	}
	g.bindings[c] = Binding{PlayerID: playerID, RoomID: roomID}
	if g.byRoom[roomID] == nil {
		g.byRoom[roomID] = make(map[Conn]struct{})
	}
	g.byRoom[roomID][c] = struct{}{}
}

// Unbind removes a connection's binding and returns it.
func (g *Registry) Unbind(c Conn) (Binding, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	binding, ok := g.bindings[c]
	if !ok {
		return Binding{}, false
	}
	delete(g.bindings, c)
	g.removeFromRoom(c, binding.RoomID)
	return binding, true
}

// UnbindPlayer removes every binding in roomID that belongs to playerID.
// Used when a grace timer fires and the dead connection is only known by
// the player it carried.
func (g *Registry) UnbindPlayer(roomID, playerID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for c := range g.byRoom[roomID] {
		if g.bindings[c].PlayerID == playerID {
			delete(g.bindings, c)
			g.removeFromRoom(c, roomID)
		}
	}
}

// Lookup returns the binding for a connection.
func (g *Registry) Lookup(c Conn) (Binding, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	binding, ok := g.bindings[c]
	return binding, ok
}

// Connections returns the connections currently bound to a room.
func (g *Registry) Connections(roomID string) []Conn {
	g.mu.RLock()
	defer g.mu.RUnlock()

	conns := make([]Conn, 0, len(g.byRoom[roomID]))
	for c := range g.byRoom[roomID] {
		conns = append(conns, c)
	}
	return conns
}

// Count returns the number of bound connections.
func (g *Registry) Count() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.bindings)
}

// removeFromRoom drops c from the room index. Callers hold g.mu.
func (g *Registry) removeFromRoom(c Conn, roomID string) {
	if set, ok := g.byRoom[roomID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(g.byRoom, roomID)
		}
	}
}
