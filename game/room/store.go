package room

import "sync"

// Store is the in-memory room registry. Rooms are created lazily on the
// first join to an unknown id and deleted the moment they empty; nothing
// is persisted.
//
// The store's lock guards only the map itself. Mutating a *Room obtained
// from the store still requires the caller's serialization (see Room).
type Store struct {
	mu    sync.RWMutex
	rooms map[string]*Room
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		rooms: make(map[string]*Room),
	}
}

// Get retrieves a room by id.
func (s *Store) Get(id string) (*Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rooms[id]
	return r, ok
}

// Put registers a room under its id, replacing any previous entry.
func (s *Store) Put(r *Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rooms[r.ID] = r
}

// Delete removes a room by id. Deleting an unknown id is a no-op.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rooms, id)
}

// List returns all rooms in unspecified order.
func (s *Store) List() []*Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		result = append(result, r)
	}
	return result
}

// Count returns the number of rooms.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rooms)
}
