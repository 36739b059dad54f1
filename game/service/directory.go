package service

import (
	"context"
	"sort"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/room"
)

// ListRooms returns a snapshot of every room, ordered by room id.
func (s *Service) ListRooms(ctx context.Context) []room.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	rooms := s.store.List()
	snaps := make([]room.Snapshot, 0, len(rooms))
	for _, rm := range rooms {
		snaps = append(snaps, rm.Snapshot())
	}
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].RoomID < snaps[j].RoomID })
	return snaps
}

// GetRoom returns the snapshot of one room, or room.ErrNotFound.
func (s *Service) GetRoom(ctx context.Context, roomID string) (room.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rm, ok := s.store.Get(roomID)
	if !ok {
		return room.Snapshot{}, room.ErrNotFound
	}
	return rm.Snapshot(), nil
}

// Stats summarizes the engine state.
func (s *Service) Stats(ctx context.Context) Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Stats{
		Rooms:       s.store.Count(),
		Connections: s.registry.Count(),
	}
	for _, rm := range s.store.List() {
		stats.Players += len(rm.Players)
		if rm.Phase == room.PhasePlaying {
			stats.PlayingRooms++
		}
	}
	return stats
}
