package service

import (
	"log"
	"time"
)

// Disconnected handles abrupt connection loss. The player keeps their
// seat for the configured grace period so a network blip or tab refresh
// does not evict them mid-lobby or mid-round; only the grace timer firing
// (or an explicit leave racing it) finalizes the removal. The transport
// calls this exactly once per lost connection.
func (s *Service) Disconnected(c Conn) {
	s.mu.Lock()
	defer s.mu.Unlock()

	binding, ok := s.registry.Lookup(c)
	if !ok {
		return
	}

	rm, ok := s.store.Get(binding.RoomID)
	if !ok {
		s.registry.Unbind(c)
		return
	}
	if p := rm.Player(binding.PlayerID); p != nil {
		p.Connected = false
	}

	s.scheduleGrace(binding)
	log.Printf("room %s: player %s disconnected, grace %s",
		binding.RoomID, binding.PlayerID, s.cfg.GracePeriod())
}

// scheduleGrace arms the grace timer for a player, replacing any timer
// already pending for the same id. Callers hold s.mu.
func (s *Service) scheduleGrace(binding Binding) {
	if t, ok := s.grace[binding.PlayerID]; ok {
		t.Stop()
	}
	s.grace[binding.PlayerID] = time.AfterFunc(s.cfg.GracePeriod(), func() {
		s.expireGrace(binding)
	})
}

// expireGrace finalizes a disconnect: the player is removed if still
// present, host succession applies exactly as for an explicit leave, and
// an emptied room is destroyed. The map check makes the expiry a no-op
// when an explicit leave cancelled the timer after it already fired.
func (s *Service) expireGrace(binding Binding) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.grace[binding.PlayerID]; !ok {
		return
	}
	delete(s.grace, binding.PlayerID)

	s.registry.UnbindPlayer(binding.RoomID, binding.PlayerID)
	s.removePlayer(binding.RoomID, binding.PlayerID, true)
}

// cancelGrace stops and forgets a pending grace timer. Callers hold s.mu.
func (s *Service) cancelGrace(playerID string) {
	if t, ok := s.grace[playerID]; ok {
		t.Stop()
		delete(s.grace, playerID)
	}
}
