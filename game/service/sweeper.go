package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/Jarrettsmao/Hot-Potato-Online/game/protocol"
)

// RunSweeper drives the elimination timer until ctx is cancelled. Round
// deadlines are enforced by polling, so the sweep interval bounds the
// worst-case latency between a deadline elapsing and the round ending
// (100 ms by default).
func (s *Service) RunSweeper(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.SweepInterval())
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.sweep(now)
		}
	}
}

// sweep ends every playing round whose deadline has passed. EndRound
// clears the deadline together with the phase flip, so a room ends at
// most once per start no matter how many sweeps observe it.
func (s *Service) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, rm := range s.store.List() {
		loser, ended := rm.EndRound(now)
		if !ended {
			continue
		}

		note := "💥 BOOM! Someone lost!"
		msg := protocol.NewGameEnded(rm.Snapshot(), nil, note)
		if loser != nil {
			loserCopy := *loser
			msg.Loser = &loserCopy
			msg.Message = fmt.Sprintf("💥 BOOM! %s lost!", loser.Name)
			log.Printf("room %s: round ended, %s lost", rm.ID, loser.Name)
		} else {
			// Holder left mid-round; the round still ends, with no loser.
			log.Printf("room %s: round ended, holder already gone", rm.ID)
		}
		s.broadcast(rm.ID, msg)
	}
}
