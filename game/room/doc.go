// Package room holds the data model for Hot Potato rooms.
//
// The package implements:
//   - Room and Player entities with ordered membership
//   - The room phase state machine (lobby → playing → ended → lobby)
//   - Host assignment and first-in-order host succession
//   - Potato hand-off and deadline-based round ending
//   - An in-memory Store mapping room ids to rooms
//
// Rules live on the Room type and are pure state transitions: they take
// no locks, start no timers, and send nothing. Scheduling (the periodic
// deadline sweep, disconnect grace timers) and broadcasting belong to the
// service package, which also serializes all access to rooms.
//
// Invariants maintained by the transitions:
//   - len(Players) never exceeds MaxPlayers
//   - exactly one player has IsHost set while the room is non-empty, and
//     its id equals HostID
//   - EndTime is non-zero if and only if Phase is PhasePlaying
//   - PotatoHolderID, when set, referenced a member at assignment time;
//     it may go stale if that member leaves mid-round, which EndRound
//     tolerates by reporting no loser
package room
