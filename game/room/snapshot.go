package room

// Snapshot is the wire representation of a room, broadcast with every
// state change. Key names match what clients already parse: endTime is
// Unix milliseconds, and both potatoHolderId and endTime serialize as
// null while unset.
type Snapshot struct {
	RoomID         string   `json:"roomId"`
	Players        []Player `json:"players"`
	Phase          Phase    `json:"phase"`
	PotatoHolderID *string  `json:"potatoHolderId"`
	EndTime        *int64   `json:"endTime"`
	MaxPlayers     int      `json:"maxPlayers"`
	HostID         string   `json:"hostId"`
}

// Snapshot copies the room's current state into its wire form. Players
// are copied by value so the snapshot stays stable after the room mutates.
func (r *Room) Snapshot() Snapshot {
	players := make([]Player, len(r.Players))
	for i, p := range r.Players {
		players[i] = *p
	}

	snap := Snapshot{
		RoomID:     r.ID,
		Players:    players,
		Phase:      r.Phase,
		MaxPlayers: r.MaxPlayers,
		HostID:     r.HostID,
	}
	if r.PotatoHolderID != "" {
		holder := r.PotatoHolderID
		snap.PotatoHolderID = &holder
	}
	if !r.EndTime.IsZero() {
		ms := r.EndTime.UnixMilli()
		snap.EndTime = &ms
	}
	return snap
}
