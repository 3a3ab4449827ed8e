package locate

// RoomIndex resolves positions against an ordered room table. Boundaries
// are expected to be mutually exclusive, but bounds are inclusive on every
// face, so a point exactly on a shared wall is contained by both rooms.
// Declaration order is the documented tie-break: first match wins.
type RoomIndex struct {
	rooms []RoomBoundary
}

// NewRoomIndex builds an index over the given boundaries, preserving order.
func NewRoomIndex(rooms []RoomBoundary) *RoomIndex {
	return &RoomIndex{rooms: rooms}
}

// DetermineRoom returns the name of the first boundary containing p, or
// RoomOutside when none does.
func (ri *RoomIndex) DetermineRoom(p Point) string {
	for _, r := range ri.rooms {
		if r.Contains(p) {
			return r.Name
		}
	}
	return RoomOutside
}

// Rooms returns the boundary table in declaration order.
func (ri *RoomIndex) Rooms() []RoomBoundary {
	return ri.rooms
}
