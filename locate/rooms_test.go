package locate

import "testing"

func testRooms() []RoomBoundary {
	return []RoomBoundary{
		{Name: "Studio", Min: Point{0, 0, 0}, Max: Point{5, 10, 3}},
		{Name: "Hall", Min: Point{5, 0, 0}, Max: Point{10, 10, 3}},
		{Name: "Bedroom", Min: Point{0, 0, 3}, Max: Point{10, 10, 6}},
	}
}

func TestDetermineRoom(t *testing.T) {
	index := NewRoomIndex(testRooms())
	tests := []struct {
		name string
		p    Point
		want string
	}{
		{"inside first room", Point{2, 2, 1.5}, "Studio"},
		{"inside second room", Point{7, 2, 1.5}, "Hall"},
		{"upper floor", Point{2, 2, 4.5}, "Bedroom"},
		{"corner is inclusive", Point{0, 0, 0}, "Studio"},
		{"far corner is inclusive", Point{10, 10, 3}, "Hall"},
		{"outside x", Point{11, 2, 1.5}, RoomOutside},
		{"outside z", Point{2, 2, 7.5}, RoomOutside},
		{"negative", Point{-0.1, 2, 1.5}, RoomOutside},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := index.DetermineRoom(tt.p); got != tt.want {
				t.Errorf("DetermineRoom(%+v) = %q, want %q", tt.p, got, tt.want)
			}
		})
	}
}

// Studio and Hall share the wall at x=5 and bounds are inclusive on both
// sides, so a point exactly on the wall is inside both. Declaration order
// is the tie-break: the first-listed room wins. Pinned here on purpose;
// reordering the room table changes the answer.
func TestDetermineRoomSharedWallFirstMatchWins(t *testing.T) {
	onWall := Point{5, 3, 1.5}

	index := NewRoomIndex(testRooms())
	if got := index.DetermineRoom(onWall); got != "Studio" {
		t.Errorf("shared wall resolved to %q, want first-listed Studio", got)
	}

	reversed := NewRoomIndex([]RoomBoundary{
		{Name: "Hall", Min: Point{5, 0, 0}, Max: Point{10, 10, 3}},
		{Name: "Studio", Min: Point{0, 0, 0}, Max: Point{5, 10, 3}},
	})
	if got := reversed.DetermineRoom(onWall); got != "Hall" {
		t.Errorf("reversed order resolved to %q, want first-listed Hall", got)
	}
}

func TestDetermineRoomEmptyIndex(t *testing.T) {
	index := NewRoomIndex(nil)
	if got := index.DetermineRoom(Point{1, 1, 1}); got != RoomOutside {
		t.Errorf("empty index returned %q, want %q", got, RoomOutside)
	}
}
