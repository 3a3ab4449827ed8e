package locate

import "time"

// Point is a position in the building frame, meters from the origin corner.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// AnchorNode describes a fixed receiver that reports distance estimates to
// tracked devices. The set of anchors is immutable after startup.
type AnchorNode struct {
	ID  string
	Pos Point
}

// Reading is the most recent distance report from one anchor for one device.
// A newer reading for the same (device, anchor) pair replaces the old one.
type Reading struct {
	AnchorID string
	Distance float64
	At       time.Time
}

// RoomBoundary is an axis-aligned box with inclusive bounds on all faces.
type RoomBoundary struct {
	Name string
	Min  Point
	Max  Point
}

// Contains reports whether p lies inside the boundary. All six faces are
// inclusive, so a point on a wall shared by two rooms is inside both; the
// RoomIndex breaks that tie by declaration order.
func (r RoomBoundary) Contains(p Point) bool {
	return r.Min.X <= p.X && p.X <= r.Max.X &&
		r.Min.Y <= p.Y && p.Y <= r.Max.Y &&
		r.Min.Z <= p.Z && p.Z <= r.Max.Z
}

// DeviceState is the last known location of one tracked device. It changes
// only when the resolved room changes.
type DeviceState struct {
	Room         string    `json:"room"`
	Position     Point     `json:"position"`
	Timestamp    time.Time `json:"timestamp"`
	FriendlyName string    `json:"friendly_name"`
}
