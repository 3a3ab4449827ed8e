package locate

import "time"

// Engine constants mirrored from the deployed tracker.
const (
	// DefaultTTL is how long a distance reading stays usable for
	// triangulation. Readings at or past this age are treated as absent.
	DefaultTTL = 60 * time.Second

	// DefaultMinAnchors is the number of fresh readings required before a
	// position is computed.
	DefaultMinAnchors = 3

	// NearZeroDistance is the cutoff below which the inverse-square weight
	// would blow up; such readings get NearZeroWeight instead.
	NearZeroDistance = 0.1
	NearZeroWeight   = 100.0

	// DefaultFloorHeight is 10 feet in meters.
	DefaultFloorHeight = 10 * FeetToMeters

	FeetToMeters = 0.3048
	MetersToFeet = 3.28084
)

// Room sentinels. RoomUnknown is the initial state before any fix;
// RoomOutside means a fix landed outside every configured boundary.
const (
	RoomUnknown = "Unknown"
	RoomOutside = "Outside"
)
