package locate

import (
	"gonum.org/v1/gonum/floats"
)

// Triangulator converts a set of fresh anchor distances into a position
// estimate. It is a weighted centroid, not a least-squares solver: each
// anchor pulls the estimate toward itself with weight 1/d². That is crude
// but stable with as few as three anchors and noisy BLE distances.
type Triangulator struct {
	anchors     map[string]AnchorNode
	floorHeight float64
}

// NewTriangulator builds a Triangulator over a fixed anchor table.
func NewTriangulator(anchors map[string]AnchorNode, floorHeight float64) *Triangulator {
	if floorHeight <= 0 {
		floorHeight = DefaultFloorHeight
	}
	return &Triangulator{anchors: anchors, floorHeight: floorHeight}
}

// Weight returns the multilateration weight for a distance in meters.
// Distances at or below NearZeroDistance get a fixed large weight rather
// than an unbounded 1/d².
func Weight(distance float64) float64 {
	if distance > NearZeroDistance {
		return 1.0 / (distance * distance)
	}
	return NearZeroWeight
}

// Triangulate estimates a position from the given readings. The caller must
// ensure len(readings) covers the minimum anchor count; readings from
// anchors missing from the table are skipped. X and Y stay continuous, Z is
// snapped to a floor center.
func (t *Triangulator) Triangulate(readings map[string]Reading) Point {
	var pos [3]float64
	total := 0.0
	for anchorID, r := range readings {
		a, ok := t.anchors[anchorID]
		if !ok {
			continue
		}
		w := Weight(r.Distance)
		floats.AddScaled(pos[:], w, []float64{a.Pos.X, a.Pos.Y, a.Pos.Z})
		total += w
	}
	if total > 0 {
		floats.Scale(1.0/total, pos[:])
	}
	return Point{X: pos[0], Y: pos[1], Z: t.SnapFloor(pos[2])}
}

// SnapFloor discretizes a raw z estimate to the center of one of three
// floors: 0.5, 1.5 or 2.5 floor heights. Signals bleed through ceilings, so
// the raw weighted z is too noisy to keep. Thresholds are inclusive, which
// makes snapping an already-snapped value a no-op.
func (t *Triangulator) SnapFloor(z float64) float64 {
	switch {
	case z <= 0.5*t.floorHeight:
		return 0.5 * t.floorHeight
	case z <= 1.5*t.floorHeight:
		return 1.5 * t.floorHeight
	default:
		return 2.5 * t.floorHeight
	}
}
