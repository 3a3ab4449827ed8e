package locate

import (
	"math"
	"sync"
	"time"

	"locate-go/internal/log"
)

// StateStore is the persistence port. Save always receives the full state
// table; Load tolerates a missing or corrupt backing file by returning an
// empty map.
type StateStore interface {
	Load() (map[string]DeviceState, error)
	Save(states map[string]DeviceState) error
}

// Notifier receives room transitions.
type Notifier interface {
	RoomChanged(deviceID string, state DeviceState)
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(deviceID string, state DeviceState)

func (f NotifierFunc) RoomChanged(deviceID string, state DeviceState) { f(deviceID, state) }

// trackedDevice serializes processing for one device. Two readings for the
// same device must not race on its state; readings for different devices
// may be handled concurrently.
type trackedDevice struct {
	mu   sync.Mutex
	name string
}

// Tracker is the orchestrator: it ingests readings, triangulates when
// enough fresh data exists, resolves the room, and persists and notifies
// only when the room changes.
type Tracker struct {
	anchors    map[string]AnchorNode
	devices    map[string]*trackedDevice
	readings   *ReadingStore
	tri        *Triangulator
	rooms      *RoomIndex
	ttl        time.Duration
	minAnchors int

	store    StateStore
	notifier Notifier

	stateMu sync.RWMutex
	states  map[string]DeviceState
}

// NewTracker builds a Tracker from validated configuration. If store is
// non-nil, previously persisted state is restored; load failures are logged
// and every device falls back to RoomUnknown.
func NewTracker(cfg *Config, store StateStore) *Tracker {
	devices := make(map[string]*trackedDevice, len(cfg.Devices))
	states := make(map[string]DeviceState, len(cfg.Devices))
	for _, d := range cfg.Devices {
		devices[d.ID] = &trackedDevice{name: d.Name}
		states[d.ID] = DeviceState{Room: RoomUnknown, FriendlyName: d.Name}
	}

	anchors := cfg.AnchorMap()
	t := &Tracker{
		anchors:    anchors,
		devices:    devices,
		readings:   NewReadingStore(),
		tri:        NewTriangulator(anchors, cfg.FloorHeight),
		rooms:      NewRoomIndex(cfg.RoomBoundaries()),
		ttl:        cfg.TTL(),
		minAnchors: cfg.MinAnchors,
		store:      store,
		states:     states,
	}
	t.restore()
	return t
}

// SetNotifier installs the room-change notifier.
func (t *Tracker) SetNotifier(n Notifier) {
	t.notifier = n
}

// restore merges persisted state over the initial RoomUnknown table.
// Entries for devices no longer configured are dropped; display names are
// refreshed from the current configuration.
func (t *Tracker) restore() {
	if t.store == nil {
		return
	}
	saved, err := t.store.Load()
	if err != nil {
		log.Warn("state restore failed, starting unknown", "error", err)
		return
	}
	for id, st := range saved {
		dev, ok := t.devices[id]
		if !ok {
			continue
		}
		st.FriendlyName = dev.name
		t.states[id] = st
	}
}

// HandleReading runs the full pipeline for one incoming reading. Unknown
// devices and anchors and invalid distances are dropped silently: the
// ingestion boundary subscribes broadly and garbage is expected.
func (t *Tracker) HandleReading(deviceID, anchorID string, distance float64, now time.Time) {
	dev, ok := t.devices[deviceID]
	if !ok {
		log.Debug("reading for untracked device", "device", deviceID)
		return
	}
	if _, ok := t.anchors[anchorID]; !ok {
		log.Debug("reading from unknown anchor", "anchor", anchorID)
		return
	}
	if distance < 0 || math.IsNaN(distance) || math.IsInf(distance, 0) {
		log.Debug("invalid distance", "device", deviceID, "anchor", anchorID, "distance", distance)
		return
	}

	dev.mu.Lock()
	defer dev.mu.Unlock()

	t.readings.Ingest(deviceID, anchorID, distance, now)
	valid := t.readings.ValidReadings(deviceID, now, t.ttl)
	if len(valid) < t.minAnchors {
		// Not an error: the device may simply be near few anchors. The
		// last known room is kept rather than reset.
		return
	}

	pos := t.tri.Triangulate(valid)
	room := t.rooms.DetermineRoom(pos)

	t.stateMu.Lock()
	if room == t.states[deviceID].Room {
		t.stateMu.Unlock()
		return
	}
	state := DeviceState{Room: room, Position: pos, Timestamp: now, FriendlyName: dev.name}
	t.states[deviceID] = state
	t.stateMu.Unlock()

	t.persist()
	if t.notifier != nil {
		t.notifier.RoomChanged(deviceID, state)
	}
	log.Info("device moved", "device", dev.name, "room", room,
		"x", pos.X, "y", pos.Y, "z", pos.Z)
}

// persist writes the full state table. Failures are logged and the
// in-memory state stands; durability is best-effort.
func (t *Tracker) persist() {
	if t.store == nil {
		return
	}
	if err := t.store.Save(t.Snapshot()); err != nil {
		log.Warn("state save failed", "error", err)
	}
}

// Snapshot returns a copy of the current state table.
func (t *Tracker) Snapshot() map[string]DeviceState {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	out := make(map[string]DeviceState, len(t.states))
	for id, st := range t.states {
		out[id] = st
	}
	return out
}

// State returns the current state for one device.
func (t *Tracker) State(deviceID string) (DeviceState, bool) {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	st, ok := t.states[deviceID]
	return st, ok
}

// Devices returns the configured device display-name table.
func (t *Tracker) Devices() map[string]string {
	out := make(map[string]string, len(t.devices))
	for id, d := range t.devices {
		out[id] = d.name
	}
	return out
}

// Anchors returns the configured anchor table.
func (t *Tracker) Anchors() map[string]AnchorNode {
	return t.anchors
}
