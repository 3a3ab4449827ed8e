package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"locate-go/locate"
)

func sampleStates() map[string]locate.DeviceState {
	return map[string]locate.DeviceState{
		"irk:su-watch": {
			Room:         "Studio",
			Position:     locate.Point{X: 3.33, Y: 3.33, Z: 1.5},
			Timestamp:    time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC),
			FriendlyName: "Su Watch",
		},
		"irk:sn-phone": {
			Room:         locate.RoomUnknown,
			FriendlyName: "Sn iPhone",
		},
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_locations.json")
	fs := NewFileStore(path)

	want := sampleStates()
	require.NoError(t, fs.Save(want))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	fs := NewFileStore(filepath.Join(t.TempDir(), "absent.json"))
	got, err := fs.Load()
	require.NoError(t, err, "a missing state file is not an error")
	assert.Empty(t, got)
}

func TestFileStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_locations.json")
	require.NoError(t, os.WriteFile(path, []byte("{truncated"), 0o644))

	fs := NewFileStore(path)
	got, err := fs.Load()
	require.NoError(t, err, "a corrupt state file is not an error")
	assert.Empty(t, got)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "device_locations.json")
	fs := NewFileStore(path)

	require.NoError(t, fs.Save(sampleStates()))
	second := map[string]locate.DeviceState{
		"irk:su-watch": {Room: "Hall", FriendlyName: "Su Watch"},
	}
	require.NoError(t, fs.Save(second))

	got, err := fs.Load()
	require.NoError(t, err)
	assert.Equal(t, second, got, "save is a full overwrite, not a merge")
}
