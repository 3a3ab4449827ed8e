package locate

import (
	"os"
	"path/filepath"
	"testing"
)

const validYAML = `
floor_height_m: 3.048
anchors:
  - id: readingroom
    x: 3.05
    y: 3.05
    z: 1.52
  - id: studio
    x: 11.28
    y: 1.83
    z: 0.91
  - id: kitchen
    x: 4.57
    y: 1.83
    z: 3.96
rooms:
  - name: The Reading Space
    min: [0, 0, 0]
    max: [4.11, 6.4, 3.05]
  - name: Studio
    min: [4.11, 0, 0]
    max: [8.23, 6.4, 3.05]
devices:
  - id: "irk:1f675efed04b065afa81b46b500cf042"
    name: Su Watch
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validYAML))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Anchors) != 3 || len(cfg.Rooms) != 2 || len(cfg.Devices) != 1 {
		t.Errorf("tables: %d anchors, %d rooms, %d devices",
			len(cfg.Anchors), len(cfg.Rooms), len(cfg.Devices))
	}
	// Omitted fields take defaults.
	if cfg.TTLSeconds != 60 {
		t.Errorf("TTLSeconds = %d, want default 60", cfg.TTLSeconds)
	}
	if cfg.MinAnchors != 3 {
		t.Errorf("MinAnchors = %d, want default 3", cfg.MinAnchors)
	}

	anchors := cfg.AnchorMap()
	if a, ok := anchors["kitchen"]; !ok || a.Pos.Z != 3.96 {
		t.Errorf("AnchorMap[kitchen] = %+v", a)
	}
	rooms := cfg.RoomBoundaries()
	if rooms[0].Name != "The Reading Space" {
		t.Errorf("room order not preserved: first is %q", rooms[0].Name)
	}
	names := cfg.DeviceNames()
	if names["irk:1f675efed04b065afa81b46b500cf042"] != "Su Watch" {
		t.Errorf("DeviceNames = %v", names)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"not yaml", "{{{"},
		{"no anchors", `
rooms:
  - name: Studio
    min: [0, 0, 0]
    max: [1, 1, 1]
devices:
  - id: d
    name: D
`},
		{"no devices", `
anchors:
  - id: a
rooms:
  - name: Studio
    min: [0, 0, 0]
    max: [1, 1, 1]
`},
		{"no rooms", `
anchors:
  - id: a
devices:
  - id: d
    name: D
`},
		{"min above max", `
anchors:
  - id: a
rooms:
  - name: Studio
    min: [2, 0, 0]
    max: [1, 1, 1]
devices:
  - id: d
    name: D
`},
		{"duplicate anchor", `
anchors:
  - id: a
  - id: a
rooms:
  - name: Studio
    min: [0, 0, 0]
    max: [1, 1, 1]
devices:
  - id: d
    name: D
`},
		{"negative floor height", `
floor_height_m: -3
anchors:
  - id: a
rooms:
  - name: Studio
    min: [0, 0, 0]
    max: [1, 1, 1]
devices:
  - id: d
    name: D
`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfig(writeConfig(t, tt.content)); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
