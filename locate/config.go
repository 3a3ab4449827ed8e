package locate

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// AnchorConfig is one fixed anchor position in meters from the building
// origin corner.
type AnchorConfig struct {
	ID string  `yaml:"id" json:"id"`
	X  float64 `yaml:"x" json:"x"`
	Y  float64 `yaml:"y" json:"y"`
	Z  float64 `yaml:"z" json:"z"`
}

// RoomConfig is one axis-aligned room volume. Min and Max are [x, y, z].
type RoomConfig struct {
	Name string     `yaml:"name" json:"name"`
	Min  [3]float64 `yaml:"min" json:"min"`
	Max  [3]float64 `yaml:"max" json:"max"`
}

// DeviceConfig maps an opaque device identifier to a display name.
type DeviceConfig struct {
	ID   string `yaml:"id" json:"id"`
	Name string `yaml:"name" json:"name"`
}

// Config is the full static configuration surface. Loaded once at startup
// and immutable afterwards.
type Config struct {
	FloorHeight float64 `yaml:"floor_height_m" json:"floor_height_m"`
	TTLSeconds  int     `yaml:"reading_ttl_s" json:"reading_ttl_s"`
	MinAnchors  int     `yaml:"min_anchors" json:"min_anchors"`

	Anchors []AnchorConfig `yaml:"anchors" json:"anchors"`
	Rooms   []RoomConfig   `yaml:"rooms" json:"rooms"`
	Devices []DeviceConfig `yaml:"devices" json:"devices"`
}

// LoadConfig reads and validates a YAML config file. Any error here is
// fatal to the caller: the engine cannot compute positions without a valid
// anchor and room table.
func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	cfg := &Config{}
	if err := yaml.Unmarshal(b, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.FloorHeight == 0 {
		c.FloorHeight = DefaultFloorHeight
	}
	if c.TTLSeconds == 0 {
		c.TTLSeconds = int(DefaultTTL / time.Second)
	}
	if c.MinAnchors == 0 {
		c.MinAnchors = DefaultMinAnchors
	}
}

// Validate checks the tables the engine depends on.
func (c *Config) Validate() error {
	if c.FloorHeight <= 0 {
		return fmt.Errorf("floor_height_m must be positive, got %v", c.FloorHeight)
	}
	if c.TTLSeconds <= 0 {
		return fmt.Errorf("reading_ttl_s must be positive, got %d", c.TTLSeconds)
	}
	if c.MinAnchors < 1 {
		return fmt.Errorf("min_anchors must be at least 1, got %d", c.MinAnchors)
	}
	if len(c.Anchors) == 0 {
		return fmt.Errorf("no anchors configured")
	}
	if len(c.Devices) == 0 {
		return fmt.Errorf("no devices configured")
	}
	if len(c.Rooms) == 0 {
		return fmt.Errorf("no rooms configured")
	}
	seen := map[string]bool{}
	for _, a := range c.Anchors {
		if a.ID == "" {
			return fmt.Errorf("anchor with empty id")
		}
		if seen[a.ID] {
			return fmt.Errorf("duplicate anchor id %q", a.ID)
		}
		seen[a.ID] = true
	}
	for _, d := range c.Devices {
		if d.ID == "" {
			return fmt.Errorf("device with empty id")
		}
	}
	for _, r := range c.Rooms {
		if r.Name == "" {
			return fmt.Errorf("room with empty name")
		}
		for axis := 0; axis < 3; axis++ {
			if r.Min[axis] > r.Max[axis] {
				return fmt.Errorf("room %q: min > max on axis %d", r.Name, axis)
			}
		}
	}
	return nil
}

// TTL returns the reading time-to-live as a duration.
func (c *Config) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// AnchorMap returns the anchor table keyed by id.
func (c *Config) AnchorMap() map[string]AnchorNode {
	m := make(map[string]AnchorNode, len(c.Anchors))
	for _, a := range c.Anchors {
		m[a.ID] = AnchorNode{ID: a.ID, Pos: Point{X: a.X, Y: a.Y, Z: a.Z}}
	}
	return m
}

// RoomBoundaries returns the room table in declaration order.
func (c *Config) RoomBoundaries() []RoomBoundary {
	rooms := make([]RoomBoundary, 0, len(c.Rooms))
	for _, r := range c.Rooms {
		rooms = append(rooms, RoomBoundary{
			Name: r.Name,
			Min:  Point{X: r.Min[0], Y: r.Min[1], Z: r.Min[2]},
			Max:  Point{X: r.Max[0], Y: r.Max[1], Z: r.Max[2]},
		})
	}
	return rooms
}

// DeviceNames returns the device display-name table keyed by id.
func (c *Config) DeviceNames() map[string]string {
	m := make(map[string]string, len(c.Devices))
	for _, d := range c.Devices {
		m[d.ID] = d.Name
	}
	return m
}
