package main

import (
	"flag"
	"fmt"
	"os"

	"locate-go/internal/log"
	"locate-go/locate"
)

// roomcheck resolves a point against the configured room table. Handy for
// sanity-checking a room layout before deploying it.
func main() {
	configPath := flag.String("config", "config.yaml", "Path to anchor/room/device configuration")
	x := flag.Float64("x", 0, "X in meters")
	y := flag.Float64("y", 0, "Y in meters")
	z := flag.Float64("z", 0, "Z in meters")
	snap := flag.Bool("snap", false, "Snap z to the nearest floor center first")
	flag.Parse()

	log.Init("warn")

	cfg, err := locate.LoadConfig(*configPath)
	if err != nil {
		fmt.Printf("configuration invalid: %v\n", err)
		os.Exit(1)
	}

	p := locate.Point{X: *x, Y: *y, Z: *z}
	if *snap {
		tri := locate.NewTriangulator(cfg.AnchorMap(), cfg.FloorHeight)
		p.Z = tri.SnapFloor(p.Z)
	}

	index := locate.NewRoomIndex(cfg.RoomBoundaries())
	fmt.Printf("(%.2f, %.2f, %.2f) -> %s\n", p.X, p.Y, p.Z, index.DetermineRoom(p))
}
