package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"locate-go/locate"
)

func webConfig() *locate.Config {
	return &locate.Config{
		FloorHeight: 3,
		TTLSeconds:  60,
		MinAnchors:  3,
		Anchors: []locate.AnchorConfig{
			{ID: "a"}, {ID: "b", X: 10}, {ID: "c", Y: 10},
		},
		Rooms: []locate.RoomConfig{
			{Name: "Studio", Min: [3]float64{0, 0, 0}, Max: [3]float64{10, 10, 3}},
		},
		Devices: []locate.DeviceConfig{{ID: "irk:dev", Name: "Su Watch"}},
	}
}

func TestLocationsEndpoint(t *testing.T) {
	tracker := locate.NewTracker(webConfig(), nil)
	now := time.Now()
	for _, anchor := range []string{"a", "b", "c"} {
		tracker.HandleReading("irk:dev", anchor, 1, now)
	}

	srv := httptest.NewServer(NewServer(tracker).Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/locations")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var states map[string]locate.DeviceState
	if err := json.NewDecoder(resp.Body).Decode(&states); err != nil {
		t.Fatal(err)
	}
	st, ok := states["irk:dev"]
	if !ok {
		t.Fatalf("device missing from response: %v", states)
	}
	if st.Room != "Studio" || st.FriendlyName != "Su Watch" {
		t.Errorf("state = %+v", st)
	}
}

func TestLocationsEndpointMethodNotAllowed(t *testing.T) {
	tracker := locate.NewTracker(webConfig(), nil)
	srv := httptest.NewServer(NewServer(tracker).Handler())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/locations", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", resp.StatusCode)
	}
}
