package web

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"locate-go/internal/log"
	"locate-go/locate"
)

// Server exposes the tracker over HTTP: a websocket feed of room
// transitions at /ws and the current location table at /api/locations.
// It also implements locate.Notifier, broadcasting each transition.
type Server struct {
	Hub     *Hub
	tracker *locate.Tracker
}

// roomEvent is the websocket wire format for one transition.
type roomEvent struct {
	DeviceID string       `json:"device_id"`
	Name     string       `json:"name"`
	Room     string       `json:"room"`
	Position locate.Point `json:"position"`
	At       time.Time    `json:"at"`
}

func NewServer(tr *locate.Tracker) *Server {
	return &Server{
		Hub:     NewHub(),
		tracker: tr,
	}
}

// RoomChanged implements locate.Notifier.
func (s *Server) RoomChanged(deviceID string, st locate.DeviceState) {
	evt := roomEvent{
		DeviceID: deviceID,
		Name:     st.FriendlyName,
		Room:     st.Room,
		Position: st.Position,
		At:       st.Timestamp,
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	s.Hub.Broadcast(b)
}

// Handler returns the HTTP mux, separate from Start so tests can drive it
// with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		serveWs(s.Hub, w, r)
	})
	mux.HandleFunc("/api/locations", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(s.tracker.Snapshot())
	})
	return mux
}

// Start runs the HTTP server. It blocks; run it in a goroutine.
func (s *Server) Start(port int) error {
	go s.Hub.Run()
	addr := fmt.Sprintf(":%d", port)
	log.Info("http server listening", "addr", addr)
	return http.ListenAndServe(addr, s.Handler())
}
