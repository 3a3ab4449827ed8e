// Package server is the ingestion boundary: it subscribes to the anchor
// fleet's MQTT topics and feeds parsed distance readings into the tracker.
package server

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"locate-go/internal/log"
	"locate-go/journal"
	"locate-go/locate"
)

const (
	// DefaultTopicPrefix matches the ESPresense firmware's topic layout:
	// <prefix>/devices/<deviceID>/<anchorID>.
	DefaultTopicPrefix = "espresense"

	connectTimeout = 10 * time.Second
)

// distancePayload is the subset of the anchor report the engine consumes.
// A pointer distinguishes a missing field from an explicit zero.
type distancePayload struct {
	Distance *float64 `json:"distance"`
}

// Subscriber owns the MQTT connection and one subscription per configured
// (device, anchor) pair.
type Subscriber struct {
	client  mqtt.Client
	tracker *locate.Tracker
	journal *journal.Writer // optional, may be nil
	prefix  string
	topics  []string
}

// NewSubscriber prepares a subscriber for the given broker. Topics are
// derived from the configured device and anchor tables; nothing else is
// ever subscribed, so most garbage never reaches the handler.
func NewSubscriber(brokerURL, prefix string, cfg *locate.Config, tr *locate.Tracker, jw *journal.Writer) *Subscriber {
	if prefix == "" {
		prefix = DefaultTopicPrefix
	}
	s := &Subscriber{
		tracker: tr,
		journal: jw,
		prefix:  prefix,
	}
	for _, d := range cfg.Devices {
		for _, a := range cfg.Anchors {
			s.topics = append(s.topics, fmt.Sprintf("%s/devices/%s/%s", prefix, d.ID, a.ID))
		}
	}

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(fmt.Sprintf("trackd-%d", os.Getpid())).
		SetAutoReconnect(true).
		SetOrderMatters(false).
		SetConnectTimeout(connectTimeout)
	opts.OnConnect = s.onConnect
	opts.OnConnectionLost = func(_ mqtt.Client, err error) {
		log.Warn("mqtt connection lost", "error", err)
	}
	s.client = mqtt.NewClient(opts)
	return s
}

// Start connects to the broker. Subscriptions happen in the connect
// callback so they are re-established after a reconnect.
func (s *Subscriber) Start() error {
	tok := s.client.Connect()
	if !tok.WaitTimeout(connectTimeout) {
		return fmt.Errorf("mqtt connect timeout")
	}
	return tok.Error()
}

// Stop disconnects, allowing in-flight handlers to finish.
func (s *Subscriber) Stop() {
	s.client.Disconnect(250)
}

func (s *Subscriber) onConnect(c mqtt.Client) {
	log.Info("mqtt connected", "subscriptions", len(s.topics))
	for _, topic := range s.topics {
		if tok := c.Subscribe(topic, 0, s.handleMessage); tok.Wait() && tok.Error() != nil {
			log.Warn("subscribe failed", "topic", topic, "error", tok.Error())
		}
	}
}

// handleMessage parses one anchor report and hands it to the tracker.
// Malformed input is dropped: the transport is at-least-once, unordered,
// and full of messages for devices nobody tracks.
func (s *Subscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	deviceID, anchorID, ok := s.parseTopic(msg.Topic())
	if !ok {
		log.Debug("unparsable topic", "topic", msg.Topic())
		return
	}
	var payload distancePayload
	if err := json.Unmarshal(msg.Payload(), &payload); err != nil {
		log.Debug("unparsable payload", "topic", msg.Topic(), "error", err)
		return
	}
	if payload.Distance == nil || *payload.Distance < 0 {
		log.Debug("payload without usable distance", "topic", msg.Topic())
		return
	}

	now := time.Now()
	if s.journal != nil {
		err := s.journal.Append(journal.Entry{
			At: now, DeviceID: deviceID, AnchorID: anchorID, Distance: *payload.Distance,
		})
		if err != nil {
			log.Warn("journal append failed", "error", err)
		}
	}
	s.tracker.HandleReading(deviceID, anchorID, *payload.Distance, now)
}

// parseTopic extracts (deviceID, anchorID) from
// <prefix>/devices/<deviceID>/<anchorID>.
func (s *Subscriber) parseTopic(topic string) (string, string, bool) {
	parts := strings.Split(topic, "/")
	if len(parts) != 4 || parts[0] != s.prefix || parts[1] != "devices" {
		return "", "", false
	}
	if parts[2] == "" || parts[3] == "" {
		return "", "", false
	}
	return parts[2], parts[3], true
}
