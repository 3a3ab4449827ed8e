package main

import (
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"

	"locate-go/internal/log"
	"locate-go/journal"
	"locate-go/locate"
	"locate-go/server"
	"locate-go/store"
	"locate-go/web"
)

func main() {
	configPath := flag.String("config", "config.yaml", "Path to anchor/room/device configuration")
	broker := flag.String("broker", "", "MQTT broker URL (default BROKER_URL or tcp://localhost:1883)")
	prefix := flag.String("topic-prefix", "", "MQTT topic prefix (default TOPIC_PREFIX or espresense)")
	statePath := flag.String("state", "", "Location state file (default STATE_FILE or device_locations.json)")
	journalPath := flag.String("journal", "", "Optional reading journal file (default JOURNAL_FILE)")
	httpPort := flag.Int("http-port", 0, "HTTP/websocket port (default HTTP_PORT or 8070)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (default LOG_LEVEL or info)")
	flag.Parse()

	// .env is optional; flags beat env, env beats defaults.
	_ = godotenv.Load()
	log.Init(orEnv(*logLevel, "LOG_LEVEL", "info"))

	cfg, err := locate.LoadConfig(*configPath)
	if err != nil {
		log.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	log.Info("configuration loaded",
		"anchors", len(cfg.Anchors), "rooms", len(cfg.Rooms), "devices", len(cfg.Devices))

	writer := store.NewWriter(store.NewFileStore(orEnv(*statePath, "STATE_FILE", "device_locations.json")))
	tracker := locate.NewTracker(cfg, writer)

	srv := web.NewServer(tracker)
	tracker.SetNotifier(srv)

	var jw *journal.Writer
	if path := orEnv(*journalPath, "JOURNAL_FILE", ""); path != "" {
		jw, err = journal.NewWriter(path)
		if err != nil {
			log.Error("journal open failed", "path", path, "error", err)
			os.Exit(1)
		}
	}

	port := *httpPort
	if port == 0 {
		port = intEnv("HTTP_PORT", 8070)
	}
	go func() {
		if err := srv.Start(port); err != nil {
			log.Error("http server failed", "error", err)
			os.Exit(1)
		}
	}()

	sub := server.NewSubscriber(
		orEnv(*broker, "BROKER_URL", "tcp://localhost:1883"),
		orEnv(*prefix, "TOPIC_PREFIX", server.DefaultTopicPrefix),
		cfg, tracker, jw)
	if err := sub.Start(); err != nil {
		log.Error("mqtt connect failed", "error", err)
		os.Exit(1)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	sub.Stop()
	writer.Close()
	if jw != nil {
		if err := jw.Close(); err != nil {
			log.Warn("journal close failed", "error", err)
		}
	}
}

// orEnv returns the first non-empty of: flag value, environment variable,
// fallback.
func orEnv(flagVal, envKey, fallback string) string {
	if flagVal != "" {
		return flagVal
	}
	if v := os.Getenv(envKey); v != "" {
		return v
	}
	return fallback
}

func intEnv(envKey string, fallback int) int {
	v := os.Getenv(envKey)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
