package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/agrotech-lab/soiltrack/internal/services/ingest"
	"github.com/agrotech-lab/soiltrack/internal/services/soiltest"
	"github.com/agrotech-lab/soiltrack/pkg/mqtt"
)

func env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	mqCfg := &mqtt.Config{
		Host:     env("MQTT_HOST", "localhost"),
		Port:     envInt("MQTT_PORT", 1883),
		User:     env("MQTT_USER", "mqtt_user"),
		Password: env("MQTT_PASS", "mqtt_pwd"),
		ClientID: env("MQTT_CLIENT_ID", "ingest-service"),
	}
	mqClient, err := mqtt.NewConn(mqCfg, ctx)
	if err != nil {
		log.Fatalf("ingest: mqtt connect failed: %v", err)
	}
	defer mqtt.CloseConn(mqClient)

	topic := env("SUBMIT_SUB_TOPIC", "soiltest/submitted/#")
	consumer := mqtt.NewConsumer(mqClient, topic, nil)
	publisher := mqtt.NewPublisher(mqClient, env("EVENT_TOPIC", "event/recommendation"))

	store, err := soiltest.NewStore(env("DB_PATH", "soil_tests.db"))
	if err != nil {
		log.Fatalf("ingest: store init failed: %v", err)
	}
	defer func() { _ = store.Close() }()

	svc, err := ingest.NewService(consumer, publisher, store,
		env("EVENT_TOPIC_TMPL", "event/recommendation/{station}"))
	if err != nil {
		log.Fatalf("ingest: init failed: %v", err)
	}

	log.Printf("ingest: consuming %s", topic)
	svc.Start(ctx)
	log.Println("ingest: shutdown complete")
}
