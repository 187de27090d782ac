package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/agrotech-lab/soiltrack/internal/services/trend"
	"github.com/agrotech-lab/soiltrack/pkg/mqtt"
)

func envStr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func main() {
	cfg := struct {
		MQTT mqtt.Config

		InfluxURL    string
		InfluxToken  string
		InfluxOrg    string
		InfluxBucket string
		Measurement  string

		Topic         string
		BatchSize     int
		FlushInterval time.Duration

		HTTPPort       int
		ShutdownGrace  time.Duration
		ReadinessGrace time.Duration
	}{
		MQTT: mqtt.Config{
			Host:     envStr("MQTT_HOST", "localhost"),
			Port:     envInt("MQTT_PORT", 1883),
			User:     envStr("MQTT_USER", "mqtt_user"),
			Password: envStr("MQTT_PASS", "mqtt_pwd"),
			ClientID: envStr("HOSTNAME", "trend-service"),
		},

		InfluxURL:    envStr("INFLUX_URL", "http://localhost:8086"),
		InfluxToken:  os.Getenv("INFLUX_TOKEN"),
		InfluxOrg:    envStr("INFLUX_ORG", "soiltrack"),
		InfluxBucket: envStr("INFLUX_BUCKET", "soil"),
		Measurement:  envStr("MEASUREMENT", "soil_nutrients"),

		Topic:         envStr("SUBMIT_SUB_TOPIC", "soiltest/submitted/#"),
		BatchSize:     envInt("WRITE_BATCH_SIZE", 10),
		FlushInterval: time.Duration(envInt("WRITE_FLUSH_INTERVAL_MS", 200)) * time.Millisecond,

		HTTPPort:       envInt("HTTP_PORT", 8080),
		ShutdownGrace:  5 * time.Second,
		ReadinessGrace: 2 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// === InfluxDB ===
	opts := influxdb2.DefaultOptions().
		SetBatchSize(uint(cfg.BatchSize)).
		SetFlushInterval(uint(cfg.FlushInterval.Milliseconds()))
	influx := influxdb2.NewClientWithOptions(cfg.InfluxURL, cfg.InfluxToken, opts)
	defer influx.Close()
	writer := trend.NewWriter(influx.WriteAPI(cfg.InfluxOrg, cfg.InfluxBucket))

	// === MQTT ===
	mqttClient, err := mqtt.NewConn(&cfg.MQTT, ctx)
	if err != nil {
		log.Fatalf("trend: mqtt connection error: %v", err)
	}
	defer mqtt.CloseConn(mqttClient)
	consumer := mqtt.NewConsumer(mqttClient, cfg.Topic, nil)

	svc, err := trend.NewService(consumer, writer, cfg.Measurement)
	if err != nil {
		log.Fatalf("trend: init failed: %v", err)
	}

	// === HTTP ===
	mux := http.NewServeMux()
	mux.Handle("/healthz", trend.NewHealthHandler(mqttClient, influx, writer))
	mux.Handle("/readyz", trend.NewReadyHandler(mqttClient, influx, writer, cfg.ReadinessGrace))
	mux.Handle("/trends/nutrients", trend.NewNutrientTrendHandler(influx, cfg.InfluxOrg, cfg.InfluxBucket, cfg.Measurement))

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.HTTPPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("trend: HTTP listening on :%d", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server error: %v", err)
		}
	}()

	go svc.Start(ctx)

	<-ctx.Done()
	stop()
	log.Printf("trend: shutting down...")

	shCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
	defer cancel()
	_ = srv.Shutdown(shCtx)

	// let the async write API flush
	time.Sleep(cfg.FlushInterval + 100*time.Millisecond)
	log.Println("trend: shutdown complete")
}
