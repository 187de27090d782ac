package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"
	"time"

	probeSimulator "github.com/agrotech-lab/soiltrack/internal/probe-simulator"
	"github.com/agrotech-lab/soiltrack/pkg/mqtt"
)

func main() {
	stationID := flag.String("station-id", "station1", "unique probe station identifier")
	location := flag.String("location", "North Field", "field location label")
	clientID := flag.String("client-id", "probeSim1", "MQTT client ID")
	interval := flag.Duration("interval", 30*time.Second, "publish interval")
	lat := flag.Float64("lat", 0, "latitude (0 disables the SoilGrids seed)")
	lon := flag.Float64("lon", 0, "longitude")
	host := flag.String("mqtt-host", "localhost", "MQTT broker host")
	port := flag.Int("mqtt-port", 1883, "MQTT broker port")
	user := flag.String("mqtt-user", "mqtt_user", "MQTT user")
	pass := flag.String("mqtt-pass", "mqtt_pwd", "MQTT password")
	seed := flag.Int64("seed", time.Now().UnixNano(), "random walk seed")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := &mqtt.Config{
		Host:     *host,
		Port:     *port,
		User:     *user,
		Password: *pass,
		ClientID: *clientID,
	}
	client, err := mqtt.NewConn(cfg, ctx)
	if err != nil {
		log.Fatalf("probe-sim: mqtt connect failed: %v", err)
	}
	defer mqtt.CloseConn(client)

	gen := probeSimulator.NewDataGenerator(*seed)
	if *lat != 0 || *lon != 0 {
		seedCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		gen.SeedFromSoilGrids(seedCtx, *lat, *lon)
		cancel()
	}

	station := probeSimulator.Station{ID: *stationID, Location: *location}
	if *lat != 0 || *lon != 0 {
		station.Latitude = lat
		station.Longitude = lon
	}

	publisher := mqtt.NewPublisher(client, "soiltest/submitted/"+*stationID)
	sim := probeSimulator.NewProbeSimulator(publisher, gen, station)

	log.Printf("probe-sim: station=%s publishing every %s", *stationID, *interval)
	sim.Start(ctx, *interval)
	log.Println("probe-sim: shutdown complete")
}
