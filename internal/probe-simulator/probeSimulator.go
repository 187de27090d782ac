package probe_simulator

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/agrotech-lab/soiltrack/internal/model"
	"github.com/agrotech-lab/soiltrack/pkg/mqtt"
)

// Station identifies the simulated probe kit.
type Station struct {
	ID        string
	Location  string
	Latitude  *float64
	Longitude *float64
}

type ProbeSimulator struct {
	station   Station
	generator *DataGenerator
	publisher mqtt.IPublisher
	topic     string
}

func NewProbeSimulator(publisher mqtt.IPublisher, gen *DataGenerator, station Station) *ProbeSimulator {
	return &ProbeSimulator{
		station:   station,
		generator: gen,
		publisher: publisher,
		topic:     "soiltest/submitted/" + station.ID,
	}
}

// Start publishes a synthetic submission at each interval until ctx is
// cancelled.
func (s *ProbeSimulator) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.publisher.Close()
			return
		case <-ticker.C:
			now := time.Now().UTC()
			sub := model.SoilTestSubmitted{
				StationID: s.station.ID,
				Location:  s.station.Location,
				Latitude:  s.station.Latitude,
				Longitude: s.station.Longitude,
				Notes:     "simulated probe reading",
				TestDate:  now.Format("2006-01-02"),
				Timestamp: now,
			}
			r := s.generator.Next()
			sub.PH, sub.Nitrogen, sub.Phosphorus, sub.Potassium = r.PH, r.Nitrogen, r.Phosphorus, r.Potassium

			log.Printf("probe-sim: pub station=%s ph=%.2f n=%.1f p=%.1f k=%.1f",
				s.station.ID, sub.PH, sub.Nitrogen, sub.Phosphorus, sub.Potassium)

			payload, _ := json.Marshal(sub)
			if err := s.publisher.PublishToQos(s.topic, 1, false, string(payload)); err != nil {
				log.Printf("probe-sim: publish error: %v", err)
			}
		}
	}
}
