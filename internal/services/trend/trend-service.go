// Package trend feeds submitted soil measurements into InfluxDB and exposes
// a small HTTP API over the recent nutrient history.
package trend

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	influxdb2 "github.com/influxdata/influxdb-client-go/v2"

	"github.com/agrotech-lab/soiltrack/internal/model"
	"github.com/agrotech-lab/soiltrack/pkg/mqtt"
)

const defaultMeasurement = "soil_nutrients"

type Service struct {
	consumer    mqtt.IConsumer[model.SoilTestSubmitted]
	writer      *Writer
	measurement string
}

func NewService(c mqtt.IConsumer[model.SoilTestSubmitted], w *Writer, measurement string) (*Service, error) {
	if c == nil {
		return nil, errors.New("consumer is nil")
	}
	if w == nil {
		return nil, errors.New("writer is nil")
	}
	if strings.TrimSpace(measurement) == "" {
		measurement = defaultMeasurement
	}
	svc := &Service{consumer: c, writer: w, measurement: sanitizeMeasurement(measurement)}
	c.SetHandler(svc.handleSubmission)
	return svc, nil
}

// Start blocks consuming submissions until ctx is cancelled.
func (s *Service) Start(ctx context.Context) {
	s.consumer.ConsumeMessage(ctx)
}

func (s *Service) handleSubmission(topic string, msg paho.Message) error {
	var sub model.SoilTestSubmitted
	if err := json.Unmarshal(msg.Payload(), &sub); err != nil {
		log.Printf("trend: invalid JSON on %s: %v", topic, err)
		return nil // do not block the stream
	}

	ts := sub.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	tags := map[string]string{
		"station_id": sub.StationID,
		"location":   sub.Location,
	}
	fields := map[string]interface{}{
		"ph":         sub.PH,
		"nitrogen":   sub.Nitrogen,
		"phosphorus": sub.Phosphorus,
		"potassium":  sub.Potassium,
	}

	s.writer.WritePoint(influxdb2.NewPoint(s.measurement, tags, fields, ts))
	s.writer.MarkIngest(sub.StationID)
	log.Printf("trend: wrote %s station=%s ph=%.2f", s.measurement, sub.StationID, sub.PH)
	return nil
}

func sanitizeMeasurement(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z',
			r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9',
			r == '_', r == ':', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
