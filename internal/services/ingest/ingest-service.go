// Package ingest consumes soil test submissions published by field probe
// kits, persists them through the record store, runs the recommendation
// engine and publishes the resulting decision event.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/agrotech-lab/soiltrack/internal/agronomy"
	"github.com/agrotech-lab/soiltrack/internal/model"
	"github.com/agrotech-lab/soiltrack/internal/model/entities"
	"github.com/agrotech-lab/soiltrack/internal/services/soiltest"
	"github.com/agrotech-lab/soiltrack/pkg/dedup"
	"github.com/agrotech-lab/soiltrack/pkg/mqtt"
)

const defaultEventTopicTmpl = "event/recommendation/{station}"

type Service struct {
	consumer  mqtt.IConsumer[model.SoilTestSubmitted]
	publisher mqtt.IPublisher
	store     *soiltest.Store

	eventTopicTmpl string

	// deduper discards QoS1 redeliveries (hash of the raw payload)
	deduper *dedup.Deduper
}

func NewService(
	c mqtt.IConsumer[model.SoilTestSubmitted],
	p mqtt.IPublisher,
	store *soiltest.Store,
	eventTopicTmpl string,
) (*Service, error) {
	if c == nil {
		return nil, errors.New("consumer is nil")
	}
	if p == nil {
		return nil, errors.New("publisher is nil")
	}
	if store == nil {
		return nil, errors.New("store is nil")
	}
	if strings.TrimSpace(eventTopicTmpl) == "" {
		eventTopicTmpl = defaultEventTopicTmpl
	}

	svc := &Service{
		consumer:       c,
		publisher:      p,
		store:          store,
		eventTopicTmpl: eventTopicTmpl,
		deduper:        dedup.New(10*time.Minute, 20000),
	}
	c.SetHandler(svc.handleSubmission)
	return svc, nil
}

func (s *Service) Start(ctx context.Context) {
	go s.consumer.ConsumeMessage(ctx)
	<-ctx.Done()
}

func (s *Service) handleSubmission(topic string, msg paho.Message) error {
	// dedup before unmarshal: identical QoS1 redeliveries are dropped
	h := sha256.Sum256(msg.Payload())
	if s.deduper != nil && !s.deduper.ShouldProcess(hex.EncodeToString(h[:])) {
		return nil
	}

	var sub model.SoilTestSubmitted
	if err := json.Unmarshal(msg.Payload(), &sub); err != nil {
		log.Printf("ingest: bad payload on %s: %v", topic, err)
		return nil // do not block the stream
	}

	t := entities.SoilTest{
		Location:   sub.Location,
		Latitude:   sub.Latitude,
		Longitude:  sub.Longitude,
		PH:         sub.PH,
		Nitrogen:   sub.Nitrogen,
		Phosphorus: sub.Phosphorus,
		Potassium:  sub.Potassium,
		Notes:      sub.Notes,
		TestDate:   sub.TestDate,
	}
	if t.TestDate == "" {
		day := sub.Timestamp
		if day.IsZero() {
			day = time.Now().UTC()
		}
		t.TestDate = day.Format("2006-01-02")
	}

	if errs := soiltest.Validate(&t); len(errs) > 0 {
		log.Printf("ingest: rejected submission from station=%s: %s",
			sub.StationID, strings.Join(errs, "; "))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id, err := s.store.Create(ctx, &t)
	if err != nil {
		log.Printf("ingest: store error for station=%s: %v", sub.StationID, err)
		return err
	}

	rec := agronomy.RecommendTest(t)
	log.Printf("ingest: stored test id=%d station=%s priority=%s actions=%d",
		id, sub.StationID, rec.Priority, len(rec.Actions))

	return s.publishEvent(sub.StationID, id, rec)
}

func (s *Service) publishEvent(stationID string, testID int64, rec entities.Recommendation) error {
	evt := model.RecommendationEvent{
		DecisionID:  uuid.NewString(),
		StationID:   stationID,
		TestID:      testID,
		Priority:    rec.Priority,
		ActionCount: len(rec.Actions),
		Timestamp:   time.Now().UTC(),
	}
	b, _ := json.Marshal(evt)
	topic := strings.ReplaceAll(s.eventTopicTmpl, "{station}", stationID)

	// decisions ride at QoS1 so a broker hiccup cannot lose them
	if err := s.publisher.PublishToQos(topic, 1, false, string(b)); err != nil {
		log.Printf("ingest: publish event error: %v", err)
		return err
	}
	return nil
}
