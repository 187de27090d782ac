package model

import (
	"github.com/agrotech-lab/soiltrack/internal/model/entities"
	"github.com/agrotech-lab/soiltrack/internal/model/messages"
)

// Aliases exposing the common types to the services.

type (
	SoilTest            = entities.SoilTest
	Recommendation      = entities.Recommendation
	Action              = entities.Action
	Priority            = entities.Priority
	Nutrient            = entities.Nutrient
	HealthReport        = entities.HealthReport
	SoilTestSubmitted   = messages.SoilTestSubmitted
	RecommendationEvent = messages.RecommendationEvent
)

const (
	PriorityLow    = entities.PriorityLow
	PriorityMedium = entities.PriorityMedium
	PriorityHigh   = entities.PriorityHigh
)
