package samsara

import (
	"encoding/json"
	"strconv"
)

// pageEnvelope is the pagination wrapper shared by the safety-events and
// alert-incidents endpoints.
type pageEnvelope struct {
	Data       json.RawMessage `json:"data"`
	Pagination pagination      `json:"pagination"`
}

type pagination struct {
	HasNextPage bool   `json:"hasNextPage"`
	EndCursor   string `json:"endCursor"`
}

// NamedRef is any nested object we only read a name from (driver, vehicle,
// parent tag).
type NamedRef struct {
	Name string `json:"name"`
}

type BehaviorLabel struct {
	Name string `json:"name"`
}

type SafetyEvent struct {
	Time           string          `json:"time"`
	Driver         *NamedRef       `json:"driver"`
	Vehicle        *NamedRef       `json:"vehicle"`
	BehaviorLabels []BehaviorLabel `json:"behaviorLabels"`
}

type AlertIncident struct {
	HappenedAtTime string           `json:"happenedAtTime"`
	ResolvedAtTime string           `json:"resolvedAtTime"`
	Conditions     []AlertCondition `json:"conditions"`
}

type AlertCondition struct {
	Description string           `json:"description"`
	Details     ConditionDetails `json:"details"`
}

type ConditionDetails struct {
	Speed *SpeedDetails `json:"speed"`
}

type SpeedDetails struct {
	Vehicle *NamedRef `json:"vehicle"`
	Driver  *NamedRef `json:"driver"`

	// The API usually sends a number here but some alert configurations
	// deliver it as a string; keep the raw value and coerce on read.
	CurrentSpeedKilometersPerHour any `json:"currentSpeedKilometersPerHour"`
}

// CurrentSpeed returns the reported speed in km/h and whether the field was
// present and numeric.
func (s *SpeedDetails) CurrentSpeed() (float64, bool) {
	if s == nil {
		return 0, false
	}
	switch v := s.CurrentSpeedKilometersPerHour.(type) {
	case float64:
		return v, true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

type Tag struct {
	Name      string     `json:"name"`
	ParentTag *NamedRef  `json:"parentTag"`
	Vehicles  []NamedRef `json:"vehicles"`
	Drivers   []NamedRef `json:"drivers"`
}
