package pipeline

import (
	"strings"
	"time"

	"fleet-safety/eventsync/internal/domain"
	"fleet-safety/eventsync/internal/samsara"
	"fleet-safety/eventsync/internal/timeutil"
)

const (
	// Strictly-greater-than threshold; an incident at exactly 105 km/h is
	// not a violation.
	speedThresholdKMH = 105.0

	speedConditionDescription = "Vehicle Speed"

	// Assigned directly, never drawn from the translation table.
	speedLimitLabel = "Límite de Velocidad Máxima superada"
)

// CollectAlertIncidents turns speed-violation incidents into rows. An
// incident missing either timestamp, or carrying one in an unexpected
// format, is skipped and counted — never an error. Conditions other than
// "Vehicle Speed", and speeds at or below the threshold, produce nothing.
func CollectAlertIncidents(incidents []samsara.AlertIncident, report *domain.Report) []domain.EventRow {
	report.AlertIncidents += len(incidents)

	var rows []domain.EventRow
	for _, inc := range incidents {
		if inc.HappenedAtTime == "" || inc.ResolvedAtTime == "" {
			report.Skip(domain.SkipMissingTimes)
			continue
		}
		happened, errH := timeutil.ParseAPITime(inc.HappenedAtTime)
		resolved, errR := timeutil.ParseAPITime(inc.ResolvedAtTime)
		if errH != nil || errR != nil {
			report.Skip(domain.SkipBadTimes)
			continue
		}

		// Whole seconds; negative when the API reports inverted times.
		duration := int64(resolved.Sub(happened) / time.Second)

		for _, cond := range inc.Conditions {
			if cond.Description != speedConditionDescription {
				continue
			}

			speed, ok := cond.Details.Speed.CurrentSpeed()
			if !ok {
				report.Skip(domain.SkipSpeedMissing)
				continue
			}
			if speed <= speedThresholdKMH {
				report.Skip(domain.SkipSpeedBelowLimit)
				continue
			}

			details := cond.Details.Speed
			vehicle := refName(details.Vehicle, domain.NoVehicle)
			// Unlike the safety-event path, a missing driver here never
			// falls back to a vehicle-level driver reference.
			driver := domain.UnknownName
			if details.Driver != nil {
				if name := strings.TrimSpace(details.Driver.Name); name != "" {
					driver = name
				}
			}

			d := duration
			rows = append(rows, domain.EventRow{
				Origin:    domain.OriginAlertIncident,
				Driver:    driver,
				Vehicle:   vehicle,
				Label:     speedLimitLabel,
				LocalTime: timeutil.ToMexicoCity(inc.HappenedAtTime),
				Duration:  &d,
			})
		}
	}

	report.AlertRows += len(rows)
	return rows
}
