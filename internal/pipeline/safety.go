package pipeline

import (
	"strings"

	"fleet-safety/eventsync/internal/domain"
	"fleet-safety/eventsync/internal/samsara"
	"fleet-safety/eventsync/internal/timeutil"
)

// Labels that never make it into the output, matched after lower+trim.
var droppedLabels = map[string]struct{}{
	"following distance":        {},
	"forward collision warning": {},
}

// This one label is rewritten at fetch time instead of going through the
// translation table, because it appears as a substring of longer labels.
const (
	speedAlertEN = "Vehicle Speed Alert"
	speedAlertES = "Alerta de velocidad del vehículo"
)

// CollectSafetyEvents expands each safety event into one row per behavior
// label. An event with N labels yields up to N rows; dropped labels are
// counted on the report.
func CollectSafetyEvents(events []samsara.SafetyEvent, report *domain.Report) []domain.EventRow {
	report.SafetyEvents += len(events)

	var rows []domain.EventRow
	for _, ev := range events {
		driver := refName(ev.Driver, domain.UnknownName)
		vehicle := refName(ev.Vehicle, domain.NoVehicle)

		localTime := "N/A"
		if ev.Time != "" {
			localTime = timeutil.ToMexicoCity(ev.Time)
		}

		for _, bl := range ev.BehaviorLabels {
			label := bl.Name
			if label == "" {
				label = domain.NoLabel
			}
			if _, drop := droppedLabels[strings.ToLower(strings.TrimSpace(label))]; drop {
				report.LabelsFiltered++
				continue
			}
			if strings.Contains(label, speedAlertEN) {
				label = strings.ReplaceAll(label, speedAlertEN, speedAlertES)
			}

			rows = append(rows, domain.EventRow{
				Origin:    domain.OriginSafetyEvent,
				Driver:    driver,
				Vehicle:   vehicle,
				Label:     label,
				LocalTime: localTime,
			})
		}
	}

	report.SafetyRows += len(rows)
	return rows
}

func refName(ref *samsara.NamedRef, fallback string) string {
	if ref == nil || ref.Name == "" {
		return fallback
	}
	return ref.Name
}
