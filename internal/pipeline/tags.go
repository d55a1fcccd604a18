package pipeline

import (
	"strings"

	"go.uber.org/zap"

	"fleet-safety/eventsync/internal/domain"
	"fleet-safety/eventsync/internal/samsara"
)

// TagMappings are the two read-only lookup tables built from the tag
// directory: trimmed name -> (project, team).
type TagMappings struct {
	Vehicles map[string]domain.TagAssignment
	Drivers  map[string]domain.TagAssignment
}

// BuildTagMappings flattens the tag directory. A tag's own name is the
// project, its parent tag's name the team. The last tag referencing a name
// wins; an overwrite with a different assignment is logged so collisions
// are visible.
func BuildTagMappings(tags []samsara.Tag, log *zap.Logger) TagMappings {
	m := TagMappings{
		Vehicles: make(map[string]domain.TagAssignment),
		Drivers:  make(map[string]domain.TagAssignment),
	}

	for _, tag := range tags {
		project := tag.Name
		if project == "" {
			project = domain.UnknownName
		}
		team := domain.UnknownName
		if tag.ParentTag != nil && tag.ParentTag.Name != "" {
			team = tag.ParentTag.Name
		}
		assign := domain.TagAssignment{Project: project, Team: team}

		for _, v := range tag.Vehicles {
			record(m.Vehicles, v.Name, assign, "vehicle", log)
		}
		for _, d := range tag.Drivers {
			record(m.Drivers, d.Name, assign, "driver", log)
		}
	}
	return m
}

func record(m map[string]domain.TagAssignment, name string, assign domain.TagAssignment, kind string, log *zap.Logger) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	if prev, ok := m[name]; ok && prev != assign {
		log.Warn("tag mapping overwritten",
			zap.String("kind", kind),
			zap.String("name", name),
			zap.String("previous_project", prev.Project),
			zap.String("project", assign.Project),
		)
	}
	m[name] = assign
}

// Enrich fills the project/team columns of every row from the mappings.
// A name with no tag gets ("Desconocido", "Desconocido"). Pure row
// mutation, order-independent.
func Enrich(rows []domain.EventRow, tags TagMappings) {
	unknown := domain.TagAssignment{Project: domain.UnknownName, Team: domain.UnknownName}

	for i := range rows {
		va, ok := tags.Vehicles[strings.TrimSpace(rows[i].Vehicle)]
		if !ok {
			va = unknown
		}
		rows[i].VehicleProject = va.Project
		rows[i].VehicleTeam = va.Team

		da, ok := tags.Drivers[strings.TrimSpace(rows[i].Driver)]
		if !ok {
			da = unknown
		}
		rows[i].DriverProject = da.Project
		rows[i].DriverTeam = da.Team
	}
}
