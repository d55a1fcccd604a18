// Package pipeline implements the extract and transform stages of the sync:
// fetch safety events and alert incidents, flatten them into rows, enrich
// from the tag directory, then translate and classify labels. Data flows
// strictly forward; nothing here writes to a sink.
package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"fleet-safety/eventsync/internal/domain"
	"fleet-safety/eventsync/internal/metrics"
	"fleet-safety/eventsync/internal/samsara"
)

type Pipeline struct {
	api *samsara.Client
	log *zap.Logger
}

func New(api *samsara.Client, log *zap.Logger) *Pipeline {
	return &Pipeline{api: api, log: log}
}

// Run executes one full cycle for the window and returns the finished rows
// plus the run report. Any fetch error aborts; row-level problems only show
// up as skip counts.
func (p *Pipeline) Run(ctx context.Context, start, end string) ([]domain.EventRow, *domain.Report, error) {
	report := domain.NewReport()

	events, err := p.api.SafetyEvents(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch safety events: %w", err)
	}
	rows := CollectSafetyEvents(events, report)
	p.log.Info("safety events collected",
		zap.Int("events", report.SafetyEvents),
		zap.Int("rows", report.SafetyRows),
		zap.Int("labels_filtered", report.LabelsFiltered),
	)

	incidents, err := p.api.AlertIncidents(ctx, start, end)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch alert incidents: %w", err)
	}
	rows = append(rows, CollectAlertIncidents(incidents, report)...)
	p.log.Info("alert incidents collected",
		zap.Int("incidents", report.AlertIncidents),
		zap.Int("rows", report.AlertRows),
		zap.Int("skipped", report.TotalSkipped()),
	)

	tags, err := p.api.Tags(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("fetch tags: %w", err)
	}
	mappings := BuildTagMappings(tags, p.log)
	Enrich(rows, mappings)
	TranslateAndClassify(rows)

	metrics.SafetyEventsFetched.Add(int64(report.SafetyEvents))
	metrics.AlertIncidentsFetched.Add(int64(report.AlertIncidents))
	metrics.TagsFetched.Add(int64(len(tags)))
	metrics.LabelsFiltered.Add(int64(report.LabelsFiltered))
	metrics.IncidentsSkipped.Add(int64(report.TotalSkipped()))
	metrics.RowsCollected.Add(int64(len(rows)))

	return rows, report, nil
}
