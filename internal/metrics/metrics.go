package metrics

import (
	"fmt"
	"strings"
	"sync/atomic"
)

var (
	SafetyEventsFetched   atomic.Int64
	AlertIncidentsFetched atomic.Int64
	TagsFetched           atomic.Int64
	LabelsFiltered        atomic.Int64
	IncidentsSkipped      atomic.Int64
	RowsCollected         atomic.Int64
	RowsInserted          atomic.Int64
	RowsExported          atomic.Int64
)

// Snapshot renders the counters as one text block for the end-of-run log.
func Snapshot() string {
	var b strings.Builder
	fmt.Fprintf(&b, "eventsync_safety_events_fetched_total %d\n", SafetyEventsFetched.Load())
	fmt.Fprintf(&b, "eventsync_alert_incidents_fetched_total %d\n", AlertIncidentsFetched.Load())
	fmt.Fprintf(&b, "eventsync_tags_fetched_total %d\n", TagsFetched.Load())
	fmt.Fprintf(&b, "eventsync_labels_filtered_total %d\n", LabelsFiltered.Load())
	fmt.Fprintf(&b, "eventsync_incidents_skipped_total %d\n", IncidentsSkipped.Load())
	fmt.Fprintf(&b, "eventsync_rows_collected_total %d\n", RowsCollected.Load())
	fmt.Fprintf(&b, "eventsync_rows_inserted_total %d\n", RowsInserted.Load())
	fmt.Fprintf(&b, "eventsync_rows_exported_total %d", RowsExported.Load())
	return b.String()
}
