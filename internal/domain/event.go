package domain

// Origin identifies which Samsara endpoint a row came from.
type Origin string

const (
	OriginSafetyEvent   Origin = "Safety Event"
	OriginAlertIncident Origin = "Alert Incident"
)

// Default values used when the API omits a name. These are the literal
// strings stored in the destination table, so they stay in Spanish.
const (
	UnknownName = "Desconocido"
	NoVehicle   = "Sin vehículo"
	NoLabel     = "Sin etiqueta"
)

// Classification ids assigned by exact label match after translation.
const (
	ClassSpeedLimitExceeded = "5b26ebdd-48e9-4e1d-b6c5-85eba2c8185f"
	ClassDrowsiness         = "7f85857e-7f8c-41e9-bcee-cc633c152931"
	ClassHarshDriving       = "97360a6f-85ba-4c78-8f87-6ba8a45be21d"
	ClassCameraObstruction  = "ac2d9e2f-5c8e-49d0-b534-2d9b38a2ced0"
)

// EventRow is the unit of output. Rows are created during fetch and mutated
// exactly twice afterwards: once by enrichment, once by label
// translation/classification.
type EventRow struct {
	Origin  Origin
	Driver  string
	Vehicle string

	// Filled by enrichment from the tag directory.
	DriverProject  string
	DriverTeam     string
	VehicleProject string
	VehicleTeam    string

	// Label after substring rewrite and, later, translation.
	Label string

	// Event time formatted in the Mexico City civil zone
	// ("2006-01-02 15:04:05"), or the original string when unparseable.
	LocalTime string

	// Whole seconds between resolvedAtTime and happenedAtTime.
	// Only set for alert incidents; may be negative if the API reports
	// inverted times.
	Duration *int64

	// One of the Class* ids, or empty when the label is unclassified.
	ClassificationID string
}

// TagAssignment is the (project, team) pair a tag grants to the vehicles
// and drivers it references.
type TagAssignment struct {
	Project string
	Team    string
}

// SkipReason names why an input record produced no output row.
type SkipReason string

const (
	SkipMissingTimes    SkipReason = "missing_times"
	SkipBadTimes        SkipReason = "unparseable_times"
	SkipSpeedMissing    SkipReason = "speed_missing"
	SkipSpeedBelowLimit SkipReason = "speed_below_limit"
)

// Report accumulates per-run counts so filtered and skipped records are
// observable instead of silently dropped.
type Report struct {
	SafetyEvents   int
	AlertIncidents int
	SafetyRows     int
	AlertRows      int
	LabelsFiltered int
	Skipped        map[SkipReason]int
}

func NewReport() *Report {
	return &Report{Skipped: make(map[SkipReason]int)}
}

func (r *Report) Skip(reason SkipReason) {
	r.Skipped[reason]++
}

func (r *Report) TotalSkipped() int {
	n := 0
	for _, c := range r.Skipped {
		n += c
	}
	return n
}
