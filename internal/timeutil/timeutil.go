// Package timeutil holds the time handling shared by the fetchers: the
// prior-day query window and conversion of API timestamps into the fixed
// civil zone stored in the destination table.
package timeutil

import (
	"time"
	_ "time/tzdata" // the job runs in minimal containers without zoneinfo
)

// APITimeLayout is the only timestamp format the Samsara endpoints emit.
const APITimeLayout = "2006-01-02T15:04:05Z"

const localTimeLayout = "2006-01-02 15:04:05"

var mexicoCity = mustLoadLocation("America/Mexico_City")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("timeutil: " + err.Error())
	}
	return loc
}

// DayWindow returns the query window for a run started at now:
// yesterday 06:00:01Z through today 05:59:59Z, as the literal timestamp
// strings the API expects.
func DayWindow(now time.Time) (start, end string) {
	today := now.UTC().Format("2006-01-02")
	yesterday := now.UTC().AddDate(0, 0, -1).Format("2006-01-02")
	return yesterday + "T06:00:01Z", today + "T05:59:59Z"
}

// ReportDate returns the calendar date (yesterday, UTC) that names the run's
// export file.
func ReportDate(now time.Time) string {
	return now.UTC().AddDate(0, 0, -1).Format("2006-01-02")
}

// ParseAPITime parses a UTC timestamp in the API's wire format.
func ParseAPITime(s string) (time.Time, error) {
	return time.Parse(APITimeLayout, s)
}

// ToMexicoCity converts an API UTC timestamp to "2006-01-02 15:04:05" in
// America/Mexico_City. Unparseable input is returned unchanged; a bad
// timestamp never aborts the run.
func ToMexicoCity(s string) string {
	t, err := time.Parse(APITimeLayout, s)
	if err != nil {
		return s
	}
	return t.In(mexicoCity).Format(localTimeLayout)
}
