package model

import "time"

// QuotaPeriod assigns a daily quota to a trailhead over an inclusive date range.
type QuotaPeriod struct {
	TrailheadID string
	Start       time.Time
	End         time.Time
	Quota       int
}

// Covers reports whether the period applies to the given date.
func (p QuotaPeriod) Covers(d time.Time) bool {
	return !d.Before(p.Start) && !d.After(p.End)
}

// Span returns the number of days the period covers, inclusive.
func (p QuotaPeriod) Span() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

// OccupancyEntry reports permits already issued for a trailhead on a date.
// The same (trailhead, date) pair may be reported more than once upstream,
// once per trip type; counts are summed during aggregation.
type OccupancyEntry struct {
	TrailheadID string
	Date        time.Time
	Occupied    int
}

type occupancyKey struct {
	id   string
	date time.Time
}

// OccupancyTable aggregates occupancy entries by (trailhead, date).
type OccupancyTable struct {
	counts map[occupancyKey]int
}

// NewOccupancyTable returns an empty table.
func NewOccupancyTable() *OccupancyTable {
	return &OccupancyTable{counts: make(map[occupancyKey]int)}
}

// Add folds an entry into the table, summing counts for repeated pairs.
func (t *OccupancyTable) Add(e OccupancyEntry) {
	t.counts[occupancyKey{e.TrailheadID, Midnight(e.Date)}] += e.Occupied
}

// Occupied returns the aggregated count for a (trailhead, date) pair.
// Absence means zero permits issued, not missing data.
func (t *OccupancyTable) Occupied(id string, d time.Time) int {
	return t.counts[occupancyKey{id, Midnight(d)}]
}

// AvailabilityRow is one computed output row: open slots for a trailhead
// on a date, never negative.
type AvailabilityRow struct {
	Date          time.Time
	TrailheadName string
	Available     int
}
