// Package availability computes per-date, per-trailhead permit availability
// from quota periods and occupancy reports.
package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/mcrawford/wildtrails/core/model"
)

var (
	// ErrInvalidWindow is returned when the window length is not positive.
	ErrInvalidWindow = errors.New("window length must be positive")
	// ErrNoTrailheads is returned when the trailhead set is empty.
	ErrNoTrailheads = errors.New("no trailheads supplied")
	// ErrUnknownTrailhead is returned when a quota period or occupancy entry
	// references a trailhead id absent from the supplied set.
	ErrUnknownTrailhead = errors.New("unknown trailhead reference")
)

// Compute produces one availability row per trailhead per date in
// [windowStart, windowStart+windowDays). Occupancy entries are aggregated by
// summation before use. Availability is the applicable quota minus aggregated
// occupancy, floored at zero. The result always holds exactly
// set.Len()*windowDays rows; on any error no rows are returned.
func Compute(set *model.TrailheadSet, periods []model.QuotaPeriod, entries []model.OccupancyEntry, windowStart time.Time, windowDays int) ([]model.AvailabilityRow, error) {
	if windowDays <= 0 {
		return nil, fmt.Errorf("%w: got %d days", ErrInvalidWindow, windowDays)
	}
	if set == nil || set.Len() == 0 {
		return nil, ErrNoTrailheads
	}
	for _, p := range periods {
		if _, ok := set.Get(p.TrailheadID); !ok {
			return nil, fmt.Errorf("quota period: %w: %s", ErrUnknownTrailhead, p.TrailheadID)
		}
	}
	occ := model.NewOccupancyTable()
	for _, e := range entries {
		if _, ok := set.Get(e.TrailheadID); !ok {
			return nil, fmt.Errorf("occupancy entry: %w: %s", ErrUnknownTrailhead, e.TrailheadID)
		}
		occ.Add(e)
	}

	start := model.Midnight(windowStart)
	rows := make([]model.AvailabilityRow, 0, set.Len()*windowDays)
	for _, th := range set.All() {
		for i := 0; i < windowDays; i++ {
			date := start.AddDate(0, 0, i)
			avail := quotaFor(periods, th.ID, date) - occ.Occupied(th.ID, date)
			if avail < 0 {
				avail = 0
			}
			rows = append(rows, model.AvailabilityRow{
				Date:          date,
				TrailheadName: th.Name,
				Available:     avail,
			})
		}
	}
	return rows, nil
}

// quotaFor resolves the quota applicable to a trailhead on a date. When
// several periods cover the date the narrowest range wins; ties prefer the
// period starting later. No covering period means the trailhead is closed.
func quotaFor(periods []model.QuotaPeriod, id string, date time.Time) int {
	var best *model.QuotaPeriod
	for i := range periods {
		p := periods[i]
		if p.TrailheadID != id || !p.Covers(date) {
			continue
		}
		if best == nil || p.Span() < best.Span() ||
			(p.Span() == best.Span() && p.Start.After(best.Start)) {
			best = &p
		}
	}
	if best == nil {
		return 0
	}
	return best.Quota
}
