package wildtrails

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mcrawford/wildtrails/core/model"
)

type status struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type envelope struct {
	Status   status          `json:"status"`
	Response json.RawMessage `json:"response"`
}

type trailheadsPayload struct {
	Timestamp string                     `json:"timestamp"`
	Values    map[string]trailheadRecord `json:"values"`
}

type trailheadRecord struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Region   string `json:"region"`
	Quota    int    `json:"quota"`
	Capacity int    `json:"capacity"`
	Alert    string `json:"alert"`
	Notes    string `json:"notes"`
}

func (p trailheadsPayload) toModel() (*model.TrailheadSet, error) {
	set, err := model.NewTrailheadSet()
	if err != nil {
		return nil, err
	}
	for id, rec := range p.Values {
		if rec.ID == "" {
			rec.ID = id
		}
		th := model.Trailhead{
			ID:       rec.ID,
			Name:     rec.Name,
			Region:   rec.Region,
			Quota:    rec.Quota,
			Capacity: rec.Capacity,
			Alert:    rec.Alert,
			Notes:    rec.Notes,
		}
		if err := set.Add(th); err != nil {
			return nil, fmt.Errorf("trailhead %s: %w", id, err)
		}
	}
	return set, nil
}

// reportPayload rows mix value types: a "date" key holding a YYYY-MM-DD
// string next to trailhead-id keys holding integer occupancy counts.
type reportPayload struct {
	ID     string                       `json:"id"`
	Values []map[string]json.RawMessage `json:"values"`
}

func (p reportPayload) toModel() ([]model.OccupancyEntry, error) {
	var entries []model.OccupancyEntry
	for _, row := range p.Values {
		raw, ok := row["date"]
		if !ok {
			// rows without a date carry no usable data
			continue
		}
		var ds string
		if err := json.Unmarshal(raw, &ds); err != nil {
			return nil, fmt.Errorf("report row date: %w", err)
		}
		date, err := time.Parse(model.DateFormat, ds)
		if err != nil {
			return nil, fmt.Errorf("report row date %q: %w", ds, err)
		}
		for id, v := range row {
			if id == "date" {
				continue
			}
			var occupied int
			if err := json.Unmarshal(v, &occupied); err != nil {
				// non-numeric columns (notes, flags) are not occupancy
				continue
			}
			entries = append(entries, model.OccupancyEntry{
				TrailheadID: id,
				Date:        model.Midnight(date),
				Occupied:    occupied,
			})
		}
	}
	return entries, nil
}
