package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/mcrawford/wildtrails/core/model"
)

func TestAssembleOrdersByDateThenName(t *testing.T) {
	d1 := model.Date(2020, time.October, 2)
	d2 := model.Date(2020, time.October, 3)
	rows := []model.AvailabilityRow{
		{Date: d2, TrailheadName: "Alder Creek", Available: 1},
		{Date: d1, TrailheadName: "Beehive Meadow", Available: 2},
		{Date: d1, TrailheadName: "Alder Creek", Available: 3},
	}
	got := Assemble(rows)
	want := []struct {
		date time.Time
		name string
	}{
		{d1, "Alder Creek"},
		{d1, "Beehive Meadow"},
		{d2, "Alder Creek"},
	}
	for i, w := range want {
		if !got[i].Date.Equal(w.date) || got[i].TrailheadName != w.name {
			t.Fatalf("row %d: got (%s, %s)", i, got[i].Date.Format(model.DateFormat), got[i].TrailheadName)
		}
	}
	// input order must be untouched
	if rows[0].TrailheadName != "Alder Creek" || !rows[0].Date.Equal(d2) {
		t.Fatalf("input slice was mutated")
	}
}

func TestWriteCSV(t *testing.T) {
	rows := []model.AvailabilityRow{
		{Date: model.Date(2020, time.October, 2), TrailheadName: "Alder Creek", Available: 30},
		{Date: model.Date(2020, time.October, 2), TrailheadName: "Beehive Meadow", Available: 0},
	}
	var buf bytes.Buffer
	if err := WriteCSV(&buf, rows); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "date,trailhead_name,availability\n" +
		"2020-10-02,Alder Creek,30\n" +
		"2020-10-02,Beehive Meadow,0\n"
	if buf.String() != want {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
}
