// Package report orders availability rows and renders them as CSV.
package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/mcrawford/wildtrails/core/model"
)

// Assemble returns the rows sorted by date ascending, then trailhead name
// ascending (case-sensitive). The input is left untouched.
func Assemble(rows []model.AvailabilityRow) []model.AvailabilityRow {
	out := make([]model.AvailabilityRow, len(rows))
	copy(out, rows)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].TrailheadName < out[j].TrailheadName
	})
	return out
}

// WriteCSV renders assembled rows to w with the standard header.
func WriteCSV(w io.Writer, rows []model.AvailabilityRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "trailhead_name", "availability"}); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range rows {
		record := []string{r.Date.Format(model.DateFormat), r.TrailheadName, strconv.Itoa(r.Available)}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
