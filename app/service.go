// Package app wires the fetch layer to the availability engine and report
// writer for a single run.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mcrawford/wildtrails/auth"
	"github.com/mcrawford/wildtrails/config"
	"github.com/mcrawford/wildtrails/connectors/clients/wildtrails"
	"github.com/mcrawford/wildtrails/core/availability"
	"github.com/mcrawford/wildtrails/core/model"
	"github.com/mcrawford/wildtrails/core/report"
	"github.com/mcrawford/wildtrails/infra/logger"
)

// walkupDays is the length of the walk-up period during which the reduced
// per-trailhead capacity applies instead of the seasonal quota.
const walkupDays = 15

// Service runs one availability report end to end.
type Service struct {
	cfg    *config.Config
	client *wildtrails.Client
	log    logger.Logger
	runID  string
}

// New creates a Service from the configuration and session credential.
func New(cfg *config.Config, session *auth.Session) (*Service, error) {
	httpClient := &http.Client{Timeout: time.Duration(cfg.API.TimeoutSeconds) * time.Second}
	client, err := wildtrails.New(session,
		wildtrails.WithBaseURL(cfg.API.BaseURL),
		wildtrails.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("wildtrails client: %w", err)
	}
	return &Service{
		cfg:    cfg,
		client: client,
		log:    logger.New("service"),
		runID:  uuid.NewString(),
	}, nil
}

// Run fetches metadata and occupancy, computes availability for the window
// starting at windowStart and writes the CSV report.
func (s *Service) Run(ctx context.Context, windowStart time.Time) error {
	start := model.Midnight(windowStart)
	days := s.cfg.Window.Days
	s.log.Infof("run %s: reporting %d days from %s", s.runID, days, start.Format(model.DateFormat))

	set, err := s.client.FetchTrailheads(ctx)
	if err != nil {
		return fmt.Errorf("fetch trailheads: %w", err)
	}
	s.log.Infof("run %s: %d trailheads across %d regions", s.runID, set.Len(), len(set.Regions()))

	entries, err := s.fetchOccupancy(ctx, set)
	if err != nil {
		return err
	}
	entries = s.dropUnlisted(set, entries)

	rows, err := availability.Compute(set, quotaPeriods(set, start, days), entries, start, days)
	if err != nil {
		return fmt.Errorf("compute availability: %w", err)
	}
	return s.write(report.Assemble(rows))
}

// fetchOccupancy pulls the report for every region concurrently. Any single
// failure fails the run; a partial report would silently understate demand.
func (s *Service) fetchOccupancy(ctx context.Context, set *model.TrailheadSet) ([]model.OccupancyEntry, error) {
	regions := set.Regions()
	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		entries  []model.OccupancyEntry
		firstErr error
	)
	for _, region := range regions {
		wg.Add(1)
		go func(region string) {
			defer wg.Done()
			got, err := s.client.FetchReport(ctx, region)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = fmt.Errorf("fetch report: %w", err)
				}
				return
			}
			entries = append(entries, got...)
		}(region)
	}
	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return entries, nil
}

// dropUnlisted removes occupancy rows for trailheads absent from the
// metadata. The upstream report includes unlisted trailheads with no name or
// capacity; the engine treats dangling references as errors, so they are
// filtered here where the policy decision belongs.
func (s *Service) dropUnlisted(set *model.TrailheadSet, entries []model.OccupancyEntry) []model.OccupancyEntry {
	kept := entries[:0]
	dropped := 0
	for _, e := range entries {
		if _, ok := set.Get(e.TrailheadID); !ok {
			dropped++
			continue
		}
		kept = append(kept, e)
	}
	if dropped > 0 {
		s.log.Warnf("run %s: dropped %d occupancy rows for unlisted trailheads", s.runID, dropped)
	}
	return kept
}

// quotaPeriods derives per-trailhead quota periods from the metadata: the
// reduced walk-up capacity inside the walk-up period, the seasonal quota over
// the rest of the season. The seasonal period always spans wider so the
// engine's narrowest-range rule picks the walk-up capacity where both apply.
func quotaPeriods(set *model.TrailheadSet, start time.Time, days int) []model.QuotaPeriod {
	walkupEnd := start.AddDate(0, 0, walkupDays-1)
	seasonEnd := start.AddDate(0, 0, days-1)
	if !seasonEnd.After(walkupEnd) {
		seasonEnd = walkupEnd.AddDate(0, 0, 1)
	}
	periods := make([]model.QuotaPeriod, 0, 2*set.Len())
	for _, th := range set.All() {
		periods = append(periods,
			model.QuotaPeriod{TrailheadID: th.ID, Start: start, End: walkupEnd, Quota: th.Capacity},
			model.QuotaPeriod{TrailheadID: th.ID, Start: start, End: seasonEnd, Quota: th.Quota},
		)
	}
	return periods
}

func (s *Service) write(rows []model.AvailabilityRow) error {
	if s.cfg.Output.Path == "-" {
		return report.WriteCSV(os.Stdout, rows)
	}
	f, err := os.Create(s.cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}
	if err := report.WriteCSV(f, rows); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	s.log.Infof("run %s: wrote %d rows to %s", s.runID, len(rows), s.cfg.Output.Path)
	return nil
}
