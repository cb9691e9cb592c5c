package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mcrawford/wildtrails/auth"
	"github.com/mcrawford/wildtrails/config"
	"github.com/mcrawford/wildtrails/core/model"
)

const trailheadsBody = `{
  "status": {"type": "message", "value": "ok"},
  "response": {
    "timestamp": "2020-10-01T08:00:00",
    "values": {
      "th1": {"id": "th1", "name": "Alder Creek", "region": "south", "quota": 15, "capacity": 10},
      "th2": {"id": "th2", "name": "Beehive Meadow", "region": "north", "quota": 20, "capacity": 12},
      "th9": {"id": "th9", "name": "Old Big Oak Flat Road", "region": null, "quota": 0, "capacity": 0}
    }
  }
}`

const southReport = `{
  "status": {"type": "message", "value": "ok"},
  "response": {
    "id": "south",
    "values": [
      {"date": "2020-10-02", "th1": 1, "zz9": 4},
      {"date": "2020-10-02", "th1": 2},
      {"date": "2020-10-03", "th1": 7}
    ]
  }
}`

const northReport = `{
  "status": {"type": "message", "value": "ok"},
  "response": {
    "id": "north",
    "values": [
      {"date": "2020-10-02", "th2": 0}
    ]
  }
}`

func reportServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("resource") {
		case "trailheads":
			_, _ = w.Write([]byte(trailheadsBody))
		case "report":
			if r.URL.Query().Get("region") == "south" {
				_, _ = w.Write([]byte(southReport))
			} else {
				_, _ = w.Write([]byte(northReport))
			}
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestServiceRun(t *testing.T) {
	srv := reportServer(t)
	out := filepath.Join(t.TempDir(), "report.csv")
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
		Window:  config.WindowConfig{Days: 2},
		Output:  config.OutputConfig{Path: out},
		Logging: config.LoggingConfig{Level: "error"},
	}
	svc, err := New(cfg, auth.NewSession("session=abc"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Run(context.Background(), model.Date(2020, time.October, 2)); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	want := "date,trailhead_name,availability\n" +
		"2020-10-02,Alder Creek,7\n" +
		"2020-10-02,Beehive Meadow,12\n" +
		"2020-10-02,Old Big Oak Flat Road,0\n" +
		"2020-10-03,Alder Creek,3\n" +
		"2020-10-03,Beehive Meadow,12\n" +
		"2020-10-03,Old Big Oak Flat Road,0\n"
	if string(data) != want {
		t.Fatalf("unexpected report:\n%s", data)
	}
}

func TestServiceRunFetchFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	t.Cleanup(srv.Close)
	cfg := &config.Config{
		API:     config.APIConfig{BaseURL: srv.URL, TimeoutSeconds: 5},
		Window:  config.WindowConfig{Days: 2},
		Output:  config.OutputConfig{Path: "-"},
		Logging: config.LoggingConfig{Level: "error"},
	}
	svc, err := New(cfg, auth.NewSession("session=abc"))
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	if err := svc.Run(context.Background(), model.Date(2020, time.October, 2)); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestQuotaPeriodsBeyondWalkup(t *testing.T) {
	set, err := model.NewTrailheadSet(model.Trailhead{ID: "th1", Name: "Alder Creek", Quota: 15, Capacity: 10})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	start := model.Date(2020, time.October, 1)
	periods := quotaPeriods(set, start, 20)
	if len(periods) != 2 {
		t.Fatalf("expected 2 periods, got %d", len(periods))
	}
	walk, season := periods[0], periods[1]
	if walk.Quota != 10 || season.Quota != 15 {
		t.Fatalf("unexpected quotas %d/%d", walk.Quota, season.Quota)
	}
	if walk.Span() != walkupDays {
		t.Fatalf("walk-up span %d", walk.Span())
	}
	if season.Span() <= walk.Span() {
		t.Fatalf("seasonal period must span wider than the walk-up period")
	}
	if !walk.Covers(start.AddDate(0, 0, 14)) || walk.Covers(start.AddDate(0, 0, 15)) {
		t.Fatalf("walk-up bounds wrong")
	}
}

func TestQuotaPeriodsShortWindow(t *testing.T) {
	set, err := model.NewTrailheadSet(model.Trailhead{ID: "th1", Name: "Alder Creek", Quota: 15, Capacity: 10})
	if err != nil {
		t.Fatalf("set: %v", err)
	}
	periods := quotaPeriods(set, model.Date(2020, time.October, 1), 5)
	if periods[1].Span() <= periods[0].Span() {
		t.Fatalf("seasonal period must stay wider even for short windows")
	}
}
