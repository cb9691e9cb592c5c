package model

import (
	"fmt"
	"sort"
)

// Trailhead is a wilderness entry point subject to a daily permit quota.
type Trailhead struct {
	ID     string
	Name   string
	Region string // empty for unlisted trailheads that appear in no region report

	Quota    int // seasonal daily permit quota
	Capacity int // walk-up daily capacity

	Alert string
	Notes string
}

// Validate checks that the trailhead record is sound.
func (t Trailhead) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("trailhead id is required")
	}
	if t.Name == "" {
		return fmt.Errorf("trailhead %s: name is required", t.ID)
	}
	if t.Quota < 0 || t.Capacity < 0 {
		return fmt.Errorf("trailhead %s: quota and capacity must be non-negative", t.ID)
	}
	return nil
}

// TrailheadSet holds the active trailheads keyed by id.
type TrailheadSet struct {
	byID map[string]Trailhead
}

// NewTrailheadSet builds a set from the given trailheads.
// Duplicate ids are rejected.
func NewTrailheadSet(ths ...Trailhead) (*TrailheadSet, error) {
	s := &TrailheadSet{byID: make(map[string]Trailhead, len(ths))}
	for _, t := range ths {
		if err := s.Add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Add inserts a trailhead, rejecting invalid records and duplicate ids.
func (s *TrailheadSet) Add(t Trailhead) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if _, ok := s.byID[t.ID]; ok {
		return fmt.Errorf("duplicate trailhead id %s", t.ID)
	}
	s.byID[t.ID] = t
	return nil
}

// Get looks up a trailhead by id.
func (s *TrailheadSet) Get(id string) (Trailhead, bool) {
	t, ok := s.byID[id]
	return t, ok
}

// Len returns the number of trailheads in the set.
func (s *TrailheadSet) Len() int { return len(s.byID) }

// All returns the trailheads sorted by id for deterministic iteration.
func (s *TrailheadSet) All() []Trailhead {
	out := make([]Trailhead, 0, len(s.byID))
	for _, t := range s.byID {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Regions returns the distinct non-empty regions in the set, sorted.
func (s *TrailheadSet) Regions() []string {
	seen := make(map[string]struct{})
	for _, t := range s.byID {
		if t.Region != "" {
			seen[t.Region] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for r := range seen {
		out = append(out, r)
	}
	sort.Strings(out)
	return out
}
