package domain

import (
	"slices"
	"strings"
	"time"

	"go.trai.ch/zerr"
)

const (
	// MinThreshold is the smallest accepted bucketing threshold.
	MinThreshold = 1
	// MaxThreshold is the largest accepted bucketing threshold.
	MaxThreshold = 100
	// DefaultThreshold is used when the caller does not supply a threshold.
	DefaultThreshold = 10
)

// Exclusion is a toggle that removes a well-known label from a visualization.
type Exclusion string

const (
	// ExcludeGmail removes the gmail.com domain.
	ExcludeGmail Exclusion = "gmail"
	// ExcludeOther removes the catch-all bucket.
	ExcludeOther Exclusion = "other"
)

// KnownExclusions lists every accepted exclusion toggle.
var KnownExclusions = []Exclusion{ExcludeGmail, ExcludeOther}

// DateRange is an inclusive date interval. A nil bound is unbounded on that side.
type DateRange struct {
	Start *time.Time `json:"start,omitempty"`
	End   *time.Time `json:"end,omitempty"`
}

// Contains reports whether ts lies within the range, bounds included.
func (r DateRange) Contains(ts time.Time) bool {
	if r.Start != nil && ts.Before(*r.Start) {
		return false
	}
	if r.End != nil && ts.After(*r.End) {
		return false
	}
	return true
}

// VizParams are the user-facing inputs of a visualization.
type VizParams struct {
	Threshold  int         `json:"threshold"`
	Exclusions []Exclusion `json:"exclusions,omitempty"`
	Dates      DateRange   `json:"dates"`
}

// DefaultVizParams returns parameters with the default threshold and no filters.
func DefaultVizParams() VizParams {
	return VizParams{Threshold: DefaultThreshold}
}

// Excludes reports whether the given toggle is enabled.
func (p VizParams) Excludes(e Exclusion) bool {
	return slices.Contains(p.Exclusions, e)
}

// Validate checks the threshold bounds, exclusion toggles and date ordering.
func (p VizParams) Validate() error {
	if p.Threshold < MinThreshold || p.Threshold > MaxThreshold {
		return zerr.With(ErrInvalidThreshold, "threshold", p.Threshold)
	}
	for _, e := range p.Exclusions {
		if !slices.Contains(KnownExclusions, e) {
			return zerr.With(ErrInvalidExclusion, "exclusion", string(e))
		}
	}
	if p.Dates.Start != nil && p.Dates.End != nil && p.Dates.Start.After(*p.Dates.End) {
		return ErrInvalidDateRange
	}
	return nil
}

// ParseDate parses a YYYY-MM-DD bound in UTC. An empty string yields nil.
func ParseDate(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	ts, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return nil, zerr.With(ErrInvalidDate, "value", s)
	}
	ts = ts.UTC()
	return &ts, nil
}
