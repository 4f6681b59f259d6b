package scheduling

import (
	"slices"
	"time"
)

const (
	DefaultStartHour = 9
	DefaultEndHour   = 18

	// Owners previewing their own calendar without a saved policy see the whole day.
	SelfViewStartHour = 0
	SelfViewEndHour   = 23

	minHour = 0
	maxHour = 23
)

// Policy is a fully populated availability declaration. The engine only reads it.
type Policy struct {
	Enabled    bool           `json:"enabled"`
	StartHour  int            `json:"start_hour"`
	EndHour    int            `json:"end_hour"`
	ActiveDays []time.Weekday `json:"active_days"`
}

// RawPolicy is availability data as it comes out of profile storage. A nil field means the
// value was never declared; a non-nil empty ActiveDays means "no days".
type RawPolicy struct {
	Enabled    *bool
	StartHour  *int
	EndHour    *int
	ActiveDays []int
}

// IsActive reports whether the policy opens its window on the given weekday.
func (p Policy) IsActive(day time.Weekday) bool {
	return p.Enabled && slices.Contains(p.ActiveDays, day)
}

// DefaultPolicy returns the policy used when nothing has been declared.
func DefaultPolicy() Policy {
	return Policy{
		Enabled:    true,
		StartHour:  DefaultStartHour,
		EndHour:    DefaultEndHour,
		ActiveDays: allDays(),
	}
}

// Resolve merges raw with the defaults. When the viewer is the target and no policy exists
// at all, the window is widened to SelfViewStartHour..SelfViewEndHour.
func Resolve(raw *RawPolicy, viewerID, targetID string) Policy {
	policy := DefaultPolicy()

	if raw == nil {
		if viewerID != "" && viewerID == targetID {
			policy.StartHour = SelfViewStartHour
			policy.EndHour = SelfViewEndHour
		}

		return policy
	}

	if raw.Enabled != nil {
		policy.Enabled = *raw.Enabled
	}

	start, end := DefaultStartHour, DefaultEndHour
	if raw.StartHour != nil && validHour(*raw.StartHour) {
		start = *raw.StartHour
	}

	if raw.EndHour != nil && validHour(*raw.EndHour) {
		end = *raw.EndHour
	}

	// An inverted or empty window is not well formed; fall back to the default one.
	if start < end {
		policy.StartHour, policy.EndHour = start, end
	}

	if raw.ActiveDays != nil {
		policy.ActiveDays = normalizeDays(raw.ActiveDays)
	}

	return policy
}

func validHour(hour int) bool {
	return hour >= minHour && hour <= maxHour
}

func allDays() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		days = append(days, day)
	}

	return days
}

func normalizeDays(raw []int) []time.Weekday {
	days := make([]time.Weekday, 0, len(raw))

	for _, value := range raw {
		if value < int(time.Sunday) || value > int(time.Saturday) {
			continue
		}

		day := time.Weekday(value)
		if !slices.Contains(days, day) {
			days = append(days, day)
		}
	}

	slices.Sort(days)

	return days
}
