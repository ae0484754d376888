package scheduler

import (
	"fmt"
	"sort"
	"time"
)

// NextDose computes the next dose occurrence for a list of daily clock-times
// relative to now. Each timing is an HH:mm string placed on now's calendar day;
// the first candidate strictly after now (in whole seconds) wins. When every
// timing has already passed today, the earliest timing rolls over to the next
// calendar day. An empty timing list yields a nil instant and an empty string.
func NextDose(timings []string, now time.Time) (*time.Time, string, error) {
	if len(timings) == 0 {
		return nil, "", nil
	}

	candidates := make([]time.Time, 0, len(timings))
	for _, timing := range timings {
		parsed, err := time.Parse("15:04", timing)
		if err != nil {
			return nil, "", fmt.Errorf("invalid timing %q: %w", timing, err)
		}
		candidates = append(candidates, time.Date(now.Year(), now.Month(), now.Day(),
			parsed.Hour(), parsed.Minute(), 0, 0, now.Location()))
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].Before(candidates[j])
	})

	for _, candidate := range candidates {
		if int(candidate.Sub(now).Seconds()) > 0 {
			next := candidate
			return &next, FormatDoseTime(next), nil
		}
	}

	// all timings passed today, wrap the earliest to tomorrow
	next := candidates[0].AddDate(0, 0, 1)
	return &next, FormatDoseTime(next), nil
}

// FormatDoseTime renders an instant as a zero-padded HH:mm dose time string.
func FormatDoseTime(t time.Time) string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ValidateTimings rejects malformed clock-time strings before any state change.
func ValidateTimings(timings []string) error {
	for _, timing := range timings {
		if _, err := time.Parse("15:04", timing); err != nil {
			return fmt.Errorf("invalid timing %q: expected HH:mm", timing)
		}
	}
	return nil
}
