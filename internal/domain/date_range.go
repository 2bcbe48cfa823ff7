package domain

import (
	"fmt"
	"time"
)

// DateRange is a closed interval [Start, End]. Both bounds are required.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange validates the bounds and normalises them to UTC.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, fmt.Errorf("%w: both bounds are required", ErrInvalidDateRange)
	}
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: end %s is before start %s",
			ErrInvalidDateRange, end.Format(time.RFC3339), start.Format(time.RFC3339))
	}
	return DateRange{Start: start.UTC(), End: end.UTC()}, nil
}

// Days returns the length of the range in started days.
func (r DateRange) Days() int {
	d := r.End.Sub(r.Start)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Contains reports whether t falls inside the range, bounds included.
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether the two ranges share at least one instant.
func (r DateRange) Overlaps(o DateRange) bool {
	return !r.Start.After(o.End) && !r.End.Before(o.Start)
}

// ExtendTo returns a range with the same start and a later end.
func (r DateRange) ExtendTo(end time.Time) (DateRange, error) {
	if !end.After(r.End) {
		return DateRange{}, fmt.Errorf("%w: new end %s must be after %s",
			ErrInvalidExtension, end.Format(time.RFC3339), r.End.Format(time.RFC3339))
	}
	return DateRange{Start: r.Start, End: end.UTC()}, nil
}

// Equal compares bounds as instants.
func (r DateRange) Equal(o DateRange) bool {
	return r.Start.Equal(o.Start) && r.End.Equal(o.End)
}

func (r DateRange) String() string {
	return fmt.Sprintf("%s to %s (%d days)", r.Start.Format(DateFormat), r.End.Format(DateFormat), r.Days())
}
