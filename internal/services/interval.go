package services

import (
	"fmt"

	"github.com/terraincognita07/shiftdesk/internal/models"
)

// Interval is a half-open [Start, End) range of minutes within one day.
type Interval struct {
	Start int
	End   int
}

func NewInterval(start int, end int) (Interval, error) {
	if start < 0 || end > models.MinutesPerDay || start >= end {
		return Interval{}, fmt.Errorf("%w: start=%d end=%d", ErrInvalidInterval, start, end)
	}
	return Interval{Start: start, End: end}, nil
}

// Overlaps reports whether the two ranges share at least one minute.
// Touching endpoints do not overlap.
func (interval Interval) Overlaps(other Interval) bool {
	return interval.Start < other.End && other.Start < interval.End
}

func (interval Interval) Minutes() int {
	return interval.End - interval.Start
}

func ValidateDayOfWeek(day int) error {
	if day < models.Monday || day > models.Sunday {
		return fmt.Errorf("%w: day of week %d", ErrInvalidInterval, day)
	}
	return nil
}

func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
