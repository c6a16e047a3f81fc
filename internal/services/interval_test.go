package services

import (
	"errors"
	"testing"

	"github.com/terraincognita07/shiftdesk/internal/models"
)

func TestNewIntervalBounds(t *testing.T) {
	tests := []struct {
		name    string
		start   int
		end     int
		wantErr bool
	}{
		{name: "morning", start: 8 * 60, end: 11 * 60},
		{name: "full day", start: 0, end: models.MinutesPerDay},
		{name: "single minute", start: 1439, end: 1440},
		{name: "empty", start: 600, end: 600, wantErr: true},
		{name: "reversed", start: 700, end: 600, wantErr: true},
		{name: "negative", start: -5, end: 60, wantErr: true},
		{name: "past midnight", start: 1380, end: 1500, wantErr: true},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			interval, err := NewInterval(testCase.start, testCase.end)
			if testCase.wantErr {
				if !errors.Is(err, ErrInvalidInterval) {
					t.Fatalf("expected ErrInvalidInterval, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewInterval() unexpected error: %v", err)
			}
			if interval.Minutes() != testCase.end-testCase.start {
				t.Fatalf("expected %d minutes, got %d", testCase.end-testCase.start, interval.Minutes())
			}
		})
	}
}

func TestIntervalOverlapsIsHalfOpenAndSymmetric(t *testing.T) {
	morning := Interval{Start: 8 * 60, End: 11 * 60}

	tests := []struct {
		name  string
		other Interval
		want  bool
	}{
		{name: "partial overlap", other: Interval{Start: 10 * 60, End: 12 * 60}, want: true},
		{name: "touching end", other: Interval{Start: 11 * 60, End: 13 * 60}, want: false},
		{name: "touching start", other: Interval{Start: 6 * 60, End: 8 * 60}, want: false},
		{name: "contained", other: Interval{Start: 9 * 60, End: 10 * 60}, want: true},
		{name: "containing", other: Interval{Start: 0, End: models.MinutesPerDay}, want: true},
		{name: "identical", other: morning, want: true},
		{name: "disjoint", other: Interval{Start: 17 * 60, End: 20 * 60}, want: false},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := morning.Overlaps(testCase.other); got != testCase.want {
				t.Fatalf("Overlaps() = %v, want %v", got, testCase.want)
			}
			if got := testCase.other.Overlaps(morning); got != testCase.want {
				t.Fatalf("reverse Overlaps() = %v, want %v", got, testCase.want)
			}
		})
	}
}

func TestValidateDayOfWeek(t *testing.T) {
	for day := models.Monday; day <= models.Sunday; day++ {
		if err := ValidateDayOfWeek(day); err != nil {
			t.Fatalf("expected day %d valid, got %v", day, err)
		}
	}
	for _, day := range []int{0, 8, -1} {
		if err := ValidateDayOfWeek(day); !errors.Is(err, ErrInvalidInterval) {
			t.Fatalf("expected day %d invalid, got %v", day, err)
		}
	}
}

func TestFormatMinuteOfDay(t *testing.T) {
	if got := FormatMinuteOfDay(17 * 60); got != "17:00" {
		t.Fatalf("expected 17:00, got %q", got)
	}
	if got := FormatMinuteOfDay(9*60 + 5); got != "09:05" {
		t.Fatalf("expected 09:05, got %q", got)
	}
	if got := FormatMinuteOfDay(models.MinutesPerDay); got != "24:00" {
		t.Fatalf("expected 24:00, got %q", got)
	}
}
