package timecalc_test

import (
	"testing"
	"time"

	"github.com/Tiliavir/trivial-jira-logger/internal/timecalc"
)

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{45, "45s"},
		{60, "1m"},
		{90, "1m"},
		{3600, "1h 0m"},
		{3661, "1h 1m"},
		{5400, "1h 30m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatDuration(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatDuration(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatHoursMinutes(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0h 00m"},
		{4500, "1h 15m"},
		{3599, "0h 59m"},
		{36000, "10h 00m"},
	}
	for _, tt := range tests {
		got := timecalc.FormatHoursMinutes(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatHoursMinutes(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, ""},
		{1800, "0:30:00"},
		{3661, "1:01:01"},
		{14400, "4:00:00"},
		{90000, "25:00:00"},
	}
	for _, tt := range tests {
		got := timecalc.FormatClock(tt.seconds)
		if got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestWeekRange(t *testing.T) {
	// 2026-02-27 is a Friday (week 9).
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	monday, sunday := timecalc.WeekRange(fri)

	wantMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	wantSunday := time.Date(2026, 3, 1, 23, 59, 59, 0, time.UTC)

	if !monday.Equal(wantMonday) {
		t.Errorf("WeekRange monday = %v, want %v", monday, wantMonday)
	}
	if !sunday.Equal(wantSunday) {
		t.Errorf("WeekRange sunday = %v, want %v", sunday, wantSunday)
	}

	// Sunday belongs to the week that started six days earlier.
	sun := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	if m, _ := timecalc.WeekRange(sun); !m.Equal(wantMonday) {
		t.Errorf("WeekRange(sunday) monday = %v, want %v", m, wantMonday)
	}
}

func TestISOWeekLabel(t *testing.T) {
	fri := time.Date(2026, 2, 27, 10, 0, 0, 0, time.UTC)
	got := timecalc.ISOWeekLabel(fri)
	if got != "2026-W09" {
		t.Errorf("ISOWeekLabel = %q, want %q", got, "2026-W09")
	}
}

func TestDayRange(t *testing.T) {
	at := time.Date(2026, 2, 28, 15, 4, 5, 0, time.UTC)
	from, to := timecalc.DayRange(at)
	if !from.Equal(time.Date(2026, 2, 28, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DayRange from = %v", from)
	}
	if !to.Equal(time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DayRange to = %v", to)
	}
}
