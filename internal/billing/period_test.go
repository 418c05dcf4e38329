package billing

import (
	"testing"
	"time"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestResolvePeriod(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		wantStart string
		wantEnd   string
	}{
		{"mid month", date(2024, time.July, 15), "2024-07-01", "2024-07-15"},
		{"second of month", date(2024, time.July, 2), "2024-07-01", "2024-07-02"},
		{"last of month", date(2024, time.July, 31), "2024-07-01", "2024-07-31"},
		{"first of month covers previous month", date(2024, time.July, 1), "2024-06-01", "2024-07-01"},
		{"first of january crosses year", date(2025, time.January, 1), "2024-12-01", "2025-01-01"},
		{"first of march after leap february", date(2024, time.March, 1), "2024-02-01", "2024-03-01"},
		{"time of day ignored", time.Date(2024, time.July, 15, 23, 59, 59, 0, time.UTC), "2024-07-01", "2024-07-15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ResolvePeriod(tt.today)
			if got := p.StartDate(); got != tt.wantStart {
				t.Errorf("StartDate() = %v, want %v", got, tt.wantStart)
			}
			if got := p.EndDate(); got != tt.wantEnd {
				t.Errorf("EndDate() = %v, want %v", got, tt.wantEnd)
			}
			if p.Start.After(p.End) {
				t.Errorf("Start %v is after End %v", p.Start, p.End)
			}
		})
	}
}

func TestResolvePeriod_UsesLocalCalendarDate(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	// 2024-07-01 08:00 JST is still 2024-06-30 in UTC; the local date wins.
	p := ResolvePeriod(time.Date(2024, time.July, 1, 8, 0, 0, 0, tokyo))

	if p.StartDate() != "2024-06-01" || p.EndDate() != "2024-07-01" {
		t.Errorf("ResolvePeriod() = [%s, %s), want [2024-06-01, 2024-07-01)", p.StartDate(), p.EndDate())
	}
}

func TestResolvePeriod_EveryDayOfYear(t *testing.T) {
	for d := date(2024, time.January, 1); d.Year() == 2024; d = d.AddDate(0, 0, 1) {
		p := ResolvePeriod(d)

		if !p.End.Equal(d) {
			t.Fatalf("%s: End = %s, want today", d.Format(DateLayout), p.EndDate())
		}
		if p.Start.Day() != 1 {
			t.Fatalf("%s: Start = %s, want day 1", d.Format(DateLayout), p.StartDate())
		}
		if !p.Start.Before(p.End) {
			t.Fatalf("%s: empty period [%s, %s)", d.Format(DateLayout), p.StartDate(), p.EndDate())
		}
	}
}

func TestParseDate(t *testing.T) {
	got, err := ParseDate("2024-06-01")
	if err != nil {
		t.Fatalf("ParseDate() error = %v, want nil", err)
	}
	if !got.Equal(date(2024, time.June, 1)) {
		t.Errorf("ParseDate() = %v, want 2024-06-01 UTC", got)
	}

	if _, err := ParseDate("06/01/2024"); err == nil {
		t.Error("ParseDate() error = nil, want error for non-ISO date")
	}
}
