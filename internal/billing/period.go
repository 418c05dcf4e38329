package billing

import "time"

// DateLayout is the ISO date layout used by the cost APIs
const DateLayout = "2006-01-02"

// Period is a half-open date interval [Start, End)
type Period struct {
	Start time.Time
	End   time.Time
}

// ResolvePeriod returns the billing period to query on the given day.
//
// The period runs from the first day of today's month up to today. When today
// is the first of the month that range would be empty, so the whole previous
// month is returned instead, still ending today.
func ResolvePeriod(today time.Time) Period {
	end := truncateDay(today)
	start := firstOfMonth(end)

	if start.Equal(end) {
		start = firstOfMonth(end.AddDate(0, 0, -1))
	}

	return Period{Start: start, End: end}
}

// StartDate returns Start in YYYY-MM-DD form
func (p Period) StartDate() string {
	return p.Start.Format(DateLayout)
}

// EndDate returns End in YYYY-MM-DD form
func (p Period) EndDate() string {
	return p.End.Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date as UTC midnight
func ParseDate(s string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, s, time.UTC)
}

// truncateDay keeps the calendar date of t as seen in its own location
func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
