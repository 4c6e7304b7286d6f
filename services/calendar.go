package services

import "time"

// DateKeyFormat is the wire format for calendar dates.
const DateKeyFormat = "2006-01-02"

func DateKey(t time.Time) string {
	return t.Format(DateKeyFormat)
}

func ParseDateKey(key string) (time.Time, error) {
	return time.ParseInLocation(DateKeyFormat, key, time.Local)
}

// MonthDays returns every day of ref's month, in order.
func MonthDays(ref time.Time) []time.Time {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	end := start.AddDate(0, 1, 0)

	days := make([]time.Time, 0, 31)
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

// FirstWeekdayOffset returns the weekday column of the first day of ref's
// month in a Sunday-first grid (0 = Sunday).
func FirstWeekdayOffset(ref time.Time) int {
	start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, ref.Location())
	return int(start.Weekday())
}

func PrevMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()-1, 1, 0, 0, 0, 0, ref.Location())
}

func NextMonth(ref time.Time) time.Time {
	return time.Date(ref.Year(), ref.Month()+1, 1, 0, 0, 0, 0, ref.Location())
}

func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func SameMonth(a, b time.Time) bool {
	ay, am, _ := a.Date()
	by, bm, _ := b.Date()
	return ay == by && am == bm
}

func IsToday(t time.Time) bool {
	return SameDay(t, time.Now())
}
