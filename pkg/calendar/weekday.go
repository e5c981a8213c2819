package calendar

import "time"

// DayIndex returns the 0-6 row (or column) index of t's weekday relative
// to the configured first day of the week. With firstDayOfWeek = Sunday a
// Monday maps to 1; with firstDayOfWeek = Monday it maps to 0.
func DayIndex(t time.Time, firstDayOfWeek time.Weekday) int {
	return (int(t.Weekday()) - int(firstDayOfWeek) + 7) % 7
}

// WeekOffset returns the number of week boundaries (days whose weekday is
// firstDayOfWeek) between January 1 of t's year and t itself. It is the
// 0-based week column a day occupies within its calendar year.
func WeekOffset(t time.Time, firstDayOfWeek time.Weekday) int {
	jan1 := time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	return (t.YearDay() - 1 + DayIndex(jan1, firstDayOfWeek)) / 7
}

// weekStarts counts the days whose weekday is firstDayOfWeek within the
// calendar year, i.e. the number of week boundaries the year spans.
func weekStarts(year int, firstDayOfWeek time.Weekday) int {
	jan1 := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	days := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC).YearDay()
	lead := (7 - DayIndex(jan1, firstDayOfWeek)) % 7
	return (days - lead + 6) / 7
}

// maxWeeks returns the largest number of week columns any year in the
// range spans, plus one for partial leading and trailing weeks.
func maxWeeks(fromYear, toYear int, firstDayOfWeek time.Weekday) int {
	if toYear < fromYear {
		return 0
	}
	most := 0
	for year := fromYear; year <= toYear; year++ {
		if n := weekStarts(year, firstDayOfWeek); n > most {
			most = n
		}
	}
	return most + 1
}
