package services

import "time"

// AddCalendarMonths moves value forward by months, clamping the day to the
// last day of the target month (Jan 31 + 1 month is Feb 28 or 29). The time of
// day and location are preserved.
func AddCalendarMonths(value time.Time, months int) time.Time {
	year, month, day := value.Date()
	firstOfTarget := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, value.Location())
	lastDay := firstOfTarget.AddDate(0, 1, -1).Day()
	if day > lastDay {
		day = lastDay
	}

	hour, minute, second := value.Clock()
	return time.Date(firstOfTarget.Year(), firstOfTarget.Month(), day, hour, minute, second, value.Nanosecond(), value.Location())
}
