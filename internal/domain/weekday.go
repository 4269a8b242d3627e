package domain

import "time"

// Weekday is a day of the training week, stored and exchanged as its
// lowercase English name.
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists the week in its canonical Monday-first order. Every
// weekday iteration in the application uses this order.
var AllWeekdays = []Weekday{
	Monday,
	Tuesday,
	Wednesday,
	Thursday,
	Friday,
	Saturday,
	Sunday,
}

// WeekdayOf maps a calendar date to its Weekday. time.Weekday counts
// Sunday-first, AllWeekdays Monday-first.
func WeekdayOf(t time.Time) Weekday {
	return AllWeekdays[(int(t.Weekday())+6)%7]
}

// IsValidWeekday reports whether day is one of the seven known values.
func IsValidWeekday(day Weekday) bool {
	return ContainsWeekday(AllWeekdays, day)
}

// ContainsWeekday reports whether days contains day.
func ContainsWeekday(days []Weekday, day Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
