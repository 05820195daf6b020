package model

import (
	"fmt"
	"strings"
	"time"
)

// DateLayout is the calendar date format used for week starts and availability dates
const DateLayout = "2006-01-02"

// Weekday is a lowercase three-letter day token
type Weekday string

const (
	Monday    Weekday = "mon"
	Tuesday   Weekday = "tue"
	Wednesday Weekday = "wed"
	Thursday  Weekday = "thu"
	Friday    Weekday = "fri"
	Saturday  Weekday = "sat"
	Sunday    Weekday = "sun"
)

// Weekdays lists every day token in display order
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var longNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (d Weekday) IsValid() bool {
	_, ok := longNames[d]
	return ok
}

// Long returns the full English name ("Friday"), or the raw token if it is not a weekday
func (d Weekday) Long() string {
	if name, ok := longNames[d]; ok {
		return name
	}
	return string(d)
}

// Index returns the position of the day in Weekdays (Monday = 0), or -1 if invalid
func (d Weekday) Index() int {
	for i, day := range Weekdays {
		if day == d {
			return i
		}
	}
	return -1
}

// ParseWeekday accepts a token ("fri") or a full/short English name ("Friday", "Fri")
func ParseWeekday(s string) (Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) >= 3 {
		day := Weekday(s[:3])
		if day.IsValid() && strings.HasPrefix(strings.ToLower(day.Long()), s) {
			return day, nil
		}
	}
	return "", fmt.Errorf("invalid weekday %q", s)
}

// WeekdayOf returns the token for a calendar date
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts on Sunday
	return Weekdays[(int(t.Weekday())+6)%7]
}

// ParseDate parses a calendar-naive YYYY-MM-DD date
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return t, nil
}

// CalendarDate returns t's calendar date as midnight UTC, the form ParseDate produces
func CalendarDate(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// WeekDates maps each weekday to its calendar date within the seven days starting at weekStart
func WeekDates(weekStart time.Time) map[Weekday]time.Time {
	dates := make(map[Weekday]time.Time, 7)
	for offset := 0; offset < 7; offset++ {
		date := weekStart.AddDate(0, 0, offset)
		dates[WeekdayOf(date)] = date
	}
	return dates
}

// ParseClock validates a 24h HH:MM time and returns it zero-padded
func ParseClock(s string) (string, error) {
	t, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return "", fmt.Errorf("invalid time %q (expected HH:MM): %w", s, err)
	}
	return t.Format("15:04"), nil
}
