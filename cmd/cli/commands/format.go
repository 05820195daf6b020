package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
	"github.com/jakechorley/shift-scheduler/pkg/core/services"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// coverageColor picks a color for a day's coverage percentage:
// green when fully covered, yellow when at least half covered, red otherwise
func coverageColor(pct float64, green, yellow, red string) string {
	switch {
	case pct >= 100:
		return green
	case pct >= 50:
		return yellow
	default:
		return red
	}
}

// nextWeekStart returns the date of the Monday after now
func nextWeekStart(now time.Time) string {
	offset := 7 - model.WeekdayOf(now).Index()
	return now.AddDate(0, 0, offset).Format(model.DateLayout)
}

// parseWindowArg splits "09:00-17:00" into its start and end
func parseWindowArg(s string) (string, string, error) {
	start, end, ok := strings.Cut(s, "-")
	if !ok {
		return "", "", fmt.Errorf("invalid time window %q (expected HH:MM-HH:MM)", s)
	}
	return strings.TrimSpace(start), strings.TrimSpace(end), nil
}

// parseAvailabilityArg parses a day's availability in one of the forms
// "mon", "mon=off" or "mon=09:00-15:00"
func parseAvailabilityArg(s string) (services.DayAvailability, error) {
	dayPart, value, hasValue := strings.Cut(s, "=")
	day, err := model.ParseWeekday(dayPart)
	if err != nil {
		return services.DayAvailability{}, err
	}

	result := services.DayAvailability{Day: day, Available: true}
	if !hasValue {
		return result, nil
	}

	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "no", "unavailable":
		result.Available = false
		return result, nil
	case "", "on", "yes", "available":
		return result, nil
	}

	result.StartTime, result.EndTime, err = parseWindowArg(value)
	if err != nil {
		return services.DayAvailability{}, err
	}
	return result, nil
}

// parseHoursArg parses a day's opening hours in the form "mon=09:00-17:00" or "sun=closed"
func parseHoursArg(s string) (model.Weekday, model.DayHours, error) {
	dayPart, value, ok := strings.Cut(s, "=")
	if !ok {
		return "", model.DayHours{}, fmt.Errorf("invalid hours %q (expected day=HH:MM-HH:MM or day=closed)", s)
	}
	day, err := model.ParseWeekday(dayPart)
	if err != nil {
		return "", model.DayHours{}, err
	}

	if strings.EqualFold(strings.TrimSpace(value), "closed") {
		return day, model.DayHours{Closed: true}, nil
	}

	open, closing, err := parseWindowArg(value)
	if err != nil {
		return "", model.DayHours{}, err
	}
	return day, model.DayHours{Open: open, Close: closing}, nil
}

func employeeNames(employees []model.Employee) map[string]string {
	names := make(map[string]string, len(employees))
	for _, emp := range employees {
		names[emp.ID] = emp.DisplayName
	}
	return names
}

func shiftTimes(start, end string) string {
	if start == "" && end == "" {
		return "all day"
	}
	return start + "-" + end
}
