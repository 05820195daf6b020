package db

import (
	"fmt"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// WeekRange returns the inclusive start and exclusive end dates of a week as YYYY-MM-DD
func WeekRange(weekStart string) (string, string, error) {
	start, err := model.ParseDate(weekStart)
	if err != nil {
		return "", "", fmt.Errorf("invalid week start: %w", err)
	}
	return start.Format(model.DateLayout), start.AddDate(0, 0, 7).Format(model.DateLayout), nil
}

// CheckWeekShifts verifies that every shift belongs to the business-week being replaced
func CheckWeekShifts(businessID, weekStart string, shifts []model.Shift) error {
	for i, shift := range shifts {
		if shift.BusinessID != businessID {
			return fmt.Errorf("shift %d belongs to business %q, not %q", i, shift.BusinessID, businessID)
		}
		if shift.WeekStart != weekStart {
			return fmt.Errorf("shift %d belongs to week %q, not %q", i, shift.WeekStart, weekStart)
		}
		if !shift.Day.IsValid() {
			return fmt.Errorf("shift %d has invalid day %q", i, shift.Day)
		}
	}
	return nil
}
