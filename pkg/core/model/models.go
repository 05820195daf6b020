package model

import (
	"fmt"
	"strings"
)

// SkillTier is the coarse capability classification used for assignment ranking and pairing
type SkillTier string

const (
	TierLead   SkillTier = "lead"
	TierNormal SkillTier = "normal"
	TierNew    SkillTier = "new"
)

func (t SkillTier) IsValid() bool {
	return t == TierLead || t == TierNormal || t == TierNew
}

// ParseSkillTier parses a tier name (case-insensitive).
// "strong" is accepted as the legacy name for lead-capable employees.
func ParseSkillTier(s string) (SkillTier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lead", "strong":
		return TierLead, nil
	case "normal", "":
		return TierNormal, nil
	case "new":
		return TierNew, nil
	}
	return "", fmt.Errorf("invalid skill tier %q (expected lead, normal or new)", s)
}

// Employee represents a schedulable member of staff
type Employee struct {
	ID          string
	BusinessID  string
	DisplayName string
	Tier        SkillTier
	Active      bool
	IsAdmin     bool
}

// AvailabilityEntry is a raw per-date availability record for a week
type AvailabilityEntry struct {
	EmployeeID string
	Date       string // YYYY-MM-DD
	Available  bool
	StartTime  string // optional, HH:MM
	EndTime    string // optional, HH:MM
}

// ShiftSlot is a business-configured time slot on a weekday with a target headcount
type ShiftSlot struct {
	ID            string
	BusinessID    string
	Day           Weekday
	StartTime     string
	EndTime       string
	RequiredCount int
}

// StaffingRule is the legacy aggregate headcount for a weekday (no time granularity)
type StaffingRule struct {
	ID            string
	BusinessID    string
	Day           Weekday
	RequiredCount int
}

// Shift is a persisted assignment of an employee to a weekday of a week
type Shift struct {
	ID         string
	BusinessID string
	WeekStart  string // YYYY-MM-DD
	Day        Weekday
	EmployeeID string
	StartTime  string
	EndTime    string
}

// DayHours are the opening hours of a business on one weekday
type DayHours struct {
	Open   string `json:"open_time"`
	Close  string `json:"close_time"`
	Closed bool   `json:"closed"`
}

// StoreHours maps weekdays to opening hours
type StoreHours map[Weekday]DayHours

// DefaultStoreHours returns 09:00-17:00 Monday to Saturday, closed Sunday
func DefaultStoreHours() StoreHours {
	hours := make(StoreHours, len(Weekdays))
	for _, day := range Weekdays {
		hours[day] = DayHours{Open: "09:00", Close: "17:00", Closed: day == Sunday}
	}
	return hours
}
