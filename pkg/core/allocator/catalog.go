package allocator

import (
	"sort"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// Catalog holds the demand configuration for a business: timed shift slots, or legacy
// aggregate staffing rules when no slots exist. Slots are authoritative whenever present.
type Catalog struct {
	slots []model.ShiftSlot
	rules []model.StaffingRule
}

// NewCatalog builds a catalog, ordering slots by weekday then start time and rules by weekday
func NewCatalog(slots []model.ShiftSlot, rules []model.StaffingRule) *Catalog {
	sortedSlots := make([]model.ShiftSlot, len(slots))
	copy(sortedSlots, slots)
	sort.SliceStable(sortedSlots, func(i, j int) bool {
		di, dj := sortedSlots[i].Day.Index(), sortedSlots[j].Day.Index()
		if di != dj {
			return di < dj
		}
		return sortedSlots[i].StartTime < sortedSlots[j].StartTime
	})

	sortedRules := make([]model.StaffingRule, len(rules))
	copy(sortedRules, rules)
	sort.SliceStable(sortedRules, func(i, j int) bool {
		return sortedRules[i].Day.Index() < sortedRules[j].Day.Index()
	})

	return &Catalog{slots: sortedSlots, rules: sortedRules}
}

// UsesSlots returns true if timed shift slots are configured
func (c *Catalog) UsesSlots() bool {
	return len(c.slots) > 0
}

// IsEmpty returns true if neither slots nor staffing rules are configured
func (c *Catalog) IsEmpty() bool {
	return len(c.slots) == 0 && len(c.rules) == 0
}

// Slots returns the configured slots in catalog order
func (c *Catalog) Slots() []model.ShiftSlot {
	return c.slots
}

// Rules returns the configured staffing rules in catalog order
func (c *Catalog) Rules() []model.StaffingRule {
	return c.rules
}

// SlotsFor returns the slots configured on day
func (c *Catalog) SlotsFor(day model.Weekday) []model.ShiftSlot {
	var result []model.ShiftSlot
	for _, slot := range c.slots {
		if slot.Day == day {
			result = append(result, slot)
		}
	}
	return result
}

// MatchesSlot returns true if start-end exactly equals one of day's slots
func (c *Catalog) MatchesSlot(day model.Weekday, start, end string) bool {
	for _, slot := range c.SlotsFor(day) {
		if slot.StartTime == start && slot.EndTime == end {
			return true
		}
	}
	return false
}

// DemandUnits returns the ordered demand units: one per slot when slots exist, otherwise one
// per staffing rule
func (c *Catalog) DemandUnits() []DemandUnit {
	if c.UsesSlots() {
		units := make([]DemandUnit, 0, len(c.slots))
		for _, slot := range c.slots {
			units = append(units, DemandUnit{
				Day:       slot.Day,
				StartTime: slot.StartTime,
				EndTime:   slot.EndTime,
				Required:  slot.RequiredCount,
				SlotID:    slot.ID,
			})
		}
		return units
	}

	units := make([]DemandUnit, 0, len(c.rules))
	for _, rule := range c.rules {
		units = append(units, DemandUnit{
			Day:      rule.Day,
			Required: rule.RequiredCount,
		})
	}
	return units
}

// DailyRequirements aggregates required headcount per weekday across demand units
func DailyRequirements(units []DemandUnit) map[model.Weekday]int {
	required := make(map[model.Weekday]int)
	for _, unit := range units {
		required[unit.Day] += max(unit.Required, 0)
	}
	return required
}
