package services

import (
	"fmt"
	"time"

	"github.com/teambition/rrule-go"
	"go.uber.org/zap"

	"github.com/jakechorley/shift-scheduler/internal/config"
	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// dayOverride is the combined effect of the overrides matching one date
type dayOverride struct {
	closed        bool
	requiredCount *int
}

// resolveDemandOverrides evaluates each override's RRule over the week and returns the effect per
// weekday. Later overrides win for the same date; closed always wins.
func resolveDemandOverrides(overrides []config.DemandOverride, weekStart time.Time, logger *zap.Logger) (map[model.Weekday]dayOverride, error) {
	result := make(map[model.Weekday]dayOverride)
	weekEnd := weekStart.AddDate(0, 0, 6)

	for i, override := range overrides {
		rule, err := rrule.StrToRRule(override.RRule)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rrule for override %d: %w", i, err)
		}
		rule.DTStart(weekStart)

		for _, occurrence := range rule.Between(weekStart, weekEnd, true) {
			day := model.WeekdayOf(occurrence)
			effect := result[day]
			if override.Closed {
				effect.closed = true
			}
			if override.RequiredCount != nil {
				count := *override.RequiredCount
				effect.requiredCount = &count
			}
			result[day] = effect

			logger.Debug("Demand override applies",
				zap.Int("index", i),
				zap.String("rrule", override.RRule),
				zap.String("date", occurrence.Format(model.DateLayout)),
				zap.Bool("closed", override.Closed))
		}
	}

	return result, nil
}

// applyDemandOverrides returns copies of slots and rules with the overrides applied
func applyDemandOverrides(slots []model.ShiftSlot, rules []model.StaffingRule, overrides map[model.Weekday]dayOverride) ([]model.ShiftSlot, []model.StaffingRule) {
	if len(overrides) == 0 {
		return slots, rules
	}

	var outSlots []model.ShiftSlot
	for _, slot := range slots {
		effect, ok := overrides[slot.Day]
		if ok && effect.closed {
			continue
		}
		if ok && effect.requiredCount != nil {
			slot.RequiredCount = *effect.requiredCount
		}
		outSlots = append(outSlots, slot)
	}

	var outRules []model.StaffingRule
	for _, rule := range rules {
		effect, ok := overrides[rule.Day]
		if ok && effect.closed {
			continue
		}
		if ok && effect.requiredCount != nil {
			rule.RequiredCount = *effect.requiredCount
		}
		outRules = append(outRules, rule)
	}

	return outSlots, outRules
}
