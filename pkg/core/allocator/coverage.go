package allocator

import (
	"fmt"
	"math"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// DayCoverage reports how well one weekday's required headcount is met
type DayCoverage struct {
	Day         model.Weekday `json:"day"`
	Required    int           `json:"required"`
	Scheduled   int           `json:"scheduled"`
	CoveragePct float64       `json:"coverage_pct"`
}

// CalculateCoverage computes per-day coverage for every weekday present in demand, ordered
// Monday to Sunday. Slot headcounts are aggregated per day. A day with nothing required is
// always 100% covered.
func CalculateCoverage(shifts []CandidateShift, demand []DemandUnit) []DayCoverage {
	required := DailyRequirements(demand)

	present := make(map[model.Weekday]bool)
	for _, unit := range demand {
		present[unit.Day] = true
	}

	scheduled := make(map[model.Weekday]int)
	for _, shift := range shifts {
		scheduled[shift.Day]++
	}

	coverage := make([]DayCoverage, 0, len(present))
	for _, day := range model.Weekdays {
		if !present[day] {
			continue
		}
		coverage = append(coverage, DayCoverage{
			Day:         day,
			Required:    required[day],
			Scheduled:   scheduled[day],
			CoveragePct: coveragePercent(scheduled[day], required[day]),
		})
	}

	return coverage
}

func coveragePercent(scheduled, required int) float64 {
	if required <= 0 {
		return 100
	}
	pct := float64(scheduled) / float64(required) * 100
	return math.Round(pct*10) / 10
}

// CoverageWarnings describes every under-covered day
func CoverageWarnings(coverage []DayCoverage) []string {
	var warnings []string
	for _, day := range coverage {
		if day.Scheduled < day.Required {
			warnings = append(warnings, fmt.Sprintf("%s is under-staffed: %d of %d required (%.1f%%)",
				day.Day.Long(), day.Scheduled, day.Required, day.CoveragePct))
		}
	}
	return warnings
}
