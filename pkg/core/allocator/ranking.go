package allocator

import (
	"slices"

	"github.com/jakechorley/shift-scheduler/pkg/core/model"
)

// TierRank maps a skill tier to its assignment priority (lower ranks are assigned first).
// Lead-capable employees come first, new employees last. Unknown tiers rank with normal.
func TierRank(tier model.SkillTier) int {
	switch tier {
	case model.TierLead:
		return 0
	case model.TierNew:
		return 2
	default:
		return 1
	}
}

// RankEmployees orders candidates by tier rank, keeping input order between equal ranks.
//
// When pairNewWithLead is set, the first remaining new employee is pulled forward to sit
// directly behind each lead, so a unit staffed with a lead also gets the new starter that
// lead is meant to supervise:
//
//	lead A, lead B, normal C, new D, new E  ->  A, D, B, E, C
//
// The input slice is not modified.
func RankEmployees(candidates Pool, pairNewWithLead bool) Pool {
	ranked := slices.Clone(candidates)
	slices.SortStableFunc(ranked, func(a, b *PoolEmployee) int {
		return TierRank(a.Tier) - TierRank(b.Tier)
	})

	if !pairNewWithLead {
		return ranked
	}

	var leads, others, starters Pool
	for _, emp := range ranked {
		switch TierRank(emp.Tier) {
		case TierRank(model.TierLead):
			leads = append(leads, emp)
		case TierRank(model.TierNew):
			starters = append(starters, emp)
		default:
			others = append(others, emp)
		}
	}

	paired := make(Pool, 0, len(ranked))
	for _, lead := range leads {
		paired = append(paired, lead)
		if len(starters) > 0 {
			paired = append(paired, starters[0])
			starters = starters[1:]
		}
	}
	paired = append(paired, others...)
	paired = append(paired, starters...)

	return paired
}
