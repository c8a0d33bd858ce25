package planner

import "github.com/claude/fitplan/internal/models"

// IsFeasible reports whether the available equipment covers everything the exercise needs.
func IsFeasible(ex models.Exercise, available models.Set) bool {
	if ex.NeedsNoEquipment() {
		return true
	}
	for _, req := range ex.Equipment {
		if !available.Has(req) {
			return false
		}
	}
	return true
}

// IsCandidate reports whether the exercise fits the day's time budget, carries
// no avoided tag and is equipment-feasible.
func IsCandidate(ex models.Exercise, cfg models.PlanConfig) bool {
	if ex.TimeMinutes > cfg.TimePerDay {
		return false
	}
	for _, tag := range ex.Tags {
		if cfg.AvoidTags.Has(tag) {
			return false
		}
	}
	return IsFeasible(ex, cfg.Equipment)
}
