package skill

import (
	"github.com/cory-johannsen/arpg/internal/game/character"
	"github.com/cory-johannsen/arpg/internal/game/stats"
)

// Cost returns the setup's resource cost after support gem folding.
// Character-side cost modifiers are excluded; eligibility gating uses the
// support-only cost.
func Cost(setup Setup) float64 {
	return composeSupports(setup)[stats.KeyManaCost]
}

// CanUseSkill reports whether the character could invoke the setup right
// now: the support-folded cost fits in the current resource pool and the
// active gem's requirements are met. It never deducts resources; deduction
// happens externally on actual execution.
//
// Postcondition: false implies either insufficient resource or an unmet
// requirement; unrelated stats never influence the outcome.
func CanUseSkill(setup Setup, snap character.Snapshot) bool {
	if !setup.Active.MeetsRequirements(snap) {
		return false
	}
	return snap.Mana.Current >= Cost(setup)
}
