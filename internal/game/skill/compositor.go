package skill

import (
	"sort"

	"github.com/cory-johannsen/arpg/internal/game/character"
	"github.com/cory-johannsen/arpg/internal/game/stats"
)

// CalculateSkillDamage composes the effective stat map for one skill setup:
// the active gem's current stats, folded with each linked support in link
// order, then scaled by the character's tag-matched percentage modifiers.
// Pure; gem instances and the snapshot are never mutated.
//
// Postcondition: returns a fresh map independent of all inputs.
func CalculateSkillDamage(setup Setup, snap character.Snapshot) stats.Map {
	out := composeSupports(setup)
	applyCharacterModifiers(out, setup, snap)
	return out
}

// composeSupports folds support gem stats into the active gem's current
// stats, in link order. Character-side modifiers are deliberately excluded;
// the eligibility check reuses this support-only view for its cost
// comparison.
func composeSupports(setup Setup) stats.Map {
	out := setup.Active.CurrentStats()
	// The add for percentage-of-base supports is computed against the
	// pre-support base damage, not the running value. Two such supports
	// each contribute a slice of the same base; they never compound.
	baseDamage := out[stats.KeyDamage]
	for _, support := range setup.Supports {
		foldSupport(out, support.CurrentStats(), baseDamage)
	}
	return out
}

// foldSupport merges one support's stat map into the running map using the
// per-category merge rules. Keys are visited in sorted order so a single
// support folds identically on every run.
func foldSupport(out stats.Map, supportStats stats.Map, baseDamage float64) {
	keys := sortedKeys(supportStats)
	for _, key := range keys {
		v := supportStats[key]
		switch stats.Classify(key) {
		case stats.RuleDamageMultiplier:
			out[stats.KeyDamage] *= v
		case stats.RuleSpeedMultiplier:
			// A larger speed multiplier shortens the timing field.
			target := stats.TargetKey(key)
			if _, ok := out[target]; ok && v != 0 {
				out[target] /= v
			}
		case stats.RuleCostMultiplier:
			target := stats.TargetKey(key)
			if _, ok := out[target]; ok {
				out[target] *= v
			}
		case stats.RuleAddedDamagePercent:
			add := baseDamage * v / 100
			out[stats.TargetKey(key)] += add
			out[stats.KeyDamage] += add
		case stats.RuleCritMultiplier:
			target := stats.TargetKey(key)
			if _, ok := out[target]; !ok {
				out[target] = stats.CritDefault(key)
			}
			out[target] *= v
		case stats.RuleMechanicCount:
			// Last applied support in link order wins outright.
			out[key] = v
		default:
			out[key] += v
		}
	}
}

// applyCharacterModifiers scales the running map by the character's
// tag-matched percentage modifiers. Bonuses on the same stat combine
// additively, then apply multiplicatively exactly once.
func applyCharacterModifiers(out stats.Map, setup Setup, snap character.Snapshot) {
	tags := setup.Active.TagSet()
	totals := make(map[string]float64)
	for _, m := range snap.Modifiers {
		if tags[m.Tag] {
			totals[m.Stat] += m.Percent
		}
	}
	for _, stat := range sortedKeys(totals) {
		if _, ok := out[stat]; ok {
			out[stat] *= 1 + totals[stat]/100
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
