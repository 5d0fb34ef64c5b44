// Package stats defines the typed stat bag shared by gem templates, gem
// instances, and the skill stat compositor. Stat values are keyed by
// snake_case names; each key classifies into exactly one merge rule so that
// order-dependent folding stays auditable.
package stats

import "strings"

// Common stat keys produced by gem content and the compositor.
const (
	KeyDamage         = "damage"
	KeyManaCost       = "mana_cost"
	KeyCastTime       = "cast_time"
	KeyAttackTime     = "attack_time"
	KeyCritChance     = "crit_chance"
	KeyCritMultiplier = "crit_multiplier"
)

// Defaults applied by the compositor when a crit-modifying support targets a
// key the active gem does not define.
const (
	DefaultCritChance     = 0.05
	DefaultCritMultiplier = 1.5
)

// Map is a stat bag keyed by stat name. A nil Map is treated as empty by all
// read operations.
type Map map[string]float64

// Clone returns an independent copy of the map.
//
// Postcondition: mutations of the result never affect the receiver.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Rule identifies the merge behaviour of one stat key when a support gem's
// stats are folded into a running skill stat map.
type Rule int

const (
	// RuleFlat adds the value to the running map entry (creating it at zero).
	RuleFlat Rule = iota
	// RuleDamageMultiplier multiplies the running damage value.
	RuleDamageMultiplier
	// RuleSpeedMultiplier divides the matching timing field; a larger speed
	// multiplier shortens the time.
	RuleSpeedMultiplier
	// RuleCostMultiplier multiplies the running resource cost.
	RuleCostMultiplier
	// RuleAddedDamagePercent adds a percentage of the pre-support base damage
	// once, recorded under a labelled added-damage key.
	RuleAddedDamagePercent
	// RuleCritMultiplier multiplies a crit field, defaulting the base value
	// when the running map has none.
	RuleCritMultiplier
	// RuleMechanicCount overwrites the running value; the last applied
	// support in link order wins.
	RuleMechanicCount
)

// Classify returns the merge rule for a support stat key.
//
// Postcondition: every key classifies into exactly one Rule; unrecognised
// keys fall back to RuleFlat.
func Classify(key string) Rule {
	switch {
	case strings.HasPrefix(key, "added_") && strings.HasSuffix(key, "_damage_percent"):
		return RuleAddedDamagePercent
	case strings.HasSuffix(key, "_count"):
		return RuleMechanicCount
	case strings.HasSuffix(key, "_multiplier"):
		switch {
		case strings.Contains(key, "crit"):
			return RuleCritMultiplier
		case strings.Contains(key, "speed"):
			return RuleSpeedMultiplier
		case strings.Contains(key, "cost"):
			return RuleCostMultiplier
		case strings.Contains(key, "damage"):
			return RuleDamageMultiplier
		}
	}
	return RuleFlat
}

// TargetKey maps a multiplier key to the running-map field it acts on.
//
//	damage_multiplier      → damage
//	cast_speed_multiplier  → cast_time
//	attack_speed_multiplier→ attack_time
//	mana_cost_multiplier   → mana_cost
//	crit_chance_multiplier → crit_chance
//	crit_damage_multiplier → crit_multiplier
//	added_fire_damage_percent → added_fire_damage
//
// Postcondition: returns key unchanged for RuleFlat and RuleMechanicCount keys.
func TargetKey(key string) string {
	switch Classify(key) {
	case RuleDamageMultiplier:
		return KeyDamage
	case RuleSpeedMultiplier:
		if strings.Contains(key, "attack") {
			return KeyAttackTime
		}
		return KeyCastTime
	case RuleCostMultiplier:
		return KeyManaCost
	case RuleCritMultiplier:
		if strings.Contains(key, "chance") {
			return KeyCritChance
		}
		return KeyCritMultiplier
	case RuleAddedDamagePercent:
		return strings.TrimSuffix(key, "_percent")
	}
	return key
}

// CritDefault returns the base value a crit multiplier key applies to when
// the running map has no entry for its target.
//
// Precondition: Classify(key) == RuleCritMultiplier.
func CritDefault(key string) float64 {
	if strings.Contains(key, "chance") {
		return DefaultCritChance
	}
	return DefaultCritMultiplier
}

// IsTiming reports whether key is a timing field. Timing keys are exempt from
// gem level scaling and are the division targets of speed multipliers.
func IsTiming(key string) bool {
	return strings.HasSuffix(key, "_time")
}

// IsDamage reports whether key names a damage-bearing stat. Quality bonuses
// scale only damage-bearing keys.
func IsDamage(key string) bool {
	return strings.Contains(key, "damage")
}
