// Package character defines the read-only character view consumed by the
// skill engine. The engine never owns or mutates character state; callers
// hand it an immutable Snapshot taken at query time.
package character

// Attributes holds the three core attribute values used for gem requirement
// checks and socket color derivation.
type Attributes struct {
	Strength     int
	Dexterity    int
	Intelligence int
}

// ResourcePool is the current/max state of a spendable resource (mana).
type ResourcePool struct {
	Current float64
	Max     float64
}

// Modifier is a tag-gated percentage bonus on one skill stat, e.g. a passive
// granting "+20% spell damage". It applies to a skill only when Tag appears
// in the active gem's tag set.
type Modifier struct {
	// Tag gates the modifier: "spell", "fire", "projectile", ...
	Tag string
	// Stat is the skill stat key the modifier scales, e.g. "damage".
	Stat string
	// Percent is the bonus in percent; 20 means +20%, -10 means -10%.
	Percent float64
}

// Snapshot is a point-in-time, read-only view of everything the skill engine
// needs to know about a character.
type Snapshot struct {
	Level      int
	Attributes Attributes
	// Modifiers are all tag-gated percentage bonuses currently on the
	// character, in no particular order. Same-stat bonuses whose tags match
	// a skill combine additively before one multiplicative application.
	Modifiers []Modifier
	Mana      ResourcePool
}

// DamagePercent sums the Percent of all modifiers on stat whose tag appears
// in tags. Additive combination across matching modifiers is intentional;
// the compositor applies the sum multiplicatively exactly once.
//
// Postcondition: returns 0 when no modifier matches.
func (s Snapshot) DamagePercent(stat string, tags map[string]bool) float64 {
	total := 0.0
	for _, m := range s.Modifiers {
		if m.Stat == stat && tags[m.Tag] {
			total += m.Percent
		}
	}
	return total
}
