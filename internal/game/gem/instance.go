package gem

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/cory-johannsen/arpg/internal/game/character"
	"github.com/cory-johannsen/arpg/internal/game/stats"
)

// Experience and level-scaling constants.
const (
	// experienceBase is the cost to advance from level 1 to level 2.
	experienceBase = 1000
	// experienceGrowth compounds the cost per level.
	experienceGrowth = 1.1
	// levelStatScale is the per-level fractional increase applied to
	// value-like base stats.
	levelStatScale = 0.06
	// MaxQuality is the upper bound of the quality enhancement scale.
	MaxQuality = 100
)

// Instance is one character's runtime copy of a gem template. It is not safe
// for concurrent mutation; the caller serialises writes per character.
// Read-only queries against a stable instance may run in parallel.
type Instance struct {
	// ID uniquely identifies this instance across all characters.
	ID string
	// Template is this instance's private template copy; it shares no state
	// with the registry or with other instances.
	Template *Template
	// Level is the current gem level in [1, Template.EffectiveMaxLevel()].
	Level int
	// Experience is progress toward the next level, in raw experience points.
	Experience int
	// Quality is the secondary enhancement scale in [0, MaxQuality].
	Quality int
	// Color is derived from the template requirements once at creation and
	// never recomputed.
	Color Color
}

// NewInstance clones t into a fresh level-1 instance.
//
// Precondition:  t must be non-nil.
// Postcondition: the instance owns an independent template copy; Color is
// fixed from the template requirements.
func NewInstance(t *Template) *Instance {
	return &Instance{
		ID:       uuid.NewString(),
		Template: t.Clone(),
		Level:    1,
		Color:    ColorFor(t.Requirements),
	}
}

// NewInstance looks up id and clones it into a fresh instance.
//
// Postcondition: ok is false and the instance nil when id is unknown.
func (r *Registry) NewInstance(id string) (*Instance, bool) {
	t, ok := r.Lookup(id)
	if !ok {
		return nil, false
	}
	return NewInstance(t), true
}

// CostToNext returns the experience required to advance from level to
// level+1: floor(1000 × 1.1^(level-1)).
//
// Precondition: level >= 1.
func CostToNext(level int) int {
	return int(math.Floor(experienceBase * math.Pow(experienceGrowth, float64(level-1))))
}

// AddExperience accumulates experience and applies as many level-ups as the
// new total affords, stopping at the template's level cap. A single large
// award may advance multiple levels.
//
// Precondition:  amount must be non-negative.
// Postcondition: on error the instance is unchanged; otherwise Level is in
// [1, max] and Experience < CostToNext(Level) unless Level == max.
func (i *Instance) AddExperience(amount int) error {
	if amount < 0 {
		return fmt.Errorf("gem: Instance.AddExperience: amount must be non-negative, got %d", amount)
	}
	i.Experience += amount
	max := i.Template.EffectiveMaxLevel()
	for i.Level < max && i.Experience >= CostToNext(i.Level) {
		i.Experience -= CostToNext(i.Level)
		i.Level++
	}
	return nil
}

// SetQuality sets the quality bonus.
//
// Precondition:  quality must be in [0, MaxQuality].
// Postcondition: on error the instance is unchanged.
func (i *Instance) SetQuality(quality int) error {
	if quality < 0 || quality > MaxQuality {
		return fmt.Errorf("gem: Instance.SetQuality: quality must be in [0, %d], got %d", MaxQuality, quality)
	}
	i.Quality = quality
	return nil
}

// scalable reports whether a base stat key participates in level and quality
// scaling. Timing fields, ratio-like multipliers, and mechanic counts keep
// their base value at every level; rounding a ratio up would corrupt it.
func scalable(key string) bool {
	if stats.IsTiming(key) {
		return false
	}
	switch stats.Classify(key) {
	case stats.RuleFlat, stats.RuleAddedDamagePercent:
		return true
	}
	return false
}

// CurrentStats returns the instance's effective stat map: value-like base
// stats scale by 1 + 0.06×(level-1) rounded up, then quality multiplies
// damage-bearing keys by 1 + quality/100 rounded down. The result is a fresh
// map; neither the instance nor its template is mutated.
//
// Postcondition: at level 1 with quality 0 the result equals the base stat
// map exactly.
func (i *Instance) CurrentStats() stats.Map {
	out := make(stats.Map, len(i.Template.BaseStats))
	factor := 1 + levelStatScale*float64(i.Level-1)
	for k, v := range i.Template.BaseStats {
		val := v
		if scalable(k) {
			if i.Level > 1 {
				val = math.Ceil(v * factor)
			}
			if i.Quality > 0 && stats.IsDamage(k) {
				val = math.Floor(val * (1 + float64(i.Quality)/100))
			}
		}
		out[k] = val
	}
	return out
}

// MeetsRequirements reports whether the snapshot satisfies every template
// requirement: level, strength, dexterity, and intelligence.
func (i *Instance) MeetsRequirements(snap character.Snapshot) bool {
	req := i.Template.Requirements
	return snap.Level >= req.Level &&
		snap.Attributes.Strength >= req.Strength &&
		snap.Attributes.Dexterity >= req.Dexterity &&
		snap.Attributes.Intelligence >= req.Intelligence
}

// IsActive reports whether the instance was cloned from an active template.
func (i *Instance) IsActive() bool {
	return i.Template.Kind == KindActive
}

// IsSupport reports whether the instance was cloned from a support template.
func (i *Instance) IsSupport() bool {
	return i.Template.Kind == KindSupport
}

// TagSet returns the instance's inherited tag set.
func (i *Instance) TagSet() map[string]bool {
	return i.Template.TagSet()
}
