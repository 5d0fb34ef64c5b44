// Package gem defines skill gem templates, the process-wide template
// registry, and the per-character mutable gem instance.
package gem

import (
	"github.com/cory-johannsen/arpg/internal/game/stats"
)

// Kind distinguishes skill-granting gems from modifier gems.
type Kind string

const (
	// KindActive is a skill-granting gem a character triggers directly.
	KindActive Kind = "active"
	// KindSupport is a modifier gem altering a linked active gem.
	KindSupport Kind = "support"
)

// Color is a socket/gem color. Gems derive red, green, or blue from their
// attribute requirements; only sockets may be white.
type Color string

const (
	ColorRed   Color = "red"
	ColorGreen Color = "green"
	ColorBlue  Color = "blue"
	ColorWhite Color = "white"
)

// validColors is the set of colors a socket may carry.
var validColors = map[Color]bool{
	ColorRed:   true,
	ColorGreen: true,
	ColorBlue:  true,
	ColorWhite: true,
}

// ValidColor reports whether c is a recognised socket color.
func ValidColor(c Color) bool {
	return validColors[c]
}

// Requirements holds the minimum character level and attributes needed to
// use a gem.
type Requirements struct {
	Level        int `yaml:"level"`
	Strength     int `yaml:"strength"`
	Dexterity    int `yaml:"dexterity"`
	Intelligence int `yaml:"intelligence"`
}

// ColorFor derives a gem color from attribute requirement weights. Red when
// strength dominates, green when dexterity beats intelligence, blue
// otherwise; ties break toward red, then green. The result is fixed at
// instance creation and never recomputed.
func ColorFor(req Requirements) Color {
	switch {
	case req.Strength >= req.Dexterity && req.Strength >= req.Intelligence:
		return ColorRed
	case req.Dexterity >= req.Intelligence:
		return ColorGreen
	default:
		return ColorBlue
	}
}

// Template is the immutable definition of a gem. Templates are created once
// at registry initialisation and never mutated afterwards; all runtime reads
// go through defensive clones.
type Template struct {
	ID           string
	Name         string
	Kind         Kind
	Requirements Requirements
	BaseStats    stats.Map
	Description  string
	Tags         []string
	// MaxLevel caps instance levelling. Zero means DefaultMaxLevel.
	MaxLevel int
}

// DefaultMaxLevel is the level cap applied when a template does not set one.
const DefaultMaxLevel = 20

// EffectiveMaxLevel returns the template's level cap.
//
// Postcondition: result >= 1.
func (t *Template) EffectiveMaxLevel() int {
	if t.MaxLevel <= 0 {
		return DefaultMaxLevel
	}
	return t.MaxLevel
}

// Clone returns a deep copy of the template. Shared references must never
// escape the registry (cross-character state leakage).
func (t *Template) Clone() *Template {
	out := *t
	out.BaseStats = t.BaseStats.Clone()
	out.Tags = append([]string(nil), t.Tags...)
	return &out
}

// TagSet returns the template's tags as a membership set.
func (t *Template) TagSet() map[string]bool {
	set := make(map[string]bool, len(t.Tags))
	for _, tag := range t.Tags {
		set[tag] = true
	}
	return set
}
