package legacy

import (
	"fmt"
	"strings"

	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/importer"
)

// ConvertGem transforms one parsed LegacyGem into a gem Def ready for
// serialisation and validation. Stat keys are converted from the legacy
// camelCase form to snake_case; gem IDs derive from display names.
//
// Precondition: lg must be non-nil.
// Postcondition: returns a non-nil Def and a (possibly empty) slice of
// warning strings for recoverable issues (unknown gem types are passed
// through and caught by Def.Validate later).
func ConvertGem(lg *LegacyGem) (*gem.Def, []string) {
	var warnings []string

	kind := strings.ToLower(strings.TrimSpace(lg.GemType))
	if kind != string(gem.KindActive) && kind != string(gem.KindSupport) {
		warnings = append(warnings, fmt.Sprintf(
			"gem %q: unknown gem type %q; keeping as-is for validation to reject",
			lg.Name, lg.GemType,
		))
	}

	baseStats := make(map[string]float64, len(lg.Stats))
	for key, v := range lg.Stats {
		baseStats[importer.StatKeyToSnake(key)] = v
	}

	tags := make([]string, 0, len(lg.Tags))
	for _, tag := range lg.Tags {
		tags = append(tags, strings.ToLower(strings.TrimSpace(tag)))
	}

	return &gem.Def{
		ID:   importer.NameToID(lg.Name),
		Name: lg.Name,
		Kind: kind,
		Requirements: gem.Requirements{
			Level:        lg.RequiredLevel,
			Strength:     lg.RequiredStr,
			Dexterity:    lg.RequiredDex,
			Intelligence: lg.RequiredInt,
		},
		BaseStats:   baseStats,
		Description: strings.TrimSpace(lg.Description),
		Tags:        tags,
		MaxLevel:    lg.MaxLevel,
	}, warnings
}
