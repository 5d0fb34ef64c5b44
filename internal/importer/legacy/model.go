package legacy

// LegacyDump is the parsed form of a legacy engine gem export: one JSON file
// holding every gem.
type LegacyDump struct {
	Gems []LegacyGem `json:"gems"`
}

// LegacyGem is one gem entry in a LegacyDump. Stat keys are camelCase in the
// legacy format and identifiers are display names, not IDs.
type LegacyGem struct {
	Name          string             `json:"name"`
	GemType       string             `json:"gemType"`
	Description   string             `json:"description"`
	RequiredLevel int                `json:"requiredLevel"`
	RequiredStr   int                `json:"requiredStr"`
	RequiredDex   int                `json:"requiredDex"`
	RequiredInt   int                `json:"requiredInt"`
	Stats         map[string]float64 `json:"stats"`
	Tags          []string           `json:"tags"`
	MaxLevel      int                `json:"maxLevel"`
}
