package legacy

import (
	"fmt"
	"os"

	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/importer"
)

var _ importer.Source = (*LegacySource)(nil)

// LegacySource implements importer.Source for the legacy engine's gem
// export: a single JSON file holding every gem with camelCase stat keys.
type LegacySource struct{}

// NewSource constructs a LegacySource.
func NewSource() *LegacySource { return &LegacySource{} }

// Load reads the legacy gem dump at sourcePath and returns one Def per gem.
// Warnings for recoverable issues are printed to stderr.
//
// Precondition: sourcePath must be a readable legacy JSON export.
// Postcondition: returns at least one Def or a non-nil error.
func (s *LegacySource) Load(sourcePath string) ([]*gem.Def, error) {
	data, err := os.ReadFile(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("reading legacy dump %s: %w", sourcePath, err)
	}
	dump, err := ParseDump(data)
	if err != nil {
		return nil, fmt.Errorf("parsing legacy dump %s: %w", sourcePath, err)
	}
	if len(dump.Gems) == 0 {
		return nil, fmt.Errorf("no gems found in %s", sourcePath)
	}

	defs := make([]*gem.Def, 0, len(dump.Gems))
	for i := range dump.Gems {
		def, warnings := ConvertGem(&dump.Gems[i])
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "WARNING: %s\n", w)
		}
		defs = append(defs, def)
	}
	return defs, nil
}
