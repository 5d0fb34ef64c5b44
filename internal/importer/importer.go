package importer

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arpg/internal/game/gem"
)

// Importer orchestrates gem content import from a Source to an output directory.
type Importer struct {
	source Source
}

// New constructs an Importer backed by the given Source.
//
// Precondition: source must be non-nil.
// Postcondition: returns a non-nil Importer.
func New(source Source) *Importer {
	return &Importer{source: source}
}

// Run loads gem defs from sourcePath, validates each, and writes them as
// YAML files to outputDir. Each output file is named <gem_id>.yaml.
//
// Precondition: sourcePath must satisfy the source's layout requirements;
// outputDir must exist or be creatable.
// Postcondition: one gem YAML per def is written to outputDir, or an error
// is returned.
func (imp *Importer) Run(sourcePath, outputDir string) error {
	overall := time.Now()

	t0 := time.Now()
	defs, err := imp.source.Load(sourcePath)
	if err != nil {
		return fmt.Errorf("loading source: %w", err)
	}
	fmt.Printf("load    %d gem(s) in %s\n", len(defs), time.Since(t0).Round(time.Millisecond))

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", outputDir, err)
	}

	for _, def := range defs {
		t1 := time.Now()

		if err := def.Validate(); err != nil {
			return fmt.Errorf("gem %q failed validation: %w", def.ID, err)
		}

		data, err := yaml.Marshal(def)
		if err != nil {
			return fmt.Errorf("serialising gem %q: %w", def.ID, err)
		}

		// Verify the output round-trips through the strict content decoder
		// before writing.
		var check gem.Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&check); err != nil {
			return fmt.Errorf("gem %q output is not loadable: %w", def.ID, err)
		}

		outPath := filepath.Join(outputDir, def.ID+".yaml")
		if err := os.WriteFile(outPath, data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", outPath, err)
		}
		fmt.Printf("write   %s in %s\n", outPath, time.Since(t1).Round(time.Millisecond))
	}

	fmt.Printf("done    %d gem(s) in %s\n", len(defs), time.Since(overall).Round(time.Millisecond))
	return nil
}
