package gem

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arpg/internal/game/stats"
)

// Def is the YAML on-disk form of a gem template.
type Def struct {
	ID           string             `yaml:"id"`
	Name         string             `yaml:"name"`
	Kind         string             `yaml:"kind"`
	Requirements Requirements       `yaml:"requirements"`
	BaseStats    map[string]float64 `yaml:"base_stats"`
	Description  string             `yaml:"description"`
	Tags         []string           `yaml:"tags"`
	MaxLevel     int                `yaml:"max_level"`
}

// Validate checks that the Def satisfies its invariants.
//
// Precondition: d is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, errors.New("ID must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if Kind(d.Kind) != KindActive && Kind(d.Kind) != KindSupport {
		errs = append(errs, fmt.Errorf("Kind must be active or support; got %q", d.Kind))
	}
	if d.MaxLevel < 0 {
		errs = append(errs, errors.New("MaxLevel must be >= 0"))
	}
	req := d.Requirements
	if req.Level < 0 || req.Strength < 0 || req.Dexterity < 0 || req.Intelligence < 0 {
		errs = append(errs, errors.New("requirements must be non-negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("gem validation failed: %v", errs)
	}
	return nil
}

// Template converts the def into an immutable Template.
func (d *Def) Template() *Template {
	return &Template{
		ID:           d.ID,
		Name:         d.Name,
		Kind:         Kind(d.Kind),
		Requirements: d.Requirements,
		BaseStats:    stats.Map(d.BaseStats).Clone(),
		Description:  d.Description,
		Tags:         append([]string(nil), d.Tags...),
		MaxLevel:     d.MaxLevel,
	}
}

// LoadDirectory reads every *.yaml and *.yml file in dir, parses each as a
// Def with strict field checking, validates it, and returns a populated
// Registry. Duplicate IDs across files fail the whole load; the catalog must
// be consistent at startup.
//
// Precondition: dir must be a readable directory.
// Postcondition: returns a non-nil Registry, or an error if any file fails
// to parse, validate, or register.
func LoadDirectory(dir string) (*Registry, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading gem dir %q: %w", dir, err)
	}
	reg := NewRegistry()
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}
		var def Def
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&def); err != nil {
			return nil, fmt.Errorf("parsing %q: %w", path, err)
		}
		if err := def.Validate(); err != nil {
			return nil, fmt.Errorf("invalid gem in %q: %w", path, err)
		}
		if err := reg.register(def.Template()); err != nil {
			return nil, fmt.Errorf("registering gem from %q: %w", path, err)
		}
	}
	return reg, nil
}
