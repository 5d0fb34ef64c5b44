package gem

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cory-johannsen/arpg/internal/game/stats"
)

// Registry is the process-wide catalog of gem templates. It is populated
// once at startup and never mutated afterwards, so unsynchronised concurrent
// reads are safe. Registration is not safe to interleave with reads.
type Registry struct {
	templates map[string]*Template
}

// NewRegistry returns an empty Registry.
//
// Postcondition: all internal maps are initialised.
func NewRegistry() *Registry {
	return &Registry{templates: make(map[string]*Template)}
}

// RegisterActive stores an immutable active gem template.
//
// Precondition:  id must be non-empty.
// Postcondition: Lookup(id) succeeds; returns an error if id is already
// registered, leaving the registry unchanged.
func (r *Registry) RegisterActive(id, name string, req Requirements, baseStats stats.Map, description string, tags []string) error {
	return r.register(&Template{
		ID:           id,
		Name:         name,
		Kind:         KindActive,
		Requirements: req,
		BaseStats:    baseStats,
		Description:  description,
		Tags:         tags,
	})
}

// RegisterSupport stores an immutable support gem template.
//
// Precondition:  id must be non-empty.
// Postcondition: Lookup(id) succeeds; returns an error if id is already
// registered, leaving the registry unchanged.
func (r *Registry) RegisterSupport(id, name string, req Requirements, baseStats stats.Map, description string, tags []string) error {
	return r.register(&Template{
		ID:           id,
		Name:         name,
		Kind:         KindSupport,
		Requirements: req,
		BaseStats:    baseStats,
		Description:  description,
		Tags:         tags,
	})
}

// register stores a clone of t so later caller mutations cannot reach the
// catalog.
func (r *Registry) register(t *Template) error {
	if t.ID == "" {
		return fmt.Errorf("gem: Registry.register: template ID must not be empty")
	}
	if _, exists := r.templates[t.ID]; exists {
		return fmt.Errorf("gem: Registry.register: gem ID %q already registered", t.ID)
	}
	r.templates[t.ID] = t.Clone()
	return nil
}

// Lookup returns a defensive clone of the template for id and whether it was
// found. The returned template shares no state with the catalog.
//
// Postcondition: ok is true iff id is registered; the result may be mutated
// freely by the caller.
func (r *Registry) Lookup(id string) (*Template, bool) {
	t, ok := r.templates[id]
	if !ok {
		return nil, false
	}
	return t.Clone(), true
}

// Search returns clones of all templates whose name, description, or any tag
// contains query, case-insensitively. kind filters the results; an empty
// kind matches both active and support gems. Results are ordered by ID for
// deterministic output.
func (r *Registry) Search(query string, kind Kind) []*Template {
	q := strings.ToLower(query)
	var out []*Template
	for _, t := range r.templates {
		if kind != "" && t.Kind != kind {
			continue
		}
		if matchesQuery(t, q) {
			out = append(out, t.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// matchesQuery reports whether t's name, description, or any tag contains
// the already-lowercased query.
func matchesQuery(t *Template, q string) bool {
	if strings.Contains(strings.ToLower(t.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Description), q) {
		return true
	}
	for _, tag := range t.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// classStarterGems maps character class ID to the curated starter gem IDs
// granted at creation.
var classStarterGems = map[string][]string{
	"marauder": {"heavy_strike", "added_fire_damage"},
	"ranger":   {"burning_arrow", "pierce"},
	"witch":    {"fireball", "frostbolt", "faster_casting"},
	"duelist":  {"heavy_strike", "pierce"},
	"templar":  {"fireball", "added_fire_damage"},
	"shadow":   {"frostbolt", "added_cold_damage"},
}

// GemsForClass returns clones of the curated starter templates for a class.
// Unknown class IDs and starter IDs missing from the catalog yield an empty
// slice entry-by-entry rather than an error; starter tables are advisory.
func (r *Registry) GemsForClass(classID string) []*Template {
	ids := classStarterGems[strings.ToLower(classID)]
	out := make([]*Template, 0, len(ids))
	for _, id := range ids {
		if t, ok := r.Lookup(id); ok {
			out = append(out, t)
		}
	}
	return out
}

// All returns clones of every registered template, ordered by ID.
//
// Postcondition: len(result) == number of registered templates.
func (r *Registry) All() []*Template {
	out := make([]*Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Len returns the number of registered templates.
func (r *Registry) Len() int {
	return len(r.templates)
}
