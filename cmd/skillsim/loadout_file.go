package main

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/arpg/internal/game/character"
	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/game/socket"
)

// loadoutFile is the YAML scenario consumed by skillsim: one character
// snapshot plus the socketed items to resolve.
type loadoutFile struct {
	Character characterSpec `yaml:"character"`
	Items     []itemSpec    `yaml:"items"`
}

type characterSpec struct {
	Level        int            `yaml:"level"`
	Strength     int            `yaml:"strength"`
	Dexterity    int            `yaml:"dexterity"`
	Intelligence int            `yaml:"intelligence"`
	Mana         float64        `yaml:"mana"`
	MaxMana      float64        `yaml:"max_mana"`
	Modifiers    []modifierSpec `yaml:"modifiers"`
}

type modifierSpec struct {
	Tag     string  `yaml:"tag"`
	Stat    string  `yaml:"stat"`
	Percent float64 `yaml:"percent"`
}

type itemSpec struct {
	ID      string    `yaml:"id"`
	Sockets []string  `yaml:"sockets"`
	Links   [][2]int  `yaml:"links"`
	Gems    []gemSpec `yaml:"gems"`
}

type gemSpec struct {
	Socket  int    `yaml:"socket"`
	Gem     string `yaml:"gem"`
	Level   int    `yaml:"level"`
	Quality int    `yaml:"quality"`
}

// parseLoadoutFile reads and strictly decodes a scenario file.
func parseLoadoutFile(path string) (*loadoutFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading loadout file %s: %w", path, err)
	}
	var lf loadoutFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&lf); err != nil {
		return nil, fmt.Errorf("parsing loadout file %s: %w", path, err)
	}
	return &lf, nil
}

// snapshot converts the character spec into the engine's read-only view.
func (c characterSpec) snapshot() character.Snapshot {
	mods := make([]character.Modifier, 0, len(c.Modifiers))
	for _, m := range c.Modifiers {
		mods = append(mods, character.Modifier{Tag: m.Tag, Stat: m.Stat, Percent: m.Percent})
	}
	return character.Snapshot{
		Level: c.Level,
		Attributes: character.Attributes{
			Strength:     c.Strength,
			Dexterity:    c.Dexterity,
			Intelligence: c.Intelligence,
		},
		Modifiers: mods,
		Mana:      character.ResourcePool{Current: c.Mana, Max: c.MaxMana},
	}
}

// buildGroup materialises one item spec into a socket group with its gems
// and links in place.
func buildGroup(reg *gem.Registry, item itemSpec) (*socket.Group, error) {
	colors := make([]gem.Color, len(item.Sockets))
	for i, c := range item.Sockets {
		colors[i] = gem.Color(c)
	}
	group, err := socket.NewGroup(colors)
	if err != nil {
		return nil, fmt.Errorf("item %q: %w", item.ID, err)
	}

	for _, gs := range item.Gems {
		inst, ok := reg.NewInstance(gs.Gem)
		if !ok {
			return nil, fmt.Errorf("item %q: unknown gem %q", item.ID, gs.Gem)
		}
		if gs.Level > 1 {
			// Feed exactly enough experience to reach the requested level.
			total := 0
			for lvl := 1; lvl < gs.Level; lvl++ {
				total += gem.CostToNext(lvl)
			}
			if err := inst.AddExperience(total); err != nil {
				return nil, fmt.Errorf("item %q gem %q: %w", item.ID, gs.Gem, err)
			}
		}
		if gs.Quality > 0 {
			if err := inst.SetQuality(gs.Quality); err != nil {
				return nil, fmt.Errorf("item %q gem %q: %w", item.ID, gs.Gem, err)
			}
		}
		if err := group.Insert(gs.Socket, inst); err != nil {
			return nil, fmt.Errorf("item %q: socketing %q at %d: %w", item.ID, gs.Gem, gs.Socket, err)
		}
	}

	for _, pair := range item.Links {
		if err := group.AddLink(pair[0], pair[1]); err != nil {
			return nil, fmt.Errorf("item %q: linking %v: %w", item.ID, pair, err)
		}
	}
	return group, nil
}
