package skill

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/game/socket"
	"github.com/cory-johannsen/arpg/internal/game/stats"
)

func fireball() *gem.Instance {
	return gem.NewInstance(&gem.Template{
		ID:           "fireball",
		Name:         "Fireball",
		Kind:         gem.KindActive,
		Requirements: gem.Requirements{Level: 1, Intelligence: 14},
		BaseStats:    stats.Map{"damage": 15, "mana_cost": 6, "cast_time": 0.85},
		Tags:         []string{"spell", "fire", "projectile"},
	})
}

func frostbolt() *gem.Instance {
	return gem.NewInstance(&gem.Template{
		ID:           "frostbolt",
		Name:         "Frostbolt",
		Kind:         gem.KindActive,
		Requirements: gem.Requirements{Level: 1, Intelligence: 14},
		BaseStats:    stats.Map{"damage": 12, "mana_cost": 5, "cast_time": 0.9},
		Tags:         []string{"spell", "cold", "projectile"},
	})
}

func addedFireDamage() *gem.Instance {
	return gem.NewInstance(&gem.Template{
		ID:           "added_fire_damage",
		Name:         "Added Fire Damage",
		Kind:         gem.KindSupport,
		Requirements: gem.Requirements{Level: 8, Strength: 18},
		BaseStats:    stats.Map{"added_fire_damage_percent": 44, "mana_cost_multiplier": 1.2},
		Tags:         []string{"fire"},
	})
}

func addedColdDamage() *gem.Instance {
	return gem.NewInstance(&gem.Template{
		ID:           "added_cold_damage",
		Name:         "Added Cold Damage",
		Kind:         gem.KindSupport,
		Requirements: gem.Requirements{Level: 8, Dexterity: 18},
		BaseStats:    stats.Map{"added_cold_damage_percent": 30, "mana_cost_multiplier": 1.15},
		Tags:         []string{"cold"},
	})
}

func fasterCasting() *gem.Instance {
	return gem.NewInstance(&gem.Template{
		ID:           "faster_casting",
		Name:         "Faster Casting",
		Kind:         gem.KindSupport,
		Requirements: gem.Requirements{Level: 10, Intelligence: 22},
		BaseStats:    stats.Map{"cast_speed_multiplier": 1.2, "mana_cost_multiplier": 1.1},
		Tags:         []string{"spell"},
	})
}

func increasedCrits() *gem.Instance {
	return gem.NewInstance(&gem.Template{
		ID:        "increased_critical_strikes",
		Name:      "Increased Critical Strikes",
		Kind:      gem.KindSupport,
		BaseStats: stats.Map{"crit_chance_multiplier": 1.5},
	})
}

// whiteGroup builds an all-white group so tests can socket freely.
func whiteGroup(t *testing.T, n int) *socket.Group {
	t.Helper()
	colors := make([]gem.Color, n)
	for i := range colors {
		colors[i] = gem.ColorWhite
	}
	g, err := socket.NewGroup(colors)
	require.NoError(t, err)
	return g
}

// TestActiveSetupsResolvesLinkedSupports verifies the basic resolution: one
// setup per active gem, supports from directly linked sockets.
func TestActiveSetupsResolvesLinkedSupports(t *testing.T) {
	g := whiteGroup(t, 3)
	active := fireball()
	support := addedFireDamage()
	require.NoError(t, g.Insert(0, active))
	require.NoError(t, g.Insert(1, support))
	require.NoError(t, g.AddLink(0, 1))

	setups := ActiveSetups(g)
	require.Len(t, setups, 1)
	assert.Same(t, active, setups[0].Active)
	assert.Equal(t, 0, setups[0].SocketIndex)
	require.Len(t, setups[0].Supports, 1)
	assert.Same(t, support, setups[0].Supports[0])
}

// TestActiveSetupsUnlinkedSupportIgnored verifies a support in the same
// group but not directly linked has no effect.
func TestActiveSetupsUnlinkedSupportIgnored(t *testing.T) {
	g := whiteGroup(t, 3)
	require.NoError(t, g.Insert(0, fireball()))
	require.NoError(t, g.Insert(2, addedFireDamage()))

	setups := ActiveSetups(g)
	require.Len(t, setups, 1)
	assert.Empty(t, setups[0].Supports)
}

// TestActiveSetupsTagMismatchExcluded verifies a tagged support only
// attaches when its tags intersect the active gem's tags.
func TestActiveSetupsTagMismatchExcluded(t *testing.T) {
	g := whiteGroup(t, 2)
	require.NoError(t, g.Insert(0, fireball()))
	require.NoError(t, g.Insert(1, addedColdDamage()))
	require.NoError(t, g.AddLink(0, 1))

	setups := ActiveSetups(g)
	require.Len(t, setups, 1)
	assert.Empty(t, setups[0].Supports)
}

// TestActiveSetupsUntaggedSupportUniversal verifies an untagged support
// attaches to any linked active gem.
func TestActiveSetupsUntaggedSupportUniversal(t *testing.T) {
	g := whiteGroup(t, 2)
	require.NoError(t, g.Insert(0, fireball()))
	require.NoError(t, g.Insert(1, increasedCrits()))
	require.NoError(t, g.AddLink(0, 1))

	setups := ActiveSetups(g)
	require.Len(t, setups, 1)
	require.Len(t, setups[0].Supports, 1)
	assert.Equal(t, "increased_critical_strikes", setups[0].Supports[0].Template.ID)
}

// TestActiveSetupsSharedSupport verifies one support linked to two active
// gems serves both setups simultaneously.
func TestActiveSetupsSharedSupport(t *testing.T) {
	g := whiteGroup(t, 3)
	require.NoError(t, g.Insert(0, fireball()))
	require.NoError(t, g.Insert(1, fasterCasting()))
	require.NoError(t, g.Insert(2, frostbolt()))
	require.NoError(t, g.AddLink(0, 1))
	require.NoError(t, g.AddLink(1, 2))

	setups := ActiveSetups(g)
	require.Len(t, setups, 2)
	require.Len(t, setups[0].Supports, 1)
	require.Len(t, setups[1].Supports, 1)
	assert.Same(t, setups[0].Supports[0], setups[1].Supports[0])
}

// TestActiveSetupsDeterministicOrder verifies setups come out in ascending
// socket index and supports in ascending neighbor index, regardless of link
// insertion order.
func TestActiveSetupsDeterministicOrder(t *testing.T) {
	g := whiteGroup(t, 4)
	require.NoError(t, g.Insert(3, fireball()))
	require.NoError(t, g.Insert(0, frostbolt()))
	require.NoError(t, g.Insert(1, fasterCasting()))
	require.NoError(t, g.Insert(2, increasedCrits()))
	// Links added out of order.
	require.NoError(t, g.AddLink(3, 2))
	require.NoError(t, g.AddLink(3, 1))
	require.NoError(t, g.AddLink(0, 2))
	require.NoError(t, g.AddLink(0, 1))

	setups := ActiveSetups(g)
	require.Len(t, setups, 2)
	assert.Equal(t, 0, setups[0].SocketIndex)
	assert.Equal(t, 3, setups[1].SocketIndex)

	require.Len(t, setups[1].Supports, 2)
	assert.Equal(t, "faster_casting", setups[1].Supports[0].Template.ID)
	assert.Equal(t, "increased_critical_strikes", setups[1].Supports[1].Template.ID)
}

// TestActiveSetupsActivesDoNotSupport verifies a linked active gem is never
// treated as a support.
func TestActiveSetupsActivesDoNotSupport(t *testing.T) {
	g := whiteGroup(t, 2)
	require.NoError(t, g.Insert(0, fireball()))
	require.NoError(t, g.Insert(1, frostbolt()))
	require.NoError(t, g.AddLink(0, 1))

	setups := ActiveSetups(g)
	require.Len(t, setups, 2)
	assert.Empty(t, setups[0].Supports)
	assert.Empty(t, setups[1].Supports)
}

// TestActiveSetupsEmptyGroup verifies the no-actives path.
func TestActiveSetupsEmptyGroup(t *testing.T) {
	g := whiteGroup(t, 3)
	require.NoError(t, g.Insert(1, addedFireDamage()))
	assert.Empty(t, ActiveSetups(g))
}
