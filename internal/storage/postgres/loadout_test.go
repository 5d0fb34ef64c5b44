package postgres_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/game/socket"
	"github.com/cory-johannsen/arpg/internal/game/stats"
	"github.com/cory-johannsen/arpg/internal/storage/postgres"
	"github.com/cory-johannsen/arpg/internal/testutil"
)

func uniqueItemID(prefix string) string {
	return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func testGemRegistry(t *testing.T) *gem.Registry {
	t.Helper()
	reg := gem.NewRegistry()
	require.NoError(t, reg.RegisterActive(
		"fireball", "Fireball",
		gem.Requirements{Level: 1, Intelligence: 14},
		stats.Map{"damage": 15, "mana_cost": 6, "cast_time": 0.85},
		"Hurls a fiery projectile.",
		[]string{"spell", "fire", "projectile"},
	))
	require.NoError(t, reg.RegisterSupport(
		"added_fire_damage", "Added Fire Damage",
		gem.Requirements{Level: 8, Strength: 18},
		stats.Map{"added_fire_damage_percent": 44, "mana_cost_multiplier": 1.2},
		"Supported skills gain extra fire damage.",
		[]string{"fire"},
	))
	return reg
}

func buildTestGroup(t *testing.T, reg *gem.Registry) *socket.Group {
	t.Helper()
	group, err := socket.NewGroup([]gem.Color{gem.ColorBlue, gem.ColorRed, gem.ColorWhite})
	require.NoError(t, err)

	active, ok := reg.NewInstance("fireball")
	require.True(t, ok)
	require.NoError(t, active.AddExperience(1250))
	require.NoError(t, active.SetQuality(10))
	require.NoError(t, group.Insert(0, active))

	support, ok := reg.NewInstance("added_fire_damage")
	require.True(t, ok)
	require.NoError(t, group.Insert(1, support))

	require.NoError(t, group.AddLink(0, 1))
	require.NoError(t, group.AddLink(0, 2))
	return group
}

func TestLoadoutRepository_SaveAndLoad(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewLoadoutRepository(pool)
	reg := testGemRegistry(t)
	ctx := context.Background()

	itemID := uniqueItemID("wand")
	saved := buildTestGroup(t, reg)
	require.NoError(t, repo.Save(ctx, 1, itemID, saved))

	loaded, err := repo.Load(ctx, 1, itemID, reg)
	require.NoError(t, err)

	assert.Equal(t, saved.Colors(), loaded.Colors())
	assert.Equal(t, saved.LinkPairs(), loaded.LinkPairs())

	origActive := saved.Socket(0).Gem()
	gotActive := loaded.Socket(0).Gem()
	require.NotNil(t, gotActive)
	assert.Equal(t, origActive.ID, gotActive.ID)
	assert.Equal(t, "fireball", gotActive.Template.ID)
	assert.Equal(t, origActive.Level, gotActive.Level)
	assert.Equal(t, origActive.Experience, gotActive.Experience)
	assert.Equal(t, origActive.Quality, gotActive.Quality)
	assert.Equal(t, gem.ColorBlue, gotActive.Color)

	gotSupport := loaded.Socket(1).Gem()
	require.NotNil(t, gotSupport)
	assert.Equal(t, "added_fire_damage", gotSupport.Template.ID)

	assert.Nil(t, loaded.Socket(2).Gem())
}

func TestLoadoutRepository_SaveReplaces(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewLoadoutRepository(pool)
	reg := testGemRegistry(t)
	ctx := context.Background()

	itemID := uniqueItemID("wand")
	require.NoError(t, repo.Save(ctx, 1, itemID, buildTestGroup(t, reg)))

	// Overwrite with a smaller, empty group.
	smaller, err := socket.NewGroup([]gem.Color{gem.ColorGreen})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, 1, itemID, smaller))

	loaded, err := repo.Load(ctx, 1, itemID, reg)
	require.NoError(t, err)
	assert.Equal(t, 1, loaded.Len())
	assert.Empty(t, loaded.LinkPairs())
	assert.Nil(t, loaded.Socket(0).Gem())
}

func TestLoadoutRepository_LoadNotFound(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewLoadoutRepository(pool)
	reg := testGemRegistry(t)

	_, err := repo.Load(context.Background(), 99, "no_such_item", reg)
	assert.ErrorIs(t, err, postgres.ErrLoadoutNotFound)
}

func TestLoadoutRepository_LoadUnknownTemplate(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewLoadoutRepository(pool)
	reg := testGemRegistry(t)
	ctx := context.Background()

	itemID := uniqueItemID("wand")
	require.NoError(t, repo.Save(ctx, 1, itemID, buildTestGroup(t, reg)))

	// Loading against a registry missing the stored templates fails.
	_, err := repo.Load(ctx, 1, itemID, gem.NewRegistry())
	assert.ErrorIs(t, err, postgres.ErrUnknownTemplate)
}

func TestLoadoutRepository_ListItems(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewLoadoutRepository(pool)
	reg := testGemRegistry(t)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, 7, "wand", buildTestGroup(t, reg)))
	require.NoError(t, repo.Save(ctx, 7, "helmet", buildTestGroup(t, reg)))
	require.NoError(t, repo.Save(ctx, 8, "boots", buildTestGroup(t, reg)))

	items, err := repo.ListItems(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"helmet", "wand"}, items)

	empty, err := repo.ListItems(ctx, 99)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestLoadoutRepository_Delete(t *testing.T) {
	pool := testutil.NewPool(t)
	repo := postgres.NewLoadoutRepository(pool)
	reg := testGemRegistry(t)
	ctx := context.Background()

	itemID := uniqueItemID("wand")
	require.NoError(t, repo.Save(ctx, 1, itemID, buildTestGroup(t, reg)))
	require.NoError(t, repo.Delete(ctx, 1, itemID))

	_, err := repo.Load(ctx, 1, itemID, reg)
	assert.ErrorIs(t, err, postgres.ErrLoadoutNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, 1, itemID), postgres.ErrLoadoutNotFound)
}
