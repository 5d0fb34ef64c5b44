package importer_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/importer"
	"github.com/cory-johannsen/arpg/internal/importer/legacy"
)

// TestRunLegacyRoundTrip verifies an end-to-end import: a legacy JSON dump
// comes out as per-gem YAML files the content loader accepts.
func TestRunLegacyRoundTrip(t *testing.T) {
	srcDir := t.TempDir()
	outDir := filepath.Join(t.TempDir(), "gems")

	srcPath := filepath.Join(srcDir, "gems.json")
	require.NoError(t, os.WriteFile(srcPath, []byte(`{
		"gems": [
			{
				"name": "Fireball",
				"gemType": "active",
				"requiredLevel": 1,
				"requiredInt": 14,
				"stats": {"damage": 15, "manaCost": 6, "castTime": 0.85},
				"tags": ["spell", "fire", "projectile"]
			},
			{
				"name": "Added Fire Damage",
				"gemType": "support",
				"requiredLevel": 8,
				"requiredStr": 18,
				"stats": {"addedFireDamagePercent": 44, "manaCostMultiplier": 1.2},
				"tags": ["fire"]
			}
		]
	}`), 0644))

	imp := importer.New(legacy.NewSource())
	require.NoError(t, imp.Run(srcPath, outDir))

	assert.FileExists(t, filepath.Join(outDir, "fireball.yaml"))
	assert.FileExists(t, filepath.Join(outDir, "added_fire_damage.yaml"))

	reg, err := gem.LoadDirectory(outDir)
	require.NoError(t, err)
	assert.Equal(t, 2, reg.Len())

	fireball, ok := reg.Lookup("fireball")
	require.True(t, ok)
	assert.Equal(t, gem.KindActive, fireball.Kind)
	assert.Equal(t, 15.0, fireball.BaseStats["damage"])
	assert.Equal(t, 0.85, fireball.BaseStats["cast_time"])
}

// TestRunInvalidGemFails verifies validation failures abort the import.
func TestRunInvalidGemFails(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "gems.json")
	require.NoError(t, os.WriteFile(srcPath, []byte(`{
		"gems": [{"name": "Broken", "gemType": "aura"}]
	}`), 0644))

	imp := importer.New(legacy.NewSource())
	err := imp.Run(srcPath, t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed validation")
}

// TestRunMissingSource verifies the unreadable-source error path.
func TestRunMissingSource(t *testing.T) {
	imp := importer.New(legacy.NewSource())
	assert.Error(t, imp.Run(filepath.Join(t.TempDir(), "nope.json"), t.TempDir()))
}

// TestRunEmptyDump verifies a dump with no gems is rejected.
func TestRunEmptyDump(t *testing.T) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, "gems.json")
	require.NoError(t, os.WriteFile(srcPath, []byte(`{"gems": []}`), 0644))

	imp := importer.New(legacy.NewSource())
	assert.Error(t, imp.Run(srcPath, t.TempDir()))
}
