// Package main provides the skill balance simulator: it loads the gem
// catalog and a loadout scenario, resolves every skill setup, and prints
// each setup's composed stats and eligibility. Output is deterministic for
// a given catalog and scenario, so diffs between runs are balance diffs.
package main

import (
	"flag"
	"fmt"
	"log"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arpg/internal/config"
	"github.com/cory-johannsen/arpg/internal/game/character"
	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/game/loadout"
	"github.com/cory-johannsen/arpg/internal/game/skill"
	"github.com/cory-johannsen/arpg/internal/observability"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	gemsDir := flag.String("gems-dir", "", "gem content directory; overrides content.gems_dir")
	loadoutPath := flag.String("loadout", "", "path to the loadout scenario YAML")
	flag.Parse()

	if *loadoutPath == "" {
		log.Fatal("missing required -loadout flag")
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	dir := cfg.Content.GemsDir
	if *gemsDir != "" {
		dir = *gemsDir
	}
	registry, err := gem.LoadDirectory(dir)
	if err != nil {
		logger.Fatal("loading gem content", zap.String("dir", dir), zap.Error(err))
	}
	logger.Info("gem catalog loaded",
		zap.String("dir", dir),
		zap.Int("templates", registry.Len()),
	)

	lf, err := parseLoadoutFile(*loadoutPath)
	if err != nil {
		logger.Fatal("loading scenario", zap.Error(err))
	}
	snap := lf.Character.snapshot()

	// A fixed character id: skillsim simulates exactly one character.
	const characterID int64 = 1
	manager := loadout.NewManager(logger)
	for _, item := range lf.Items {
		group, err := buildGroup(registry, item)
		if err != nil {
			logger.Fatal("building socket group", zap.Error(err))
		}
		if err := manager.Equip(characterID, item.ID, group); err != nil {
			logger.Fatal("equipping item", zap.Error(err))
		}
	}

	for _, item := range manager.ResolveAll(characterID) {
		for _, setup := range item.Setups {
			printSetup(item.ItemID, setup, snap)
		}
	}

	logger.Info("simulation complete", zap.Duration("elapsed", time.Since(start)))
}

// printSetup writes one setup's composed stats in sorted key order.
func printSetup(itemID string, setup skill.Setup, snap character.Snapshot) {
	fmt.Printf("%s socket %d: %s (level %d, quality %d)\n",
		itemID, setup.SocketIndex, setup.Active.Template.Name, setup.Active.Level, setup.Active.Quality)
	for _, support := range setup.Supports {
		fmt.Printf("    + %s (level %d)\n", support.Template.Name, support.Level)
	}

	composed := skill.CalculateSkillDamage(setup, snap)
	keys := make([]string, 0, len(composed))
	for k := range composed {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Printf("    %-28s %.3f\n", k, composed[k])
	}
	fmt.Printf("    usable: %v (cost %.2f, mana %.2f)\n\n",
		skill.CanUseSkill(setup, snap), skill.Cost(setup), snap.Mana.Current)
}
