// Package skill derives skill setups from socket groups and composes their
// effective stats. Everything here is a pure function of the gem, socket,
// and character snapshots passed in; nothing is cached or mutated.
package skill

import (
	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/game/socket"
)

// Setup pairs one active gem with the support gems currently influencing it.
// Setups are derived on demand and never stored; they hold references into
// live socket state and go stale on the next mutation.
type Setup struct {
	// Active is the skill-granting gem.
	Active *gem.Instance
	// Supports are the tag-compatible linked support gems, in link order
	// (ascending neighbor socket index). Order matters: multipliers compound
	// in fold order and mechanic counts are last-applied-wins.
	Supports []*gem.Instance
	// SocketIndex is the index of the active gem's socket within its group.
	SocketIndex int
}

// ActiveSetups resolves every skill setup in the group: one Setup per socket
// holding an active gem, in ascending socket index. A support attaches when
// it sits in a directly linked socket and its tag set is empty or intersects
// the active gem's tags. A single support may serve several linked actives
// at once.
//
// Postcondition: iteration order is deterministic regardless of gem or link
// insertion history.
func ActiveSetups(g *socket.Group) []Setup {
	var setups []Setup
	for i := 0; i < g.Len(); i++ {
		active := g.Socket(i).Gem()
		if active == nil || !active.IsActive() {
			continue
		}
		activeTags := active.TagSet()
		var supports []*gem.Instance
		for _, n := range g.Neighbors(i) {
			support := g.Socket(n).Gem()
			if support == nil || !support.IsSupport() {
				continue
			}
			if supportApplies(support, activeTags) {
				supports = append(supports, support)
			}
		}
		setups = append(setups, Setup{Active: active, Supports: supports, SocketIndex: i})
	}
	return setups
}

// supportApplies reports whether a support gem is compatible with an active
// gem's tags: an untagged support attaches universally, a tagged one needs
// at least one tag in common.
func supportApplies(support *gem.Instance, activeTags map[string]bool) bool {
	tags := support.Template.Tags
	if len(tags) == 0 {
		return true
	}
	for _, tag := range tags {
		if activeTags[tag] {
			return true
		}
	}
	return false
}
