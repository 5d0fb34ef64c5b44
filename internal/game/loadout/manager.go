// Package loadout tracks the equipped socket groups of each character and
// is the per-character serialisation point for socket and gem mutations.
package loadout

import (
	"fmt"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/cory-johannsen/arpg/internal/game/skill"
	"github.com/cory-johannsen/arpg/internal/game/socket"
)

// ItemSetups pairs an equipped item with the skill setups its socket group
// currently resolves to.
type ItemSetups struct {
	ItemID string
	Setups []skill.Setup
}

// Manager holds the live socket groups of all characters, keyed by
// character ID then item ID. All methods are safe for concurrent use; the
// manager guarantees one mutation in flight per map access while resolution
// runs against a read lock.
type Manager struct {
	mu       sync.RWMutex
	loadouts map[int64]map[string]*socket.Group
	logger   *zap.Logger
}

// NewManager creates an empty Manager.
//
// Precondition:  logger must be non-nil.
// Postcondition: returns a non-nil Manager ready for use.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		loadouts: make(map[int64]map[string]*socket.Group),
		logger:   logger,
	}
}

// Equip registers itemID's socket group for the character.
//
// Precondition:  group must be non-nil; itemID must be non-empty.
// Postcondition: Group(characterID, itemID) returns the group; returns an
// error if the item is already equipped.
func (m *Manager) Equip(characterID int64, itemID string, group *socket.Group) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.loadouts[characterID]
	if !ok {
		items = make(map[string]*socket.Group)
		m.loadouts[characterID] = items
	}
	if _, exists := items[itemID]; exists {
		return fmt.Errorf("loadout: item %q already equipped for character %d", itemID, characterID)
	}
	items[itemID] = group
	m.logger.Debug("item equipped",
		zap.Int64("character_id", characterID),
		zap.String("item_id", itemID),
		zap.Int("sockets", group.Len()),
	)
	return nil
}

// Unequip removes itemID's socket group and returns it so the caller can
// return gems to inventory.
//
// Postcondition: ok is false when the character has no such item equipped.
func (m *Manager) Unequip(characterID int64, itemID string) (*socket.Group, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	items, ok := m.loadouts[characterID]
	if !ok {
		return nil, false
	}
	group, ok := items[itemID]
	if !ok {
		return nil, false
	}
	delete(items, itemID)
	if len(items) == 0 {
		delete(m.loadouts, characterID)
	}
	return group, true
}

// Group returns the socket group equipped as itemID for the character.
//
// Postcondition: ok is true iff the item is equipped.
func (m *Manager) Group(characterID int64, itemID string) (*socket.Group, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.loadouts[characterID]
	if !ok {
		return nil, false
	}
	g, ok := items[itemID]
	return g, ok
}

// ResolveAll derives the skill setups across every equipped item, ordered by
// ascending item ID and then ascending socket index.
//
// Postcondition: the result is deterministic for a given loadout state.
func (m *Manager) ResolveAll(characterID int64) []ItemSetups {
	m.mu.RLock()
	defer m.mu.RUnlock()

	items, ok := m.loadouts[characterID]
	if !ok {
		return nil
	}
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]ItemSetups, 0, len(ids))
	for _, id := range ids {
		out = append(out, ItemSetups{ItemID: id, Setups: skill.ActiveSetups(items[id])})
	}
	return out
}
