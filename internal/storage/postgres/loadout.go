package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/arpg/internal/game/gem"
	"github.com/cory-johannsen/arpg/internal/game/socket"
)

// ErrLoadoutNotFound is returned when no socket group is stored for the
// requested character/item pair.
var ErrLoadoutNotFound = errors.New("loadout not found")

// ErrUnknownTemplate is returned when a stored gem references a template id
// missing from the registry (content drift between save and load).
var ErrUnknownTemplate = errors.New("gem template not registered")

// LoadoutRepository persists socket groups and the gem instances socketed in
// them. Round-trips are verbatim: template id, level, experience, quality,
// socket colors, and the link-pair list all survive unchanged.
type LoadoutRepository struct {
	db *pgxpool.Pool
}

// NewLoadoutRepository creates a LoadoutRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewLoadoutRepository(db *pgxpool.Pool) *LoadoutRepository {
	return &LoadoutRepository{db: db}
}

// Save stores the full socket-group state for (characterID, itemID),
// replacing any previous state for that pair in one transaction.
//
// Precondition: itemID must be non-empty.
// Postcondition: Load returns an equivalent group, or an error and no
// partial writes remain.
func (r *LoadoutRepository) Save(ctx context.Context, characterID int64, itemID string, g *socket.Group) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning loadout save: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`DELETE FROM socket_groups WHERE character_id = $1 AND item_id = $2`,
		characterID, itemID,
	); err != nil {
		return fmt.Errorf("clearing previous loadout: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO socket_groups (character_id, item_id) VALUES ($1, $2)`,
		characterID, itemID,
	); err != nil {
		return fmt.Errorf("inserting socket group: %w", err)
	}

	for i := 0; i < g.Len(); i++ {
		s := g.Socket(i)
		var gemID, templateID *string
		var level, experience, quality *int
		if inst := s.Gem(); inst != nil {
			gemID = &inst.ID
			templateID = &inst.Template.ID
			level = &inst.Level
			experience = &inst.Experience
			quality = &inst.Quality
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO sockets
				(character_id, item_id, idx, color,
				 gem_id, gem_template_id, gem_level, gem_experience, gem_quality)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
			characterID, itemID, i, string(s.Color),
			gemID, templateID, level, experience, quality,
		); err != nil {
			return fmt.Errorf("inserting socket %d: %w", i, err)
		}
	}

	for _, pair := range g.LinkPairs() {
		if _, err := tx.Exec(ctx, `
			INSERT INTO socket_links (character_id, item_id, socket_a, socket_b)
			VALUES ($1,$2,$3,$4)`,
			characterID, itemID, pair[0], pair[1],
		); err != nil {
			return fmt.Errorf("inserting link %v: %w", pair, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing loadout save: %w", err)
	}
	return nil
}

// Load rebuilds the socket group stored for (characterID, itemID). Gem
// instances are reconstructed through the registry clone path so their
// template copies stay consistent with the current catalog, then their
// persisted id/level/experience/quality are restored verbatim.
//
// Postcondition: returns ErrLoadoutNotFound when nothing is stored, or
// ErrUnknownTemplate when a stored gem's template id is no longer registered.
func (r *LoadoutRepository) Load(ctx context.Context, characterID int64, itemID string, reg *gem.Registry) (*socket.Group, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM socket_groups WHERE character_id = $1 AND item_id = $2)`,
		characterID, itemID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("checking socket group: %w", err)
	}
	if !exists {
		return nil, ErrLoadoutNotFound
	}

	rows, err := r.db.Query(ctx, `
		SELECT idx, color, gem_id, gem_template_id, gem_level, gem_experience, gem_quality
		FROM sockets
		WHERE character_id = $1 AND item_id = $2
		ORDER BY idx ASC`,
		characterID, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying sockets: %w", err)
	}
	defer rows.Close()

	type storedSocket struct {
		idx        int
		color      string
		gemID      *string
		templateID *string
		level      *int
		experience *int
		quality    *int
	}
	var stored []storedSocket
	for rows.Next() {
		var s storedSocket
		if err := rows.Scan(&s.idx, &s.color, &s.gemID, &s.templateID, &s.level, &s.experience, &s.quality); err != nil {
			return nil, fmt.Errorf("scanning socket row: %w", err)
		}
		stored = append(stored, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reading socket rows: %w", err)
	}

	colors := make([]gem.Color, len(stored))
	for i, s := range stored {
		colors[i] = gem.Color(s.color)
	}
	group, err := socket.NewGroup(colors)
	if err != nil {
		return nil, fmt.Errorf("rebuilding socket group: %w", err)
	}

	for _, s := range stored {
		if s.templateID == nil {
			continue
		}
		inst, ok := reg.NewInstance(*s.templateID)
		if !ok {
			return nil, fmt.Errorf("socket %d references template %q: %w", s.idx, *s.templateID, ErrUnknownTemplate)
		}
		inst.ID = *s.gemID
		inst.Level = *s.level
		inst.Experience = *s.experience
		inst.Quality = *s.quality
		if err := group.Insert(s.idx, inst); err != nil {
			return nil, fmt.Errorf("re-socketing gem at %d: %w", s.idx, err)
		}
	}

	linkRows, err := r.db.Query(ctx, `
		SELECT socket_a, socket_b
		FROM socket_links
		WHERE character_id = $1 AND item_id = $2
		ORDER BY socket_a, socket_b`,
		characterID, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying links: %w", err)
	}
	defer linkRows.Close()

	for linkRows.Next() {
		var a, b int
		if err := linkRows.Scan(&a, &b); err != nil {
			return nil, fmt.Errorf("scanning link row: %w", err)
		}
		if err := group.AddLink(a, b); err != nil {
			return nil, fmt.Errorf("restoring link %d-%d: %w", a, b, err)
		}
	}
	if err := linkRows.Err(); err != nil {
		return nil, fmt.Errorf("reading link rows: %w", err)
	}

	return group, nil
}

// ListItems returns the item ids with stored loadouts for a character,
// ordered alphabetically.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *LoadoutRepository) ListItems(ctx context.Context, characterID int64) ([]string, error) {
	rows, err := r.db.Query(ctx,
		`SELECT item_id FROM socket_groups WHERE character_id = $1 ORDER BY item_id ASC`,
		characterID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing loadout items: %w", err)
	}
	defer rows.Close()

	items := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning item id: %w", err)
		}
		items = append(items, id)
	}
	return items, rows.Err()
}

// Delete removes the stored loadout for (characterID, itemID).
//
// Postcondition: Load for the pair returns ErrLoadoutNotFound.
func (r *LoadoutRepository) Delete(ctx context.Context, characterID int64, itemID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM socket_groups WHERE character_id = $1 AND item_id = $2`,
		characterID, itemID,
	)
	if err != nil {
		return fmt.Errorf("deleting loadout: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrLoadoutNotFound
	}
	return nil
}
