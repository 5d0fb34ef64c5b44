package socket

import (
	"fmt"
	"sort"

	"github.com/cory-johannsen/arpg/internal/game/gem"
)

// Group is the socket layout of one equippable item: an arena of indexed
// sockets plus a symmetric adjacency relation stored as sorted index lists.
// The graph may be cyclic, disconnected, and of arbitrary degree. No pointer
// cycles; the whole structure is trivially serialisable as colors plus link
// pairs.
type Group struct {
	sockets []*Socket
	adj     [][]int
}

// NewGroup creates a group with one empty socket per color, in order.
//
// Precondition:  every color must be a valid socket color.
// Postcondition: Len() == len(colors); no links exist.
func NewGroup(colors []gem.Color) (*Group, error) {
	g := &Group{
		sockets: make([]*Socket, len(colors)),
		adj:     make([][]int, len(colors)),
	}
	for i, c := range colors {
		if !gem.ValidColor(c) {
			return nil, fmt.Errorf("socket: NewGroup: invalid color %q at index %d", c, i)
		}
		g.sockets[i] = NewSocket(c)
	}
	return g, nil
}

// Len returns the number of sockets in the group.
func (g *Group) Len() int {
	return len(g.sockets)
}

// Socket returns the socket at index i, or nil when i is out of range.
func (g *Group) Socket(i int) *Socket {
	if i < 0 || i >= len(g.sockets) {
		return nil
	}
	return g.sockets[i]
}

// Insert places inst into the socket at index i.
//
// Postcondition: on error no state changes; failure reasons are
// ErrIndexOutOfRange, ErrOccupied, or ErrColorMismatch.
func (g *Group) Insert(i int, inst *gem.Instance) error {
	s := g.Socket(i)
	if s == nil {
		return ErrIndexOutOfRange
	}
	return s.Insert(inst)
}

// Remove takes the gem out of the socket at index i. Links are unaffected;
// they belong to sockets, not gems.
func (g *Group) Remove(i int) (*gem.Instance, error) {
	s := g.Socket(i)
	if s == nil {
		return nil, ErrIndexOutOfRange
	}
	return s.Remove()
}

// AddLink adds a symmetric edge between sockets i and j. Re-adding an
// existing edge is a no-op. Out-of-range indices and self-links fail without
// mutating the graph.
//
// Postcondition: on success Linked(i, j) and Linked(j, i) are both true.
func (g *Group) AddLink(i, j int) error {
	if i < 0 || i >= len(g.sockets) || j < 0 || j >= len(g.sockets) {
		return ErrIndexOutOfRange
	}
	if i == j {
		return fmt.Errorf("socket: Group.AddLink: cannot link socket %d to itself", i)
	}
	g.adj[i] = insertNeighbor(g.adj[i], j)
	g.adj[j] = insertNeighbor(g.adj[j], i)
	return nil
}

// RemoveLink clears the edge between i and j in both directions. Removing a
// missing edge or using out-of-range indices is a no-op.
func (g *Group) RemoveLink(i, j int) {
	if i < 0 || i >= len(g.sockets) || j < 0 || j >= len(g.sockets) {
		return
	}
	g.adj[i] = deleteNeighbor(g.adj[i], j)
	g.adj[j] = deleteNeighbor(g.adj[j], i)
}

// Linked reports whether sockets i and j share an edge.
func (g *Group) Linked(i, j int) bool {
	if i < 0 || i >= len(g.sockets) {
		return false
	}
	idx := sort.SearchInts(g.adj[i], j)
	return idx < len(g.adj[i]) && g.adj[i][idx] == j
}

// Neighbors returns the socket indices linked to i, in ascending order. The
// result is a copy; mutations do not affect the graph. Ascending order makes
// downstream iteration deterministic regardless of link insertion history.
func (g *Group) Neighbors(i int) []int {
	if i < 0 || i >= len(g.sockets) {
		return nil
	}
	return append([]int(nil), g.adj[i]...)
}

// Colors returns the socket colors in index order.
func (g *Group) Colors() []gem.Color {
	out := make([]gem.Color, len(g.sockets))
	for i, s := range g.sockets {
		out[i] = s.Color
	}
	return out
}

// LinkPairs returns every edge exactly once as [i, j] with i < j, ordered by
// (i, j). The pair list plus Colors fully reconstructs the graph shape.
func (g *Group) LinkPairs() [][2]int {
	var pairs [][2]int
	for i, neighbors := range g.adj {
		for _, j := range neighbors {
			if i < j {
				pairs = append(pairs, [2]int{i, j})
			}
		}
	}
	return pairs
}

// insertNeighbor adds j to the sorted list if absent.
func insertNeighbor(list []int, j int) []int {
	idx := sort.SearchInts(list, j)
	if idx < len(list) && list[idx] == j {
		return list
	}
	list = append(list, 0)
	copy(list[idx+1:], list[idx:])
	list[idx] = j
	return list
}

// deleteNeighbor removes j from the sorted list if present.
func deleteNeighbor(list []int, j int) []int {
	idx := sort.SearchInts(list, j)
	if idx < len(list) && list[idx] == j {
		return append(list[:idx], list[idx+1:]...)
	}
	return list
}
