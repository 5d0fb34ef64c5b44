// Package socket models color-constrained gem sockets and the symmetric
// link graph over the sockets of one equippable item.
package socket

import (
	"errors"

	"github.com/cory-johannsen/arpg/internal/game/gem"
)

// ErrOccupied is returned when socketing into a socket that already holds a gem.
var ErrOccupied = errors.New("socket already holds a gem")

// ErrColorMismatch is returned when a gem's color does not match a non-white socket.
var ErrColorMismatch = errors.New("gem color does not match socket")

// ErrEmpty is returned when unsocketing a socket that holds no gem.
var ErrEmpty = errors.New("socket holds no gem")

// ErrIndexOutOfRange is returned for socket or link indices outside the group.
var ErrIndexOutOfRange = errors.New("socket index out of range")

// Socket is a single link-capable slot holding at most one gem instance.
// Mutations are not synchronised; the caller serialises them per character.
type Socket struct {
	// Color constrains which gems the socket accepts. White accepts any.
	Color gem.Color
	held  *gem.Instance
}

// NewSocket returns an empty socket of the given color.
func NewSocket(color gem.Color) *Socket {
	return &Socket{Color: color}
}

// Gem returns the held instance, or nil when the socket is empty.
func (s *Socket) Gem() *gem.Instance {
	return s.held
}

// CanAccept reports whether inst could be socketed here: the socket must be
// empty and either white or matching the gem's color.
//
// Precondition: inst must be non-nil.
func (s *Socket) CanAccept(inst *gem.Instance) bool {
	if s.held != nil {
		return false
	}
	return s.Color == gem.ColorWhite || s.Color == inst.Color
}

// Insert places inst into the socket.
//
// Precondition:  inst must be non-nil.
// Postcondition: on error the socket is unchanged; otherwise Gem() == inst.
func (s *Socket) Insert(inst *gem.Instance) error {
	if s.held != nil {
		return ErrOccupied
	}
	if s.Color != gem.ColorWhite && s.Color != inst.Color {
		return ErrColorMismatch
	}
	s.held = inst
	return nil
}

// Remove takes the held gem out of the socket and returns it.
//
// Postcondition: on success the socket is empty.
func (s *Socket) Remove() (*gem.Instance, error) {
	if s.held == nil {
		return nil, ErrEmpty
	}
	inst := s.held
	s.held = nil
	return inst, nil
}
