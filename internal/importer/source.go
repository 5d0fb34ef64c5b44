// Package importer converts gem content from external formats into the
// project's per-gem YAML content files.
package importer

import "github.com/cory-johannsen/arpg/internal/game/gem"

// Source loads gem definitions from a format-specific source path and
// produces gem Defs ready to be written as per-gem YAML content files.
//
// Precondition: sourcePath must exist and match the format's expected layout.
// Postcondition: returns at least one Def, or a non-nil error.
type Source interface {
	Load(sourcePath string) ([]*gem.Def, error)
}
