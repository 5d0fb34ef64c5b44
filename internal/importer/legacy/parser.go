package legacy

import (
	"encoding/json"
	"fmt"
)

// ParseDump parses a legacy engine gem export JSON document.
//
// Precondition: data must be valid JSON.
// Postcondition: returns a non-nil LegacyDump or a non-nil error.
func ParseDump(data []byte) (*LegacyDump, error) {
	var d LegacyDump
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parsing legacy gem dump: %w", err)
	}
	return &d, nil
}
