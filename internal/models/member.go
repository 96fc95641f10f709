package models

import (
	"fmt"
	"strings"
)

// Member is one person on the fleet roster.
type Member struct {
	// ID is the unique identifier for the member (UUID format).
	// It is stable across renames; sites reference members by this ID.
	ID string `json:"id"`

	// Name is the display name of the member.
	Name string `json:"name"`

	// IsSalvager marks the member as eligible for the salvage bonus share
	// of each site they participate in (when salvage is enabled).
	IsSalvager bool `json:"isSalvager"`
}

// Validate checks the member for structural problems.
func (m Member) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("member: id must not be empty")
	}
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("member %s: name must not be empty", m.ID)
	}
	return nil
}
