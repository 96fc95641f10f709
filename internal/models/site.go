package models

import (
	"fmt"
	"strings"
)

// Site is one cleared activity instance at a given reward level.
type Site struct {
	// ID is the unique identifier for the site (UUID format).
	// IDs are assigned in creation order.
	ID string `json:"id"`

	// Name is the display name of the site.
	Name string `json:"name"`

	// Level is the reward tier the site was cleared at (1..10), or
	// LevelNotPerformed for logged-but-skipped sites.
	Level Level `json:"level"`

	// Participants lists the member IDs that took part. A participant may
	// reference a member no longer on the roster; such IDs are tolerated
	// and skipped during payout distribution.
	Participants []string `json:"participants"`
}

// Validate checks the site for structural problems. Dangling participant
// references are deliberately not an error here; they are handled at
// calculation and render time.
func (s Site) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("site: id must not be empty")
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("site %s: name must not be empty", s.ID)
	}
	if !s.Level.Valid() && s.Level != LevelNotPerformed {
		return fmt.Errorf("site %s: level %d outside valid range %d..%d", s.ID, s.Level, MinLevel, MaxLevel)
	}
	if len(s.Participants) == 0 {
		return fmt.Errorf("site %s: must have at least one participant", s.ID)
	}
	return nil
}
