package models

import "fmt"

// Level is the reward tier of a site. Valid tiers are 1 through 10.
//
// Level is the single canonical key type for the level table: JSON documents
// carry string keys ("1".."10") but those are only an encoding artifact of
// integer-keyed maps.
type Level int

const (
	// MinLevel and MaxLevel bound the configurable reward tiers.
	MinLevel Level = 1
	MaxLevel Level = 10

	// LevelNotPerformed is a sentinel assigned to sites that were logged
	// but never cleared. Such sites are excluded from calculation and do
	// not count toward totals.
	LevelNotPerformed Level = 99
)

// MaxLevelValue caps a single level's payout value.
const MaxLevelValue int64 = 999_999_999_999

// Valid reports whether l is a payable tier (1..10).
func (l Level) Valid() bool {
	return l >= MinLevel && l <= MaxLevel
}

// LevelConfig is the configured name and payout value of one tier.
type LevelConfig struct {
	// Name is the display name of the tier (e.g., "Frontier Barracks").
	Name string `json:"name"`

	// Value is the gross payout of one site at this tier, in whole ISK.
	Value int64 `json:"value"`
}

// Validate checks a single tier entry against the configured bounds.
func (c LevelConfig) Validate(l Level) error {
	if !l.Valid() {
		return fmt.Errorf("level %d: outside valid range %d..%d", l, MinLevel, MaxLevel)
	}
	if c.Value < 0 {
		return fmt.Errorf("level %d: value must not be negative", l)
	}
	if c.Value > MaxLevelValue {
		return fmt.Errorf("level %d: value exceeds maximum %d", l, MaxLevelValue)
	}
	return nil
}
