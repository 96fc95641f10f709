package models

import (
	"encoding/json"
	"fmt"
)

// Defaults substituted for absent optional configuration fields.
const (
	DefaultCurrency        = "ISK"
	DefaultSalvagerPercent = 10.0
	DefaultNumberFormat    = "grouped"
)

// Config holds the payout configuration: the level value table plus the
// salvage bonus rules and display settings.
type Config struct {
	// Levels maps each reward tier to its configured name and value.
	// A tier absent from the table pays out zero.
	Levels map[Level]LevelConfig `json:"levels"`

	// HasSalvager enables the salvage bonus: a percentage of each site's
	// value is reserved for the site's salvager participants before the
	// remainder is split evenly.
	HasSalvager bool `json:"hasSalvager"`

	// SalvagerPercent is the share of a site's value reserved for the
	// salvage pool, in percent (0..100). Only meaningful when HasSalvager
	// is set; 0 and 100 are both valid boundary configurations.
	SalvagerPercent float64 `json:"salvagerPercent"`

	// Currency is the display label for amounts.
	Currency string `json:"currency"`

	// NumberFormat is the display layer's numeric format hint. Persisted
	// and echoed back, never interpreted by the engine.
	NumberFormat string `json:"numberFormat"`

	// AutoCalculate makes every read and save recompute payouts.
	AutoCalculate bool `json:"autoCalculate"`
}

// UnmarshalJSON decodes a config with defaults for absent optional fields:
// currency "ISK", salvager percent 10, auto-calculate on. An explicit zero
// in the document (e.g. salvagerPercent: 0) is preserved.
func (c *Config) UnmarshalJSON(data []byte) error {
	type config Config // drop methods to avoid recursion
	tmp := config{
		SalvagerPercent: DefaultSalvagerPercent,
		Currency:        DefaultCurrency,
		NumberFormat:    DefaultNumberFormat,
		AutoCalculate:   true,
	}
	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}
	*c = Config(tmp)
	return nil
}

// Validate checks the configuration for out-of-range values.
func (c Config) Validate() error {
	for level, lc := range c.Levels {
		if err := lc.Validate(level); err != nil {
			return err
		}
	}
	if c.SalvagerPercent < 0 || c.SalvagerPercent > 100 {
		return fmt.Errorf("config: salvager percent %v outside 0..100", c.SalvagerPercent)
	}
	return nil
}

// DefaultConfig returns the configuration used for a fresh document:
// level N pays N * 100,000 ISK, salvage off, auto-calculate on.
func DefaultConfig() Config {
	levels := make(map[Level]LevelConfig, MaxLevel-MinLevel+1)
	for l := MinLevel; l <= MaxLevel; l++ {
		levels[l] = LevelConfig{
			Name:  fmt.Sprintf("Level %d", l),
			Value: int64(l) * 100_000,
		}
	}
	return Config{
		Levels:          levels,
		HasSalvager:     false,
		SalvagerPercent: DefaultSalvagerPercent,
		Currency:        DefaultCurrency,
		NumberFormat:    DefaultNumberFormat,
		AutoCalculate:   true,
	}
}
