// Package engine implements the payment calculation: given the payout
// configuration, the roster, and the cleared sites, it computes each member's
// total and the aggregate statistics.
//
// Compute is a pure function. It never mutates its inputs, holds no state
// across calls, and is safe to invoke concurrently.
package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/veldspar/sitepay/internal/models"
)

// ErrInvalidInput is returned for structurally impossible input, such as a
// non-finite salvager percent. Out-of-range but representable input (missing
// levels, dangling participants, empty sites) degrades instead of failing.
var ErrInvalidInput = errors.New("engine: invalid input")

// Compute calculates the payout for every roster member.
//
// For each counted site the level value is split evenly across the site's
// participants; when salvage is enabled and at least one participant is a
// salvager, a salvagerPercent cut of the value is reserved and divided among
// the site's salvagers first, with the remainder split evenly across everyone
// (salvagers included). Each participant's per-site payment is rounded to the
// nearest whole ISK before accumulation.
//
// Sites at LevelNotPerformed are ignored entirely. Participant IDs that do
// not resolve to a roster member still count toward the even-split
// denominator but receive nothing. A tier absent from the level table pays
// zero but the site still counts.
func Compute(cfg models.Config, members []models.Member, sites []models.Site) (*models.CalculationResult, error) {
	if math.IsNaN(cfg.SalvagerPercent) || math.IsInf(cfg.SalvagerPercent, 0) {
		return nil, fmt.Errorf("%w: salvager percent must be finite, got %v", ErrInvalidInput, cfg.SalvagerPercent)
	}

	// One accumulator per roster member, in roster order, so members with
	// zero sites still appear with a zero payout.
	payments := make([]models.MemberPayment, len(members))
	index := make(map[string]int, len(members))
	for i, m := range members {
		payments[i] = models.MemberPayment{
			MemberID:   m.ID,
			Name:       m.Name,
			IsSalvager: m.IsSalvager,
		}
		index[m.ID] = i
	}

	var totalPaid int64
	totalSites := 0

	for _, site := range sites {
		if site.Level == models.LevelNotPerformed {
			continue
		}
		totalSites++

		value := cfg.Levels[site.Level].Value // absent tier pays zero
		totalPaid += value

		if len(site.Participants) == 0 {
			// Should not reach the engine (validated at creation),
			// but never divide by zero: zero-payout site.
			continue
		}

		// Partition participants; dangling IDs are skipped from payout
		// but stay in the even-split denominator.
		salvagerCount := 0
		for _, id := range site.Participants {
			if i, ok := index[id]; ok && payments[i].IsSalvager {
				salvagerCount++
			}
		}

		pool := 0.0
		remaining := float64(value)
		if cfg.HasSalvager && salvagerCount > 0 {
			pool = float64(value) * cfg.SalvagerPercent / 100
			remaining = float64(value) - pool
		}
		share := remaining / float64(len(site.Participants))
		bonus := 0.0
		if salvagerCount > 0 {
			bonus = pool / float64(salvagerCount)
		}

		for _, id := range site.Participants {
			i, ok := index[id]
			if !ok {
				continue
			}
			amount := share
			if cfg.HasSalvager && payments[i].IsSalvager {
				amount += bonus
			}
			rounded := int64(math.Round(amount))
			payments[i].Total += rounded
			payments[i].SitesCount++
			payments[i].Sites = append(payments[i].Sites, models.SiteShare{
				Name:   site.Name,
				Level:  site.Level,
				Amount: rounded,
			})
		}
	}

	return &models.CalculationResult{
		TotalPaid:  totalPaid,
		TotalSites: totalSites,
		Payments:   payments,
	}, nil
}
