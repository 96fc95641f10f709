package models

// SiteShare is one member's share of one site, for the per-member breakdown.
type SiteShare struct {
	// Name is the site's display name at calculation time.
	Name string `json:"name"`

	// Level is the tier the site was cleared at.
	Level Level `json:"level"`

	// Amount is this member's rounded share of the site, in whole ISK.
	Amount int64 `json:"amount"`
}

// MemberPayment is one member's total payout across all sites.
type MemberPayment struct {
	MemberID   string `json:"memberId"`
	Name       string `json:"name"`
	IsSalvager bool   `json:"isSalvager"`

	// SitesCount is the number of sites the member participated in,
	// counted once per site regardless of share composition.
	SitesCount int `json:"sitesCount"`

	// Total is the member's accumulated payout in whole ISK. Each per-site
	// share is rounded to the nearest ISK before accumulation.
	Total int64 `json:"total"`

	// Sites is the per-site breakdown of the total.
	Sites []SiteShare `json:"sites"`
}

// CalculationResult is the derived payout view for one document. It is a
// transient value: always regenerable from config, members, and sites, and
// never a source of truth.
type CalculationResult struct {
	// TotalPaid is the sum of gross level values across counted sites.
	// Because per-member shares are rounded independently, the sum of
	// member totals may drift from TotalPaid by a few ISK. This is
	// accepted behavior, not a bug to reconcile.
	TotalPaid int64 `json:"totalPaid"`

	// TotalSites counts the sites included in the calculation
	// (not-performed sites excluded).
	TotalSites int `json:"totalSites"`

	// Payments holds one entry per roster member, zero-participation
	// members included.
	Payments []MemberPayment `json:"payments"`
}
