// Package service implements the ledger operations on top of the document
// store and the calculation engine: document reads and saves, roster and site
// mutation, manual calculation, and import/export.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/veldspar/sitepay/internal/engine"
	"github.com/veldspar/sitepay/internal/ident"
	"github.com/veldspar/sitepay/internal/metrics"
	"github.com/veldspar/sitepay/internal/models"
	"github.com/veldspar/sitepay/internal/storage"
)

var (
	// ErrNotFound is returned when a referenced member or site does not
	// exist in the document.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput wraps validation failures on caller-provided data.
	ErrInvalidInput = errors.New("invalid input")
)

// DataView is a document plus its derived calculations. Calculations are
// attached when auto-calculate is enabled (or always, for exports) and are
// never read back from storage: they are recomputed on every call.
type DataView struct {
	Config       models.Config             `json:"config"`
	Members      []models.Member           `json:"members"`
	Sites        []models.Site             `json:"sites"`
	Calculations *models.CalculationResult `json:"calculations,omitempty"`
}

// LedgerService orchestrates the store and the engine.
type LedgerService struct {
	store storage.Store
	ids   ident.Generator
}

// NewLedgerService creates a LedgerService with the given storage backend and
// identifier generator.
func NewLedgerService(store storage.Store, ids ident.Generator) *LedgerService {
	return &LedgerService{store: store, ids: ids}
}

// compute runs the engine and applies the ranked (total-descending) order the
// display layer expects. Ties keep roster order.
func (s *LedgerService) compute(doc *models.Document) (*models.CalculationResult, error) {
	result, err := engine.Compute(doc.Config, doc.Members, doc.Sites)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	sort.SliceStable(result.Payments, func(i, j int) bool {
		return result.Payments[i].Total > result.Payments[j].Total
	})

	metrics.Computations.Inc()
	metrics.ComputedSites.Observe(float64(result.TotalSites))
	return result, nil
}

// view assembles a DataView, attaching calculations when requested.
func (s *LedgerService) view(doc *models.Document, calculate bool) (*DataView, error) {
	v := &DataView{Config: doc.Config, Members: doc.Members, Sites: doc.Sites}
	if calculate {
		result, err := s.compute(doc)
		if err != nil {
			return nil, err
		}
		v.Calculations = result
	}
	return v, nil
}

// Data returns the full document, with calculations when auto-calculate is
// enabled.
func (s *LedgerService) Data(ctx context.Context) (*DataView, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(doc, doc.Config.AutoCalculate)
}

// SaveData validates and persists a whole document. When auto-calculate is
// enabled the fresh calculations are returned.
func (s *LedgerService) SaveData(ctx context.Context, doc *models.Document) (*models.CalculationResult, error) {
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	slog.Debug("Document saved", "members", len(doc.Members), "sites", len(doc.Sites))

	if !doc.Config.AutoCalculate {
		return nil, nil
	}
	return s.compute(doc)
}

// Config returns only the payout configuration.
func (s *LedgerService) Config(ctx context.Context) (models.Config, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return models.Config{}, err
	}
	return doc.Config, nil
}

// SaveConfig replaces the payout configuration, leaving roster and sites
// untouched.
func (s *LedgerService) SaveConfig(ctx context.Context, cfg models.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}
	doc.Config = cfg
	return s.store.Save(ctx, doc)
}

// Calculate computes payouts for a caller-provided document without
// persisting anything. This backs the manual calculate endpoint.
func (s *LedgerService) Calculate(ctx context.Context, doc *models.Document) (*models.CalculationResult, error) {
	return s.compute(doc)
}

// Export returns the full document with calculations always attached,
// regardless of the auto-calculate setting.
func (s *LedgerService) Export(ctx context.Context) (*DataView, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return s.view(doc, true)
}

// Import validates and persists a full-document JSON snapshot. The snapshot
// must carry all three top-level keys (config, members, sites); an imported
// document is immediately computable.
func (s *LedgerService) Import(ctx context.Context, raw []byte) (*DataView, error) {
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", ErrInvalidInput, err)
	}
	for _, key := range []string{"config", "members", "sites"} {
		if _, ok := keys[key]; !ok {
			return nil, fmt.Errorf("%w: missing %q", ErrInvalidInput, key)
		}
	}

	var doc models.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.store.Save(ctx, &doc); err != nil {
		return nil, err
	}
	slog.Info("Document imported", "members", len(doc.Members), "sites", len(doc.Sites))

	return s.view(&doc, doc.Config.AutoCalculate)
}

// AddMembers adds members in batch from delimited text. Names are split on
// newlines, commas, and semicolons; surrounding whitespace is trimmed and
// empty entries are dropped. The newly added members are returned.
func (s *LedgerService) AddMembers(ctx context.Context, text string) ([]models.Member, error) {
	names := splitNames(text)
	if len(names) == 0 {
		return nil, fmt.Errorf("%w: no member names given", ErrInvalidInput)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	added := make([]models.Member, 0, len(names))
	for _, name := range names {
		m := models.Member{ID: s.ids.NewID(), Name: name}
		doc.Members = append(doc.Members, m)
		added = append(added, m)
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	slog.Info("Members added", "count", len(added))
	return added, nil
}

// RemoveMember deletes a member from the roster. Sites keep referencing the
// removed ID; such references are tolerated and skipped at calculation time.
func (s *LedgerService) RemoveMember(ctx context.Context, id string) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Members[:0]
	found := false
	for _, m := range doc.Members {
		if m.ID == id {
			found = true
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	doc.Members = kept

	return s.store.Save(ctx, doc)
}

// UpdateMember renames a member and/or toggles the salvager flag. The
// member's ID stays stable across renames. A nil field leaves the current
// value untouched.
func (s *LedgerService) UpdateMember(ctx context.Context, id string, name *string, isSalvager *bool) (*models.Member, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	m := doc.Member(id)
	if m == nil {
		return nil, fmt.Errorf("%w: member %s", ErrNotFound, id)
	}
	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: member name must not be empty", ErrInvalidInput)
		}
		m.Name = trimmed
	}
	if isSalvager != nil {
		m.IsSalvager = *isSalvager
	}

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	updated := *m
	return &updated, nil
}

// AddSite registers a cleared site. The level must be a valid tier or the
// not-performed sentinel, and the participant list must not be empty.
func (s *LedgerService) AddSite(ctx context.Context, name string, level models.Level, participants []string) (*models.Site, error) {
	site := models.Site{
		ID:           s.ids.NewID(),
		Name:         strings.TrimSpace(name),
		Level:        level,
		Participants: participants,
	}
	if err := site.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	doc.Sites = append(doc.Sites, site)

	if err := s.store.Save(ctx, doc); err != nil {
		return nil, err
	}
	slog.Info("Site added", "site_id", site.ID, "level", site.Level, "participants", len(site.Participants))
	return &site, nil
}

// UpdateSite replaces an existing site's name, level, and participants,
// keyed by the site ID.
func (s *LedgerService) UpdateSite(ctx context.Context, site models.Site) error {
	if err := site.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	existing := doc.Site(site.ID)
	if existing == nil {
		return fmt.Errorf("%w: site %s", ErrNotFound, site.ID)
	}
	*existing = site

	return s.store.Save(ctx, doc)
}

// RemoveSite deletes a site from the ledger.
func (s *LedgerService) RemoveSite(ctx context.Context, id string) error {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return err
	}

	kept := doc.Sites[:0]
	found := false
	for _, site := range doc.Sites {
		if site.ID == id {
			found = true
			continue
		}
		kept = append(kept, site)
	}
	if !found {
		return fmt.Errorf("%w: site %s", ErrNotFound, id)
	}
	doc.Sites = kept

	return s.store.Save(ctx, doc)
}

// splitNames parses batch member input: one name per line, comma, or
// semicolon.
func splitNames(text string) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r' || r == ',' || r == ';'
	})
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		if name := strings.TrimSpace(f); name != "" {
			names = append(names, name)
		}
	}
	return names
}
