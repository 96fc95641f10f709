package models

import "fmt"

// Document is the single persisted unit: configuration, roster, and sites.
// It is loaded and saved wholesale; concurrent saves are last-write-wins.
type Document struct {
	Config  Config   `json:"config"`
	Members []Member `json:"members"`
	Sites   []Site   `json:"sites"`
}

// DefaultDocument returns the document a fresh store starts from: default
// configuration, empty roster, no sites.
func DefaultDocument() *Document {
	return &Document{
		Config:  DefaultConfig(),
		Members: []Member{},
		Sites:   []Site{},
	}
}

// Validate checks the whole document: configuration bounds, member and site
// shape, and roster ID uniqueness. Dangling site participants are allowed.
func (d *Document) Validate() error {
	if err := d.Config.Validate(); err != nil {
		return err
	}
	seen := make(map[string]bool, len(d.Members))
	for _, m := range d.Members {
		if err := m.Validate(); err != nil {
			return err
		}
		if seen[m.ID] {
			return fmt.Errorf("member %s: duplicate id", m.ID)
		}
		seen[m.ID] = true
	}
	for _, s := range d.Sites {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// Member returns the roster member with the given ID, or nil.
func (d *Document) Member(id string) *Member {
	for i := range d.Members {
		if d.Members[i].ID == id {
			return &d.Members[i]
		}
	}
	return nil
}

// Site returns the site with the given ID, or nil.
func (d *Document) Site(id string) *Site {
	for i := range d.Sites {
		if d.Sites[i].ID == id {
			return &d.Sites[i]
		}
	}
	return nil
}
