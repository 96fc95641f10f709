package models

import (
	"encoding/json"
	"testing"
)

func TestConfigUnmarshal_Defaults(t *testing.T) {
	t.Run("absent optional fields get defaults", func(t *testing.T) {
		var cfg Config
		if err := json.Unmarshal([]byte(`{"hasSalvager": true}`), &cfg); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if cfg.Currency != DefaultCurrency {
			t.Errorf("currency = %q, want %q", cfg.Currency, DefaultCurrency)
		}
		if cfg.SalvagerPercent != DefaultSalvagerPercent {
			t.Errorf("salvagerPercent = %v, want %v", cfg.SalvagerPercent, DefaultSalvagerPercent)
		}
		if !cfg.AutoCalculate {
			t.Error("autoCalculate should default on")
		}
		if !cfg.HasSalvager {
			t.Error("hasSalvager lost during decode")
		}
	})

	t.Run("explicit zeros are preserved", func(t *testing.T) {
		var cfg Config
		raw := `{"salvagerPercent": 0, "autoCalculate": false, "currency": ""}`
		if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
			t.Fatalf("Unmarshal failed: %v", err)
		}
		if cfg.SalvagerPercent != 0 {
			t.Errorf("salvagerPercent = %v, want explicit 0", cfg.SalvagerPercent)
		}
		if cfg.AutoCalculate {
			t.Error("autoCalculate should stay off when explicitly false")
		}
	})
}

func TestLevelTable_StringKeysDecode(t *testing.T) {
	var cfg Config
	raw := `{"levels": {"1": {"name": "Den", "value": 100000}, "10": {"value": 1000000}}}`
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if lc := cfg.Levels[1]; lc.Name != "Den" || lc.Value != 100_000 {
		t.Errorf("level 1 = %+v, want Den / 100000", lc)
	}
	if lc := cfg.Levels[10]; lc.Value != 1_000_000 {
		t.Errorf("level 10 = %+v, want value 1000000", lc)
	}
	if _, ok := cfg.Levels[5]; ok {
		t.Error("level 5 should be absent")
	}
}

func TestDocumentValidate(t *testing.T) {
	member := func(id, name string) Member { return Member{ID: id, Name: name} }

	tests := []struct {
		name    string
		mutate  func(d *Document)
		wantErr bool
	}{
		{
			name:   "default document is valid",
			mutate: func(d *Document) {},
		},
		{
			name: "negative level value rejected",
			mutate: func(d *Document) {
				d.Config.Levels[1] = LevelConfig{Value: -1}
			},
			wantErr: true,
		},
		{
			name: "level value above cap rejected",
			mutate: func(d *Document) {
				d.Config.Levels[1] = LevelConfig{Value: MaxLevelValue + 1}
			},
			wantErr: true,
		},
		{
			name: "level key outside 1..10 rejected",
			mutate: func(d *Document) {
				d.Config.Levels[11] = LevelConfig{Value: 1}
			},
			wantErr: true,
		},
		{
			name: "salvager percent above 100 rejected",
			mutate: func(d *Document) {
				d.Config.SalvagerPercent = 101
			},
			wantErr: true,
		},
		{
			name: "duplicate member ids rejected",
			mutate: func(d *Document) {
				d.Members = []Member{member("m1", "Alice"), member("m1", "Bob")}
			},
			wantErr: true,
		},
		{
			name: "member with empty name rejected",
			mutate: func(d *Document) {
				d.Members = []Member{member("m1", "  ")}
			},
			wantErr: true,
		},
		{
			name: "site without participants rejected",
			mutate: func(d *Document) {
				d.Sites = []Site{{ID: "s1", Name: "Den", Level: 1}}
			},
			wantErr: true,
		},
		{
			name: "site at not-performed sentinel allowed",
			mutate: func(d *Document) {
				d.Members = []Member{member("m1", "Alice")}
				d.Sites = []Site{{ID: "s1", Name: "Den", Level: LevelNotPerformed, Participants: []string{"m1"}}}
			},
		},
		{
			name: "dangling participant reference allowed",
			mutate: func(d *Document) {
				d.Sites = []Site{{ID: "s1", Name: "Den", Level: 1, Participants: []string{"ghost"}}}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := DefaultDocument()
			tt.mutate(doc)
			err := doc.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultDocument(t *testing.T) {
	doc := DefaultDocument()

	for l := MinLevel; l <= MaxLevel; l++ {
		want := int64(l) * 100_000
		if got := doc.Config.Levels[l].Value; got != want {
			t.Errorf("level %d value = %d, want %d", l, got, want)
		}
	}
	if !doc.Config.AutoCalculate {
		t.Error("autoCalculate should default on")
	}
	if doc.Config.HasSalvager {
		t.Error("salvage should default off")
	}
}
