package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/veldspar/sitepay/internal/config"
	"github.com/veldspar/sitepay/internal/ident"
	"github.com/veldspar/sitepay/internal/models"
	"github.com/veldspar/sitepay/internal/service"
	"github.com/veldspar/sitepay/internal/storage/sqlite"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "sitepay-server-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	store, err := sqlite.New(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	svc := service.NewLedgerService(store, &ident.Sequence{Prefix: "id"})
	router := New(&config.Config{Mode: gin.TestMode}, svc)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func decodeJSON(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
}

func postJSON(t *testing.T, url string, body string) *http.Response {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s failed: %v", url, err)
	}
	return resp
}

func TestGetData_FreshStore(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/api/data")
	if err != nil {
		t.Fatalf("GET /api/data failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var view service.DataView
	decodeJSON(t, resp, &view)

	if view.Config.Currency != models.DefaultCurrency {
		t.Errorf("currency = %q, want %q", view.Config.Currency, models.DefaultCurrency)
	}
	if view.Calculations == nil {
		t.Fatal("expected calculations attached (autoCalculate default on)")
	}
	if view.Calculations.TotalSites != 0 || view.Calculations.TotalPaid != 0 {
		t.Errorf("fresh store totals = (%d, %d), want zeros",
			view.Calculations.TotalPaid, view.Calculations.TotalSites)
	}
}

func TestCalculateEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/calculate", `{
		"config": {
			"levels": {"1": {"value": 500000}}
		},
		"members": [
			{"id": "m1", "name": "Alice"},
			{"id": "m2", "name": "Bob"}
		],
		"sites": [
			{"id": "s1", "name": "Den", "level": 1, "participants": ["m1", "m2"]}
		]
	}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var result models.CalculationResult
	decodeJSON(t, resp, &result)

	if result.TotalPaid != 500_000 || result.TotalSites != 1 {
		t.Errorf("totals = (%d, %d), want (500000, 1)", result.TotalPaid, result.TotalSites)
	}
	for _, p := range result.Payments {
		if p.Total != 250_000 {
			t.Errorf("%s total = %d, want 250000", p.Name, p.Total)
		}
	}
}

func TestMemberAndSiteFlow(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/members", `{"names": "Alice\nBob"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add members status = %d, want 200", resp.StatusCode)
	}
	var addResp struct {
		Members []models.Member `json:"members"`
	}
	decodeJSON(t, resp, &addResp)
	if len(addResp.Members) != 2 {
		t.Fatalf("added %d members, want 2", len(addResp.Members))
	}

	siteBody, _ := json.Marshal(map[string]any{
		"name":         "Gas Pocket",
		"level":        1,
		"participants": []string{addResp.Members[0].ID, addResp.Members[1].ID},
	})
	resp = postJSON(t, server.URL+"/api/sites", string(siteBody))
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("add site status = %d, want 200", resp.StatusCode)
	}
	resp.Body.Close()

	resp, err := http.Get(server.URL + "/api/data")
	if err != nil {
		t.Fatalf("GET /api/data failed: %v", err)
	}
	var view service.DataView
	decodeJSON(t, resp, &view)

	if view.Calculations == nil {
		t.Fatal("expected calculations")
	}
	if view.Calculations.TotalPaid != 100_000 {
		t.Errorf("TotalPaid = %d, want 100000 (level 1 default)", view.Calculations.TotalPaid)
	}
	for _, p := range view.Calculations.Payments {
		if p.Total != 50_000 {
			t.Errorf("%s total = %d, want 50000", p.Name, p.Total)
		}
	}
}

func TestImportEndpoint_MissingKey(t *testing.T) {
	server := newTestServer(t)

	resp := postJSON(t, server.URL+"/api/import", `{"config": {}, "members": []}`)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestRemoveMember_Unknown(t *testing.T) {
	server := newTestServer(t)

	req, err := http.NewRequest(http.MethodDelete, server.URL+"/api/members/nope", nil)
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("DELETE failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/metrics")
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if !strings.Contains(string(body), "sitepay_") {
		t.Error("expected sitepay collectors in metrics output")
	}
}
