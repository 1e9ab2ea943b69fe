package campus_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/CampusPulse/CP-Backend/internal/campus"
)

func setupRegistry(t *testing.T) http.Handler {
	t.Helper()

	facilities := []campus.Facility{
		{
			CanonicalID: "177",
			DisplayName: "Clough Undergraduate Learning Commons",
			Category:    campus.CategoryNonResidential,
			Geometry:    json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
		},
		{
			CanonicalID: "202",
			DisplayName: "North Avenue Residence Hall",
			Category:    campus.CategoryResidential,
			Geometry:    json.RawMessage(`{"type":"Polygon","coordinates":[]}`),
		},
	}
	reg, err := campus.NewRegistry(facilities, map[string]string{"culc": "177"})
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	campus.Reg = reg
	return campus.SetupRoutes()
}

func get(t *testing.T, handler http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestSearchHandler(t *testing.T) {
	routes := setupRegistry(t)

	rec := get(t, routes, "/search?q=culc")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}

	var out campus.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != campus.KindExact || out.Source != campus.SourceAlias {
		t.Fatalf("result = %+v, want exact alias", out)
	}
	if out.Facility.CanonicalID != "177" {
		t.Errorf("resolved %q, want 177", out.Facility.CanonicalID)
	}
}

// TestSearchHandler_EmptyQuery: an empty query is a well-formed request with
// a rejected result, not a 400.
func TestSearchHandler_EmptyQuery(t *testing.T) {
	routes := setupRegistry(t)

	rec := get(t, routes, "/search?q=")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	var out campus.SearchResult
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Kind != campus.KindRejected {
		t.Errorf("kind = %q, want rejected", out.Kind)
	}
}

func TestGeometryHandler(t *testing.T) {
	routes := setupRegistry(t)

	rec := get(t, routes, "/geometry")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var out []campus.FacilityOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d facilities, want 2", len(out))
	}
	if out[0].CanonicalID != "177" || len(out[0].Geometry) == 0 {
		t.Errorf("first facility = %+v, want 177 with geometry", out[0])
	}
}

func TestResolveHandler(t *testing.T) {
	routes := setupRegistry(t)

	rec := get(t, routes, "/resolve/202")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %q", rec.Code, rec.Body.String())
	}
	var out campus.ResolveOut
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.CanonicalID != "202" || out.DisplayName != "North Avenue Residence Hall" {
		t.Errorf("resolve = %+v", out)
	}

	if rec := get(t, routes, "/resolve/999"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown key = %d, want %d", rec.Code, http.StatusNotFound)
	}
}
