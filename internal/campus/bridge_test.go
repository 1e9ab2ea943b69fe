package campus

import (
	"reflect"
	"testing"
)

func testRegistry(t *testing.T) *Registry {
	t.Helper()

	facilities := []Facility{
		{CanonicalID: "077", DisplayName: "Gilbert Memorial Library", Category: CategoryNonResidential, RawKeys: []string{"077", "077A", "077B"}},
		{CanonicalID: "177", DisplayName: "Clough Undergraduate Learning Commons", Category: CategoryNonResidential},
		{CanonicalID: "104", DisplayName: "Campus Recreation Center", Category: CategoryNonResidential},
		{CanonicalID: "202", DisplayName: "North Avenue Residence Hall", Category: CategoryResidential},
		{CanonicalID: "310", DisplayName: "Annex 077 Storage", Category: CategoryUnknown},
		{CanonicalID: "410", DisplayName: "West Library", Category: CategoryNonResidential},
	}
	aliases := map[string]string{
		"culc":     "177",
		"the hive": "104",
	}

	reg, err := NewRegistry(facilities, aliases)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

// TestResolve_Completeness verifies that every raw key registered to a
// facility resolves back to that facility's canonical id.
func TestResolve_Completeness(t *testing.T) {
	reg := testRegistry(t)

	for _, f := range reg.Facilities() {
		for _, key := range f.RawKeys {
			cid, ok := reg.Resolve(key)
			if !ok {
				t.Errorf("Resolve(%q) = not found, want %q", key, f.CanonicalID)
				continue
			}
			if cid != f.CanonicalID {
				t.Errorf("Resolve(%q) = %q, want %q", key, cid, f.CanonicalID)
			}
		}
	}
}

func TestResolve_Normalization(t *testing.T) {
	reg := testRegistry(t)

	tests := []struct {
		key  string
		want string
	}{
		{"077", "077"},     // verbatim
		{"77", "077"},      // unpadded
		{"0000077", "077"}, // over-padded, numeric equality
		{"77A", "077"},     // unpadded wing
		{"077b", "077"},    // case-insensitive wing
		{" 077 ", "077"},   // surrounding whitespace
		{"202", "202"},
	}

	for _, test := range tests {
		cid, ok := reg.Resolve(test.key)
		if !ok {
			t.Errorf("Resolve(%q) = not found, want %q", test.key, test.want)
			continue
		}
		if cid != test.want {
			t.Errorf("Resolve(%q) = %q, want %q", test.key, cid, test.want)
		}
	}
}

func TestResolve_Unknown(t *testing.T) {
	reg := testRegistry(t)

	for _, key := range []string{"999", "abc", "", "   "} {
		if cid, ok := reg.Resolve(key); ok {
			t.Errorf("Resolve(%q) = %q, want not found", key, cid)
		}
	}
}

func TestKeysFor(t *testing.T) {
	reg := testRegistry(t)

	got := reg.KeysFor("077")
	want := []string{"077", "077A", "077B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("KeysFor(077) = %v, want %v", got, want)
	}

	if keys := reg.KeysFor("nope"); keys != nil {
		t.Errorf("KeysFor(nope) = %v, want nil", keys)
	}
}

// TestNewRegistry_ExplicitKeyConflict verifies that a raw key claimed
// verbatim by two facilities fails the build instead of silently picking one.
func TestNewRegistry_ExplicitKeyConflict(t *testing.T) {
	facilities := []Facility{
		{CanonicalID: "077", DisplayName: "Library", RawKeys: []string{"077", "SHARED"}},
		{CanonicalID: "104", DisplayName: "Rec Center", RawKeys: []string{"104", "SHARED"}},
	}
	if _, err := NewRegistry(facilities, nil); err == nil {
		t.Fatal("expected error for raw key claimed by two facilities")
	}
}

func TestNewRegistry_DuplicateCanonical(t *testing.T) {
	facilities := []Facility{
		{CanonicalID: "077", DisplayName: "Library"},
		{CanonicalID: "077", DisplayName: "Other Library"},
	}
	if _, err := NewRegistry(facilities, nil); err == nil {
		t.Fatal("expected error for duplicate canonical id")
	}
}

func TestNewRegistry_AliasToUnknownFacility(t *testing.T) {
	facilities := []Facility{
		{CanonicalID: "077", DisplayName: "Library"},
	}
	aliases := map[string]string{"ghost": "999"}
	if _, err := NewRegistry(facilities, aliases); err == nil {
		t.Fatal("expected error for alias pointing at unknown facility")
	}
}

// TestNewRegistry_CanonicalAlwaysRegistered verifies a facility with no
// listed raw keys still resolves by its canonical id.
func TestNewRegistry_CanonicalAlwaysRegistered(t *testing.T) {
	facilities := []Facility{
		{CanonicalID: "177", DisplayName: "Clough"},
	}
	reg, err := NewRegistry(facilities, nil)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if cid, ok := reg.Resolve("177"); !ok || cid != "177" {
		t.Errorf("Resolve(177) = %q, %v; want 177, true", cid, ok)
	}
}
