package campus

import (
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
)

// Registry holds the canonical facility set plus the identifier bridge that
// maps every known raw key variant back to one canonical facility. It is
// built once at startup and never mutated, so query paths read it without
// locking.
type Registry struct {
	facilities  []*Facility
	byCanonical map[string]*Facility
	bridge      map[string]string   // normalized raw key -> canonical id
	explicit    map[string]bool     // bridge keys registered verbatim, not derived
	numeric     map[int64]string    // purely numeric keys by value, for "7" == "007"
	aliases     map[string]string   // folded colloquial phrase -> canonical id
	aliasNames  map[string][]string // canonical id -> folded alias phrases
}

// fold normalizes text for matching: trim plus Unicode case folding, which is
// locale-independent (identical input always normalizes identically).
func fold(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// NewRegistry builds the registry and bridge from the loaded facility set and
// the curated alias table. An explicit raw key claimed by two facilities or an
// alias pointing at an unknown facility is a corrupt dataset and fails the
// build.
func NewRegistry(facilities []Facility, aliases map[string]string) (*Registry, error) {
	r := &Registry{
		byCanonical: make(map[string]*Facility, len(facilities)),
		bridge:      make(map[string]string),
		explicit:    make(map[string]bool),
		numeric:     make(map[int64]string),
		aliases:     make(map[string]string, len(aliases)),
		aliasNames:  make(map[string][]string),
	}

	for i := range facilities {
		f := facilities[i]
		if f.CanonicalID == "" {
			return nil, fmt.Errorf("facility %q has no canonical id", f.DisplayName)
		}
		if _, ok := r.byCanonical[f.CanonicalID]; ok {
			return nil, fmt.Errorf("duplicate canonical id %q", f.CanonicalID)
		}
		if !containsFold(f.RawKeys, f.CanonicalID) {
			f.RawKeys = append(f.RawKeys, f.CanonicalID)
		}

		r.facilities = append(r.facilities, &f)
		r.byCanonical[f.CanonicalID] = &f

		for _, key := range f.RawKeys {
			if err := r.register(key, f.CanonicalID, true); err != nil {
				return nil, err
			}
			for _, variant := range keyVariants(key) {
				if err := r.register(variant, f.CanonicalID, false); err != nil {
					return nil, err
				}
			}
		}
	}

	for phrase, cid := range aliases {
		p := fold(phrase)
		if p == "" {
			return nil, fmt.Errorf("empty alias phrase for facility %q", cid)
		}
		if _, ok := r.byCanonical[cid]; !ok {
			return nil, fmt.Errorf("alias %q points at unknown facility %q", phrase, cid)
		}
		if prev, ok := r.aliases[p]; ok && prev != cid {
			return nil, fmt.Errorf("alias %q claimed by facilities %q and %q", phrase, prev, cid)
		}
		r.aliases[p] = cid
		r.aliasNames[cid] = append(r.aliasNames[cid], p)
	}
	for cid := range r.aliasNames {
		sort.Strings(r.aliasNames[cid])
	}

	return r, nil
}

// register adds one bridge entry. Explicit keys (taken verbatim from the
// spatial dataset) may not collide across facilities; derived variants that
// collide are discarded rather than guessed at.
func (r *Registry) register(key, canonicalID string, isExplicit bool) error {
	k := fold(key)
	if k == "" {
		return nil
	}

	if prev, ok := r.bridge[k]; ok && prev != canonicalID {
		if isExplicit && r.explicit[k] {
			return fmt.Errorf("raw key %q claimed by facilities %q and %q", key, prev, canonicalID)
		}
		if isExplicit {
			// Verbatim key wins over somebody else's derived variant.
			r.bridge[k] = canonicalID
			r.explicit[k] = true
		} else if !r.explicit[k] {
			log.Printf("[campus] ambiguous derived key %q (%s vs %s), dropping variant", k, prev, canonicalID)
			delete(r.bridge, k)
		}
		return nil
	}

	r.bridge[k] = canonicalID
	if isExplicit {
		r.explicit[k] = true
	}

	if n, err := strconv.ParseInt(k, 10, 64); err == nil {
		if prev, ok := r.numeric[n]; !ok {
			r.numeric[n] = canonicalID
		} else if prev != canonicalID && isExplicit {
			r.numeric[n] = canonicalID
		}
	}
	return nil
}

// keyVariants derives the alternate spellings a raw key shows up under in the
// occupancy logs: leading zeros stripped ("077" -> "77"), zero-padded to the
// standard three digits ("77" -> "077"), and wing-letter suffixes stripped
// ("077A" -> "077" plus its variants).
func keyVariants(key string) []string {
	k := strings.TrimSpace(key)
	if k == "" {
		return nil
	}

	var out []string
	add := func(v string) {
		if v != "" && !strings.EqualFold(v, k) {
			out = append(out, v)
		}
	}

	add(strings.TrimLeft(k, "0"))
	add(zeroPad(k))

	if base := trimWingSuffix(k); base != k {
		add(base)
		add(strings.TrimLeft(base, "0"))
		add(zeroPad(base))
	}
	return out
}

// zeroPad left-pads short codes to the standard three-character width.
func zeroPad(k string) string {
	for len(k) < 3 {
		k = "0" + k
	}
	return k
}

// trimWingSuffix strips trailing letters ("077A" -> "077"). Keys that are all
// letters are returned unchanged.
func trimWingSuffix(k string) string {
	trimmed := strings.TrimRightFunc(k, unicode.IsLetter)
	if trimmed == "" {
		return k
	}
	return trimmed
}

// Resolve maps any raw key from either dataset to a canonical facility id,
// applying the same normalization rules used at registration before giving
// up. A false return is a data-quality signal, never a guess.
func (r *Registry) Resolve(rawKey string) (string, bool) {
	k := fold(rawKey)
	if k == "" {
		return "", false
	}

	if cid, ok := r.bridge[k]; ok {
		return cid, true
	}
	for _, variant := range keyVariants(k) {
		if cid, ok := r.bridge[fold(variant)]; ok {
			return cid, true
		}
	}
	if n, err := strconv.ParseInt(k, 10, 64); err == nil {
		if cid, ok := r.numeric[n]; ok {
			return cid, true
		}
	}
	return "", false
}

// KeysFor returns every raw key registered to the facility, sorted for
// deterministic output. Nil for an unknown facility.
func (r *Registry) KeysFor(canonicalID string) []string {
	f, ok := r.byCanonical[canonicalID]
	if !ok {
		return nil
	}
	keys := make([]string, len(f.RawKeys))
	copy(keys, f.RawKeys)
	sort.Strings(keys)
	return keys
}

// Facilities returns the registry in load order. Callers must not mutate the
// returned records.
func (r *Registry) Facilities() []*Facility {
	return r.facilities
}

// FacilityByID returns the facility for a canonical id, or nil.
func (r *Registry) FacilityByID(canonicalID string) *Facility {
	return r.byCanonical[canonicalID]
}

func containsFold(keys []string, key string) bool {
	for _, k := range keys {
		if strings.EqualFold(strings.TrimSpace(k), strings.TrimSpace(key)) {
			return true
		}
	}
	return false
}
