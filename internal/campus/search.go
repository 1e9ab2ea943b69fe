package campus

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xrash/smetrics"
)

type ResultKind string

const (
	KindRejected    ResultKind = "rejected"
	KindExact       ResultKind = "exact"
	KindSuggestions ResultKind = "suggestions"
)

// MatchSource records which search tier produced an exact match.
type MatchSource string

const (
	SourceAlias     MatchSource = "alias"
	SourceCode      MatchSource = "code"
	SourceSubstring MatchSource = "substring"
	SourceFuzzyHigh MatchSource = "fuzzy-high"
)

type Suggestion struct {
	Facility *Facility `json:"facility"`
	Score    float64   `json:"score"`
}

type SearchResult struct {
	Kind        ResultKind   `json:"kind"`
	Source      MatchSource  `json:"source,omitempty"`
	Facility    *Facility    `json:"facility,omitempty"`
	Suggestions []Suggestion `json:"suggestions,omitempty"`
}

const (
	// fuzzyExactThreshold is strictly greater-than: a best score of exactly
	// 0.9 stays in the suggestion band.
	fuzzyExactThreshold = 0.9
	// fuzzyFloor is also strictly greater-than: a best score of exactly 0.6
	// is rejected.
	fuzzyFloor     = 0.6
	maxSuggestions = 5

	// Jaro-Winkler parameters (standard boost threshold and prefix size).
	jwBoostThreshold = 0.7
	jwPrefixSize     = 4
)

// codePattern matches the lexical shape of a facility code: up to four
// digits with an optional wing letter ("77", "077", "077A").
var codePattern = regexp.MustCompile(`^[0-9]{1,4}[A-Za-z]?$`)

// Search maps free-text input to zero, one, or several facilities. Tiers run
// in a fixed order and short-circuit at the first that produces a result:
// curated alias, exact code, display-name substring, then fuzzy similarity.
// Identical input against the same registry always returns the same result.
func (r *Registry) Search(query string) SearchResult {
	q := strings.TrimSpace(query)
	if q == "" {
		return SearchResult{Kind: KindRejected}
	}
	folded := fold(q)

	// Tier 1: curated colloquialisms ("culc", "the hive").
	if cid, ok := r.aliases[folded]; ok {
		return exactResult(SourceAlias, r.byCanonical[cid])
	}

	// Tier 2: facility codes. Runs before substring so a code like "077"
	// can never be shadowed by a display name that happens to contain it.
	if codePattern.MatchString(q) {
		if cid, ok := r.Resolve(q); ok {
			return exactResult(SourceCode, r.byCanonical[cid])
		}
	}

	// Tier 3: case-insensitive substring over display names.
	var hits []*Facility
	for _, f := range r.facilities {
		if strings.Contains(fold(f.DisplayName), folded) {
			hits = append(hits, f)
		}
	}
	if len(hits) == 1 {
		return exactResult(SourceSubstring, hits[0])
	}
	if len(hits) > 1 {
		// Shortest display name is the tightest match; the stable sort
		// keeps registry order between equal lengths.
		sort.SliceStable(hits, func(i, j int) bool {
			return len(hits[i].DisplayName) < len(hits[j].DisplayName)
		})
		sugs := make([]Suggestion, 0, len(hits))
		for _, f := range hits {
			sugs = append(sugs, Suggestion{Facility: f, Score: r.similarity(folded, f)})
		}
		return SearchResult{Kind: KindSuggestions, Suggestions: sugs}
	}

	// Tier 4: fuzzy similarity over display names and alias phrases.
	scored := make([]Suggestion, 0, len(r.facilities))
	best := 0.0
	for _, f := range r.facilities {
		s := r.similarity(folded, f)
		if s > best {
			best = s
		}
		scored = append(scored, Suggestion{Facility: f, Score: s})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Facility.DisplayName < scored[j].Facility.DisplayName
	})

	switch fuzzyKind(best) {
	case KindExact:
		return exactResult(SourceFuzzyHigh, scored[0].Facility)
	case KindSuggestions:
		keep := make([]Suggestion, 0, maxSuggestions)
		for _, s := range scored {
			if s.Score <= fuzzyFloor {
				break
			}
			keep = append(keep, s)
			if len(keep) == maxSuggestions {
				break
			}
		}
		return SearchResult{Kind: KindSuggestions, Suggestions: keep}
	default:
		return SearchResult{Kind: KindRejected}
	}
}

// fuzzyKind maps the best fuzzy score to an outcome. Both thresholds are
// strictly greater-than; scores landing exactly on a boundary take the lower
// band.
func fuzzyKind(best float64) ResultKind {
	switch {
	case best > fuzzyExactThreshold:
		return KindExact
	case best > fuzzyFloor:
		return KindSuggestions
	default:
		return KindRejected
	}
}

// similarity is the facility's best Jaro-Winkler score against the folded
// query, taken over its display name and any curated alias phrases.
func (r *Registry) similarity(foldedQuery string, f *Facility) float64 {
	best := smetrics.JaroWinkler(foldedQuery, fold(f.DisplayName), jwBoostThreshold, jwPrefixSize)
	for _, phrase := range r.aliasNames[f.CanonicalID] {
		if s := smetrics.JaroWinkler(foldedQuery, phrase, jwBoostThreshold, jwPrefixSize); s > best {
			best = s
		}
	}
	return best
}

func exactResult(source MatchSource, f *Facility) SearchResult {
	return SearchResult{Kind: KindExact, Source: source, Facility: f}
}
