package rules

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// DefaultFallback is the category used as fallback when the configuration
// does not designate one explicitly.
const DefaultFallback = "OTHER"

var (
	ErrNoCategories = errors.New("rules: at least one category is required")
	ErrNoFallback   = errors.New("rules: no fallback category designated")
)

// KeywordSet holds the normalized keyword phrases of one category, in
// configuration order. Phrases are lowercase with internal whitespace
// collapsed to single spaces.
type KeywordSet []string

// RuleSet is an immutable category -> keywords configuration with exactly
// one designated fallback category. Build it with New; the zero value is
// not usable.
type RuleSet struct {
	categories map[string]KeywordSet
	names      []string
	fallback   string
}

// New validates and normalizes a category -> keywords mapping into a RuleSet.
//
// Keyword phrases are lowercased and their whitespace collapsed. An empty
// phrase, a phrase without any word character, or a duplicate phrase within
// one category is a configuration error. A category with no phrases at all
// is fine (the fallback conventionally has none).
//
// fallback names the category assigned when nothing matches. When empty, the
// category named "OTHER" is used if present; otherwise ErrNoFallback.
func New(categories map[string][]string, fallback string) (*RuleSet, error) {
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	rs := &RuleSet{
		categories: make(map[string]KeywordSet, len(categories)),
		names:      make([]string, 0, len(categories)),
	}

	for name, phrases := range categories {
		if strings.TrimSpace(name) == "" {
			return nil, errors.New("rules: empty category name")
		}

		set := make(KeywordSet, 0, len(phrases))
		seen := make(map[string]struct{}, len(phrases))
		for _, phrase := range phrases {
			normalized := Normalize(phrase)
			if normalized == "" {
				return nil, fmt.Errorf("rules: category %q: empty keyword phrase", name)
			}
			if !hasWordChar(normalized) {
				return nil, fmt.Errorf("rules: category %q: keyword %q has no word characters", name, phrase)
			}
			if _, dup := seen[normalized]; dup {
				return nil, fmt.Errorf("rules: category %q: duplicate keyword %q", name, normalized)
			}
			seen[normalized] = struct{}{}
			set = append(set, normalized)
		}

		rs.categories[name] = set
		rs.names = append(rs.names, name)
	}
	sort.Strings(rs.names)

	if fallback != "" {
		if _, ok := rs.categories[fallback]; !ok {
			return nil, fmt.Errorf("rules: fallback category %q is not defined: %w", fallback, ErrNoFallback)
		}
		rs.fallback = fallback
	} else {
		if _, ok := rs.categories[DefaultFallback]; !ok {
			return nil, ErrNoFallback
		}
		rs.fallback = DefaultFallback
	}

	return rs, nil
}

// Normalize lowercases a phrase and collapses whitespace runs to single
// spaces, the form keywords are stored and matched in.
func Normalize(phrase string) string {
	return strings.Join(strings.Fields(strings.ToLower(phrase)), " ")
}

func hasWordChar(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			return true
		}
	}
	return false
}

// Categories returns the configured category names in lexical order.
func (rs *RuleSet) Categories() []string {
	out := make([]string, len(rs.names))
	copy(out, rs.names)
	return out
}

// Keywords returns a copy of one category's keyword phrases.
func (rs *RuleSet) Keywords(category string) (KeywordSet, bool) {
	set, ok := rs.categories[category]
	if !ok {
		return nil, false
	}
	out := make(KeywordSet, len(set))
	copy(out, set)
	return out, true
}

// Fallback returns the designated fallback category.
func (rs *RuleSet) Fallback() string {
	return rs.fallback
}

// Has reports whether a category is configured.
func (rs *RuleSet) Has(category string) bool {
	_, ok := rs.categories[category]
	return ok
}

// Len returns the number of configured categories.
func (rs *RuleSet) Len() int {
	return len(rs.names)
}
