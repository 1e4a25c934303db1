package tagger

import (
	"fmt"
	"strings"

	"github.com/xaenox/tagbot/internal/rules"
)

// Strategy computes one category's score for a message. Implementations must
// be deterministic and safe for concurrent use.
type Strategy interface {
	Name() string
	Score(msg Message, keywords rules.KeywordSet) float64
}

// StrategyByName returns the strategy registered under name. The empty name
// selects the default frequency strategy.
func StrategyByName(name string) (Strategy, error) {
	switch name {
	case "", "frequency":
		return FrequencyStrategy{}, nil
	case "weighted":
		return WeightedStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q", name)
	}
}

// FrequencyStrategy is the default scoring rule: every keyword hit counts 1.0.
//
// Single-word keywords count exact token occurrences only, so "cat" does not
// match "category". Multi-word keywords count occurrences of their own token
// sequence inside the message's token sequence; when that finds nothing but
// the phrase still appears as a raw substring of the normalized message, the
// phrase earns 0.5 instead. A hit never earns both the full point and the
// partial credit.
type FrequencyStrategy struct{}

func (FrequencyStrategy) Name() string { return "frequency" }

func (FrequencyStrategy) Score(msg Message, keywords rules.KeywordSet) float64 {
	var score float64
	for _, phrase := range keywords {
		full, partial := matchPhrase(msg, phrase)
		score += float64(full)
		if partial {
			score += 0.5
		}
	}
	return score
}

// WeightedStrategy matches like FrequencyStrategy but weights every hit by
// the phrase's token count: a hit on "free trial" outweighs a hit on
// "trial". Partial substring hits scale the same way at half weight.
type WeightedStrategy struct{}

func (WeightedStrategy) Name() string { return "weighted" }

func (WeightedStrategy) Score(msg Message, keywords rules.KeywordSet) float64 {
	var score float64
	for _, phrase := range keywords {
		weight := float64(len(Tokenize(phrase)))
		full, partial := matchPhrase(msg, phrase)
		score += float64(full) * weight
		if partial {
			score += 0.5 * weight
		}
	}
	return score
}

// matchPhrase counts the full-value occurrences of one keyword phrase in the
// message, and reports whether the phrase qualifies for the half-point
// substring credit instead. Partial credit only applies when the token
// sequence matched nothing, so an occurrence is never counted twice.
func matchPhrase(msg Message, phrase string) (full int, partial bool) {
	parts := Tokenize(phrase)
	switch len(parts) {
	case 0:
		return 0, false
	case 1:
		return countToken(msg.Tokens, parts[0]), false
	default:
		full = countSubsequence(msg.Tokens, parts)
		partial = full == 0 && strings.Contains(msg.Normalized, phrase)
		return full, partial
	}
}

func countToken(tokens []string, want string) int {
	n := 0
	for _, tok := range tokens {
		if tok == want {
			n++
		}
	}
	return n
}

// countSubsequence counts every offset at which phrase appears as a
// contiguous run of tokens; overlapping occurrences all count.
func countSubsequence(tokens, phrase []string) int {
	if len(phrase) == 0 || len(tokens) < len(phrase) {
		return 0
	}
	n := 0
	for i := 0; i+len(phrase) <= len(tokens); i++ {
		match := true
		for j, want := range phrase {
			if tokens[i+j] != want {
				match = false
				break
			}
		}
		if match {
			n++
		}
	}
	return n
}
