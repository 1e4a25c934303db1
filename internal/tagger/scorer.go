package tagger

import "github.com/xaenox/tagbot/internal/rules"

// ScoreMap holds one non-negative score per configured category. It is built
// fresh for every analysis and never mutated after being returned.
type ScoreMap map[string]float64

// Scorer applies a scoring strategy across every category of a rule set.
type Scorer struct {
	strategy Strategy
}

// NewScorer returns a Scorer using the given strategy, or the default
// frequency strategy when strategy is nil.
func NewScorer(strategy Strategy) *Scorer {
	if strategy == nil {
		strategy = FrequencyStrategy{}
	}
	return &Scorer{strategy: strategy}
}

// Score computes the per-category scores for a message. Every configured
// category gets an entry; categories with no matching keyword score exactly
// 0. An empty or whitespace-only message scores 0 everywhere.
func (s *Scorer) Score(message string, rs *rules.RuleSet) ScoreMap {
	msg := NewMessage(message)
	scores := make(ScoreMap, rs.Len())
	for _, name := range rs.Categories() {
		keywords, _ := rs.Keywords(name)
		scores[name] = s.strategy.Score(msg, keywords)
	}
	return scores
}

// Strategy returns the name of the scoring strategy in use.
func (s *Scorer) Strategy() string {
	return s.strategy.Name()
}
