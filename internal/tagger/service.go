package tagger

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xaenox/tagbot/internal/rules"
)

// Analysis is the detailed outcome of one analyzed message.
type Analysis struct {
	ID         string
	Message    string
	Scores     ScoreMap
	Ranking    []RankedCategory
	Result     TagResult
	Strategy   string
	AnalyzedAt time.Time
}

// Service analyzes messages against one immutable rule set. It is safe for
// concurrent use: the rule set never changes and all per-call state is local.
type Service struct {
	rules  *rules.RuleSet
	scorer *Scorer
	logger *zap.Logger
}

// NewService builds a Service around a validated rule set. strategy may be
// nil for the default frequency strategy, logger may be nil for no logging.
func NewService(rs *rules.RuleSet, strategy Strategy, logger *zap.Logger) (*Service, error) {
	if rs == nil || rs.Len() == 0 {
		return nil, rules.ErrNoCategories
	}
	if rs.Fallback() == "" {
		return nil, rules.ErrNoFallback
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		rules:  rs,
		scorer: NewScorer(strategy),
		logger: logger,
	}, nil
}

// Analyze scores a message and returns its primary and secondary tags.
func (s *Service) Analyze(message string) TagResult {
	scores := s.scorer.Score(message, s.rules)
	return SelectTopTwo(scores, s.rules.Fallback())
}

// AnalyzeDetailed returns the full scoring breakdown along with the result.
func (s *Service) AnalyzeDetailed(message string) Analysis {
	scores := s.scorer.Score(message, s.rules)
	ranking := Rank(scores)
	result := selectTop(ranking, s.rules.Fallback())

	analysis := Analysis{
		ID:         uuid.New().String(),
		Message:    message,
		Scores:     scores,
		Ranking:    ranking,
		Result:     result,
		Strategy:   s.scorer.Strategy(),
		AnalyzedAt: time.Now(),
	}

	s.logger.Debug("Analyzed message",
		zap.String("analysis_id", analysis.ID),
		zap.String("primary", result.Primary),
		zap.String("secondary", result.Secondary),
		zap.String("strategy", analysis.Strategy))

	return analysis
}

// Categories returns the configured category names in lexical order.
func (s *Service) Categories() []string {
	return s.rules.Categories()
}

// Keywords returns one category's keyword phrases.
func (s *Service) Keywords(category string) (rules.KeywordSet, bool) {
	return s.rules.Keywords(category)
}

// Fallback returns the configured fallback category.
func (s *Service) Fallback() string {
	return s.rules.Fallback()
}
