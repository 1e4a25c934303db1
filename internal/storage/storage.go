package storage

import (
	"context"
	"errors"

	"github.com/xaenox/tagbot/internal/rules"
)

// ErrNoRules is returned by LoadRules when the store holds no rule set yet.
var ErrNoRules = errors.New("storage: no rule set stored")

// Store persists the keyword rule configuration. Analysis results are never
// stored, only the rules the analyses run against.
type Store interface {
	LoadRules(ctx context.Context) (*rules.RuleSet, error)
	// SaveRules replaces the stored rule set as a whole.
	SaveRules(ctx context.Context, rs *rules.RuleSet) error
	Close() error
}
