package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/xaenox/tagbot/internal/rules"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS rule_categories (
	name        TEXT PRIMARY KEY,
	is_fallback INTEGER NOT NULL DEFAULT 0,
	position    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS rule_keywords (
	category TEXT NOT NULL REFERENCES rule_categories(name) ON DELETE CASCADE,
	phrase   TEXT NOT NULL,
	position INTEGER NOT NULL DEFAULT 0,
	PRIMARY KEY (category, phrase)
);
`

// SQLiteStore persists rule sets in a local SQLite file. The driver is pure
// Go, so the binary stays CGO-free.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewSQLiteStore(path string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// A single connection keeps writes serialized; modernc.org/sqlite
	// returns SQLITE_BUSY to concurrent writers otherwise.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(`PRAGMA journal_mode=WAL`); err != nil {
		return nil, fmt.Errorf("error enabling WAL mode: %w", err)
	}
	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("error enabling foreign keys: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	return &SQLiteStore{db: db, logger: logger}, nil
}

func (s *SQLiteStore) SaveRules(ctx context.Context, rs *rules.RuleSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM rule_categories`); err != nil {
		return fmt.Errorf("error clearing rule categories: %w", err)
	}

	for pos, name := range rs.Categories() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rule_categories (name, is_fallback, position) VALUES (?, ?, ?)`,
			name, name == rs.Fallback(), pos)
		if err != nil {
			return fmt.Errorf("error inserting category %q: %w", name, err)
		}

		keywords, _ := rs.Keywords(name)
		for kpos, phrase := range keywords {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO rule_keywords (category, phrase, position) VALUES (?, ?, ?)`,
				name, phrase, kpos)
			if err != nil {
				return fmt.Errorf("error inserting keyword %q: %w", phrase, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("error committing rule set: %w", err)
	}

	s.logger.Info("Saved rule set",
		zap.Int("categories", rs.Len()),
		zap.String("fallback", rs.Fallback()))

	return nil
}

func (s *SQLiteStore) LoadRules(ctx context.Context) (*rules.RuleSet, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, is_fallback FROM rule_categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("error querying rule categories: %w", err)
	}
	defer rows.Close()

	categories := make(map[string][]string)
	var fallback string
	for rows.Next() {
		var name string
		var isFallback bool
		if err := rows.Scan(&name, &isFallback); err != nil {
			return nil, fmt.Errorf("error scanning category: %w", err)
		}
		categories[name] = nil
		if isFallback {
			fallback = name
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading categories: %w", err)
	}

	if len(categories) == 0 {
		return nil, ErrNoRules
	}

	krows, err := s.db.QueryContext(ctx,
		`SELECT category, phrase FROM rule_keywords ORDER BY category, position`)
	if err != nil {
		return nil, fmt.Errorf("error querying rule keywords: %w", err)
	}
	defer krows.Close()

	for krows.Next() {
		var category, phrase string
		if err := krows.Scan(&category, &phrase); err != nil {
			return nil, fmt.Errorf("error scanning keyword: %w", err)
		}
		categories[category] = append(categories[category], phrase)
	}
	if err := krows.Err(); err != nil {
		return nil, fmt.Errorf("error reading keywords: %w", err)
	}

	rs, err := rules.New(categories, fallback)
	if err != nil {
		return nil, fmt.Errorf("stored rule set is invalid: %w", err)
	}
	return rs, nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
