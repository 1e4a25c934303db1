package storage

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/xaenox/tagbot/internal/rules"
)

//go:embed migrations.sql
var migrations embed.FS

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(config DatabaseConfig, logger *zap.Logger) (*PostgresStore, error) {
	connStr := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		config.Host, config.Port, config.User, config.Password, config.DBName, config.SSLMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	if logger == nil {
		logger = zap.NewNop()
	}
	store := &PostgresStore{db: db, logger: logger}

	if err := store.initializeSchema(); err != nil {
		return nil, fmt.Errorf("error initializing database schema: %w", err)
	}

	return store, nil
}

func (s *PostgresStore) initializeSchema() error {
	migrationSQL, err := migrations.ReadFile("migrations.sql")
	if err != nil {
		return fmt.Errorf("error reading migrations file: %w", err)
	}

	if _, err := s.db.Exec(string(migrationSQL)); err != nil {
		return fmt.Errorf("error executing migrations: %w", err)
	}

	return nil
}

func (s *PostgresStore) SaveRules(ctx context.Context, rs *rules.RuleSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback()

	// Replace the whole rule set; keywords go with their categories.
	if _, err := tx.ExecContext(ctx, `DELETE FROM rule_categories`); err != nil {
		return fmt.Errorf("error clearing rule categories: %w", err)
	}

	for pos, name := range rs.Categories() {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO rule_categories (name, is_fallback, position) VALUES ($1, $2, $3)`,
			name, name == rs.Fallback(), pos)
		if err != nil {
			return fmt.Errorf("error inserting category %q: %w", name, err)
		}

		keywords, _ := rs.Keywords(name)
		for kpos, phrase := range keywords {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO rule_keywords (category, phrase, position) VALUES ($1, $2, $3)`,
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

func (s *PostgresStore) LoadRules(ctx context.Context) (*rules.RuleSet, error) {
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

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
