package storage

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/xaenox/tagbot/internal/rules"
)

func testRuleSet(t *testing.T) *rules.RuleSet {
	t.Helper()
	rs, err := rules.New(map[string][]string{
		"SALES":   {"buy", "pricing", "free trial"},
		"SUPPORT": {"help", "broken"},
		"OTHER":   {},
	}, "OTHER")
	if err != nil {
		t.Fatalf("rules.New: %v", err)
	}
	return rs
}

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rules.db")
	s, err := NewSQLiteStore(path, nil)
	if err != nil {
		t.Fatalf("NewSQLiteStore(%q): %v", path, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// assertRoundTrip saves a rule set through the store and checks the loaded
// copy carries the same categories, keywords and fallback.
func assertRoundTrip(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()
	rs := testRuleSet(t)

	if err := store.SaveRules(ctx, rs); err != nil {
		t.Fatalf("SaveRules: %v", err)
	}

	got, err := store.LoadRules(ctx)
	if err != nil {
		t.Fatalf("LoadRules: %v", err)
	}

	if !reflect.DeepEqual(got.Categories(), rs.Categories()) {
		t.Errorf("Categories = %v, want %v", got.Categories(), rs.Categories())
	}
	if got.Fallback() != rs.Fallback() {
		t.Errorf("Fallback = %q, want %q", got.Fallback(), rs.Fallback())
	}
	for _, name := range rs.Categories() {
		want, _ := rs.Keywords(name)
		kw, _ := got.Keywords(name)
		if !reflect.DeepEqual(kw, want) {
			t.Errorf("Keywords(%s) = %v, want %v", name, kw, want)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		store := NewMemoryStore()
		if _, err := store.LoadRules(context.Background()); !errors.Is(err, ErrNoRules) {
			t.Errorf("error = %v, want ErrNoRules", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		assertRoundTrip(t, NewMemoryStore())
	})
}

func TestSQLiteStore(t *testing.T) {
	t.Run("empty store", func(t *testing.T) {
		s := newTestSQLiteStore(t)
		if _, err := s.LoadRules(context.Background()); !errors.Is(err, ErrNoRules) {
			t.Errorf("error = %v, want ErrNoRules", err)
		}
	})

	t.Run("save and load", func(t *testing.T) {
		assertRoundTrip(t, newTestSQLiteStore(t))
	})

	t.Run("save replaces previous rule set", func(t *testing.T) {
		s := newTestSQLiteStore(t)
		ctx := context.Background()

		if err := s.SaveRules(ctx, testRuleSet(t)); err != nil {
			t.Fatalf("SaveRules: %v", err)
		}

		replacement, err := rules.New(map[string][]string{
			"NEWS":  {"headline"},
			"OTHER": {},
		}, "OTHER")
		if err != nil {
			t.Fatalf("rules.New: %v", err)
		}
		if err := s.SaveRules(ctx, replacement); err != nil {
			t.Fatalf("SaveRules (replace): %v", err)
		}

		got, err := s.LoadRules(ctx)
		if err != nil {
			t.Fatalf("LoadRules: %v", err)
		}
		want := []string{"NEWS", "OTHER"}
		if !reflect.DeepEqual(got.Categories(), want) {
			t.Errorf("Categories = %v, want %v", got.Categories(), want)
		}
	})

	t.Run("persists across reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "reopen.db")
		ctx := context.Background()

		s1, err := NewSQLiteStore(path, nil)
		if err != nil {
			t.Fatalf("NewSQLiteStore: %v", err)
		}
		if err := s1.SaveRules(ctx, testRuleSet(t)); err != nil {
			t.Fatalf("SaveRules: %v", err)
		}
		if err := s1.Close(); err != nil {
			t.Fatalf("Close: %v", err)
		}

		s2, err := NewSQLiteStore(path, nil)
		if err != nil {
			t.Fatalf("NewSQLiteStore (reopen): %v", err)
		}
		defer s2.Close()

		got, err := s2.LoadRules(ctx)
		if err != nil {
			t.Fatalf("LoadRules: %v", err)
		}
		if got.Fallback() != "OTHER" {
			t.Errorf("Fallback = %q, want OTHER", got.Fallback())
		}
		keywords, _ := got.Keywords("SALES")
		if len(keywords) != 3 {
			t.Errorf("Keywords(SALES) = %v, want 3 phrases", keywords)
		}
	})
}
