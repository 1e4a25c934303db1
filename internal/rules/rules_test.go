package rules

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		rs, err := New(map[string][]string{
			"SALES": {"buy", "pricing"},
			"OTHER": {},
		}, "")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if rs.Len() != 2 {
			t.Errorf("Len() = %d, want 2", rs.Len())
		}
		if rs.Fallback() != "OTHER" {
			t.Errorf("Fallback() = %q, want %q", rs.Fallback(), "OTHER")
		}
		if !rs.Has("SALES") {
			t.Error("Has(SALES) = false, want true")
		}
	})

	t.Run("no categories", func(t *testing.T) {
		_, err := New(nil, "")
		if !errors.Is(err, ErrNoCategories) {
			t.Errorf("error = %v, want ErrNoCategories", err)
		}
	})

	t.Run("explicit fallback", func(t *testing.T) {
		rs, err := New(map[string][]string{"MISC": nil, "SALES": {"buy"}}, "MISC")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if rs.Fallback() != "MISC" {
			t.Errorf("Fallback() = %q, want %q", rs.Fallback(), "MISC")
		}
	})

	t.Run("unknown fallback", func(t *testing.T) {
		_, err := New(map[string][]string{"SALES": {"buy"}}, "MISSING")
		if !errors.Is(err, ErrNoFallback) {
			t.Errorf("error = %v, want ErrNoFallback", err)
		}
	})

	t.Run("no implicit fallback available", func(t *testing.T) {
		_, err := New(map[string][]string{"SALES": {"buy"}}, "")
		if !errors.Is(err, ErrNoFallback) {
			t.Errorf("error = %v, want ErrNoFallback", err)
		}
	})

	t.Run("blank keyword phrase", func(t *testing.T) {
		_, err := New(map[string][]string{"SALES": {"buy", "   "}, "OTHER": nil}, "")
		if err == nil {
			t.Fatal("expected error for blank keyword, got nil")
		}
	})

	t.Run("duplicate keyword after normalization", func(t *testing.T) {
		_, err := New(map[string][]string{"SALES": {"Buy", "buy"}, "OTHER": nil}, "")
		if err == nil {
			t.Fatal("expected error for duplicate keyword, got nil")
		}
	})

	t.Run("keyword without word characters", func(t *testing.T) {
		_, err := New(map[string][]string{"SALES": {"!!!"}, "OTHER": nil}, "")
		if err == nil {
			t.Fatal("expected error for symbol-only keyword, got nil")
		}
	})

	t.Run("blank category name", func(t *testing.T) {
		_, err := New(map[string][]string{"  ": {"buy"}, "OTHER": nil}, "")
		if err == nil {
			t.Fatal("expected error for blank category name, got nil")
		}
	})

	t.Run("same keyword in two categories is fine", func(t *testing.T) {
		rs, err := New(map[string][]string{
			"SALES":   {"account"},
			"SUPPORT": {"account"},
			"OTHER":   nil,
		}, "")
		if err != nil {
			t.Fatalf("New: %v", err)
		}
		if rs.Len() != 3 {
			t.Errorf("Len() = %d, want 3", rs.Len())
		}
	})
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Buy", "buy"},
		{"  multi   word  ", "multi word"},
		{"FREE\tTrial", "free trial"},
		{"", ""},
	}
	for _, tc := range tests {
		if got := Normalize(tc.in); got != tc.want {
			t.Errorf("Normalize(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestKeywordsNormalizedAndOrdered(t *testing.T) {
	rs, err := New(map[string][]string{
		"SALES": {"Pricing", "FREE  Trial", "buy"},
		"OTHER": nil,
	}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	got, ok := rs.Keywords("SALES")
	if !ok {
		t.Fatal("Keywords(SALES): not found")
	}
	want := KeywordSet{"pricing", "free trial", "buy"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Keywords(SALES) = %v, want %v", got, want)
	}

	if _, ok := rs.Keywords("NOPE"); ok {
		t.Error("Keywords(NOPE) reported ok for unknown category")
	}
}

func TestCategoriesSortedAndCopied(t *testing.T) {
	rs, err := New(map[string][]string{
		"SUPPORT": {"help"},
		"BILLING": {"invoice"},
		"OTHER":   nil,
		"SALES":   {"buy"},
	}, "")
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	want := []string{"BILLING", "OTHER", "SALES", "SUPPORT"}
	got := rs.Categories()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Categories() = %v, want %v", got, want)
	}

	// Mutating the returned slice must not affect the rule set.
	got[0] = "MUTATED"
	if again := rs.Categories(); !reflect.DeepEqual(again, want) {
		t.Errorf("Categories() after caller mutation = %v, want %v", again, want)
	}
}
