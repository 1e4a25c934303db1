package tagger

import (
	"reflect"
	"testing"
)

func TestRank(t *testing.T) {
	scores := ScoreMap{"SUPPORT": 1.0, "SALES": 3.0, "BILLING": 1.0, "OTHER": 0.0}

	got := Rank(scores)
	want := []RankedCategory{
		{"SALES", 3.0},
		{"BILLING", 1.0},
		{"SUPPORT", 1.0},
		{"OTHER", 0.0},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Rank() = %v, want %v", got, want)
	}
}

func TestRankTieBreakIsLexical(t *testing.T) {
	// Map iteration order varies between runs; the ranking must not.
	scores := ScoreMap{"B": 2.0, "A": 2.0, "C": 2.0}
	want := []RankedCategory{{"A", 2.0}, {"B", 2.0}, {"C", 2.0}}
	for i := 0; i < 50; i++ {
		if got := Rank(scores); !reflect.DeepEqual(got, want) {
			t.Fatalf("Rank() = %v, want %v", got, want)
		}
	}
}

func TestSelectTopTwo(t *testing.T) {
	tests := []struct {
		name     string
		scores   ScoreMap
		fallback string
		want     TagResult
	}{
		{
			name:     "clear winner with zero runner-up",
			scores:   ScoreMap{"SALES": 3, "SUPPORT": 0, "BILLING": 0, "OTHER": 0},
			fallback: "OTHER",
			want:     TagResult{Primary: "SALES", Secondary: "OTHER"},
		},
		{
			name:     "two positive scores",
			scores:   ScoreMap{"SALES": 2, "BILLING": 1, "OTHER": 0},
			fallback: "OTHER",
			want:     TagResult{Primary: "SALES", Secondary: "BILLING"},
		},
		{
			name:     "positive tie resolved lexically",
			scores:   ScoreMap{"SUPPORT": 2, "BILLING": 2, "OTHER": 0},
			fallback: "OTHER",
			want:     TagResult{Primary: "BILLING", Secondary: "SUPPORT"},
		},
		{
			name:     "all zero falls back",
			scores:   ScoreMap{"SALES": 0, "SUPPORT": 0, "BILLING": 0, "OTHER": 0},
			fallback: "OTHER",
			want:     TagResult{Primary: "OTHER", Secondary: "OTHER"},
		},
		{
			name:     "single category",
			scores:   ScoreMap{"OTHER": 4},
			fallback: "OTHER",
			want:     TagResult{Primary: "OTHER", Secondary: "OTHER"},
		},
		{
			name:     "single category zero score",
			scores:   ScoreMap{"OTHER": 0},
			fallback: "OTHER",
			want:     TagResult{Primary: "OTHER", Secondary: "OTHER"},
		},
		{
			name:     "fallback places second on merit",
			scores:   ScoreMap{"SALES": 3, "OTHER": 1, "SUPPORT": 0},
			fallback: "OTHER",
			want:     TagResult{Primary: "SALES", Secondary: "OTHER"},
		},
		{
			name:     "no scores at all falls back",
			scores:   ScoreMap{},
			fallback: "OTHER",
			want:     TagResult{Primary: "OTHER", Secondary: "OTHER"},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := SelectTopTwo(tc.scores, tc.fallback); got != tc.want {
				t.Errorf("SelectTopTwo() = %+v, want %+v", got, tc.want)
			}
		})
	}
}
