package tagger

import "sort"

// TagResult is the outcome of one analysis: the two best categories for the
// message. Both fields are always set to configured category names.
type TagResult struct {
	Primary   string
	Secondary string
}

// RankedCategory is one row of an ordered ranking.
type RankedCategory struct {
	Category string
	Score    float64
}

// Rank orders a score map by descending score. Equal scores order by
// ascending category name, so a ranking never depends on map iteration
// order or configuration order.
func Rank(scores ScoreMap) []RankedCategory {
	ranked := make([]RankedCategory, 0, len(scores))
	for name, score := range scores {
		ranked = append(ranked, RankedCategory{Category: name, Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score == ranked[j].Score {
			return ranked[i].Category < ranked[j].Category
		}
		return ranked[i].Score > ranked[j].Score
	})
	return ranked
}

// SelectTopTwo picks the primary and secondary categories from a score map.
//
// The top-ranked category takes primary and the next one secondary. When
// nothing scored at all the fallback fills both slots; when only the primary
// scored the fallback fills the secondary. A single-category configuration
// returns that category twice.
func SelectTopTwo(scores ScoreMap, fallback string) TagResult {
	return selectTop(Rank(scores), fallback)
}

func selectTop(ranked []RankedCategory, fallback string) TagResult {
	if len(ranked) == 0 || ranked[0].Score == 0 {
		return TagResult{Primary: fallback, Secondary: fallback}
	}

	primary := ranked[0].Category
	if len(ranked) == 1 {
		return TagResult{Primary: primary, Secondary: primary}
	}

	secondary := ranked[1].Category
	if ranked[1].Score == 0 {
		secondary = fallback
	}
	return TagResult{Primary: primary, Secondary: secondary}
}
