package ideas

import (
	"strings"
	"time"

	"github.com/dmitrijs2005/ideaflow/internal/models"
)

// Filter derives the knowledge-bank view: a subsequence of list preserving
// its order. A record is included iff the query (case-insensitive) appears
// in its content or in at least one tag — an empty query matches all — and
// the category selector is CategoryAll or equals the record's category.
// No ranking, no pagination, no fuzzy matching.
func Filter(list []models.Idea, query string, category models.Category) []models.Idea {
	q := strings.ToLower(query)

	out := make([]models.Idea, 0, len(list))
	for _, idea := range list {
		if category != models.CategoryAll && idea.Category != category {
			continue
		}
		if q != "" && !matchesQuery(idea, q) {
			continue
		}
		out = append(out, idea)
	}
	return out
}

func matchesQuery(idea models.Idea, q string) bool {
	if strings.Contains(strings.ToLower(idea.Content), q) {
		return true
	}
	for _, tag := range idea.Tags {
		if strings.Contains(strings.ToLower(tag), q) {
			return true
		}
	}
	return false
}

// Summarize recomputes the usage stats from scratch. "Today" buckets by
// local midnight in now's location.
func Summarize(list []models.Idea, now time.Time) models.Stats {
	stats := models.Stats{Total: len(list)}

	year, month, day := now.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	for _, idea := range list {
		switch idea.Source {
		case models.SourceVoice:
			stats.Voice++
		case models.SourceTyped:
			stats.Typed++
		}
		created := idea.CreatedAt.In(now.Location())
		if !created.Before(midnight) && created.Before(midnight.AddDate(0, 0, 1)) {
			stats.Today++
		}
	}
	return stats
}
