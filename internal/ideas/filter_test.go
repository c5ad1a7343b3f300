package ideas

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/ideaflow/internal/models"
)

func fixtureIdeas() []models.Idea {
	return []models.Idea{
		{ID: "3", Content: "Plan the offsite", Category: models.CategoryMeeting, Tags: []string{"work", "travel"}},
		{ID: "2", Content: "Buy milk", Category: models.CategoryTask, Tags: []string{"errand"}},
		{ID: "1", Content: "Rocket engines burn RP-1", Category: models.CategoryNote, Tags: []string{"Space"}},
	}
}

func TestFilter_EmptyQueryAllCategoriesKeepsEverything(t *testing.T) {
	got := Filter(fixtureIdeas(), "", models.CategoryAll)
	assert.Equal(t, fixtureIdeas(), got)
}

func TestFilter_QueryMatchesContentCaseInsensitive(t *testing.T) {
	got := Filter(fixtureIdeas(), "ROCKET", models.CategoryAll)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "1", got[0].ID)
	}
}

func TestFilter_QueryMatchesTags(t *testing.T) {
	got := Filter(fixtureIdeas(), "space", models.CategoryAll)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "1", got[0].ID)
	}
}

func TestFilter_CategoryRestricts(t *testing.T) {
	got := Filter(fixtureIdeas(), "", models.CategoryTask)
	if assert.Len(t, got, 1) {
		assert.Equal(t, "2", got[0].ID)
	}
}

func TestFilter_QueryAndCategoryCombine(t *testing.T) {
	got := Filter(fixtureIdeas(), "milk", models.CategoryMeeting)
	assert.Empty(t, got)
}

func TestFilter_OutputIsOrderPreservingSubsequence(t *testing.T) {
	in := fixtureIdeas()
	got := Filter(in, "", models.CategoryAll)

	// Every combination must yield a subsequence of the input and every
	// kept element must satisfy the predicate.
	for _, query := range []string{"", "e", "milk", "zzz"} {
		for _, cat := range []models.Category{models.CategoryAll, models.CategoryTask, models.CategoryNote} {
			got = Filter(in, query, cat)
			pos := 0
			for _, idea := range got {
				for pos < len(in) && in[pos].ID != idea.ID {
					pos++
				}
				assert.Less(t, pos, len(in), "result not a subsequence for q=%q cat=%q", query, cat)
				assert.True(t, cat == models.CategoryAll || idea.Category == cat)
			}
		}
	}
}

func TestSummarize(t *testing.T) {
	now := time.Date(2026, 3, 1, 22, 30, 0, 0, time.UTC)
	list := []models.Idea{
		{Source: models.SourceVoice, CreatedAt: now.Add(-1 * time.Hour)},
		{Source: models.SourceTyped, CreatedAt: now.Add(-2 * time.Hour)},
		{Source: models.SourceTyped, CreatedAt: now.AddDate(0, 0, -1)},
		{Source: models.SourceVoice, CreatedAt: now.AddDate(0, 0, -7)},
	}

	got := Summarize(list, now)
	assert.Equal(t, models.Stats{Total: 4, Voice: 2, Typed: 2, Today: 2}, got)
}

func TestSummarize_DayBoundaryIsLocalMidnight(t *testing.T) {
	now := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	list := []models.Idea{
		{Source: models.SourceTyped, CreatedAt: time.Date(2026, 3, 1, 0, 1, 0, 0, time.UTC)},
		{Source: models.SourceTyped, CreatedAt: time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC)},
	}

	got := Summarize(list, now)
	assert.Equal(t, 1, got.Today)
}
