package search

import (
	"errors"
	"testing"

	"github.com/go-playground/assert/v2"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
)

type fakeLister struct {
	items []model.AgendaItem
	err   error
}

func (f *fakeLister) ListRecentItems(limit int) ([]model.AgendaItem, error) {
	return f.items, f.err
}

func TestSearch_MatchRanksFirst(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "a", Title: "Park maintenance contract", Topic: "parks"},
			{ItemID: "b", Title: "Rezoning of North Monroe corridor", Topic: "zoning"},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("rezoning Monroe", 10, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, "b", results[0].ItemID)
	assert.Equal(t, true, results[0].SearchScore > 0)
}

func TestSearch_NoOverlapReturnsNothing(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "a", Title: "Rezoning of North Monroe corridor"},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("xylophone qwerty", 10, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(results))
}

func TestSearch_WeightsFavorTitle(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "summary-hit", Summary: "budget discussion"},
			{ItemID: "title-hit", Title: "Budget amendment"},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("budget", 10, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(results))
	assert.Equal(t, "title-hit", results[0].ItemID)
	assert.Equal(t, 3.0, results[0].SearchScore)
	assert.Equal(t, 2.0, results[1].SearchScore)
}

func TestSearch_KeyDetailsCount(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "a", KeyDetails: []string{"$2.5 million from the street fund"}},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("street", 10, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1, len(results))
	assert.Equal(t, 1.0, results[0].SearchScore)
}

func TestSearch_ScoreAveragedOverTerms(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "a", Title: "Budget amendment"},
		},
	}

	s := NewSearcher(lister)
	// One of two terms hits the title: 3.0 / 2 = 1.5.
	results, err := s.Search("budget xyzzy", 10, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 1.5, results[0].SearchScore)
}

func TestSearch_MinScoreFilters(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "a", Topic: "parks"},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("parks", 10, 2.0)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(results))
}

func TestSearch_TopKCapsResults(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "a", Title: "Budget one"},
			{ItemID: "b", Title: "Budget two"},
			{ItemID: "c", Title: "Budget three"},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("budget", 2, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(results))
}

func TestSearch_TiesKeepInputOrder(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{
			{ItemID: "first", Title: "Budget one"},
			{ItemID: "second", Title: "Budget two"},
		},
	}

	s := NewSearcher(lister)
	results, err := s.Search("budget", 10, 0.1)

	assert.Equal(t, nil, err)
	assert.Equal(t, "first", results[0].ItemID)
	assert.Equal(t, "second", results[1].ItemID)
}

func TestSearch_StoreFailurePropagates(t *testing.T) {
	lister := &fakeLister{err: errors.New("storage down")}

	s := NewSearcher(lister)
	_, err := s.Search("budget", 10, 0.1)

	assert.NotEqual(t, nil, err)
}

func TestStats(t *testing.T) {
	lister := &fakeLister{
		items: []model.AgendaItem{{ItemID: "a"}, {ItemID: "b"}},
	}

	s := NewSearcher(lister)
	stats, err := s.Stats()

	assert.Equal(t, nil, err)
	assert.Equal(t, 2, stats.TotalItems)
	assert.Equal(t, "keyword_scan", stats.Method)
}
