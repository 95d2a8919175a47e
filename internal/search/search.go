package search

import (
	"math"
	"sort"
	"strings"

	"github.com/ConnerV42/spokane-public-brief/internal/model"
)

// workingSetLimit bounds how many recent items a search pulls from the
// store. Scoring is linear over this set, which is fine at a few hundred
// items; this is a known ceiling, not something to scale up.
const workingSetLimit = 1000

type ItemLister interface {
	ListRecentItems(limit int) ([]model.AgendaItem, error)
}

type ScoredItem struct {
	model.AgendaItem
	SearchScore float64
}

type Stats struct {
	TotalItems int
	Method     string
	Backend    string
}

type Searcher struct {
	items ItemLister
}

func NewSearcher(items ItemLister) *Searcher {
	return &Searcher{items: items}
}

// Search scores the recent working set against the query and returns the
// topK results with score >= minScore, best first.
func (s *Searcher) Search(query string, topK int, minScore float64) ([]ScoredItem, error) {
	items, err := s.items.ListRecentItems(workingSetLimit)
	if err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(query))

	var scored []ScoredItem
	for _, item := range items {
		score := scoreItem(item, terms)
		if score >= minScore {
			scored = append(scored, ScoredItem{
				AgendaItem:  item,
				SearchScore: math.Round(score*1000) / 1000,
			})
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].SearchScore > scored[j].SearchScore
	})

	if len(scored) > topK {
		scored = scored[:topK]
	}
	return scored, nil
}

func (s *Searcher) Stats() (Stats, error) {
	items, err := s.items.ListRecentItems(workingSetLimit)
	if err != nil {
		return Stats{}, err
	}
	return Stats{
		TotalItems: len(items),
		Method:     "keyword_scan",
		Backend:    "postgres",
	}, nil
}

// scoreItem adds a field's weight for every query term that appears as a
// substring of that field, plus 1.0 per term found in the key details,
// then averages over the term count.
func scoreItem(item model.AgendaItem, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}

	fields := []struct {
		value  string
		weight float64
	}{
		{item.Title, 3.0},
		{item.Summary, 2.0},
		{item.WhyItMatters, 1.5},
		{item.Topic, 1.0},
	}

	var score float64
	for _, field := range fields {
		value := strings.ToLower(field.value)
		for _, term := range terms {
			if strings.Contains(value, term) {
				score += field.weight
			}
		}
	}

	details := strings.ToLower(strings.Join(item.KeyDetails, " "))
	for _, term := range terms {
		if strings.Contains(details, term) {
			score += 1.0
		}
	}

	return score / float64(len(terms))
}
