// Package scoring holds the per-field relevance weights.
package scoring

import (
	"strings"

	"github.com/kailas-cloud/projectsearch/internal/domain/search/field"
)

// Weight is the score a role contributes when it matches a query.
// Prefix, when non-zero, replaces Contains for a field that starts with the query.
type Weight struct {
	Contains int
	Prefix   int
}

var weights = [field.Count]Weight{
	field.ProjectName:        {Contains: 5, Prefix: 10},
	field.City:               {Contains: 3},
	field.Description:        {Contains: 2},
	field.InfrastructureType: {Contains: 2},
	field.Category:           {Contains: 1},
	field.DisasterFocus:      {Contains: 1},
}

// WeightOf returns the weight of role r.
func WeightOf(r field.Role) Weight {
	if !r.IsValid() {
		return Weight{}
	}
	return weights[r]
}

// Best returns the larger of the two weights.
func (w Weight) Best() int {
	return max(w.Contains, w.Prefix)
}

// MaxScore is the score of a feature that matches on every role at its best weight.
func MaxScore() int {
	total := 0
	for _, w := range weights {
		total += w.Best()
	}
	return total
}

// Matches reports whether query is a substring of at least one field.
// Both sides must already be normalized.
func Matches(f field.Fields, query string) bool {
	for _, text := range f {
		if strings.Contains(text, query) {
			return true
		}
	}
	return false
}

// Score sums the weights of every role whose field contains query.
// Both sides must already be normalized and query must be non-empty.
func Score(f field.Fields, query string) int {
	score := 0
	for r, text := range f {
		score += fieldScore(weights[r], text, query)
	}
	return score
}

func fieldScore(w Weight, text, query string) int {
	if w.Prefix > 0 && strings.HasPrefix(text, query) {
		return w.Prefix
	}
	if strings.Contains(text, query) {
		return w.Contains
	}
	return 0
}
