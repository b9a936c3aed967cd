package search

import (
	"cmp"
	"slices"

	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/field"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/scoring"
)

// MaxResults caps the number of features a search returns.
const MaxResults = 10

// Search returns the features of c matching query, best first, at most
// MaxResults of them. The returned features are references into c.
// A blank query or an empty collection yields no results.
func Search(query string, c *feature.Collection) []*feature.Feature {
	return result.Features(Rank(query, c))
}

// Rank is Search with the relevance score of every match kept.
// Equal scores keep the collection's order.
func Rank(query string, c *feature.Collection) []result.Match {
	q := field.Normalize(query)
	if q == "" || c == nil || len(c.Features) == 0 {
		return nil
	}

	var matches []result.Match
	for _, f := range c.Features {
		if f == nil {
			continue
		}
		fields := field.Extract(f.Properties)
		if !scoring.Matches(fields, q) {
			continue
		}
		matches = append(matches, result.New(f, scoring.Score(fields, q)))
	}

	slices.SortStableFunc(matches, func(a, b result.Match) int {
		return cmp.Compare(b.Score(), a.Score())
	})

	if len(matches) > MaxResults {
		matches = matches[:MaxResults]
	}
	return matches
}
