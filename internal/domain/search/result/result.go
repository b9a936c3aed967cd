package result

import "github.com/kailas-cloud/projectsearch/internal/domain/feature"

// Match is a feature paired with its relevance score.
type Match struct {
	feature *feature.Feature
	score   int
}

// New creates a match.
func New(f *feature.Feature, score int) Match {
	return Match{feature: f, score: score}
}

// Feature returns the matched feature (a reference into the source collection).
func (m *Match) Feature() *feature.Feature { return m.feature }

// Score returns the relevance score.
func (m *Match) Score() int { return m.score }

// Features drops the scores, keeping order.
func Features(matches []Match) []*feature.Feature {
	if len(matches) == 0 {
		return nil
	}
	out := make([]*feature.Feature, len(matches))
	for i := range matches {
		out[i] = matches[i].feature
	}
	return out
}
