package search

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/field"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/request"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
	logpkg "github.com/kailas-cloud/projectsearch/internal/logger"
	"github.com/kailas-cloud/projectsearch/internal/metrics"
)

// Service runs searches against the currently loaded dataset.
type Service struct {
	dataset DatasetReader
}

// New creates a search service.
func New(dataset DatasetReader) *Service {
	return &Service{dataset: dataset}
}

// Search ranks the loaded dataset against the request's query. A blank query
// matches nothing whether or not a dataset is loaded.
func (s *Service) Search(ctx context.Context, req *request.Request) ([]result.Match, error) {
	if field.Normalize(req.Query()) == "" {
		metrics.SearchRequestsTotal.WithLabelValues(metrics.OutcomeEmpty).Inc()
		metrics.SearchResults.Observe(0)
		return nil, nil
	}

	col, ok := s.dataset.Current()
	if !ok {
		return nil, domain.ErrDatasetNotLoaded
	}

	start := time.Now()
	matches := Rank(req.Query(), col)
	duration := time.Since(start)

	outcome := metrics.OutcomeHit
	if len(matches) == 0 {
		outcome = metrics.OutcomeMiss
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	metrics.SearchResults.Observe(float64(len(matches)))
	metrics.SearchDuration.Observe(duration.Seconds())

	logpkg.FromContext(ctx).Debug("search",
		zap.String("query", req.Query()),
		zap.String("outcome", outcome),
		zap.Int("results", len(matches)),
		zap.Int("features", col.Len()),
		zap.Duration("duration", duration),
	)

	return matches, nil
}
