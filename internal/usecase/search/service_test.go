package search

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/request"
	"github.com/kailas-cloud/projectsearch/internal/metrics"
)

type mockDataset struct {
	col *feature.Collection
	ok  bool
}

func (m *mockDataset) Current() (*feature.Collection, bool) { return m.col, m.ok }

func mustRequest(t *testing.T, q string) *request.Request {
	t.Helper()
	r, err := request.New(q, nil)
	if err != nil {
		t.Fatalf("request.New: %v", err)
	}
	return &r
}

func TestService_Search(t *testing.T) {
	svc := New(&mockDataset{col: projects(), ok: true})

	matches, err := svc.Search(context.Background(), mustRequest(t, "Miami"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("want 2 matches, got %d", len(matches))
	}
	if matches[0].Feature().ID != "1" || matches[0].Score() != 15 {
		t.Errorf("want feature 1 with score 15, got %s/%d", matches[0].Feature().ID, matches[0].Score())
	}
}

func TestService_Search_NotLoaded(t *testing.T) {
	svc := New(&mockDataset{})

	_, err := svc.Search(context.Background(), mustRequest(t, "Miami"))
	if !errors.Is(err, domain.ErrDatasetNotLoaded) {
		t.Fatalf("want ErrDatasetNotLoaded, got %v", err)
	}
}

func TestService_Search_BlankQueryNotLoaded(t *testing.T) {
	svc := New(&mockDataset{})

	for _, q := range []string{"", "   "} {
		matches, err := svc.Search(context.Background(), mustRequest(t, q))
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", q, err)
		}
		if len(matches) != 0 {
			t.Errorf("%q: want no matches, got %d", q, len(matches))
		}
	}
}

func TestService_Search_Outcomes(t *testing.T) {
	svc := New(&mockDataset{col: projects(), ok: true})

	tests := []struct {
		query   string
		outcome string
	}{
		{"Doral", metrics.OutcomeHit},
		{"nowhere", metrics.OutcomeMiss},
		{"   ", metrics.OutcomeEmpty},
	}
	for _, tc := range tests {
		t.Run(tc.outcome, func(t *testing.T) {
			before := testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues(tc.outcome))
			if _, err := svc.Search(context.Background(), mustRequest(t, tc.query)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			after := testutil.ToFloat64(metrics.SearchRequestsTotal.WithLabelValues(tc.outcome))
			if after != before+1 {
				t.Errorf("outcome %s: want counter +1, got %f -> %f", tc.outcome, before, after)
			}
		})
	}
}
