package health

import (
	"context"
	"errors"
	"testing"

	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
)

// --- Mocks ---

type mockDBPinger struct {
	err error
}

func (m *mockDBPinger) Ping(_ context.Context) error { return m.err }

type mockDataset struct {
	col *feature.Collection
}

func (m *mockDataset) Current() (*feature.Collection, bool) { return m.col, m.col != nil }

func loaded() *mockDataset {
	return &mockDataset{col: feature.NewCollection([]*feature.Feature{{ID: "1"}, {ID: "2"}})}
}

// --- Tests ---

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(loaded(), &mockDBPinger{})
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if r.Checks[CheckDataset] != CheckOK {
		t.Errorf("expected dataset %q, got %q", CheckOK, r.Checks[CheckDataset])
	}
	if r.Checks[CheckDatabase] != CheckOK {
		t.Errorf("expected database %q, got %q", CheckOK, r.Checks[CheckDatabase])
	}
	if r.Features != 2 {
		t.Errorf("expected 2 features, got %d", r.Features)
	}
}

func TestCheck_DBError(t *testing.T) {
	svc := New(loaded(), &mockDBPinger{err: errors.New("connection refused")})
	r := svc.Check(context.Background())

	if r.Status != Degraded {
		t.Errorf("expected %q, got %q", Degraded, r.Status)
	}
	if r.Checks[CheckDatabase] != CheckError {
		t.Error("expected database error")
	}
}

func TestCheck_DatasetNotLoaded(t *testing.T) {
	svc := New(&mockDataset{}, &mockDBPinger{})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckDataset] != CheckError {
		t.Error("expected dataset error")
	}
}

func TestCheck_BothFail(t *testing.T) {
	svc := New(&mockDataset{}, &mockDBPinger{err: errors.New("db down")})
	r := svc.Check(context.Background())

	if r.Status != Unhealthy {
		t.Errorf("expected %q, got %q", Unhealthy, r.Status)
	}
	if r.Checks[CheckDatabase] != CheckError {
		t.Error("expected database error")
	}
}

func TestCheck_NoDatabase(t *testing.T) {
	svc := New(loaded(), nil)
	r := svc.Check(context.Background())

	if r.Status != Healthy {
		t.Errorf("expected %q, got %q", Healthy, r.Status)
	}
	if _, ok := r.Checks[CheckDatabase]; ok {
		t.Error("database check should be absent when no store is configured")
	}
}
