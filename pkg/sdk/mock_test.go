package projectsearch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kailas-cloud/projectsearch/internal/db"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/request"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
)

// --- db.Store fake ---

type memStore struct {
	data    map[string][]byte
	pingErr error
	closed  bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Ping(context.Context) error { return m.pingErr }

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Close() { m.closed = true }

func (m *memStore) WaitForReady(context.Context, time.Duration) error { return nil }

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, req *request.Request) ([]result.Match, error)
}

func (m *mockSearchUC) Search(ctx context.Context, req *request.Request) ([]result.Match, error) {
	return m.searchFn(ctx, req)
}

// --- helpers ---

const projectsGeoJSON = `{"type":"FeatureCollection","features":[
  {"id":"mb","type":"Feature","geometry":{"type":"Point","coordinates":[-80.13,25.79]},
   "properties":{"Project_Na":"Miami Beach Flood Protection","NAME":"MIAMI BEACH","Disaster_F":"Flooding"}},
  {"id":7,"type":"Feature","geometry":null,
   "properties":{"Project Name":"Doral Stormwater Management","City":"doral"}}
]}`

func writeDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "projects.geojson")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}
