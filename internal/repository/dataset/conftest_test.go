package dataset

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/kailas-cloud/projectsearch/internal/db"
)

// memKVStore implements the consumer interface for tests.
type memKVStore struct {
	data   map[string][]byte
	getErr error
	setErr error
}

func newMemKVStore() *memKVStore {
	return &memKVStore{data: make(map[string][]byte)}
}

func (m *memKVStore) Get(_ context.Context, key string) ([]byte, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	v, ok := m.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (m *memKVStore) Set(_ context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const miamiGeoJSON = `{"type":"FeatureCollection","features":[
  {"id":"mb","type":"Feature","geometry":{"type":"Point","coordinates":[-80.13,25.79]},
   "properties":{"Project_Na":"Miami Beach Flood Protection","NAME":"Miami Beach"}},
  {"id":"cg","type":"Feature","geometry":{"type":"Point","coordinates":[-80.26,25.72]},
   "properties":{"Project_Na":"Coral Gables Green Infrastructure","NAME":"Coral Gables"}}
]}`

const doralGeoJSON = `{"type":"FeatureCollection","features":[
  {"id":"dr","type":"Feature","geometry":null,
   "properties":{"Project_Na":"Doral Stormwater Management","City":"Doral"}}
]}`
