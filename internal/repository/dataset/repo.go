// Package dataset owns the feature collection the service searches.
package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/projectsearch/internal/db"
	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/metrics"
	"github.com/kailas-cloud/projectsearch/internal/repository/geojson"
	"github.com/kailas-cloud/projectsearch/internal/repository/parquetfile"
)

// Source kinds.
const (
	SourceFile  = "file"
	SourceStore = "store"
)

// KVStore is the consumer interface for dataset persistence.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Source describes where the dataset is loaded from.
type Source struct {
	Kind  string
	Paths []string
	Key   string
}

// Repository holds the current collection. Readers never block a reload:
// a reload builds a new collection and swaps it in.
type Repository struct {
	current atomic.Pointer[feature.Collection]
	source  Source
	store   KVStore
	logger  *zap.Logger
}

// New creates a repository. store may be nil when the source is file-based.
func New(source Source, store KVStore, logger *zap.Logger) *Repository {
	return &Repository{source: source, store: store, logger: logger}
}

// Current returns the loaded collection. ok is false until the first load.
func (r *Repository) Current() (*feature.Collection, bool) {
	c := r.current.Load()
	return c, c != nil
}

// Set swaps in a collection.
func (r *Repository) Set(c *feature.Collection) {
	r.current.Store(c)
	metrics.DatasetFeatures.Set(float64(c.Len()))
}

// Reload loads the configured source and swaps it in.
func (r *Repository) Reload(ctx context.Context) (*feature.Collection, error) {
	var (
		c   *feature.Collection
		err error
	)
	switch r.source.Kind {
	case SourceFile, "":
		c, err = ReadFiles(ctx, r.source.Paths)
	case SourceStore:
		c, err = r.fetch(ctx, r.source.Key)
	default:
		return nil, fmt.Errorf("unknown dataset source %q", r.source.Kind)
	}

	kind := r.source.Kind
	if kind == "" {
		kind = SourceFile
	}
	if err != nil {
		metrics.DatasetLoadsTotal.WithLabelValues(kind, "error").Inc()
		r.logger.Error("Dataset load failed", zap.String("source", kind), zap.Error(err))
		return nil, err
	}
	metrics.DatasetLoadsTotal.WithLabelValues(kind, "ok").Inc()

	r.Set(c)
	r.logger.Info("Dataset loaded", zap.String("source", kind), zap.Int("features", c.Len()))
	return c, nil
}

// Publish writes c as GeoJSON under key.
func (r *Repository) Publish(ctx context.Context, key string, c *feature.Collection) error {
	if r.store == nil {
		return fmt.Errorf("publish dataset: no store configured")
	}
	var features []*feature.Feature
	if c != nil {
		features = c.Features
	}
	data, err := geojson.Marshal(features)
	if err != nil {
		return fmt.Errorf("publish dataset: %w", err)
	}
	if err := r.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("publish dataset: %w", err)
	}
	return nil
}

func (r *Repository) fetch(ctx context.Context, key string) (*feature.Collection, error) {
	if r.store == nil {
		return nil, fmt.Errorf("fetch dataset: no store configured")
	}
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, fmt.Errorf("%w: key %q", domain.ErrDatasetNotFound, key)
		}
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	return geojson.Decode(bytes.NewReader(data))
}

// ReadFiles decodes every path concurrently and concatenates the results in
// path order, so ties in ranking follow the configured file order.
func ReadFiles(ctx context.Context, paths []string) (*feature.Collection, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: no dataset paths", domain.ErrDatasetNotFound)
	}

	parts := make([]*feature.Collection, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err //nolint:wrapcheck // context cancellation
			}
			c, err := ReadFile(path)
			if err != nil {
				return fmt.Errorf("load %s: %w", path, err)
			}
			parts[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err //nolint:wrapcheck // already wrapped per path
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	return feature.Concat(parts...), nil
}

// ReadFile decodes one file, picking the decoder by extension.
func ReadFile(path string) (*feature.Collection, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return readGeoJSON(path)
	case ".parquet":
		return parquetfile.ReadFile(path)
	default:
		return nil, fmt.Errorf("%w: %s", domain.ErrUnsupportedFormat, path)
	}
}

func readGeoJSON(path string) (*feature.Collection, error) {
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domain.ErrDatasetNotFound, path)
		}
		return nil, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()
	return geojson.Decode(f)
}
