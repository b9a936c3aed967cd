package projectsearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/projectsearch/internal/db"
	dbRedis "github.com/kailas-cloud/projectsearch/internal/db/redis"
	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/request"
	"github.com/kailas-cloud/projectsearch/internal/domain/search/result"
	"github.com/kailas-cloud/projectsearch/internal/repository/dataset"
	healthuc "github.com/kailas-cloud/projectsearch/internal/usecase/health"
	searchuc "github.com/kailas-cloud/projectsearch/internal/usecase/search"
)

const defaultReadinessTimeout = 10 * time.Second

// Internal interfaces so tests can swap implementations.
type searchUseCase interface {
	Search(ctx context.Context, req *request.Request) ([]result.Match, error)
}

type datasetRepository interface {
	Current() (*feature.Collection, bool)
	Reload(ctx context.Context) (*feature.Collection, error)
	Publish(ctx context.Context, key string, c *feature.Collection) error
}

// Client is the projectsearch SDK entry point.
type Client struct {
	store     db.Store // nil for file-only clients
	storeKey  string
	dataset   datasetRepository
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New creates a Client and loads the dataset. With WithFiles the files are
// the source; otherwise the dataset is read from the store key.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{
		storeKey:         DefaultStoreKey,
		readinessTimeout: defaultReadinessTimeout,
	}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.files) == 0 && len(cfg.addrs) == 0 {
		return nil, errors.New("projectsearch: dataset source required (use WithFiles, WithValkey or WithRedis)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	var store db.Store
	if len(cfg.addrs) > 0 {
		store, err = createStore(cfg)
		if err != nil {
			return nil, err
		}
		if err := store.WaitForReady(ctx, cfg.readinessTimeout); err != nil {
			store.Close()
			return nil, fmt.Errorf("projectsearch: database not ready: %w", err)
		}
	}

	c := wireClient(store, cfg, obs)
	if _, err := c.Reload(ctx); err != nil {
		c.Close()
		return nil, err
	}
	return c, nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
		})
		if err != nil {
			return nil, fmt.Errorf("projectsearch: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("projectsearch: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig, obs *observer) *Client {
	source := dataset.Source{Kind: dataset.SourceStore, Key: cfg.storeKey}
	if len(cfg.files) > 0 {
		source = dataset.Source{Kind: dataset.SourceFile, Paths: cfg.files}
	}

	// Nil interfaces, not typed nil pointers, when no store is configured.
	var (
		kv     dataset.KVStore
		pinger healthuc.DBPinger
	)
	if store != nil {
		kv = store
		pinger = store
	}

	repo := dataset.New(source, kv, zap.NewNop())
	return &Client{
		store:     store,
		storeKey:  cfg.storeKey,
		dataset:   repo,
		searchSvc: searchuc.New(repo),
		healthSvc: healthuc.New(repo, pinger),
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", start, err) }()

	if c.store == nil {
		return errors.New("projectsearch: no store configured")
	}
	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search ranks the loaded dataset against query. An empty or blank query
// returns no hits and no error.
func (c *Client) Search(ctx context.Context, query string) ([]Hit, error) {
	return c.search(ctx, "search", query, nil)
}

// SearchNear is Search with each hit annotated by its distance from p.
// Ranking does not change.
func (c *Client) SearchNear(ctx context.Context, query string, p Point) ([]Hit, error) {
	return c.search(ctx, "search_near", query, &p)
}

func (c *Client) search(ctx context.Context, op, query string, near *Point) (hits []Hit, err error) {
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	var geoQuery *request.GeoQuery
	if near != nil {
		geoQuery = &request.GeoQuery{Latitude: near.Lat, Longitude: near.Lon}
	}
	req, err := request.New(query, geoQuery)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	matches, err := c.searchSvc.Search(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}
	return hitsFromMatches(matches, near), nil
}

// Reload re-reads the dataset source and returns the new feature count.
// On failure the previous dataset stays in place.
func (c *Client) Reload(ctx context.Context) (n int, err error) {
	start := time.Now()
	defer func() { c.obs.observe("reload", start, err) }()

	col, err := c.dataset.Reload(ctx)
	if err != nil {
		return 0, fmt.Errorf("reload: %w", err)
	}
	c.obs.dataset(col.Len())
	return col.Len(), nil
}

// Publish writes the loaded dataset to the store key so other processes
// can Reload it.
func (c *Client) Publish(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("publish", start, err) }()

	if c.store == nil {
		return errors.New("projectsearch: no store configured")
	}
	col, ok := c.dataset.Current()
	if !ok {
		return fmt.Errorf("publish: %w", ErrDatasetNotLoaded)
	}
	if err = c.dataset.Publish(ctx, c.storeKey, col); err != nil {
		return fmt.Errorf("publish: %w", err)
	}
	return nil
}

// Len returns the number of loaded features.
func (c *Client) Len() int {
	col, _ := c.dataset.Current()
	return col.Len()
}
