package health

import (
	"context"

	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
)

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// DatasetReader reports whether a dataset is loaded.
type DatasetReader interface {
	Current() (*feature.Collection, bool)
}
