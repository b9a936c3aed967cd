package search

import "github.com/kailas-cloud/projectsearch/internal/domain/feature"

// DatasetReader returns the currently loaded feature collection.
type DatasetReader interface {
	Current() (*feature.Collection, bool)
}
