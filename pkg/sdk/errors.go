package projectsearch

import "github.com/kailas-cloud/projectsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrDatasetNotLoaded   = domain.ErrDatasetNotLoaded
	ErrDatasetNotFound    = domain.ErrDatasetNotFound
	ErrInvalidDataset     = domain.ErrInvalidDataset
	ErrUnsupportedFormat  = domain.ErrUnsupportedFormat
	ErrQueryTooLong       = domain.ErrQueryTooLong
	ErrInvalidCoordinates = domain.ErrInvalidCoordinates
)
