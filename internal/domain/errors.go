package domain

import "errors"

var (
	// ErrDatasetNotLoaded signals that no feature collection has been loaded yet.
	ErrDatasetNotLoaded = errors.New("dataset not loaded")
	// ErrDatasetNotFound signals a missing dataset file or store key.
	ErrDatasetNotFound = errors.New("dataset not found")
	// ErrInvalidDataset signals a dataset that cannot be decoded.
	ErrInvalidDataset = errors.New("invalid dataset")
	// ErrUnsupportedFormat signals a dataset file with an unknown extension.
	ErrUnsupportedFormat = errors.New("unsupported dataset format")
	// ErrQueryTooLong signals a query above the accepted length.
	ErrQueryTooLong = errors.New("query too long")
	// ErrInvalidCoordinates signals a reference point outside WGS84 range.
	ErrInvalidCoordinates = errors.New("invalid coordinates")
)
