package chi

import (
	"encoding/json"

	"github.com/kailas-cloud/projectsearch/internal/domain/feature"
)

// ErrorCode is a machine-readable error identifier.
type ErrorCode string

// Error codes returned by the API.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeQueryTooLong     ErrorCode = "query_too_long"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeDatasetNotLoaded ErrorCode = "dataset_not_loaded"
	CodeDatasetNotFound  ErrorCode = "dataset_not_found"
	CodeInvalidDataset   ErrorCode = "invalid_dataset"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// SearchHit is one ranked feature.
type SearchHit struct {
	ID             string             `json:"id"`
	Score          int                `json:"score"`
	Name           string             `json:"name"`
	City           string             `json:"city"`
	CityDisplay    string             `json:"city_display"`
	DistanceMeters *float64           `json:"distance_m,omitempty"`
	Properties     feature.Properties `json:"properties"`
	Geometry       json.RawMessage    `json:"geometry"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Query   string      `json:"query"`
	Count   int         `json:"count"`
	Results []SearchHit `json:"results"`
	// Bounds is [minLon, minLat, maxLon, maxLat] of the results, for map focus.
	Bounds []float64 `json:"bounds,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status   string            `json:"status"`
	Checks   map[string]string `json:"checks"`
	Features int               `json:"features"`
}

// ReloadResponse is the body of POST /dataset/reload.
type ReloadResponse struct {
	Features int `json:"features"`
}
