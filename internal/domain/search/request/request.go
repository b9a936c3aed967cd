package request

import (
	"fmt"

	"github.com/kailas-cloud/projectsearch/internal/domain"
	"github.com/kailas-cloud/projectsearch/internal/domain/geo"
)

// MaxQueryLength is the maximum accepted query length in bytes.
const MaxQueryLength = 4096

// GeoQuery is a reference point for annotating results with distance.
type GeoQuery struct {
	Latitude  float64
	Longitude float64
}

// Request is a validated search request. An empty query is valid and
// represents "no active search".
type Request struct {
	query string
	near  *GeoQuery
}

// New validates search parameters. near may be nil.
func New(query string, near *GeoQuery) (Request, error) {
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w (max %d bytes)", domain.ErrQueryTooLong, MaxQueryLength)
	}
	if near != nil && !geo.ValidateCoordinates(near.Latitude, near.Longitude) {
		return Request{}, fmt.Errorf("%w: near (%f, %f)", domain.ErrInvalidCoordinates, near.Latitude, near.Longitude)
	}
	return Request{query: query, near: near}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// Near returns the reference point (nil when not requested).
func (r *Request) Near() *GeoQuery { return r.near }
